package web

import (
	"net/http"
	"strconv"

	"github.com/fpawel/evictdash/internal/data"
	"github.com/gin-gonic/gin"
)

func floatQuery(c *gin.Context, key string, def float64) (float64, bool) {
	s, ok := c.GetQuery(key)
	if !ok || s == "" {
		return def, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		badRequest(c, "invalid "+key+": "+s)
		return 0, false
	}
	return v, true
}

func (h *APIService) barrierHotspots(c *gin.Context) {
	income, ok := floatQuery(c, "income", data.DefaultIncomeThreshold)
	if !ok {
		return
	}
	rentBurden, ok := floatQuery(c, "rent_burden", data.DefaultRentBurdenThreshold)
	if !ok {
		return
	}
	xs, err := data.BarrierHotspots(c.Request.Context(), h.db, income, rentBurden)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": nonNil(xs)})
}

func (h *APIService) topEvictionLeaders(c *gin.Context) {
	xs, err := data.TopEvictionLeaders(c.Request.Context(), h.db)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": nonNil(xs)})
}

func (h *APIService) demographicDisparity(c *gin.Context) {
	xs, err := data.DemographicDisparity(c.Request.Context(), h.db)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": nonNil(xs)})
}

func (h *APIService) affordabilityVsFilings(c *gin.Context) {
	xs, err := data.AffordabilityVsFilings(c.Request.Context(), h.db)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": nonNil(xs)})
}

func (h *APIService) stateSummary(c *gin.Context) {
	xs, err := data.StateSummaries(c.Request.Context(), h.db, c.Param("abbr"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": nonNil(xs)})
}

func (h *APIService) summarize(c *gin.Context) {
	r, err := data.Summarize(c.Request.Context(), h.db, c.Param("column"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}
