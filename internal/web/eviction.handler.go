package web

import (
	"net/http"
	"strconv"

	"github.com/fpawel/evictdash/internal/data"
	"github.com/gin-gonic/gin"
)

type evictionInput struct {
	FIPS    int64  `json:"fips" binding:"required"`
	Year    *int64 `json:"year" binding:"required"`
	Filings *int64 `json:"filings" binding:"required"`
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid eviction id: "+c.Param("id"))
		return 0, false
	}
	return id, true
}

func (h *APIService) listEvictions(c *gin.Context) {
	xs, err := data.ListEvictions(c.Request.Context(), h.db)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"evictions": nonNil(xs)})
}

func (h *APIService) getEviction(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	x, found, err := data.GetEviction(c.Request.Context(), h.db, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "eviction record not found"})
		return
	}
	c.JSON(http.StatusOK, x)
}

func (h *APIService) addEviction(c *gin.Context) {
	var in evictionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	id, err := data.AddEviction(c.Request.Context(), h.db, in.FIPS, *in.Year, *in.Filings)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"eviction_id": id})
}

func (h *APIService) updateEviction(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var in evictionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := data.UpdateEviction(c.Request.Context(), h.db, id, in.FIPS, *in.Year, *in.Filings); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"eviction_id": id})
}

func (h *APIService) deleteEviction(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := data.DeleteEviction(c.Request.Context(), h.db, id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *APIService) listCounties(c *gin.Context) {
	xs, err := data.ListCounties(c.Request.Context(), h.db)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"counties": nonNil(xs)})
}
