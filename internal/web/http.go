package web

import (
	"net/http"

	"github.com/ansel1/merry"
	"github.com/fpawel/evictdash/internal/web/middleware"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/powerman/structlog"
)

type APIService struct {
	engine *gin.Engine
	db     *sqlx.DB
	log    *structlog.Logger
}

func NewHTTPService(db *sqlx.DB, log *structlog.Logger, allowedOrigins []string) *APIService {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.AccessLog(log))
	engine.Use(middleware.CORSMiddleware(allowedOrigins))

	service := &APIService{
		engine: engine,
		db:     db,
		log:    log,
	}
	service.setupRoutes()
	return service
}

func (h *APIService) Engine() *gin.Engine {
	return h.engine
}

func (h *APIService) setupRoutes() {
	h.engine.GET("/healthz", h.health)

	v1 := h.engine.Group("/api/v1")
	h.setupEvictionRoutes(v1)
	h.setupQueryRoutes(v1)

	v1.GET("/counties", h.listCounties)
	v1.GET("/summary/:column", h.summarize)
}

func (h *APIService) setupEvictionRoutes(group *gin.RouterGroup) {
	evictions := group.Group("/evictions")

	evictions.GET("", h.listEvictions)
	evictions.GET("/:id", h.getEviction)
	evictions.POST("", h.addEviction)
	evictions.PUT("/:id", h.updateEviction)
	evictions.DELETE("/:id", h.deleteEviction)
}

func (h *APIService) setupQueryRoutes(group *gin.RouterGroup) {
	queries := group.Group("/queries")

	queries.GET("/hotspot", h.barrierHotspots)
	queries.GET("/leaders", h.topEvictionLeaders)
	queries.GET("/disparity", h.demographicDisparity)
	queries.GET("/affordability", h.affordabilityVsFilings)
	queries.GET("/state/:abbr", h.stateSummary)
}

func (h *APIService) health(c *gin.Context) {
	if err := h.db.PingContext(c.Request.Context()); err != nil {
		h.fail(c, merry.WithHTTPCode(err, http.StatusServiceUnavailable))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// fail reports err to the client with the status code attached to it by
// merry, 500 by default.
func (h *APIService) fail(c *gin.Context, err error) {
	code := merry.HTTPCode(err)
	h.log.PrintErr(err, "path", c.Request.URL.Path, middleware.RequestIDKey, c.GetString(middleware.RequestIDKey))
	c.JSON(code, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

func nonNil[T any](xs []T) []T {
	if xs == nil {
		return []T{}
	}
	return xs
}
