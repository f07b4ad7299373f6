package waypoint

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/danmuck/rbkctl/internal/observability"
)

// Server is the HTTP management surface over one Store.
type Server struct {
	RobotID string
	Addr    string
	Started time.Time

	store  *Store
	router *gin.Engine
}

func NewServer(robotID, addr string, corsOrigins []string, store *Store) *Server {
	observability.RegisterMetrics()
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestLogger(log.Logger))
	r.Use(observability.RequestMetricsMiddleware(robotID))
	r.Use(cors.New(cors.Config{
		AllowOrigins: normalizeOrigins(corsOrigins),
		AllowMethods: []string{"GET", "POST", "DELETE"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))
	_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	return &Server{
		RobotID: robotID,
		Addr:    addr,
		Started: time.Now(),
		store:   store,
		router:  r,
	}
}

func (s *Server) HTTPRouter() *gin.Engine {
	return s.router
}

func (s *Server) Store() *Store {
	return s.store
}

func (s *Server) RegisterRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"uptime": time.Since(s.Started).String(),
			"robot":  s.RobotID,
		})
	})

	s.router.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"ready":     true,
			"uptime":    time.Since(s.Started).String(),
			"robot":     s.RobotID,
			"waypoints": s.store.Len(),
		})
	})

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.router.Group("/api/v1")

	api.GET("/waypoints", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.store.List())
	})

	api.GET("/waypoints/:id", func(c *gin.Context) {
		id := c.Param("id")
		p, ok := s.store.Get(id)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "waypoint not found: " + id})
			return
		}
		c.JSON(http.StatusOK, p)
	})

	api.POST("/waypoints", func(c *gin.Context) {
		var points []Point
		if err := c.ShouldBindJSON(&points); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := s.store.Upsert(points); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Info().Str("robot", s.RobotID).Int("count", len(points)).Msg("waypoints upserted")
		c.JSON(http.StatusOK, gin.H{"status": "ok", "count": len(points)})
	})

	api.DELETE("/waypoints/:id", func(c *gin.Context) {
		id := c.Param("id")
		if !s.store.Delete(id) {
			c.JSON(http.StatusNotFound, gin.H{"error": "waypoint not found: " + id})
			return
		}
		c.Status(http.StatusNoContent)
	})
}

func (s *Server) Serve() error {
	s.RegisterRoutes()
	return s.router.Run(s.Addr)
}

func normalizeOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"http://localhost:3000"}
	}
	return origins
}
