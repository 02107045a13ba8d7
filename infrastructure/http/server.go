// Package http exposes the two HTTP surfaces of the service: the Twilio-style
// WhatsApp webhook answered in TwiML, and the authenticated operator API for
// inspection, search, audit and status.
package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"scam-radar/auth"
	"scam-radar/dataset"
	"scam-radar/infrastructure/storage"
	"scam-radar/ratelimit"
	"scam-radar/services"
)

type Server struct {
	engine       *gin.Engine
	classifier   *services.ClassifierService
	retrieval    *services.RetrievalService
	audit        storage.IAuditRepository
	limiter      *ratelimit.SlidingWindow
	reference    *dataset.Reference
	tokens       *auth.TokenManager
	operatorHash string
	topSimilar   int
	log          *slog.Logger
}

func NewServer(
	classifier *services.ClassifierService,
	retrieval *services.RetrievalService,
	audit storage.IAuditRepository,
	limiter *ratelimit.SlidingWindow,
	reference *dataset.Reference,
	tokens *auth.TokenManager,
	operatorHash string,
	topSimilar int,
	log *slog.Logger,
) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		engine:       engine,
		classifier:   classifier,
		retrieval:    retrieval,
		audit:        audit,
		limiter:      limiter,
		reference:    reference,
		tokens:       tokens,
		operatorHash: operatorHash,
		topSimilar:   topSimilar,
		log:          log,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.engine.GET("/", s.banner)
	s.engine.POST("/webhook/whatsapp", s.whatsappWebhook)
	s.engine.POST("/api/login", s.login)

	protected := s.engine.Group("/api")
	protected.Use(s.authRequired())
	{
		protected.POST("/inspect", s.inspect)
		protected.GET("/search", s.search)
		protected.GET("/audit", s.auditRecent)
		protected.GET("/status", s.status)
	}
}

// Handler exposes the router, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Run(addr string) error {
	s.log.Info("HTTP server listening", "addr", addr)
	return s.engine.Run(addr)
}

// authRequired guards the operator API with a Bearer token.
func (s *Server) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(header, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer <token>"})
			return
		}

		claims, err := s.tokens.Validate(parts[1])
		if err != nil {
			s.log.Warn("Rejected token", "err", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set("operator", claims.Operator)
		c.Next()
	}
}
