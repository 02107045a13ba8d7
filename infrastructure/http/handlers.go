package http

import (
	"encoding/xml"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"scam-radar/auth"
	"scam-radar/domain"
	apperrors "scam-radar/errors"
	"scam-radar/observability"
)

const defaultAuditLimit = 50

// twiML is the minimal Twilio messaging response: the reply text is sent
// back to the sender as a single message.
type twiML struct {
	XMLName xml.Name `xml:"Response"`
	Message string   `xml:"Message"`
}

func (s *Server) banner(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "scam-radar",
		"webhook": "/webhook/whatsapp",
		"api":     []string{"/api/login", "/api/inspect", "/api/search", "/api/audit", "/api/status"},
	})
}

// whatsappWebhook handles one inbound message from the Twilio sandbox.
// Twilio posts form-encoded From/Body fields and expects TwiML back; every
// outcome, including rejections, is answered 200 with a reply message.
func (s *Server) whatsappWebhook(c *gin.Context) {
	verdict := s.classifier.Classify(domain.Message{
		Sender: c.PostForm("From"),
		Text:   c.PostForm("Body"),
		At:     time.Now(),
	})

	c.XML(http.StatusOK, twiML{Message: verdict.Reply})
}

func (s *Server) login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := auth.ValidateLogin(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ok, err := auth.ComparePassword(req.Password, s.operatorHash)
	if err != nil {
		s.log.Error("Password comparison failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify credentials"})
		return
	}
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": apperrors.ErrInvalidCredentials.Error()})
		return
	}

	token, err := s.tokens.Generate(req.Operator)
	if err != nil {
		s.log.Error("Token generation failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

type inspectRequest struct {
	Text string `json:"text" binding:"required"`
	TopN int    `json:"top_n"`
}

func (s *Server) inspect(c *gin.Context) {
	var req inspectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.TopN <= 0 {
		req.TopN = s.topSimilar
	}

	inspection, err := s.retrieval.Inspect(req.Text, req.TopN)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmptyMessage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		s.log.Error("Inspection failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to inspect message"})
		return
	}

	c.JSON(http.StatusOK, inspection)
}

func (s *Server) search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter q is required"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Limit must be a positive integer"})
		return
	}

	results, err := s.retrieval.Search(c.Request.Context(), query, limit)
	if err != nil {
		s.log.Error("Search failed", "query", query, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"query": query, "results": results})
}

func (s *Server) auditRecent(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultAuditLimit)))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Limit must be a positive integer"})
		return
	}

	records, err := s.audit.Recent(limit)
	if err != nil {
		s.log.Error("Audit lookup failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read audit trail"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(records), "records": records})
}

func (s *Server) status(c *gin.Context) {
	stats, err := observability.Collect()
	if err != nil {
		s.log.Error("Stats collection failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to collect stats"})
		return
	}

	stats.TrackedSenders = s.limiter.Tracked()
	stats.ReferenceRows = s.reference.Len()

	c.JSON(http.StatusOK, stats)
}
