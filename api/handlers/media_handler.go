package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/vidgrab-go/internal/app"
	"github.com/yourusername/vidgrab-go/internal/domain"
	"github.com/yourusername/vidgrab-go/internal/infrastructure"
)

// MediaHandler handles metadata and download HTTP requests
type MediaHandler struct {
	orchestrator *app.Orchestrator
	responder    *infrastructure.StreamingResponder
	filenameCap  int
	logger       *zap.Logger
}

// NewMediaHandler creates a media handler
func NewMediaHandler(orchestrator *app.Orchestrator, responder *infrastructure.StreamingResponder, filenameCap int, logger *zap.Logger) *MediaHandler {
	return &MediaHandler{
		orchestrator: orchestrator,
		responder:    responder,
		filenameCap:  filenameCap,
		logger:       logger,
	}
}

// InfoRequest represents a metadata query
type InfoRequest struct {
	URL      string `json:"url" binding:"required"`
	Platform string `json:"platform,omitempty"`
}

// Info handles POST /api/v1/info
func (h *MediaHandler) Info(c *gin.Context) {
	var req InfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "URL is required"})
		return
	}

	info, err := h.orchestrator.FetchInfo(c.Request.Context(), req.URL, req.Platform)
	if err != nil {
		h.logger.Error("Failed to fetch info", zap.String("url", req.URL), zap.Error(err))
		writeClassifiedError(c, "Failed to fetch video info", err)
		return
	}

	c.JSON(http.StatusOK, info)
}

// DownloadRequest represents a download request
type DownloadRequest struct {
	URL     string `json:"url" binding:"required"`
	Format  string `json:"format,omitempty"`
	Quality string `json:"quality,omitempty"`
	Title   string `json:"title,omitempty"`
}

// Download handles POST /api/v1/download and streams the artifact back
func (h *MediaHandler) Download(c *gin.Context) {
	var req DownloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "URL is required"})
		return
	}

	format, err := domain.ParseMediaFormat(req.Format)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mediaReq := domain.NewMediaRequestWithCap(req.URL, format, req.Quality, req.Title, h.filenameCap)

	artifact, err := h.orchestrator.Acquire(c.Request.Context(), mediaReq)
	if err != nil {
		writeClassifiedError(c, "Download failed", err)
		return
	}

	sink := &ginSink{c: c}
	if err := h.responder.Deliver(artifact, mediaReq.ContentType(), mediaReq.SuggestedFilename(), sink); err != nil {
		// Headers are already on the wire; all we can do is cut the stream.
		h.logger.Warn("Delivery aborted", zap.String("url", req.URL), zap.Error(err))
		c.Abort()
	}
}

// writeClassifiedError maps a DownloadError onto an HTTP status and a JSON
// body carrying the taxonomy kind and remediation hint.
func writeClassifiedError(c *gin.Context, message string, err error) {
	status := http.StatusInternalServerError
	body := gin.H{"error": message, "details": err.Error()}

	if de, ok := domain.AsDownloadError(err); ok {
		body["kind"] = string(de.Kind)
		body["details"] = de.Message
		if de.Hint != "" {
			body["hint"] = de.Hint
		}
		switch de.Kind {
		case domain.FailureUnsupportedPlatform:
			status = http.StatusBadRequest
		case domain.FailureAuthExpired, domain.FailureExtraction, domain.FailureArtifactNotFound:
			status = http.StatusBadGateway
		}
	}

	c.JSON(status, body)
}

// ginSink adapts a gin response to the responder's sink contract
type ginSink struct {
	c *gin.Context
}

func (s *ginSink) WriteMetadata(contentType, filename string, length int64) {
	s.c.Header("Content-Type", contentType)
	s.c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	s.c.Header("Content-Length", strconv.FormatInt(length, 10))
	s.c.Status(http.StatusOK)
}

func (s *ginSink) Write(p []byte) (int, error) {
	return s.c.Writer.Write(p)
}
