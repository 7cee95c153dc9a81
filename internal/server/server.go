// Package server exposes the transaction monitoring API over HTTP.
package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Raswanth-RM/Transaction-Monitoring/pkg/ingest"
	"github.com/Raswanth-RM/Transaction-Monitoring/pkg/model"
	"github.com/Raswanth-RM/Transaction-Monitoring/pkg/monitor"
	"github.com/Raswanth-RM/Transaction-Monitoring/pkg/storage"
)

// Server provides the upload, transaction, and alert API endpoints.
type Server struct {
	monitor       *monitor.Monitor
	engine        *gin.Engine
	logger        *slog.Logger
	maxUploadSize int64
}

// Option configures a Server.
type Option func(*Server)

// WithMaxUploadSize caps the size of uploaded transaction files.
func WithMaxUploadSize(n int64) Option {
	return func(s *Server) { s.maxUploadSize = n }
}

// New creates an API server around the given monitor.
func New(m *monitor.Monitor, logger *slog.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		monitor:       m,
		engine:        gin.New(),
		logger:        logger,
		maxUploadSize: 10 << 20, // 10 MB
	}
	for _, opt := range opts {
		opt(s)
	}

	s.engine.Use(gin.Recovery())
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.GET("/healthz", s.handleHealth)
	s.engine.POST("/upload", s.handleUpload)
	s.engine.GET("/transactions", s.handleListTransactions)
	s.engine.GET("/transactions/:customer_name", s.handleCustomerTransactions)
	s.engine.GET("/rule_breakers", s.handleRuleBreakers)
	s.engine.GET("/rule_breakers/:customer_name", s.handleRuleBreaker)
	s.engine.GET("/alerts", s.handleListAlerts)
	s.engine.GET("/alerts/:customer_name", s.handleGetAlert)
	s.engine.POST("/update_alert_status/:customer_name", s.handleUpdateStatus)
}

// Handler returns the HTTP handler for this server.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleUpload accepts a multipart CSV or XLSX file, parses it, and
// stores its transactions.
func (s *Server) handleUpload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxUploadSize)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file field"})
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	var txs []*model.Transaction
	switch ext {
	case ".csv":
		txs, err = ingest.ReadCSV(file)
	case ".xlsx":
		txs, err = ingest.ReadXLSX(file)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unsupported file type %q, expected .csv or .xlsx", ext)})
		return
	}
	if err != nil {
		s.uploadError(c, err)
		return
	}

	if err := s.monitor.IngestTransactions(c.Request.Context(), txs); err != nil {
		s.logger.Error("ingest upload", "file", header.Filename, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store transactions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "file processed successfully",
		"filename": header.Filename,
		"ingested": len(txs),
	})
}

func (s *Server) uploadError(c *gin.Context, err error) {
	if errors.Is(err, ingest.ErrInvalidData) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "uploaded file too large"})
		return
	}
	s.logger.Error("parse upload", "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to parse file"})
}

func (s *Server) handleListTransactions(c *gin.Context) {
	txs, err := s.monitor.ListTransactions(c.Request.Context())
	if err != nil {
		s.logger.Error("list transactions", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load transactions"})
		return
	}
	c.JSON(http.StatusOK, txs)
}

func (s *Server) handleCustomerTransactions(c *gin.Context) {
	name := c.Param("customer_name")
	txs, err := s.monitor.ListTransactionsByCustomer(c.Request.Context(), name)
	if err != nil {
		s.logger.Error("list customer transactions", "customer", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load transactions"})
		return
	}
	c.JSON(http.StatusOK, txs)
}

// handleRuleBreakers runs a monitoring pass and returns the resulting
// alerts. Reading rule breakers always reflects the latest data.
func (s *Server) handleRuleBreakers(c *gin.Context) {
	alerts, err := s.monitor.EvaluateAndReconcile(c.Request.Context())
	if err != nil {
		s.logger.Error("evaluate rule breakers", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to evaluate rules"})
		return
	}
	c.JSON(http.StatusOK, alerts)
}

func (s *Server) handleRuleBreaker(c *gin.Context) {
	name := c.Param("customer_name")
	alert, err := s.monitor.EvaluateAndReconcileFor(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, storage.ErrAlertNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("no alert for customer %q", name)})
			return
		}
		s.logger.Error("evaluate rule breaker", "customer", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to evaluate rules"})
		return
	}
	c.JSON(http.StatusOK, alert)
}

// Alerts routes recompute before reading, same as rule breakers. The
// difference is purely presentational: /alerts is the review surface
// where analysts manage statuses.
func (s *Server) handleListAlerts(c *gin.Context) {
	s.handleRuleBreakers(c)
}

func (s *Server) handleGetAlert(c *gin.Context) {
	s.handleRuleBreaker(c)
}

type statusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

func (s *Server) handleUpdateStatus(c *gin.Context) {
	name := c.Param("customer_name")

	var req statusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status field is required"})
		return
	}

	if err := s.monitor.UpdateStatus(c.Request.Context(), name, req.Status); err != nil {
		if errors.Is(err, storage.ErrAlertNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("no alert for customer %q", name)})
			return
		}
		s.logger.Error("update alert status", "customer", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("alert status for %s updated to %s", name, req.Status),
	})
}

func init() {
	// Quiet gin's debug banner unless explicitly enabled.
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
}
