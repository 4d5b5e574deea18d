// Package webapi serves the operator-facing API: archived reports,
// service health and host status.
package webapi

import (
	"context"
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"pralay-server-go/internal/domain/report"
	"pralay-server-go/internal/platform/config"
	"pralay-server-go/internal/platform/errors"
	"pralay-server-go/internal/utils"
)

// defaultListLimit bounds unpaginated report listings.
const defaultListLimit = 50

// Service is the operator API transport.
type Service struct {
	logger  *utils.Logger
	config  *config.Config
	reports report.Repository
	started time.Time
}

// NewService creates the operator API service.
func NewService(cfg *config.Config, logger *utils.Logger, reports report.Repository) (*Service, error) {
	if cfg == nil {
		return nil, errors.New(errors.KindConfig, "webapi.new", "config is required")
	}
	if logger == nil {
		return nil, errors.New(errors.KindConfig, "webapi.new", "logger is required")
	}
	if reports == nil {
		return nil, errors.New(errors.KindConfig, "webapi.new", "report repository is required")
	}

	return &Service{
		logger:  logger,
		config:  cfg,
		reports: reports,
		started: time.Now(),
	}, nil
}

// Register wires the operator routes onto the API group.
func (s *Service) Register(ctx context.Context, router *gin.RouterGroup) error {
	router.GET("/health", s.handleHealth)
	router.GET("/hazard-reports", s.handleReportsList)
	router.GET("/hazard-reports/stats", s.handleReportsStats)
	router.GET("/hazard-reports/:id", s.handleReportGet)
	router.GET("/system/status", s.handleSystemStatus)
	router.OPTIONS("/hazard-reports", s.handleOptions)

	s.logger.InfoTag("HTTP", "operator API routes registered")
	return nil
}

func (s *Service) handleOptions(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func (s *Service) handleHealth(c *gin.Context) {
	s.respondSuccess(c, http.StatusOK, gin.H{
		"uptime_seconds": int64(time.Since(s.started).Seconds()),
	}, "Verification service is running")
}

func (s *Service) handleReportsList(c *gin.Context) {
	filter := report.Filter{
		MediaType: c.Query("media_type"),
		Status:    c.Query("status"),
		Category:  c.Query("category"),
		Limit:     defaultListLimit,
	}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			s.respondError(c, http.StatusBadRequest, "invalid limit parameter")
			return
		}
		filter.Limit = limit
	}
	if raw := c.Query("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			s.respondError(c, http.StatusBadRequest, "invalid offset parameter")
			return
		}
		filter.Offset = offset
	}

	reports, err := s.reports.List(c.Request.Context(), filter)
	if err != nil {
		s.logger.ErrorTag("HTTP", "failed to list reports: %v", err)
		s.respondError(c, http.StatusInternalServerError, "Failed to list reports")
		return
	}

	s.respondSuccess(c, http.StatusOK, gin.H{
		"reports": reports,
		"count":   len(reports),
	}, "Reports retrieved successfully")
}

func (s *Service) handleReportGet(c *gin.Context) {
	rep, err := s.reports.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, http.StatusNotFound, "Report not found")
		return
	}

	s.respondSuccess(c, http.StatusOK, rep, "Report retrieved successfully")
}

func (s *Service) handleReportsStats(c *gin.Context) {
	stats, err := s.reports.CountByStatus(c.Request.Context())
	if err != nil {
		s.logger.ErrorTag("HTTP", "failed to aggregate reports: %v", err)
		s.respondError(c, http.StatusInternalServerError, "Failed to aggregate reports")
		return
	}

	var total int64
	for _, count := range stats {
		total += count
	}

	s.respondSuccess(c, http.StatusOK, gin.H{
		"by_status": stats,
		"total":     total,
	}, "Report statistics retrieved successfully")
}

func (s *Service) handleSystemStatus(c *gin.Context) {
	status := gin.H{
		"go_version":     runtime.Version(),
		"goroutines":     runtime.NumGoroutine(),
		"uptime_seconds": int64(time.Since(s.started).Seconds()),
	}

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		status["cpu_percent"] = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		status["memory_percent"] = vm.UsedPercent
		status["memory_total"] = vm.Total
		status["memory_used"] = vm.Used
	}

	s.respondSuccess(c, http.StatusOK, status, "System status retrieved successfully")
}

func (s *Service) respondSuccess(c *gin.Context, statusCode int, data interface{}, message string) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
		"message": message,
		"code":    statusCode,
	})
}

func (s *Service) respondError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"data":    gin.H{"error": message},
		"message": message,
		"code":    statusCode,
	})
}
