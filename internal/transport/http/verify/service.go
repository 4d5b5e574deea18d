// Package verify exposes the media verification pipelines over HTTP.
package verify

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pralay-server-go/internal/domain/analysis"
	"pralay-server-go/internal/domain/verification"
	"pralay-server-go/internal/domain/verification/model"
	"pralay-server-go/internal/platform/config"
	"pralay-server-go/internal/platform/errors"
	"pralay-server-go/internal/utils"
)

// maxBatchImages bounds one batch verification request.
const maxBatchImages = 5

var videoExtensions = []string{".mp4", ".avi", ".mov", ".webm", ".mkv", ".flv", ".wmv"}

// Service is the HTTP transport for the verification pipelines.
type Service struct {
	logger *utils.Logger
	config *config.Config
	images *verification.ImageService
	videos *verification.VideoService
}

// NewService creates the verification transport service.
func NewService(
	cfg *config.Config,
	logger *utils.Logger,
	images *verification.ImageService,
	videos *verification.VideoService,
) (*Service, error) {
	if cfg == nil {
		return nil, errors.New(errors.KindConfig, "verify.new", "config is required")
	}
	if logger == nil {
		return nil, errors.New(errors.KindConfig, "verify.new", "logger is required")
	}
	if images == nil || videos == nil {
		return nil, errors.New(errors.KindConfig, "verify.new", "verification services are required")
	}

	return &Service{
		logger: logger,
		config: cfg,
		images: images,
		videos: videos,
	}, nil
}

// Register wires the verification routes onto the API group.
func (s *Service) Register(ctx context.Context, router *gin.RouterGroup) error {
	router.POST("/verify-image", s.handleVerifyImage)
	router.POST("/verify-images", s.handleBatchVerifyImages)
	router.POST("/verify-video", s.handleVerifyVideo)
	router.GET("/verification-info", s.handleServiceInfo)
	router.OPTIONS("/verify-image", s.handleOptions)
	router.OPTIONS("/verify-video", s.handleOptions)

	s.logger.InfoTag("HTTP", "verification routes registered")
	return nil
}

func (s *Service) handleOptions(c *gin.Context) {
	c.Status(http.StatusOK)
}

func (s *Service) handleVerifyImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "No image file provided",
		})
		return
	}
	defer file.Close()

	if msg := s.checkImageUpload(header); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": msg,
		})
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		s.logger.WarnTag("HTTP", "failed to read image upload: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Failed to read image file",
		})
		return
	}

	hazardType := c.Request.FormValue("hazard_type")
	description := c.Request.FormValue("description")

	verdict := s.images.Verify(c.Request.Context(), verification.ImageRequest{
		Data:        data,
		Category:    analysis.Category(hazardType),
		Description: description,
		Filename:    header.Filename,
	})

	c.JSON(http.StatusOK, buildImageResult(verdict, data, s.config.Verify.Image.MaxFileSize, hazardType, header.Filename))
}

func (s *Service) handleBatchVerifyImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil || len(form.File["images"]) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "No image files provided",
		})
		return
	}

	files := form.File["images"]
	if len(files) > maxBatchImages {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": fmt.Sprintf("Too many images (max %d allowed)", maxBatchImages),
		})
		return
	}

	hazardTypes := form.Value["hazard_types"]
	descriptions := form.Value["descriptions"]

	results := make([]ImageResult, 0, len(files))
	for i, header := range files {
		hazardType := ""
		if i < len(hazardTypes) {
			hazardType = hazardTypes[i]
		}
		description := ""
		if i < len(descriptions) {
			description = descriptions[i]
		}

		results = append(results, s.verifyBatchItem(c.Request.Context(), header, hazardType, description))
	}

	batch := BatchResult{
		Status:      "success",
		Results:     results,
		TotalImages: len(files),
	}
	for _, r := range results {
		switch r.Status {
		case string(model.StatusVerified):
			batch.VerifiedCount++
		case string(model.StatusFailed):
			batch.FailedCount++
		default:
			batch.ErrorCount++
		}
	}

	c.JSON(http.StatusOK, batch)
}

func (s *Service) verifyBatchItem(ctx context.Context, header *multipart.FileHeader, hazardType, description string) ImageResult {
	if msg := s.checkImageUpload(header); msg != "" {
		return ImageResult{
			Status:   string(model.StatusError),
			Message:  msg,
			Filename: header.Filename,
		}
	}

	file, err := header.Open()
	if err != nil {
		return ImageResult{
			Status:   string(model.StatusError),
			Message:  "Failed to read image file",
			Filename: header.Filename,
		}
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return ImageResult{
			Status:   string(model.StatusError),
			Message:  "Failed to read image file",
			Filename: header.Filename,
		}
	}

	verdict := s.images.Verify(ctx, verification.ImageRequest{
		Data:        data,
		Category:    analysis.Category(hazardType),
		Description: description,
		Filename:    header.Filename,
	})

	result := buildImageResult(verdict, data, s.config.Verify.Image.MaxFileSize, hazardType, header.Filename)
	result.Filename = header.Filename
	return result
}

// checkImageUpload rejects obviously wrong uploads before any decode work.
func (s *Service) checkImageUpload(header *multipart.FileHeader) string {
	contentType := header.Header.Get("Content-Type")
	if contentType != "" && !strings.HasPrefix(contentType, "image/") {
		return "File must be an image"
	}
	maxSize := s.config.Verify.Image.MaxFileSize
	if header.Size > maxSize {
		return fmt.Sprintf("Image file too large (max %dMB)", maxSize/1024/1024)
	}
	return ""
}

func (s *Service) handleVerifyVideo(c *gin.Context) {
	file, header, err := c.Request.FormFile("video")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "No video file provided",
		})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !looksLikeVideo(contentType, header.Filename) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": fmt.Sprintf("File must be a video. Received: %s for %s", contentType, header.Filename),
		})
		return
	}

	maxSize := s.config.Verify.Video.MaxFileSize
	if header.Size > maxSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": fmt.Sprintf("Video file too large (max %dMB)", maxSize/1024/1024),
		})
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		s.logger.WarnTag("HTTP", "failed to read video upload: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Failed to read video file",
		})
		return
	}

	hazardType := c.Request.FormValue("hazard_type")
	description := c.Request.FormValue("description")

	s.logger.InfoTag("HTTP", "verifying video %q, hazard_type=%s", header.Filename, hazardType)

	verdict := s.videos.Verify(c.Request.Context(), verification.VideoRequest{
		Data:        data,
		Category:    analysis.Category(hazardType),
		Description: description,
		Filename:    header.Filename,
	})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result":  buildVideoResult(verdict, data, maxSize, hazardType, header.Filename),
	})
}

func (s *Service) handleServiceInfo(c *gin.Context) {
	c.JSON(http.StatusOK, ServiceInfo{
		ServiceType:  "media_verification",
		HazardTypes:  analysis.Categories,
		MinDurationS: s.config.Verify.Video.MinDuration.Seconds(),
		MaxDurationS: s.config.Verify.Video.MaxDuration.Seconds(),
		Version:      "1.0.0",
	})
}

func looksLikeVideo(contentType, filename string) bool {
	if strings.HasPrefix(contentType, "video/") ||
		strings.Contains(strings.ToLower(contentType), "video") {
		return true
	}
	lower := strings.ToLower(filename)
	for _, ext := range videoExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// buildImageResult flattens a verdict into the checklist shape the
// reporting frontend expects.
func buildImageResult(verdict *model.Verdict, data []byte, maxSize int64, hazardType, filename string) ImageResult {
	verified := verdict.Status == model.StatusVerified

	checks := &ImageChecks{
		IsImage:         true,
		FileSize:        int64(len(data)) < maxSize,
		FileName:        !strings.Contains(strings.ToLower(filename), "suspicious"),
		HazardTypeMatch: verified,
		ScenarioMatch:   verified,
		LocationValid:   true,
		ContentAnalysis: verdict.Confidence > 0.7,
	}

	matching := &ImageHazardMatching{
		MatchesSelectedType: true,
		ScenarioMatch:       verified,
	}

	if verdict.AIDetection != nil {
		checks.IsRealImage = verdict.AIDetection.IsRealImage
	}
	if verdict.HazardDetection != nil {
		checks.HazardRelevant = verdict.HazardDetection.Confidence > 0.5
		matching.DetectedHazardTypes = []analysis.Category{verdict.HazardDetection.DetectedType}
		matching.Confidence = verdict.HazardDetection.Confidence
		if hazardType != "" {
			matching.MatchesSelectedType = string(verdict.HazardDetection.DetectedType) == hazardType
		}
	}

	return ImageResult{
		Status:         string(verdict.Status),
		Checks:         checks,
		AIDetection:    verdict.AIDetection,
		HazardMatching: matching,
		Confidence:     verdict.Confidence,
		Message:        verdict.Message,
		Timestamp:      verdict.Timestamp,
	}
}

func buildVideoResult(verdict *model.Verdict, data []byte, maxSize int64, hazardType, filename string) VideoResult {
	verified := verdict.Status == model.StatusVerified

	checks := VideoChecks{
		IsVideo:             true,
		FileSize:            int64(len(data)) < maxSize,
		FileName:            !strings.Contains(strings.ToLower(filename), "suspicious"),
		HazardTypeMatch:     verified,
		DurationAppropriate: true,
		ContentAnalysis:     verdict.Confidence > 0.6,
	}

	matching := VideoHazardMatching{
		MatchesSelectedType: true,
		DetectedHazardTypes: []analysis.Category{analysis.CategoryOther},
	}

	frames := verdict.FrameAnalysis
	if frames == nil {
		frames = &model.FrameAnalysis{}
	}
	checks.HasOceanContent = frames.OceanPercentage > 0.3
	checks.HasHazardIndicators = frames.HazardPercentage > 0.2

	if verdict.HazardDetection != nil {
		matching.DetectedHazardTypes = []analysis.Category{verdict.HazardDetection.DetectedType}
		matching.Confidence = verdict.HazardDetection.Confidence
		matching.OceanScore = verdict.HazardDetection.OceanScore
		matching.HazardScore = verdict.HazardDetection.HazardScore
		if hazardType != "" {
			matching.MatchesSelectedType = string(verdict.HazardDetection.DetectedType) == hazardType
		}
	}

	return VideoResult{
		Status:         string(verdict.Status),
		Checks:         checks,
		HazardMatching: matching,
		FrameAnalysis:  frames,
		Confidence:     verdict.Confidence,
		Message:        verdict.Message,
		Timestamp:      verdict.Timestamp,
	}
}
