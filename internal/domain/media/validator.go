package media

import (
	"bytes"
	"fmt"
	"image"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"pralay-server-go/internal/platform/config"
	"pralay-server-go/internal/utils"
)

// Validator performs layered checks against incoming image payloads before
// any pixels are decoded in full.
type Validator struct {
	config *config.ImageVerifyConfig
	logger *utils.Logger
}

// NewValidator constructs a validator from the image verification limits.
func NewValidator(cfg *config.ImageVerifyConfig, logger *utils.Logger) *Validator {
	if logger == nil {
		logger = utils.DefaultLogger
	}
	return &Validator{config: cfg, logger: logger}
}

var imageSignatures = map[string][]byte{
	"jpeg": {0xFF, 0xD8},
	"jpg":  {0xFF, 0xD8},
	"png":  {0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A},
	"gif":  {0x47, 0x49, 0x46, 0x38},
	"webp": {0x52, 0x49, 0x46, 0x46},
}

// ValidateBytes checks size, declared format, file signature and decoded
// dimensions of a raw image payload.
func (v *Validator) ValidateBytes(raw []byte, declaredFormat string) ValidationResult {
	result := ValidationResult{IsValid: false}

	if len(raw) == 0 {
		result.Error = fmt.Errorf("empty image payload")
		return result
	}

	if int64(len(raw)) > v.config.MaxFileSize {
		result.Error = fmt.Errorf(
			"file size exceeds limit: %d bytes (max %d bytes)",
			len(raw), v.config.MaxFileSize,
		)
		result.SecurityRisk = "file too large"
		v.logger.WarnTag("VERIFY", "oversized image: size=%d max=%d format=%s",
			len(raw), v.config.MaxFileSize, declaredFormat)
		return result
	}

	if declaredFormat != "" && !v.isFormatAllowed(declaredFormat) {
		result.Error = fmt.Errorf("unsupported format: %s", declaredFormat)
		result.SecurityRisk = "unapproved format"
		return result
	}

	decodeResult := v.validateDecoding(raw, declaredFormat)
	if !decodeResult.IsValid {
		if declaredFormat != "" && !v.matchesSignature(raw, declaredFormat) {
			header := fmt.Sprintf("%x", raw[:min(len(raw), 16)])
			v.logger.WarnTag("VERIFY", "file signature mismatch: declared=%s header=%s",
				declaredFormat, header)
		}
		return decodeResult
	}

	decodeResult.FileSize = int64(len(raw))
	return decodeResult
}

func (v *Validator) isFormatAllowed(format string) bool {
	allowed := v.config.AllowedFormats
	if len(allowed) == 0 {
		allowed = []string{"jpeg", "jpg", "png", "webp", "gif"}
	}
	format = strings.ToLower(format)
	for _, f := range allowed {
		if strings.ToLower(f) == format {
			return true
		}
	}
	return false
}

func (v *Validator) matchesSignature(raw []byte, format string) bool {
	signature, ok := imageSignatures[strings.ToLower(format)]
	if !ok {
		return true
	}
	if len(raw) < len(signature) {
		return false
	}
	return bytes.Equal(signature, raw[:len(signature)])
}

func (v *Validator) validateDecoding(raw []byte, format string) ValidationResult {
	result := ValidationResult{Format: format}

	cfg, actualFormat, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		result.Error = fmt.Errorf("decode image config: %w", err)
		result.SecurityRisk = "corrupted image data"
		return result
	}
	if actualFormat != "" {
		result.Format = actualFormat
	}

	if cfg.Width > v.config.MaxWidth || cfg.Height > v.config.MaxHeight {
		result.Error = fmt.Errorf("dimensions exceed limit: %dx%d (max %dx%d)",
			cfg.Width, cfg.Height, v.config.MaxWidth, v.config.MaxHeight)
		result.SecurityRisk = "dimensions too large"
		return result
	}

	totalPixels := int64(cfg.Width) * int64(cfg.Height)
	if totalPixels > v.config.MaxPixels {
		result.Error = fmt.Errorf("pixel count exceeds limit: %d (max %d)",
			totalPixels, v.config.MaxPixels)
		result.SecurityRisk = "pixel count too high"
		return result
	}

	result.IsValid = true
	result.Width = cfg.Width
	result.Height = cfg.Height
	return result
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
