package verification

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"pralay-server-go/internal/domain/analysis"
	"pralay-server-go/internal/domain/verification/model"
	"pralay-server-go/internal/platform/config"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// solidPNG is a uniform image, far from any water or hazard signal.
func solidPNG(t *testing.T, c color.NRGBA) []byte {
	img := image.NewNRGBA(image.Rect(0, 0, 224, 224))
	for y := 0; y < 224; y++ {
		for x := 0; x < 224; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return encodePNG(t, img)
}

// stormScenePNG mixes saturated blue water with bright foam in small
// blocks, yielding strong water coverage, heavy texture and edge chaos.
func stormScenePNG(t *testing.T) []byte {
	img := image.NewNRGBA(image.Rect(0, 0, 224, 224))
	blue := color.NRGBA{R: 0, G: 60, B: 255, A: 255}
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	for y := 0; y < 224; y++ {
		for x := 0; x < 224; x++ {
			if (x/4+y/4)%2 == 0 {
				img.SetNRGBA(x, y, blue)
			} else {
				img.SetNRGBA(x, y, white)
			}
		}
	}
	return encodePNG(t, img)
}

func newImageService() *ImageService {
	cfg := config.DefaultConfig().Verify.Image
	return NewImageService(&cfg, nil)
}

func TestImageVerifyInvalidData(t *testing.T) {
	svc := newImageService()

	verdict := svc.Verify(context.Background(), ImageRequest{
		Data:     []byte("not an image at all"),
		Filename: "report.png",
	})

	if verdict.Status != model.StatusError {
		t.Fatalf("status = %s, want error", verdict.Status)
	}
	if verdict.Message != "Failed to process image" {
		t.Errorf("message = %q", verdict.Message)
	}
	if verdict.Confidence != 0 {
		t.Errorf("confidence = %v, want 0", verdict.Confidence)
	}
}

func TestImageVerifyNoWater(t *testing.T) {
	svc := newImageService()

	verdict := svc.Verify(context.Background(), ImageRequest{
		Data:     solidPNG(t, color.NRGBA{R: 0, G: 0, B: 0, A: 255}),
		Filename: "report.png",
	})

	if verdict.Status != model.StatusFailed {
		t.Fatalf("status = %s, want failed", verdict.Status)
	}
	if !strings.Contains(verdict.Message, "water content") {
		t.Errorf("message = %q, want water content rejection", verdict.Message)
	}
	if verdict.AIDetection == nil || !verdict.AIDetection.IsRealImage {
		t.Error("flat dark image should still count as real")
	}
}

func TestImageVerifyAIFilename(t *testing.T) {
	svc := newImageService()

	verdict := svc.Verify(context.Background(), ImageRequest{
		Data:     solidPNG(t, color.NRGBA{R: 0, G: 0, B: 0, A: 255}),
		Filename: "ai_generated_flood.png",
	})

	if verdict.Status != model.StatusFailed {
		t.Fatalf("status = %s, want failed", verdict.Status)
	}
	if !strings.Contains(verdict.Message, "AI-generated") {
		t.Errorf("message = %q, want AI rejection", verdict.Message)
	}
	if verdict.AIDetection == nil || verdict.AIDetection.IsRealImage {
		t.Error("expected image to be flagged as AI-generated")
	}
}

func TestImageVerifySuccess(t *testing.T) {
	svc := newImageService()

	verdict := svc.Verify(context.Background(), ImageRequest{
		Data:     stormScenePNG(t),
		Category: analysis.CategoryTsunami,
		Filename: "wave.png",
	})

	if verdict.Status != model.StatusVerified {
		t.Fatalf("status = %s (%s), want verified", verdict.Status, verdict.Message)
	}
	if verdict.Message != "Image verified successfully" {
		t.Errorf("message = %q", verdict.Message)
	}
	if verdict.Confidence < 0.4 {
		t.Errorf("confidence = %v, want >= 0.4", verdict.Confidence)
	}
	if verdict.HazardDetection == nil || verdict.HazardDetection.DetectedType != analysis.CategoryTsunami {
		t.Errorf("detected = %+v, want tsunami", verdict.HazardDetection)
	}
}

func TestImageVerifyCategoryMismatch(t *testing.T) {
	svc := newImageService()

	verdict := svc.Verify(context.Background(), ImageRequest{
		Data:     stormScenePNG(t),
		Category: analysis.CategoryWildlife,
		Filename: "wave.png",
	})

	if verdict.Status != model.StatusFailed {
		t.Fatalf("status = %s, want failed", verdict.Status)
	}
	if !strings.Contains(verdict.Message, "does not match") {
		t.Errorf("message = %q, want category mismatch", verdict.Message)
	}
}

func TestImageVerifyTimestampSet(t *testing.T) {
	svc := newImageService()

	verdict := svc.Verify(context.Background(), ImageRequest{
		Data:     solidPNG(t, color.NRGBA{R: 0, G: 0, B: 0, A: 255}),
		Filename: "report.png",
	})

	if verdict.Timestamp == "" {
		t.Error("timestamp not set")
	}
}
