package media

import (
	"bytes"
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"

	"pralay-server-go/internal/domain/imaging"
	"pralay-server-go/internal/platform/errors"
)

// Image-path analysis frames are normalized to a fixed grid so the metric
// thresholds see comparable inputs regardless of upload resolution.
const (
	AnalysisWidth  = 224
	AnalysisHeight = 224
)

// Decoded is the normalized analysis frame plus the pre-resize source
// dimensions, which some heuristics inspect.
type Decoded struct {
	Frame        *imaging.Frame
	SourceWidth  int
	SourceHeight int
	Format       string
}

// DecodeAndNormalize decodes an encoded image and scales it to the fixed
// analysis grid.
func DecodeAndNormalize(raw []byte) (*Decoded, error) {
	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, errors.Wrap(errors.KindMedia, "media.DecodeAndNormalize",
			"decode image", err)
	}

	bounds := img.Bounds()
	scaled := image.NewRGBA(image.Rect(0, 0, AnalysisWidth, AnalysisHeight))
	xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, bounds, xdraw.Over, nil)

	return &Decoded{
		Frame:        imaging.FromImage(scaled),
		SourceWidth:  bounds.Dx(),
		SourceHeight: bounds.Dy(),
		Format:       format,
	}, nil
}

// DecodeFrame decodes an encoded frame without resizing. Video frames arrive
// already scaled by the extractor.
func DecodeFrame(raw []byte) (*imaging.Frame, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, errors.Wrap(errors.KindMedia, "media.DecodeFrame",
			"decode frame", err)
	}
	return imaging.FromImage(img), nil
}

// ScaleToWidth downscales a frame so its width does not exceed maxWidth,
// preserving aspect ratio. Frames at or below the limit pass through.
func ScaleToWidth(f *imaging.Frame, maxWidth int) (*imaging.Frame, error) {
	if f == nil {
		return nil, fmt.Errorf("nil frame")
	}
	if maxWidth <= 0 || f.W <= maxWidth {
		return f, nil
	}

	scale := float64(maxWidth) / float64(f.W)
	newH := int(float64(f.H) * scale)
	if newH < 1 {
		newH = 1
	}

	src := image.NewRGBA(image.Rect(0, 0, f.W, f.H))
	for y := 0; y < f.H; y++ {
		for x := 0; x < f.W; x++ {
			r, g, b := f.RGBAt(x, y)
			i := src.PixOffset(x, y)
			src.Pix[i] = r
			src.Pix[i+1] = g
			src.Pix[i+2] = b
			src.Pix[i+3] = 255
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, newH))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)
	return imaging.FromImage(dst), nil
}
