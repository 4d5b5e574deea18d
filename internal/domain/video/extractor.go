// Package video wraps the external ffmpeg/ffprobe binaries used to inspect
// uploaded videos and pull individual frames out of them for analysis.
package video

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"pralay-server-go/internal/domain/imaging"
	"pralay-server-go/internal/domain/media"
	"pralay-server-go/internal/platform/config"
	"pralay-server-go/internal/platform/errors"
	"pralay-server-go/internal/utils"
)

// Info describes a probed video stream.
type Info struct {
	Duration float64
	FPS      float64
	Width    int
	Height   int
	Codec    string
}

// Extractor probes containers and pulls single frames. The interface exists
// so verification can be tested without ffmpeg installed.
type Extractor interface {
	Probe(ctx context.Context, path string) (*Info, error)
	ExtractFrame(ctx context.Context, path string, atSeconds float64, maxWidth int) (*imaging.Frame, error)
}

// FFmpegExtractor shells out to ffprobe/ffmpeg.
type FFmpegExtractor struct {
	ffmpegPath  string
	ffprobePath string
	logger      *utils.Logger
}

// NewFFmpegExtractor builds an extractor from configured binary paths,
// falling back to PATH lookup.
func NewFFmpegExtractor(cfg config.FFmpegConfig, logger *utils.Logger) *FFmpegExtractor {
	ffmpegPath := cfg.FFmpegPath
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	ffprobePath := cfg.FFprobePath
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &FFmpegExtractor{
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
		logger:      logger,
	}
}

// IsAvailable reports whether the ffmpeg binary can be executed.
func (e *FFmpegExtractor) IsAvailable() bool {
	return exec.Command(e.ffmpegPath, "-version").Run() == nil
}

type ffprobeOutput struct {
	Streams []ffprobeStream `json:"streams"`
	Format  ffprobeFormat   `json:"format"`
}

type ffprobeStream struct {
	CodecName  string `json:"codec_name"`
	CodecType  string `json:"codec_type"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	RFrameRate string `json:"r_frame_rate"`
}

type ffprobeFormat struct {
	Duration string `json:"duration"`
}

// Probe runs ffprobe and parses duration, frame rate and dimensions.
func (e *FFmpegExtractor) Probe(ctx context.Context, path string) (*Info, error) {
	args := []string{
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	}

	output, err := exec.CommandContext(ctx, e.ffprobePath, args...).Output()
	if err != nil {
		return nil, errors.Wrap(errors.KindMedia, "video.Probe", "ffprobe failed", err)
	}

	var probe ffprobeOutput
	if err := json.Unmarshal(output, &probe); err != nil {
		return nil, errors.Wrap(errors.KindMedia, "video.Probe", "parse ffprobe output", err)
	}

	info := &Info{}
	if probe.Format.Duration != "" {
		if d, err := strconv.ParseFloat(probe.Format.Duration, 64); err == nil {
			info.Duration = d
		}
	}
	for _, stream := range probe.Streams {
		if stream.CodecType != "video" {
			continue
		}
		info.Width = stream.Width
		info.Height = stream.Height
		info.Codec = stream.CodecName
		if stream.RFrameRate != "" {
			info.FPS = parseFrameRate(stream.RFrameRate)
		}
		break
	}

	if info.Duration <= 0 {
		return nil, errors.New(errors.KindMedia, "video.Probe", "container has no readable duration")
	}
	return info, nil
}

// ExtractFrame seeks to atSeconds and decodes one frame, letting ffmpeg
// downscale to maxWidth on the way out.
func (e *FFmpegExtractor) ExtractFrame(ctx context.Context, path string, atSeconds float64, maxWidth int) (*imaging.Frame, error) {
	out, err := os.CreateTemp("", "pralay-frame-*.png")
	if err != nil {
		return nil, errors.Wrap(errors.KindMedia, "video.ExtractFrame", "create temp frame file", err)
	}
	outPath := out.Name()
	out.Close()
	defer os.Remove(outPath)

	scale := fmt.Sprintf("scale='min(%d,iw)':-2", maxWidth)
	args := []string{
		"-ss", strconv.FormatFloat(atSeconds, 'f', 3, 64),
		"-i", path,
		"-vframes", "1",
		"-vf", scale,
		"-y",
		outPath,
	}

	if err := exec.CommandContext(ctx, e.ffmpegPath, args...).Run(); err != nil {
		return nil, errors.Wrap(errors.KindMedia, "video.ExtractFrame",
			fmt.Sprintf("extract frame at %.2fs from %s", atSeconds, filepath.Base(path)), err)
	}

	raw, err := os.ReadFile(outPath)
	if err != nil || len(raw) == 0 {
		return nil, errors.New(errors.KindMedia, "video.ExtractFrame", "ffmpeg produced no frame")
	}
	return media.DecodeFrame(raw)
}

// parseFrameRate converts an ffprobe rational like "30000/1001" to a float.
func parseFrameRate(rate string) float64 {
	parts := strings.Split(rate, "/")
	if len(parts) != 2 {
		return 0
	}
	num, err1 := strconv.ParseFloat(parts[0], 64)
	den, err2 := strconv.ParseFloat(parts[1], 64)
	if err1 != nil || err2 != nil || den == 0 {
		return 0
	}
	return num / den
}
