package config

import "time"

// DefaultConfig returns the built-in configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			IP:   "0.0.0.0",
			Port: 8080,
		},
		Log: LogConfig{
			Level: "INFO",
			Dir:   "data/logs",
			File:  "server.log",
		},
		Web: WebConfig{
			Enabled:   true,
			StaticDir: "./web",
		},
		Verify: VerifyConfig{
			Image: ImageVerifyConfig{
				MaxFileSize:    10 * 1024 * 1024,
				MaxWidth:       8192,
				MaxHeight:      8192,
				MaxPixels:      64 * 1024 * 1024,
				AllowedFormats: []string{"jpeg", "jpg", "png", "webp"},
			},
			Video: VideoVerifyConfig{
				MaxFileSize:  50 * 1024 * 1024,
				MinDuration:  1 * time.Second,
				MaxDuration:  300 * time.Second,
				ProbeTimeout: 15 * time.Second,
			},
		},
		Cache: CacheConfig{
			Driver:   "memory",
			Capacity: 50,
			TTL:      time.Hour,
		},
		Storage: StorageConfig{
			Dir:    "./data",
			DBFile: "pralay.db",
		},
		FFmpeg: FFmpegConfig{
			FFmpegPath:  "ffmpeg",
			FFprobePath: "ffprobe",
		},
	}
}
