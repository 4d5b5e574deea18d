package config

import (
	"time"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
	Web     WebConfig     `yaml:"web"`
	Verify  VerifyConfig  `yaml:"verify"`
	Cache   CacheConfig   `yaml:"cache"`
	Storage StorageConfig `yaml:"storage"`
	FFmpeg  FFmpegConfig  `yaml:"ffmpeg"`
}

type ServerConfig struct {
	IP   string `yaml:"ip"`
	Port int    `yaml:"port"`
}

type LogConfig struct {
	Level string `yaml:"log_level"`
	Dir   string `yaml:"log_dir"`
	File  string `yaml:"log_file"`
}

type WebConfig struct {
	Enabled   bool   `yaml:"enabled"`
	StaticDir string `yaml:"static_dir"`
}

// VerifyConfig carries the media verification limits and gate thresholds.
type VerifyConfig struct {
	Image ImageVerifyConfig `yaml:"image"`
	Video VideoVerifyConfig `yaml:"video"`
}

type ImageVerifyConfig struct {
	MaxFileSize    int64    `yaml:"max_file_size"`
	MaxWidth       int      `yaml:"max_width"`
	MaxHeight      int      `yaml:"max_height"`
	MaxPixels      int64    `yaml:"max_pixels"`
	AllowedFormats []string `yaml:"allowed_formats"`
}

type VideoVerifyConfig struct {
	MaxFileSize  int64         `yaml:"max_file_size"`
	MinDuration  time.Duration `yaml:"min_duration"`
	MaxDuration  time.Duration `yaml:"max_duration"`
	ProbeTimeout time.Duration `yaml:"probe_timeout"`
}

// CacheConfig selects the video verdict cache driver.
type CacheConfig struct {
	Driver   string           `yaml:"driver"`
	Capacity int              `yaml:"capacity"`
	TTL      time.Duration    `yaml:"ttl"`
	Redis    RedisCacheConfig `yaml:"redis,omitempty"`
}

type RedisCacheConfig struct {
	Addr     string `yaml:"addr"`
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
	DB       int    `yaml:"db,omitempty"`
	Prefix   string `yaml:"prefix,omitempty"`
}

type StorageConfig struct {
	Dir    string `yaml:"dir"`
	DBFile string `yaml:"db_file"`
}

type FFmpegConfig struct {
	FFmpegPath  string `yaml:"ffmpeg_path"`
	FFprobePath string `yaml:"ffprobe_path"`
}
