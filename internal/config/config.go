package config

import (
	"fmt"
	"strings"
	"time"
)

// Config holds the complete application configuration
type Config struct {
	Version   string          `yaml:"version" json:"version"`
	Server    ServerConfig    `yaml:"server" json:"server"`
	Session   SessionConfig   `yaml:"session" json:"session"`
	Upload    UploadConfig    `yaml:"upload" json:"upload"`
	Chat      ChatConfig      `yaml:"chat" json:"chat"`
	Watch     WatchConfig     `yaml:"watch" json:"watch"`
	History   HistoryConfig   `yaml:"history" json:"history"`
	Positions PositionsConfig `yaml:"positions" json:"positions"`
	Output    OutputConfig    `yaml:"output" json:"output"`
}

// ServerConfig configures the TalentTracker backend connection
type ServerConfig struct {
	BaseURL        string        `yaml:"base_url" json:"base_url"`                 // backend base URL
	Timeout        time.Duration `yaml:"timeout" json:"timeout"`                   // HTTP client timeout
	APIKey         string        `yaml:"api_key" json:"api_key"`                   // static token (overridden by login)
	UserAgent      string        `yaml:"user_agent" json:"user_agent"`             // User-Agent header
	RequestsPerSec float64       `yaml:"requests_per_sec" json:"requests_per_sec"` // client-side throttle, <=0 disables
	Burst          int           `yaml:"burst" json:"burst"`                       // throttle burst size
}

// SessionConfig configures session token persistence
type SessionConfig struct {
	Path        string `yaml:"path" json:"path"`                 // session file location
	AutoRestore bool   `yaml:"auto_restore" json:"auto_restore"` // restore saved session on start
}

// UploadConfig configures accepted upload types and limits
type UploadConfig struct {
	ResumeTypes []string `yaml:"resume_types" json:"resume_types"`   // accepted resume extensions
	AudioTypes  []string `yaml:"audio_types" json:"audio_types"`     // accepted audio extensions
	MaxFileSize int64    `yaml:"max_file_size" json:"max_file_size"` // per-file cap in bytes
}

// ChatConfig configures the chat summarization form
type ChatConfig struct {
	MaxLength int `yaml:"max_length" json:"max_length"` // maximum draft length in characters
}

// WatchConfig configures the resume intake watcher
type WatchConfig struct {
	Directory string        `yaml:"directory" json:"directory"` // default intake directory
	JobID     string        `yaml:"job_id" json:"job_id"`       // job to match new resumes against
	Settle    time.Duration `yaml:"settle" json:"settle"`       // wait after a write before uploading
}

// HistoryConfig configures the local result archive
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Path    string `yaml:"path" json:"path"` // JSONL archive location
}

// PositionsConfig configures job position templates
type PositionsConfig struct {
	Directories    []string `yaml:"directories" json:"directories"`
	EnableDefaults bool     `yaml:"enable_defaults" json:"enable_defaults"`
}

// OutputConfig configures output formatting and display
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"` // terminal|json|markdown|csv
	ColorMode     string `yaml:"color_mode" json:"color_mode"`         // auto|always|never
	Verbose       bool   `yaml:"verbose" json:"verbose"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Server: ServerConfig{
			BaseURL:   "http://localhost:8080",
			Timeout:   60 * time.Second,
			UserAgent: "talenttrack-cli",
		},
		Session: SessionConfig{
			Path:        "~/.config/talenttrack/session.yaml",
			AutoRestore: true,
		},
		Upload: UploadConfig{
			ResumeTypes: []string{".pdf", ".doc", ".docx"},
			AudioTypes:  []string{".mp3", ".wav", ".m4a", ".ogg"},
			MaxFileSize: 25 * 1024 * 1024,
		},
		Chat: ChatConfig{
			MaxLength: 4000,
		},
		Watch: WatchConfig{
			Settle: 500 * time.Millisecond,
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    "~/.local/share/talenttrack/history.jsonl",
		},
		Positions: PositionsConfig{
			Directories:    []string{"./positions"},
			EnableDefaults: true,
		},
		Output: OutputConfig{
			DefaultFormat: "terminal",
			ColorMode:     "auto",
			Verbose:       false,
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateServerConfig(); err != nil {
		return err
	}
	if err := c.validateUploadConfig(); err != nil {
		return err
	}
	if err := c.validateChatConfig(); err != nil {
		return err
	}
	return c.validateOutputConfig()
}

// validateServerConfig validates backend connection settings
func (c *Config) validateServerConfig() error {
	if c.Server.BaseURL == "" {
		return fmt.Errorf("server base_url is required")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server timeout must be positive")
	}
	if c.Server.RequestsPerSec > 0 && c.Server.Burst < 1 {
		return fmt.Errorf("server burst must be at least 1 when rate limiting is enabled")
	}
	return nil
}

// validateUploadConfig validates upload type whitelists
func (c *Config) validateUploadConfig() error {
	if len(c.Upload.ResumeTypes) == 0 {
		return fmt.Errorf("upload resume_types must not be empty")
	}
	for _, ext := range append(append([]string{}, c.Upload.ResumeTypes...), c.Upload.AudioTypes...) {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("upload type %q must start with a dot", ext)
		}
	}
	if c.Upload.MaxFileSize < 1 {
		return fmt.Errorf("upload max_file_size must be greater than 0")
	}
	return nil
}

// validateChatConfig validates chat form limits
func (c *Config) validateChatConfig() error {
	if c.Chat.MaxLength < 1 {
		return fmt.Errorf("chat max_length must be greater than 0")
	}
	return nil
}

// validateOutputConfig validates output-related configuration
func (c *Config) validateOutputConfig() error {
	if c.Output.DefaultFormat != "" {
		validFormats := map[string]bool{
			"terminal": true,
			"json":     true,
			"markdown": true,
			"csv":      true,
		}
		if !validFormats[c.Output.DefaultFormat] {
			return fmt.Errorf("invalid output format: %s (must be one of: terminal, json, markdown, csv)", c.Output.DefaultFormat)
		}
	}
	if c.Output.ColorMode != "" {
		validColorModes := map[string]bool{
			"auto":   true,
			"always": true,
			"never":  true,
		}
		if !validColorModes[c.Output.ColorMode] {
			return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.Output.ColorMode)
		}
	}
	return nil
}

// SampleConfig returns a fully commented sample configuration file
func SampleConfig() string {
	return `# TalentTrack configuration
version: "1.0"

# Backend connection
server:
  base_url: "http://localhost:8080"
  timeout: 60s
  # api_key: ""            # static bearer token; login overrides this
  user_agent: "talenttrack-cli"
  requests_per_sec: 0      # client-side throttle, 0 disables
  burst: 1

# Session token persistence
session:
  path: "~/.config/talenttrack/session.yaml"
  auto_restore: true

# Accepted upload types
upload:
  resume_types: [".pdf", ".doc", ".docx"]
  audio_types: [".mp3", ".wav", ".m4a", ".ogg"]
  max_file_size: 26214400  # 25 MB

# Chat summarization form
chat:
  max_length: 4000

# Resume intake watcher
watch:
  directory: ""
  job_id: ""
  settle: 500ms

# Local result archive
history:
  enabled: true
  path: "~/.local/share/talenttrack/history.jsonl"

# Job position templates
positions:
  directories: ["./positions"]
  enable_defaults: true

# Output formatting
output:
  default_format: "terminal"  # terminal|json|markdown|csv
  color_mode: "auto"          # auto|always|never
  verbose: false
`
}

// MinimalSampleConfig returns a compact sample configuration
func MinimalSampleConfig() string {
	return `# TalentTrack configuration
version: "1.0"
server:
  base_url: "http://localhost:8080"
output:
  default_format: "terminal"
`
}
