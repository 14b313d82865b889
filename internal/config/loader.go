package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ConfigPaths defines the config file search paths in priority order
var ConfigPaths = []string{
	"./.talenttrack.yaml",               // Project-specific config (highest priority)
	"~/.config/talenttrack/config.yaml", // User config
	"/etc/talenttrack/config.yaml",      // System config (lowest priority)
}

// Loader handles configuration loading with priority merging
type Loader struct {
	configPaths []string
}

// NewLoader creates a new config loader
func NewLoader() *Loader {
	return &Loader{
		configPaths: ConfigPaths,
	}
}

// LoadConfig loads configuration from multiple sources with priority order:
// 1. Command line flags (handled by caller)
// 2. Environment variables (including a local .env file)
// 3. ./.talenttrack.yaml
// 4. ~/.config/talenttrack/config.yaml
// 5. /etc/talenttrack/config.yaml
// 6. Built-in defaults
func (l *Loader) LoadConfig(customPath string) (*Config, error) {
	// A missing .env file is fine; a present one feeds the env overrides below.
	_ = godotenv.Load()

	config := DefaultConfig()

	if customPath != "" {
		if err := validateConfigPath(customPath); err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		if err := l.loadFromFile(config, customPath); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", customPath, err)
		}
	} else {
		// Load from standard paths in reverse priority order (lowest to highest)
		paths := make([]string, len(l.configPaths))
		copy(paths, l.configPaths)
		for i := len(paths)/2 - 1; i >= 0; i-- {
			opp := len(paths) - 1 - i
			paths[i], paths[opp] = paths[opp], paths[i]
		}

		for _, path := range paths {
			expandedPath := expandPath(path)
			if fileExists(expandedPath) {
				if err := l.loadFromFile(config, expandedPath); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: Failed to load config from %s: %v\n", expandedPath, err)
				}
			}
		}
	}

	if err := l.applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// loadFromFile loads configuration from a YAML file and merges it with existing config
func (l *Loader) loadFromFile(config *Config, path string) error {
	// #nosec G304 - path is validated by validateConfigPath() before reaching here
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var fileConfig Config
	if err := yaml.Unmarshal(data, &fileConfig); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	mergeConfigs(config, &fileConfig)

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config
func (l *Loader) applyEnvOverrides(config *Config) error {
	envMappings := map[string]func(string) error{
		// Server Config
		"TALENTTRACK_SERVER_BASE_URL":   func(v string) error { config.Server.BaseURL = v; return nil },
		"TALENTTRACK_SERVER_TIMEOUT":    func(v string) error { return parseDuration(v, &config.Server.Timeout) },
		"TALENTTRACK_SERVER_API_KEY":    func(v string) error { config.Server.APIKey = v; return nil },
		"TALENTTRACK_SERVER_USER_AGENT": func(v string) error { config.Server.UserAgent = v; return nil },
		"TALENTTRACK_SERVER_RATE":       func(v string) error { return parseFloat(v, &config.Server.RequestsPerSec) },
		"TALENTTRACK_SERVER_BURST":      func(v string) error { return parseInt(v, &config.Server.Burst) },

		// Session Config
		"TALENTTRACK_SESSION_PATH":         func(v string) error { config.Session.Path = v; return nil },
		"TALENTTRACK_SESSION_AUTO_RESTORE": func(v string) error { return parseBool(v, &config.Session.AutoRestore) },

		// Upload Config
		"TALENTTRACK_UPLOAD_MAX_FILE_SIZE": func(v string) error { return parseInt64(v, &config.Upload.MaxFileSize) },

		// Chat Config
		"TALENTTRACK_CHAT_MAX_LENGTH": func(v string) error { return parseInt(v, &config.Chat.MaxLength) },

		// Watch Config
		"TALENTTRACK_WATCH_DIRECTORY": func(v string) error { config.Watch.Directory = v; return nil },
		"TALENTTRACK_WATCH_JOB_ID":    func(v string) error { config.Watch.JobID = v; return nil },
		"TALENTTRACK_WATCH_SETTLE":    func(v string) error { return parseDuration(v, &config.Watch.Settle) },

		// History Config
		"TALENTTRACK_HISTORY_ENABLED": func(v string) error { return parseBool(v, &config.History.Enabled) },
		"TALENTTRACK_HISTORY_PATH":    func(v string) error { config.History.Path = v; return nil },

		// Positions Config
		"TALENTTRACK_POSITIONS_ENABLE_DEFAULTS": func(v string) error { return parseBool(v, &config.Positions.EnableDefaults) },

		// Output Config
		"TALENTTRACK_OUTPUT_DEFAULT_FORMAT": func(v string) error { config.Output.DefaultFormat = v; return nil },
		"TALENTTRACK_OUTPUT_COLOR_MODE":     func(v string) error { config.Output.ColorMode = v; return nil },
		"TALENTTRACK_OUTPUT_VERBOSE":        func(v string) error { return parseBool(v, &config.Output.Verbose) },
	}

	for envVar, setter := range envMappings {
		if value := os.Getenv(envVar); value != "" {
			if err := setter(value); err != nil {
				return fmt.Errorf("invalid value for %s: %w", envVar, err)
			}
		}
	}

	// Comma-separated list overrides
	if dirs := os.Getenv("TALENTTRACK_POSITIONS_DIRECTORIES"); dirs != "" {
		config.Positions.Directories = splitList(dirs)
	}
	if types := os.Getenv("TALENTTRACK_UPLOAD_RESUME_TYPES"); types != "" {
		config.Upload.ResumeTypes = splitList(types)
	}
	if types := os.Getenv("TALENTTRACK_UPLOAD_AUDIO_TYPES"); types != "" {
		config.Upload.AudioTypes = splitList(types)
	}

	return nil
}

// GetConfigPaths returns the list of configuration file paths that will be searched
func GetConfigPaths() []string {
	paths := make([]string, 0, len(ConfigPaths))
	for _, path := range ConfigPaths {
		paths = append(paths, expandPath(path))
	}
	return paths
}

// FindConfigFile finds the first existing config file in the search paths
func FindConfigFile() (string, bool) {
	for _, path := range ConfigPaths {
		expandedPath := expandPath(path)
		if fileExists(expandedPath) {
			return expandedPath, true
		}
	}
	return "", false
}

// Helper functions

// validateConfigPath validates that a config path is safe to read
func validateConfigPath(path string) error {
	cleanPath := filepath.Clean(path)

	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("config file must have .yaml or .yml extension")
	}

	absPath, err := filepath.Abs(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	if strings.HasPrefix(absPath, "/etc/passwd") ||
		strings.HasPrefix(absPath, "/etc/shadow") ||
		strings.HasPrefix(absPath, "/proc/") ||
		strings.HasPrefix(absPath, "/sys/") {
		return fmt.Errorf("access to system files not allowed")
	}

	return nil
}

// ExpandPath expands ~ to the user's home directory
func ExpandPath(path string) string {
	return expandPath(path)
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	return parts
}

// mergeConfigs merges source config into destination config.
// Only non-zero values from source overwrite destination.
func mergeConfigs(dst, src *Config) {
	if src.Version != "" {
		dst.Version = src.Version
	}

	mergeServerConfig(&dst.Server, &src.Server)
	mergeSessionConfig(&dst.Session, &src.Session)
	mergeUploadConfig(&dst.Upload, &src.Upload)
	mergeChatConfig(&dst.Chat, &src.Chat)
	mergeWatchConfig(&dst.Watch, &src.Watch)
	mergeHistoryConfig(&dst.History, &src.History)
	mergePositionsConfig(&dst.Positions, &src.Positions)
	mergeOutputConfig(&dst.Output, &src.Output)
}

func mergeServerConfig(dst, src *ServerConfig) {
	if src.BaseURL != "" {
		dst.BaseURL = src.BaseURL
	}
	if src.Timeout != 0 {
		dst.Timeout = src.Timeout
	}
	if src.APIKey != "" {
		dst.APIKey = src.APIKey
	}
	if src.UserAgent != "" {
		dst.UserAgent = src.UserAgent
	}
	if src.RequestsPerSec != 0 {
		dst.RequestsPerSec = src.RequestsPerSec
	}
	if src.Burst != 0 {
		dst.Burst = src.Burst
	}
}

func mergeSessionConfig(dst, src *SessionConfig) {
	if src.Path != "" {
		dst.Path = src.Path
	}
	mergeIfSet(&dst.AutoRestore, src.AutoRestore)
}

func mergeUploadConfig(dst, src *UploadConfig) {
	if len(src.ResumeTypes) > 0 {
		dst.ResumeTypes = src.ResumeTypes
	}
	if len(src.AudioTypes) > 0 {
		dst.AudioTypes = src.AudioTypes
	}
	if src.MaxFileSize != 0 {
		dst.MaxFileSize = src.MaxFileSize
	}
}

func mergeChatConfig(dst, src *ChatConfig) {
	if src.MaxLength != 0 {
		dst.MaxLength = src.MaxLength
	}
}

func mergeWatchConfig(dst, src *WatchConfig) {
	if src.Directory != "" {
		dst.Directory = src.Directory
	}
	if src.JobID != "" {
		dst.JobID = src.JobID
	}
	if src.Settle != 0 {
		dst.Settle = src.Settle
	}
}

func mergeHistoryConfig(dst, src *HistoryConfig) {
	mergeIfSet(&dst.Enabled, src.Enabled)
	if src.Path != "" {
		dst.Path = src.Path
	}
}

func mergePositionsConfig(dst, src *PositionsConfig) {
	if len(src.Directories) > 0 {
		dst.Directories = src.Directories
	}
	mergeIfSet(&dst.EnableDefaults, src.EnableDefaults)
}

func mergeOutputConfig(dst, src *OutputConfig) {
	if src.DefaultFormat != "" {
		dst.DefaultFormat = src.DefaultFormat
	}
	if src.ColorMode != "" {
		dst.ColorMode = src.ColorMode
	}
	mergeIfSet(&dst.Verbose, src.Verbose)
}

// mergeIfSet only merges boolean values if they appear to be explicitly set.
// This is a simple heuristic, but works for most cases.
func mergeIfSet(dst *bool, src bool) {
	*dst = src
}

// Type conversion helpers

func parseInt(s string, dst *int) error {
	val, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseInt64(s string, dst *int64) error {
	val, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseFloat(s string, dst *float64) error {
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseBool(s string, dst *bool) error {
	val, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseDuration(s string, dst *time.Duration) error {
	val, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}
