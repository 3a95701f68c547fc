package domain

import "time"

// Config represents the application configuration
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Download     DownloadConfig     `mapstructure:"download"`
	Engines      EngineConfig       `mapstructure:"engines"`
	Credentials  CredentialConfig   `mapstructure:"credentials"`
	Notification NotificationConfig `mapstructure:"notification"`
	Logging      LoggingConfig      `mapstructure:"logging"`
}

// ServerConfig contains server-related configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// DownloadConfig contains acquisition-related configuration
type DownloadConfig struct {
	TempDir           string        `mapstructure:"temp_dir"`
	FilenameMaxLength int           `mapstructure:"filename_max_length"`
	StepTimeout       time.Duration `mapstructure:"step_timeout"`
	MaxOutputBytes    int64         `mapstructure:"max_output_bytes"`
	CleanupGrace      time.Duration `mapstructure:"cleanup_grace"`
}

// EngineConfig contains extraction engine configuration
type EngineConfig struct {
	YTDLPBinary  string `mapstructure:"ytdlp_binary"`
	FFmpegBinary string `mapstructure:"ffmpeg_binary"`
	UserAgent    string `mapstructure:"user_agent"`

	// InsecureTLS disables strict certificate verification on engine
	// calls. Only for deployments behind self-signed intermediaries.
	InsecureTLS bool `mapstructure:"insecure_tls"`

	// Overrides maps a platform name to an engine identifier, replacing
	// the static platform->engine table for that platform.
	Overrides map[string]string `mapstructure:"overrides"`
}

// CredentialConfig references the auth artifacts loaded at startup. The
// process only reads these; acquiring or rotating them is out of scope.
type CredentialConfig struct {
	CookieFiles       map[string]string `mapstructure:"cookie_files"` // per platform
	GenericCookieFile string            `mapstructure:"generic_cookie_file"`
	POToken           string            `mapstructure:"po_token"`
	VisitorData       string            `mapstructure:"visitor_data"`
}

// NotificationConfig contains desktop notification configuration
type NotificationConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Method  string `mapstructure:"method"` // osascript, notify-send
}

// LoggingConfig contains logging-related configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, or file path
}

const chromeUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "localhost",
			Port: 8080,
		},
		Download: DownloadConfig{
			TempDir:           "$HOME/.vidgrab/temp",
			FilenameMaxLength: DefaultFilenameMaxLength,
			StepTimeout:       10 * time.Minute,
			MaxOutputBytes:    1 << 20,
			CleanupGrace:      5 * time.Second,
		},
		Engines: EngineConfig{
			YTDLPBinary:  "yt-dlp",
			FFmpegBinary: "ffmpeg",
			UserAgent:    chromeUserAgent,
			InsecureTLS:  false,
		},
		Credentials: CredentialConfig{
			CookieFiles: map[string]string{},
		},
		Notification: NotificationConfig{
			Enabled: false,
			Method:  "notify-send",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			OutputPath: "stdout",
		},
	}
}
