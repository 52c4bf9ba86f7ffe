// Package config handles mshtool configuration loading and management.
package config

// Config holds all mshtool settings.
type Config struct {
	Parse    ParseConfig    `yaml:"parse"`
	Textures TexturesConfig `yaml:"textures"`
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ParseConfig holds parser settings.
type ParseConfig struct {
	Strict bool `yaml:"strict"` // fail on dangling references
}

// TexturesConfig holds texture lookup and export settings.
type TexturesConfig struct {
	SearchPaths   []string `yaml:"search_paths"`   // directories searched for .tga files
	ThumbnailSize int      `yaml:"thumbnail_size"` // longest edge of exported thumbnails, in pixels
	OutputDir     string   `yaml:"output_dir"`
}

// OutputConfig holds report formatting settings.
type OutputConfig struct {
	Format string `yaml:"format"` // text or yaml
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	Format  string `yaml:"format"` // console or json
	LogFile string `yaml:"log_file"`
}

// Output formats.
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Parse: ParseConfig{
			Strict: false,
		},
		Textures: TexturesConfig{
			SearchPaths:   []string{"."},
			ThumbnailSize: 128,
			OutputDir:     "thumbnails",
		},
		Output: OutputConfig{
			Format: FormatText,
		},
		Logging: LoggingConfig{
			Level:   "warn",
			Format:  "console",
			LogFile: "",
		},
	}
}
