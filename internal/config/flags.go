package config

import (
	"flag"
	"strings"
)

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagStrict   = flag.Bool("strict", false, "Fail on dangling references")
	flagTextures = flag.String("textures", "", "Comma-separated texture search paths")
	flagFormat   = flag.String("format", "", "Report format (text or yaml)")
	flagLogFile  = flag.String("log", "", "Write logs to this file")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the arguments left after the global flags.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagStrict {
		cfg.Parse.Strict = true
	}
	if *flagTextures != "" {
		cfg.Textures.SearchPaths = splitList(*flagTextures)
	}
	if *flagFormat != "" {
		cfg.Output.Format = *flagFormat
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
