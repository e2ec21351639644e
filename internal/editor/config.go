package editor

import (
	"os"
	"strconv"

	"github.com/samdwyer/wallsandholes/internal/tilemap"
)

// Environment variables read by ConfigFromEnv. A .env file in the working
// directory is loaded into the environment by main.
const (
	envWidth    = "WALLSANDHOLES_MAP_WIDTH"
	envHeight   = "WALLSANDHOLES_MAP_HEIGHT"
	envPalette  = "WALLSANDHOLES_PALETTE"
	envSetDir   = "WALLSANDHOLES_SET_DIR"
	envLogLevel = "WALLSANDHOLES_LOG_LEVEL"
	envLogFile  = "WALLSANDHOLES_LOG_FILE"
)

// Config holds editor configuration options.
type Config struct {
	// MapPath is the map document to open and save. If the file does not
	// exist a new map of Width×Height is created.
	MapPath string
	Width   int
	Height  int

	// PalettePath is an optional template set file used as the palette.
	// Empty means the built-in palette.
	PalettePath string

	// SetDir is where template sets without a file are written on save.
	SetDir string

	LogLevel string
	// LogFile receives log output while the editor owns the terminal.
	LogFile string
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		MapPath:  "map.json",
		Width:    tilemap.DefaultWidth,
		Height:   tilemap.DefaultHeight,
		SetDir:   "sets",
		LogLevel: "info",
		LogFile:  "wallsandholes.log",
	}
}

// ConfigFromEnv returns DefaultConfig overridden by WALLSANDHOLES_* variables.
// Sizes that do not parse as positive integers are ignored.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v, ok := positiveEnv(envWidth); ok {
		cfg.Width = v
	}
	if v, ok := positiveEnv(envHeight); ok {
		cfg.Height = v
	}
	if v := os.Getenv(envPalette); v != "" {
		cfg.PalettePath = v
	}
	if v := os.Getenv(envSetDir); v != "" {
		cfg.SetDir = v
	}
	if v := os.Getenv(envLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(envLogFile); v != "" {
		cfg.LogFile = v
	}
	return cfg
}

func positiveEnv(key string) (int, bool) {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
