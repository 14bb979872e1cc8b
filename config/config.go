package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Config holds runtime configuration for both editing tools and the app shell.
// Fields may be loaded from a JSON file and overridden by command-line flags.
type Config struct {
	Debug    bool `json:"debug"`
	DarkMode bool `json:"dark_mode"`

	// Crop tool
	CanvasSize        int `json:"canvas_size"`
	CloseRadius       int `json:"close_radius"`
	CloseMarkerRadius int `json:"close_marker_radius"`
	PreviewMaxSize    int `json:"preview_max_size"`
	RotateStep        int `json:"rotate_step"`

	// Export
	JPEGQuality int    `json:"jpeg_quality"`
	ExportDir   string `json:"export_dir"`
	AskSavePath bool   `json:"ask_save_path"`
	LastOpenDir string `json:"last_open_dir"`

	// Update loop / caching
	TickMS           int `json:"tick_ms"`
	PreviewCacheSize int `json:"preview_cache_size"`
}

const (
	minCanvasSize = 64
	maxCanvasSize = 1024
)

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:             false,
		DarkMode:          false,
		CanvasSize:        1024,
		CloseRadius:       20,
		CloseMarkerRadius: 10,
		PreviewMaxSize:    300,
		RotateStep:        90,
		JPEGQuality:       100,
		ExportDir:         defaultExportDir(),
		AskSavePath:       true,
		TickMS:            50,
		PreviewCacheSize:  64,
	}
}

func defaultExportDir() string {
	if xdg.UserDirs.Download != "" {
		return xdg.UserDirs.Download
	}
	return xdg.Home
}

// DefaultPath is the per-user location of the config file.
func DefaultPath() (string, error) {
	return xdg.ConfigFile(filepath.Join("pixel-crop-go", "config.json"))
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	if c.CanvasSize < minCanvasSize || c.CanvasSize > maxCanvasSize {
		c.CanvasSize = maxCanvasSize
	}
	if c.CloseRadius <= 0 {
		c.CloseRadius = 20
	}
	if c.CloseMarkerRadius <= 0 {
		c.CloseMarkerRadius = 10
	}
	if c.PreviewMaxSize <= 0 || c.PreviewMaxSize > c.CanvasSize {
		c.PreviewMaxSize = min(300, c.CanvasSize)
	}
	if c.RotateStep <= 0 || c.RotateStep >= 360 {
		c.RotateStep = 90
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		c.JPEGQuality = 100
	}
	if c.ExportDir == "" {
		c.ExportDir = defaultExportDir()
	}
	if c.TickMS <= 0 {
		c.TickMS = 50
	}
	if c.PreviewCacheSize <= 0 {
		c.PreviewCacheSize = 64
	}
	return nil
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return DefaultConfig(), err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
