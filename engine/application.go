package engine

import (
	"os"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/aurora/engine/core"
	"github.com/spaghettifunk/aurora/engine/renderer/metadata"
)

type ApplicationConfig struct {
	// Window starting position x axis, if applicable.
	StartPosX uint32 `toml:"start_pos_x"`
	// Window starting position y axis, if applicable.
	StartPosY uint32 `toml:"start_pos_y"`
	// Window starting width, if applicable.
	StartWidth uint32 `toml:"start_width"`
	// Window starting height, if applicable.
	StartHeight uint32 `toml:"start_height"`
	// The application name used in windowing, if applicable.
	Name string `toml:"name"`
	// Minimum log level, one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`
	// Directory watched for asset changes.
	AssetsDir string `toml:"assets_dir"`
	// Path of the texture manifest file.
	ManifestPath string `toml:"manifest_path"`
	// Path of the scene description providing the camera, if any.
	ScenePath string `toml:"scene_path"`
	// Logical name of the texture the background pass samples.
	BackgroundTexture string `toml:"background_texture"`
}

// DefaultApplicationConfig returns the configuration used when no file
// is provided.
func DefaultApplicationConfig() *ApplicationConfig {
	return &ApplicationConfig{
		StartPosX:         100,
		StartPosY:         100,
		StartWidth:        1280,
		StartHeight:       720,
		Name:              "Aurora",
		LogLevel:          "info",
		AssetsDir:         "assets",
		ManifestPath:      "assets/manifest.toml",
		BackgroundTexture: metadata.BACKGROUND_TEXTURE_NAME,
	}
}

// LoadApplicationConfig reads a TOML configuration file, filling any
// missing field from the defaults.
func LoadApplicationConfig(path string) (*ApplicationConfig, error) {
	config := DefaultApplicationConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &core.IOError{Path: path, Err: err}
	}
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, err
	}
	return config, nil
}
