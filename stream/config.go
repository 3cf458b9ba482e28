package stream

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/adrg/xdg"
	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v2"
)

// configName is the path searched for under the XDG config directories.
const configName = "ledseq/config.yaml"

type Config struct {
	Mqtt struct {
		URL            string        `yaml:"url"`
		Username       string        `yaml:"username"`
		Password       string        `yaml:"password"`
		ClientID       string        `yaml:"clientId"`
		Qos            byte          `yaml:"qos"`
		PublishTimeout time.Duration `yaml:"publishTimeout"`
		Topics         struct {
			Stream  string `yaml:"stream"`
			Control string `yaml:"control"`
		} `yaml:"topics"`
	} `yaml:"mqtt"`

	Strip struct {
		Pixels     int    `yaml:"pixels"`
		Background string `yaml:"background"`
	} `yaml:"strip"`

	// Sequence is the main frame sequence, resolved by name from Dir and
	// the built-in library.
	Sequence struct {
		Dir      string        `yaml:"dir"`
		BaseName string        `yaml:"baseName"`
		Count    int           `yaml:"count"`
		Duration time.Duration `yaml:"duration"`
		Repeat   int           `yaml:"repeat"`
		Autoplay bool          `yaml:"autoplay"`
	} `yaml:"sequence"`

	Burst struct {
		BaseName string        `yaml:"baseName"`
		Count    int           `yaml:"count"`
		Duration time.Duration `yaml:"duration"`
		Fade     time.Duration `yaml:"fade"`
		Alpha    float64       `yaml:"alpha"`
	} `yaml:"burst"`

	// BuiltinFrames is the number of frames baked for each built-in
	// animation. Zero disables them.
	BuiltinFrames int `yaml:"builtinFrames"`

	Api struct {
		Listen string `yaml:"listen"`
		Static string `yaml:"static"`
	} `yaml:"api"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// DefaultConfig returns the configuration used for anything a config file
// leaves out.
func DefaultConfig() Config {
	var c Config
	c.Mqtt.ClientID = "ledseq"
	c.Mqtt.PublishTimeout = time.Second
	c.Mqtt.Topics.Stream = "home/xmastree/stream"
	c.Mqtt.Topics.Control = "home/xmastree/control"
	c.Strip.Pixels = DefaultPixels
	c.Strip.Background = "#000005"
	c.Sequence.BaseName = "gradient_"
	c.Sequence.Count = 60
	c.Sequence.Duration = 2 * time.Second
	c.Sequence.Repeat = 1

	b := DefaultBurstOptions()
	c.Burst.BaseName = b.BaseName
	c.Burst.Count = b.Count
	c.Burst.Duration = b.Duration
	c.Burst.Fade = b.Fade
	c.Burst.Alpha = b.Alpha

	c.BuiltinFrames = 60
	c.Api.Listen = ":3000"
	c.Api.Static = "client/dist"
	c.Log.Level = "info"
	return c
}

// LoadConfig reads the YAML file at path over the defaults. An empty path
// searches the XDG config directories and falls back to the defaults when
// no file is found.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	if path == "" {
		found, err := xdg.SearchConfigFile(configName)
		if err != nil {
			return c, nil
		}
		path = found
	}

	f, err := os.Open(path)
	if err != nil {
		return c, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(&c); err != nil {
		return c, fmt.Errorf("decode config %s: %w", path, err)
	}
	if err := c.validate(); err != nil {
		return c, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

func (c *Config) validate() error {
	if c.Strip.Pixels <= 0 || c.Strip.Pixels > 0xffff {
		return fmt.Errorf("strip.pixels must be between 1 and 65535, got %d", c.Strip.Pixels)
	}
	if c.Mqtt.Qos > 2 {
		return fmt.Errorf("mqtt.qos must be 0, 1 or 2, got %d", c.Mqtt.Qos)
	}
	if c.Burst.Alpha < 0 || c.Burst.Alpha > 1 {
		return fmt.Errorf("burst.alpha must be between 0 and 1, got %g", c.Burst.Alpha)
	}
	return nil
}

// BackgroundColour parses Strip.Background, falling back to black.
func (c *Config) BackgroundColour() colorful.Color {
	bg, err := colorful.Hex(c.Strip.Background)
	if err != nil {
		return colorful.Color{}
	}
	return bg
}

// LogLevel parses Log.Level, falling back to info.
func (c *Config) LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}
