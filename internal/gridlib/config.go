package gridlib

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the display configuration surface. All fields have
// defaults; a config file only needs the keys it changes.
type Config struct {
	PrecisionMin int    `yaml:"precision_min"`
	PrecisionMax int    `yaml:"precision_max"`
	StrWidthMin  int    `yaml:"str_width_min"`
	StrWidthMax  int    `yaml:"str_width_max"`
	NaNString    string `yaml:"nan_string"`
	InfString    string `yaml:"inf_string"`
	Ellipsis     string `yaml:"ellipsis"`
	Separator    string `yaml:"separator"`
	ShowHeader   bool   `yaml:"show_header"`
	ShowFooter   bool   `yaml:"show_footer"`
	ShowCursor   bool   `yaml:"show_cursor"`
}

func DefaultConfig() Config {
	return Config{
		PrecisionMin: 1,
		PrecisionMax: 6,
		StrWidthMin:  4,
		StrWidthMax:  32,
		NaNString:    "NaN",
		InfString:    "∞",
		Ellipsis:     "…",
		Separator:    " ",
		ShowHeader:   true,
		ShowFooter:   true,
		ShowCursor:   false,
	}
}

// LoadConfig reads a YAML config file over the defaults. A missing
// file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("could not parse %s: %w", path, err)
	}
	return cfg, nil
}
