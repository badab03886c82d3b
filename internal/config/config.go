// Package config loads runtime settings from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/image-translate-mcp/internal/overlay"
)

// Config holds every setting the server and the CLI read from the
// environment.
type Config struct {
	LogLevel       string
	FontPath       string
	OCRLanguage    string
	TessdataPrefix string
	Conversion     string
	FontColor      string
	SortRegions    bool

	// sortRegionsRaw is the unparsed IMAGE_TRANSLATE_SORT_REGIONS value.
	sortRegionsRaw string
}

// Load reads the environment, falling back to defaults for unset variables.
// Call Validate before use.
func Load() *Config {
	sortRaw := os.Getenv("IMAGE_TRANSLATE_SORT_REGIONS")
	return &Config{
		LogLevel:       getEnv("IMAGE_TRANSLATE_LOG_LEVEL", "info"),
		FontPath:       getEnv("IMAGE_TRANSLATE_FONT", "assets/NotoSansTC-Bold.ttf"),
		OCRLanguage:    getEnv("IMAGE_TRANSLATE_OCR_LANG", "chi_sim"),
		TessdataPrefix: getEnv("TESSDATA_PREFIX", ""),
		Conversion:     getEnv("IMAGE_TRANSLATE_CONVERSION", "s2twp"),
		FontColor:      getEnv("IMAGE_TRANSLATE_FONT_COLOR", "white"),
		SortRegions:    parseBool(sortRaw, false),
		sortRegionsRaw: sortRaw,
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("IMAGE_TRANSLATE_LOG_LEVEL: %w", err))
	}
	if _, err := overlay.ParseFontColorMode(c.FontColor); err != nil {
		errs = append(errs, fmt.Errorf("IMAGE_TRANSLATE_FONT_COLOR: %w", err))
	}
	if c.FontPath == "" {
		errs = append(errs, errors.New("IMAGE_TRANSLATE_FONT: must not be empty"))
	}
	if c.sortRegionsRaw != "" {
		if _, err := strconv.ParseBool(c.sortRegionsRaw); err != nil {
			errs = append(errs, fmt.Errorf("IMAGE_TRANSLATE_SORT_REGIONS: %q is not a boolean", c.sortRegionsRaw))
		}
	}
	return errors.Join(errs...)
}

// ColorMode returns the parsed default font color mode.
func (c *Config) ColorMode() overlay.FontColorMode {
	m, err := overlay.ParseFontColorMode(c.FontColor)
	if err != nil {
		return overlay.White
	}
	return m
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func parseBool(raw string, defaultVal bool) bool {
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return defaultVal
	}
	return v
}
