// Package config loads and saves cipherwen settings.
//
// A Config holds the document separators, the minimum fingerprint lengths
// and the image defaults. Files are TOML by default; ".yaml", ".yml" and
// ".json" paths are read and written in those formats instead.
//
//	cfg, created, err := config.LoadOrCreate(path)
//	if err != nil {
//	    return err
//	}
//	opts, err := cfg.Render.Options()
//
// Config values are passed explicitly; the package keeps no global state.
package config

import (
	"image/color"

	"github.com/matzehuels/cipherwen/pkg/colorspec"
	"github.com/matzehuels/cipherwen/pkg/errors"
	"github.com/matzehuels/cipherwen/pkg/grid"
)

// Default separators and minimum lengths.
const (
	DefaultArticleSeparator = "============"
	DefaultQASeparator      = "------------"
	DefaultTextMinLength    = 2
	DefaultAnswerMinLength  = 1
)

// Config is the complete cipherwen configuration.
type Config struct {
	Separator   Separators  `toml:"separator" yaml:"separator" json:"separator"`
	Fingerprint Fingerprint `toml:"fingerprint" yaml:"fingerprint" json:"fingerprint"`
	Render      Render      `toml:"render" yaml:"render" json:"render"`
}

// Separators split an articles document.
type Separators struct {
	Article string `toml:"article" yaml:"article" json:"article"`
	QA      string `toml:"qa" yaml:"qa" json:"qa"`
}

// Fingerprint holds the minimum segment lengths for the two search passes.
type Fingerprint struct {
	TextMinLength   int `toml:"text_min_length" yaml:"text_min_length" json:"text_min_length"`
	AnswerMinLength int `toml:"answer_min_length" yaml:"answer_min_length" json:"answer_min_length"`
}

// Render holds image defaults. Colors are kept in their textual form, see
// package colorspec.
type Render struct {
	OutputPath     string `toml:"output_path" yaml:"output_path" json:"output_path"`
	ColorMap       string `toml:"color_map" yaml:"color_map" json:"color_map"`
	MarkerPath     string `toml:"marker_path" yaml:"marker_path" json:"marker_path"`
	Background     string `toml:"background" yaml:"background" json:"background"`
	BackgroundPath string `toml:"background_path" yaml:"background_path" json:"background_path"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Separator: Separators{
			Article: DefaultArticleSeparator,
			QA:      DefaultQASeparator,
		},
		Fingerprint: Fingerprint{
			TextMinLength:   DefaultTextMinLength,
			AnswerMinLength: DefaultAnswerMinLength,
		},
		Render: Render{
			OutputPath: grid.DefaultOutputPath,
			ColorMap:   colorspec.FormatColorMap(grid.DefaultColorMap()),
			Background: colorspec.FormatRGB(grid.White),
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if err := c.Separator.Validate(); err != nil {
		return err
	}
	if err := errors.ValidateMinLength("text", c.Fingerprint.TextMinLength); err != nil {
		return err
	}
	if err := errors.ValidateMinLength("answer", c.Fingerprint.AnswerMinLength); err != nil {
		return err
	}
	_, err := c.Render.Options()
	return err
}

// Validate checks that both separators are usable and distinct.
func (s Separators) Validate() error {
	if err := errors.ValidateSeparator("article", s.Article); err != nil {
		return err
	}
	if err := errors.ValidateSeparator("qa", s.QA); err != nil {
		return err
	}
	if s.Article == s.QA {
		return errors.New(errors.ErrCodeInvalidConfig, "article and qa separators must differ")
	}
	return nil
}

// Options parses the render section into grid options. Empty color fields
// leave the grid defaults in place. A background that is not a plain RGB
// color is left unset as well, so rendering falls back to white; callers
// that want to report it check colorspec.ParseRGB themselves.
func (r Render) Options() (grid.Options, error) {
	opts := grid.Options{
		OutputPath:     r.OutputPath,
		MarkerPath:     r.MarkerPath,
		BackgroundPath: r.BackgroundPath,
	}
	if r.OutputPath != "" {
		if err := errors.ValidatePath(r.OutputPath); err != nil {
			return grid.Options{}, err
		}
	}

	cm, err := colorspec.ParseColorMap(r.ColorMap)
	if err != nil {
		return grid.Options{}, err
	}
	if len(cm) > 0 {
		opts.ColorMap = make(map[byte]color.Color, len(cm))
		for k, v := range cm {
			opts.ColorMap[k] = v
		}
	}

	if bg, err := colorspec.ParseRGB(r.Background); err == nil {
		opts.Background = bg
	}
	return opts, nil
}
