package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/cipherwen/pkg/errors"
)

// FileName is the default config file name inside the config directory.
const FileName = "config.toml"

// Load reads and validates the config file at path. Fields missing from the
// file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	cfg := Default()
	if err := decode(data, format(path), cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrCreate loads the config at path, writing the defaults there first
// when no file exists. The returned bool reports whether it was created.
func LoadOrCreate(path string) (*Config, bool, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := Default()
		if err := Save(cfg, path); err != nil {
			return nil, false, err
		}
		return cfg, true, nil
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, false, err
	}
	return cfg, false, nil
}

// Save writes cfg to path in the format implied by its extension, creating
// parent directories as needed.
func Save(cfg *Config, path string) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	if format(path) == "ini" {
		return errors.New(errors.ErrCodeInvalidConfig,
			"cannot write %s: INI configs are read-only, save as .toml, .yaml or .json", path)
	}
	data, err := encode(cfg, format(path))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeOutputWrite, err, "create config directory")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeOutputWrite, err, "write config %s", path)
	}
	return nil
}

// Marshal returns cfg encoded as format ("toml", "yaml" or "json").
func Marshal(cfg *Config, format string) ([]byte, error) {
	return encode(cfg, format)
}

func format(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".json":
		return "json"
	case ".ini":
		return "ini"
	default:
		return "toml"
	}
}

func decode(data []byte, format string, cfg *Config) error {
	switch format {
	case "yaml":
		return yaml.Unmarshal(data, cfg)
	case "json":
		return json.Unmarshal(data, cfg)
	case "ini":
		return decodeINI(data, cfg)
	default:
		_, err := toml.Decode(string(data), cfg)
		return err
	}
}

// decodeINI reads the separators from the legacy layout:
//
//	[Separator]
//	article = ============
//	qa = ------------
//
// Names are case-insensitive and values run to the end of the line, so
// separators made of '#' or ';' survive. Missing keys keep their defaults.
func decodeINI(data []byte, cfg *Config) error {
	f, err := ini.LoadSources(ini.LoadOptions{Insensitive: true, IgnoreInlineComment: true}, data)
	if err != nil {
		return err
	}
	sec, err := f.GetSection("separator")
	if err != nil {
		return err
	}
	if v := sec.Key("article").String(); v != "" {
		cfg.Separator.Article = v
	}
	if v := sec.Key("qa").String(); v != "" {
		cfg.Separator.QA = v
	}
	return nil
}

func encode(cfg *Config, format string) ([]byte, error) {
	switch format {
	case "yaml":
		return yaml.Marshal(cfg)
	case "json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	default:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
}
