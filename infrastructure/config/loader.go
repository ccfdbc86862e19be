// Package config loads YAML configuration with .env and environment
// overrides, plus the shared database and logging sections.
//
// Precedence, lowest first: the YAML file, the caller's defaults, then
// environment variables named by `env:"..."` struct tags. Before reading the
// environment, ENV_FILE is loaded if set; otherwise .env.local and .env are
// loaded when present.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Load reads the YAML file at path into a T, applies setDefaults (when
// non-nil) and then environment overrides. A missing file is not an error,
// so a deployment can run from the environment alone. An environment value
// that cannot be converted to its field's type is.
func Load[T any](path string, setDefaults func(*T)) (*T, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, err
	}

	cfg := new(T)

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if setDefaults != nil {
		setDefaults(cfg)
	}

	if err := applyEnv(reflect.ValueOf(cfg).Elem()); err != nil {
		return nil, err
	}
	return cfg, nil
}

// GetConfigPath returns CONFIG_PATH when set, else defaultPath.
func GetConfigPath(defaultPath string) string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	return defaultPath
}

func loadEnvFiles() error {
	files := []string{".env.local", ".env"}
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		files = []string{envFile}
	}

	for _, name := range files {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load env file %s: %w", name, err)
		}
	}
	return nil
}

// applyEnv walks v and overwrites every field whose env tag names a set,
// non-empty variable. Nested and pointer-to-struct fields are walked too.
func applyEnv(v reflect.Value) error {
	t := v.Type()
	for i := range v.NumField() {
		field := v.Field(i)
		if !field.CanSet() {
			continue
		}

		switch {
		case field.Kind() == reflect.Struct:
			if err := applyEnv(field); err != nil {
				return err
			}
			continue
		case field.Kind() == reflect.Ptr && field.Type().Elem().Kind() == reflect.Struct:
			if field.IsNil() {
				field.Set(reflect.New(field.Type().Elem()))
			}
			if err := applyEnv(field.Elem()); err != nil {
				return err
			}
			continue
		}

		name := t.Field(i).Tag.Get("env")
		if name == "" {
			continue
		}
		raw := os.Getenv(name)
		if raw == "" {
			continue
		}
		if err := decodeEnv(field, raw); err != nil {
			return &ValidationError{Field: name, Message: fmt.Sprintf("invalid value %q: %v", raw, err)}
		}
	}
	return nil
}

// decodeEnv converts raw to field's type with mapstructure's weak typing.
// Durations use time.ParseDuration syntax and slices are comma separated.
func decodeEnv(field reflect.Value, raw string) error {
	out := reflect.New(field.Type())

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			commaListHook,
			yesNoHook,
		),
		WeaklyTypedInput: true,
		Result:           out.Interface(),
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(raw); err != nil {
		return err
	}

	field.Set(out.Elem())
	return nil
}

func commaListHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Slice {
		return data, nil
	}
	parts := strings.Split(data.(string), ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts, nil
}

func yesNoHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Bool {
		return data, nil
	}
	switch strings.ToLower(strings.TrimSpace(data.(string))) {
	case "yes", "on":
		return true, nil
	case "no", "off":
		return false, nil
	}
	return data, nil
}
