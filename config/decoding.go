package config

import (
	"reflect"

	"github.com/mitchellh/mapstructure"
	"github.com/rs/zerolog"
)

func stringToLogLevel(
	f reflect.Type,
	t reflect.Type,
	data interface{}) (interface{}, error) {
	if f.Kind() != reflect.String {
		return data, nil
	}

	if t != reflect.TypeOf(zerolog.Level(0)) {
		return data, nil
	}

	return zerolog.ParseLevel(data.(string))
}

// AddDecodeHooks adds decode hooks to the given config to correctly translate strings into log levels
func AddDecodeHooks(cfg *mapstructure.DecoderConfig) {
	hooks := []mapstructure.DecodeHookFunc{
		stringToLogLevel,
	}
	if cfg.DecodeHook != nil {
		hooks = append(hooks, cfg.DecodeHook)
	}

	cfg.DecodeHook = mapstructure.ComposeDecodeHookFunc(hooks...)
}
