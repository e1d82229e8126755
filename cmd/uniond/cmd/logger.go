package cmd

import (
	"io"
	"os"
	"time"

	"github.com/cometbft/cometbft/libs/log"
	"github.com/rs/zerolog"

	"github.com/uniongov/union-core/config"
)

var _ log.Logger = ZeroLogWrapper{}

// ZeroLogWrapper backs the keeper logger interface with zerolog
type ZeroLogWrapper struct {
	zerolog.Logger
}

// NewLogger returns a logger writing to out in the configured format and level
func NewLogger(out io.Writer, conf config.LogConfig) log.Logger {
	if conf.Format == config.LogFormatPlain {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return ZeroLogWrapper{Logger: zerolog.New(out).Level(conf.Level).With().Timestamp().Logger()}
}

func newStderrLogger(conf config.LogConfig) log.Logger {
	return NewLogger(os.Stderr, conf)
}

// Debug logs a message at debug level
func (z ZeroLogWrapper) Debug(msg string, keyVals ...interface{}) {
	z.Logger.Debug().Fields(getLogFields(keyVals...)).Msg(msg)
}

// Info logs a message at info level
func (z ZeroLogWrapper) Info(msg string, keyVals ...interface{}) {
	z.Logger.Info().Fields(getLogFields(keyVals...)).Msg(msg)
}

// Error logs a message at error level
func (z ZeroLogWrapper) Error(msg string, keyVals ...interface{}) {
	z.Logger.Error().Fields(getLogFields(keyVals...)).Msg(msg)
}

// With returns a logger that adds the key value pairs to every message
func (z ZeroLogWrapper) With(keyVals ...interface{}) log.Logger {
	return ZeroLogWrapper{Logger: z.Logger.With().Fields(getLogFields(keyVals...)).Logger()}
}

func getLogFields(keyVals ...interface{}) map[string]interface{} {
	if len(keyVals)%2 != 0 {
		return nil
	}

	fields := make(map[string]interface{}, len(keyVals)/2)
	for i := 0; i < len(keyVals); i += 2 {
		key, ok := keyVals[i].(string)
		if !ok {
			continue
		}

		fields[key] = keyVals[i+1]
	}

	return fields
}
