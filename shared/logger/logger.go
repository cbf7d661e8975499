package logger

import (
	"io"
	"os"
	"time"

	"cheapticket/config"
	"cheapticket/shared/constant"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}

	log.Logger = log.Output(output)
	log.Trace().Msg("Zerolog initialized.")
}

// ErrorWithStack logs err with the stack of the caller attached.
func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

func SetLogLevel(config *config.Config) {
	level, err := zerolog.ParseLevel(config.Server.LogLevel)
	if err != nil {
		level = zerolog.TraceLevel
		log.Trace().Str("loglevel", level.String()).Msg("Environment has no log level set up, using default.")
	} else {
		log.Trace().Str("loglevel", level.String()).Msg("Desired log level detected.")
	}

	zerolog.SetGlobalLevel(level)
}

// SetOutput switches to structured JSON lines in production and tags every
// entry with the application name.
func SetOutput(config *config.Config, console io.Writer) {
	var output io.Writer = zerolog.ConsoleWriter{Out: console, TimeFormat: time.RFC3339}
	if config.Server.Env == constant.ServerEnvProduction {
		output = console
	}

	ctx := zerolog.New(output).With().Timestamp()
	if config.App.Name != "" {
		ctx = ctx.Str("app", config.App.Name)
	}

	log.Logger = ctx.Logger()
}
