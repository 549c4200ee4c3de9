package logger

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/funthingsnearme/nearby/internal/app/appconfig"
)

func Configure(config *appconfig.Config) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	logFile := &lumberjack.Logger{
		Filename:   filepath.Join(config.DataDir, "logs", "app.log"),
		MaxSize:    10,
		MaxBackups: 3,
	}

	var level zerolog.Level
	if config.DevMode {
		level = zerolog.TraceLevel
	} else {
		level = zerolog.InfoLevel
	}

	// The interactive front-end owns the terminal; console output would tear
	// the TUI apart, so stdout logging is reserved for one-shot commands.
	writers := []io.Writer{logFile}
	if config.LogJsonStdout {
		writers = append(writers, os.Stdout)
	}

	log.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		With().
		Timestamp().
		Logger().
		Level(level)
}
