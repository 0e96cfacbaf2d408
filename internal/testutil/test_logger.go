package testutil

import (
	"os"

	"github.com/rs/zerolog"
)

func NewTestLogger() *zerolog.Logger {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	return &logger
}
