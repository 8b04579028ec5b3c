package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// init instantiates the global logger and sets up stack trace marshalling and UNIX timestamps for structured output.
func init() {
	GlobalLogger = NewLogger(zerolog.Disabled)

	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
}
