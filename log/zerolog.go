package log

import "github.com/rs/zerolog"

// ZerologAdapter bridges the SDK Logger interface to a zerolog.Logger,
// so integrations with structured logging keep a single log pipeline.
type ZerologAdapter struct {
	l zerolog.Logger
}

func NewZerolog(l zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{l: l}
}

func (a *ZerologAdapter) Debugf(format string, args ...any) {
	a.l.Debug().Msgf(format, args...)
}

func (a *ZerologAdapter) Infof(format string, args ...any) {
	a.l.Info().Msgf(format, args...)
}

func (a *ZerologAdapter) Warnf(format string, args ...any) {
	a.l.Warn().Msgf(format, args...)
}

func (a *ZerologAdapter) Errorf(format string, args ...any) {
	a.l.Error().Msgf(format, args...)
}

var _ Logger = (*ZerologAdapter)(nil)
