// Package zap adapts a zap.Logger to the settings Logger interface.
package zap

import (
	"go.uber.org/zap"

	"github.com/ticketforge/settings"
)

type Logger struct{ L *zap.Logger }

var _ settings.Logger = Logger{}

func (z Logger) Debug(msg string, f settings.Fields) { z.L.Debug(msg, zf(f)...) }
func (z Logger) Info(msg string, f settings.Fields)  { z.L.Info(msg, zf(f)...) }
func (z Logger) Warn(msg string, f settings.Fields)  { z.L.Warn(msg, zf(f)...) }
func (z Logger) Error(msg string, f settings.Fields) { z.L.Error(msg, zf(f)...) }

func zf(f settings.Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(f))
	for k, v := range f {
		out = append(out, zap.Any(k, v))
	}
	return out
}
