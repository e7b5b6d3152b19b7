package sdk

import "go.uber.org/zap"

// ZapLogger adapts a zap sugared logger to the host Logger interface the
// contract emits events through.
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

func NewZapLogger(l *zap.Logger) *ZapLogger {
	return &ZapLogger{sugar: l.Sugar()}
}

func (z *ZapLogger) Log(msg string) {
	z.sugar.Info(msg)
}

// NopLogger swallows events; tests that don't assert on logs use it.
type NopLogger struct{}

func (NopLogger) Log(string) {}

// CaptureLogger records event lines for assertions.
type CaptureLogger struct {
	Lines []string
}

func (c *CaptureLogger) Log(msg string) {
	c.Lines = append(c.Lines, msg)
}
