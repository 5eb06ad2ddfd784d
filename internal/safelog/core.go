package safelog

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// core is a zapcore.Core filter stage. Every record passes through it
// immediately before encoding: the message and all attached fields are
// scrubbed, so no sensitive key or value reaches the sink even when a call
// site logs something it should not have.
type core struct {
	inner zapcore.Core
}

// NewCore wraps an existing zapcore.Core with the scrubbing filter.
func NewCore(inner zapcore.Core) zapcore.Core {
	return &core{inner: inner}
}

func (c *core) Enabled(level zapcore.Level) bool {
	return c.inner.Enabled(level)
}

func (c *core) With(fields []zapcore.Field) zapcore.Core {
	scrubbed, _ := safeScrub("", fields)
	return &core{inner: c.inner.With(scrubbed)}
}

func (c *core) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *core) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	scrubbed, msg := safeScrub(ent.Message, fields)
	ent.Message = msg
	return c.inner.Write(ent, scrubbed)
}

func (c *core) Sync() error {
	return c.inner.Sync()
}

// safeScrub scrubs a message and field set. A panic anywhere inside
// scrubbing degrades the record to the fixed fallback message with no
// fields; the write itself still happens.
func safeScrub(msg string, fields []zapcore.Field) (out []zapcore.Field, outMsg string) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			outMsg = FallbackMessage
		}
	}()
	scrubbed := make([]zapcore.Field, len(fields))
	for i, f := range fields {
		scrubbed[i] = scrubField(f)
	}
	return scrubbed, ScrubString(msg)
}

func scrubField(f zapcore.Field) zapcore.Field {
	if IsSensitiveKey(f.Key) {
		return zap.String(f.Key, KeyPlaceholder)
	}
	switch f.Type {
	case zapcore.StringType:
		return zap.String(f.Key, ScrubString(f.String))
	case zapcore.ByteStringType:
		if b, ok := f.Interface.([]byte); ok {
			return zap.String(f.Key, ScrubString(string(b)))
		}
		return f
	case zapcore.ErrorType:
		if err, ok := f.Interface.(error); ok && err != nil {
			return zap.String(f.Key, ScrubString(err.Error()))
		}
		return f
	case zapcore.StringerType:
		if s, ok := f.Interface.(fmt.Stringer); ok {
			return zap.String(f.Key, ScrubString(s.String()))
		}
		return f
	case zapcore.ReflectType:
		return zap.Any(f.Key, ScrubAny(f.Interface))
	default:
		// Numbers, booleans, durations and timestamps carry no free text.
		return f
	}
}
