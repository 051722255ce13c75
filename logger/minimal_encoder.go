package logger

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const (
	colorReset  = "\x1b[0m"
	colorBold   = "\x1b[1m"
	colorTime   = "\x1b[38;5;107m" // mid green
	colorName   = "\x1b[38;5;208m" // warm orange
	colorKey    = "\x1b[38;5;109m" // blue-green
	colorWarn   = "\x1b[38;5;179m"
	colorError  = "\x1b[38;5;167m"
	colorWarnBg = "\x1b[48;5;58m"
	colorErrBg  = "\x1b[48;5;52m"
)

var bufferPool = buffer.NewPool()

// minimalEncoder implements a calm, compact console encoder.
// Format: "13:04:35  WARN  p.render  Import plan computed  import_lines=3 package=demo.app"
//
// Fields added through With() live in the embedded map encoder so that
// child loggers keep their context.
type minimalEncoder struct {
	*zapcore.MapObjectEncoder
	color bool
}

func newMinimalEncoder(color bool) *minimalEncoder {
	return &minimalEncoder{
		MapObjectEncoder: zapcore.NewMapObjectEncoder(),
		color:            color,
	}
}

func (enc *minimalEncoder) Clone() zapcore.Encoder {
	clone := zapcore.NewMapObjectEncoder()
	for k, v := range enc.Fields {
		clone.Fields[k] = v
	}
	return &minimalEncoder{MapObjectEncoder: clone, color: enc.color}
}

func (enc *minimalEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	final := bufferPool.Get()

	enc.paint(final, colorTime, ent.Time.Format("15:04:05"))

	// Level: only show for WARN/ERROR and above
	if ent.Level > zapcore.InfoLevel || ent.Level == zapcore.DebugLevel {
		final.AppendString("  ")
		enc.paint(final, levelColor(ent.Level), ent.Level.CapitalString())
	}

	if ent.LoggerName != "" {
		final.AppendString("  ")
		enc.paint(final, colorName, abbreviateName(ent.LoggerName))
	}

	final.AppendString("  ")
	final.AppendString(ent.Message)

	if kv := enc.fieldValues(fields); kv != "" {
		final.AppendString("  ")
		final.AppendString(kv)
	}

	final.AppendString("\n")
	return final, nil
}

func (enc *minimalEncoder) paint(buf *buffer.Buffer, color, text string) {
	if !enc.color || color == "" {
		buf.AppendString(text)
		return
	}
	buf.AppendString(color)
	buf.AppendString(text)
	buf.AppendString(colorReset)
}

// fieldValues renders every context and entry field as key=value, sorted by
// key. Nothing is dropped.
func (enc *minimalEncoder) fieldValues(fields []zapcore.Field) string {
	all := zapcore.NewMapObjectEncoder()
	for k, v := range enc.Fields {
		all.Fields[k] = v
	}
	for _, f := range fields {
		f.AddTo(all)
	}
	if len(all.Fields) == 0 {
		return ""
	}

	keys := make([]string, 0, len(all.Fields))
	for k := range all.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		key := k
		if enc.color {
			key = colorKey + k + colorReset
		}
		parts = append(parts, fmt.Sprintf("%s=%v", key, all.Fields[k]))
	}
	return strings.Join(parts, " ")
}

func levelColor(level zapcore.Level) string {
	switch {
	case level == zapcore.WarnLevel:
		return colorBold + colorWarnBg + colorWarn
	case level >= zapcore.ErrorLevel:
		return colorBold + colorErrBg + colorError
	default:
		return ""
	}
}

// abbreviateName shortens component names: poet.render -> p.render
func abbreviateName(name string) string {
	parts := strings.Split(name, ".")
	if len(parts) > 1 && parts[0] != "" {
		return string(parts[0][0]) + "." + strings.Join(parts[1:], ".")
	}
	return name
}
