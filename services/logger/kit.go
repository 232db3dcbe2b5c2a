package logsvc

import (
	"io"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/trezcool/escola/core"
)

// KitLogger writes logfmt lines through go-kit/log.
type KitLogger struct {
	base kitlog.Logger
}

var _ core.Logger = (*KitLogger)(nil)

// NewKitLogger returns a logger writing to w. Debug lines are dropped unless debug is set.
func NewKitLogger(w io.Writer, debug bool) *KitLogger {
	l := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(w))
	l = kitlog.With(l, "ts", kitlog.DefaultTimestampUTC)

	allow := level.AllowInfo()
	if debug {
		allow = level.AllowDebug()
	}
	return &KitLogger{base: level.NewFilter(l, allow)}
}

// With returns a logger that adds keyvals to every line.
func (l *KitLogger) With(keyvals ...interface{}) *KitLogger {
	return &KitLogger{base: kitlog.With(l.base, keyvals...)}
}

func (l *KitLogger) log(lvl func(kitlog.Logger) kitlog.Logger, msg string, args []interface{}) {
	keyvals := make([]interface{}, 0, len(args)+2)
	keyvals = append(keyvals, "msg", msg)
	keyvals = append(keyvals, args...)
	_ = lvl(l.base).Log(keyvals...)
}

func (l *KitLogger) Debug(msg string, args ...interface{}) { l.log(level.Debug, msg, args) }
func (l *KitLogger) Info(msg string, args ...interface{})  { l.log(level.Info, msg, args) }
func (l *KitLogger) Warn(msg string, args ...interface{})  { l.log(level.Warn, msg, args) }
func (l *KitLogger) Error(msg string, args ...interface{}) { l.log(level.Error, msg, args) }
