package logsvc

import (
	"fmt"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"

	"github.com/trezcool/escola/core"
)

// RollbarLogger reports warnings and errors to Rollbar and prints everything through base.
// Reporting is disabled when no token is configured.
type RollbarLogger struct {
	base core.Logger
}

var _ core.Logger = (*RollbarLogger)(nil)

func NewRollbarLogger(base core.Logger, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer)
	rollbar.SetEnabled(conf.RollbarToken != "")
	return &RollbarLogger{base: base}
}

// Close waits for queued items to be sent.
func (l RollbarLogger) Close() {
	rollbar.Close()
}

// prepare turns msg and its keyvals into rollbar arguments: the message, the first error found
// and the remaining pairs as custom data.
func (l RollbarLogger) prepare(msg string, args []interface{}) []interface{} {
	var errVal error
	extras := make(map[string]interface{}, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		key := fmt.Sprint(args[i])
		var val interface{} = "(MISSING)"
		if i+1 < len(args) {
			val = args[i+1]
		}
		if err, ok := val.(error); ok && errVal == nil {
			errVal = err
			continue
		}
		extras[key] = val
	}

	out := []interface{}{msg}
	if errVal != nil {
		out = append(out, errVal)
	}
	if len(extras) > 0 {
		out = append(out, extras)
	}
	return out
}

func (l RollbarLogger) Debug(msg string, args ...interface{}) {
	l.base.Debug(msg, args...)
}

func (l RollbarLogger) Info(msg string, args ...interface{}) {
	l.base.Info(msg, args...)
}

func (l RollbarLogger) Warn(msg string, args ...interface{}) {
	rollbar.Warning(l.prepare(msg, args)...)
	l.base.Warn(msg, args...)
}

func (l RollbarLogger) Error(msg string, args ...interface{}) {
	rollbar.Error(l.prepare(msg, args)...)
	l.base.Error(msg, args...)
}
