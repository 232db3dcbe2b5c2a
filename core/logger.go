package core

// Logger is the logging facade used by the services.
// args are alternating keys and values, an error value may be passed under the "err" key.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}
