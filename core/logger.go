package core

// Logger is any leveled logger. args may carry errors, extra data maps or the acting Admin.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}

// Actor identifies the authenticated admin behind a request, for log context.
type Actor struct {
	ID       string
	Username string
	Email    string
}
