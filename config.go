package stockpile

import "github.com/TheBitDrifter/bark"

// LogComponent is the bark component name stockpile logs under
const LogComponent = "stockpile"

// Config holds global configuration for registries, pools and diagnostics
var Config config = config{
	fatalHandler:    panicOnFatal,
	groupCapacity:   64,
	poolReservation: 16,
}

type config struct {
	logger          Logger
	fatalHandler    func(error)
	groupCapacity   int
	poolReservation int
}

// SetLogger configures the sink for warnings and fatal reports. A nil
// logger restores the default bark logger.
func (c *config) SetLogger(l Logger) {
	c.logger = l
}

// SetFatalHandler replaces the handler invoked on contract violations. The
// default panics with the violation. A handler that returns lets the
// failing call return the error instead.
func (c *config) SetFatalHandler(fn func(error)) {
	if fn == nil {
		fn = panicOnFatal
	}
	c.fatalHandler = fn
}

// SetGroupCapacity bounds the number of distinct groups a registry can hold
func (c *config) SetGroupCapacity(n int) {
	c.groupCapacity = n
}

// SetPoolReservation sets the initial dense capacity of new pools
func (c *config) SetPoolReservation(n int) {
	c.poolReservation = max(n, 0)
}

func (c *config) log() Logger {
	if c.logger == nil {
		c.logger = bark.For(LogComponent)
	}
	return c.logger
}

// fatal logs the violation with its trace and hands the untraced error to
// the fatal handler
func (c *config) fatal(err error) {
	c.log().Error("contract violation", bark.KeyError, bark.AddTrace(err))
	c.fatalHandler(err)
}

func (c *config) warn(msg string, keysAndValues ...any) {
	c.log().Warn(msg, keysAndValues...)
}

func panicOnFatal(err error) {
	panic(err)
}

// Logger is satisfied by *slog.Logger, including the loggers bark hands out
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}
