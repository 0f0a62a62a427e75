package logio

import (
	"fmt"
	"io"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a console logger that remembers whether anything was logged at
// error level or above, facilitating "exit non-zero if any error log"
// semantics.
type Logger struct {
	*zap.Logger
	level    zap.AtomicLevel
	exitCode atomic.Int32
}

// New creates a Logger writing human readable lines to out at info level.
func New(out io.Writer) *Logger {
	log := &Logger{level: zap.NewAtomicLevelAt(zap.InfoLevel)}
	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(enc),
		zapcore.Lock(zapcore.AddSync(out)),
		log.level,
	)
	log.Logger = zap.New(core, zap.Hooks(log.observe))
	return log
}

func (log *Logger) observe(ent zapcore.Entry) error {
	if ent.Level >= zap.ErrorLevel {
		log.exitCode.CompareAndSwap(0, 1)
	}
	return nil
}

// SetTrace enables or disables debug level output.
func (log *Logger) SetTrace(trace bool) {
	if trace {
		log.level.SetLevel(zap.DebugLevel)
	} else {
		log.level.SetLevel(zap.InfoLevel)
	}
}

// Errorf logs a formatted error message.
func (log *Logger) Errorf(mess string, args ...interface{}) {
	log.Error(fmt.Sprintf(mess, args...))
}

// ErrorIf logs any non-nil error.
func (log *Logger) ErrorIf(err error) {
	if err != nil {
		log.Error(fmt.Sprintf("%+v", err))
	}
}

// ExitCode returns a code to pass to os.Exit: non-zero once any error has
// been logged.
func (log *Logger) ExitCode() int {
	_ = log.Sync()
	return int(log.exitCode.Load())
}
