package testlogger

import (
	"io"
	"os"
	"time"

	"github.com/iotaledger/hive.go/log"
	"github.com/iotaledger/hive.go/runtime/options"
)

// TestingT is the part of testing.TB the loggers need.
type TestingT interface {
	Name() string
}

// DebugEnv switches test loggers to debug level when set to a non-empty value.
const DebugEnv = "TRUSTCHAIN_TEST_DEBUG"

func newLogger(level string, opts ...options.Option[log.Options]) log.Logger {
	loggerLevel, err := log.LevelFromString(level)
	if err != nil {
		panic(err)
	}

	return log.NewLogger(append([]options.Option[log.Options]{
		log.WithLevel(loggerLevel),
		log.WithTimeFormat(time.RFC3339),
	}, opts...)...)
}

// NewLogger returns a logger named after the running test. Output is discarded
// unless DebugEnv is set.
func NewLogger(t TestingT, opts ...options.Option[log.Options]) log.Logger {
	if os.Getenv(DebugEnv) == "" {
		opts = append([]options.Option[log.Options]{log.WithOutput(io.Discard)}, opts...)
		return newLogger("info", append([]options.Option[log.Options]{log.WithName(t.Name())}, opts...)...)
	}

	return newLogger("debug", append([]options.Option[log.Options]{log.WithName(t.Name())}, opts...)...)
}

// NewCapturingLogger returns a debug logger that writes into w. Used by tests
// asserting on log output.
func NewCapturingLogger(t TestingT, w io.Writer) log.Logger {
	return newLogger("debug", log.WithName(t.Name()), log.WithOutput(w))
}

// NewSilentLogger returns a named logger that drops everything.
func NewSilentLogger(name string) log.Logger {
	return newLogger("info", log.WithName(name), log.WithOutput(io.Discard))
}
