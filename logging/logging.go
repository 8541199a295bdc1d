// Package logging builds the zap logger nodes write their diagnostics to.
// Output goes to stderr or to a serial port; the sink never fails the
// caller, write errors are dropped.
package logging

import (
	"fmt"
	"io"
	"os"

	"go.bug.st/serial"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects the sink and level.
type Options struct {
	Level      string
	SerialPort string
	Baud       int
}

// sink adapts a writer that may fail into a zapcore.WriteSyncer that
// never reports an error.
type sink struct {
	w io.Writer
}

func (s sink) Write(p []byte) (int, error) {
	_, _ = s.w.Write(p)
	return len(p), nil
}

func (s sink) Sync() error {
	if f, ok := s.w.(interface{ Sync() error }); ok {
		_ = f.Sync()
	}
	return nil
}

// NewSink wraps w as a zapcore.WriteSyncer that swallows write errors.
func NewSink(w io.Writer) zapcore.WriteSyncer {
	return sink{w: w}
}

// NewLogger builds a console-encoded logger writing to w at level.
func NewLogger(w io.Writer, level zapcore.Level) *zap.Logger {
	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), NewSink(w), level)
	return zap.New(core)
}

// Open builds the logger described by opts. The returned closer releases
// the serial port, if one was opened.
func Open(opts Options) (*zap.Logger, func() error, error) {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
			return nil, nil, fmt.Errorf("log level: %w", err)
		}
	}

	if opts.SerialPort == "" {
		return NewLogger(os.Stderr, level), func() error { return nil }, nil
	}

	port, err := serial.Open(opts.SerialPort, &serial.Mode{
		BaudRate: opts.Baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("log sink: open %s: %w", opts.SerialPort, err)
	}
	return NewLogger(port, level), port.Close, nil
}
