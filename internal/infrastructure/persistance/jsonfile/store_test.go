package jsonfile

import (
	"context"
	"time"

	"github.com/packlabs/dva-go/internal/application/port"
)

// nopLogger satisfies port.Logger for tests.
type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{})          {}
func (nopLogger) Info(string, ...interface{})           {}
func (nopLogger) Warn(string, ...interface{})           {}
func (nopLogger) Error(string, ...interface{})          {}
func (l nopLogger) With(...interface{}) port.Logger     { return l }
func (l nopLogger) WithContext(context.Context) port.Logger { return l }

// fixedClock returns a deterministic clock for store tests.
func fixedClock() port.Clock {
	return port.ClockFunc(func() time.Time {
		return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	})
}
