/*package logging controls how much baofs reports about itself while it
runs. Output goes through log/slog.*/
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strings"
	"time"
)

type Flag int

const (
	Nil Flag = iota
	Performance
	Debug
)

// This is handled this way so that every mode doesn't need to carry a
// logger around with it.
var (
	Mode Flag = Nil
)

func (f Flag) String() string {
	switch f {
	case Nil:
		return "nil"
	case Performance:
		return "performance"
	case Debug:
		return "debug"
	}
	panic("Impossible")
}

// ParseFlag converts the name of a logging mode into a Flag.
func ParseFlag(s string) (Flag, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "nil", "none":
		return Nil, nil
	case "performance", "perf":
		return Performance, nil
	case "debug":
		return Debug, nil
	}
	return Nil, fmt.Errorf("The logging mode '%s' isn't recognized. The "+
		"supported modes are nil, performance, and debug.", s)
}

// New creates a text logger which writes to w at the verbosity of f.
func New(w io.Writer, f Flag) *slog.Logger {
	level := slog.LevelWarn
	switch f {
	case Performance:
		level = slog.LevelInfo
	case Debug:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Init sets Mode and installs a logger for it as the slog default.
func Init(w io.Writer, f Flag) {
	Mode = f
	slog.SetDefault(New(w, f))
}

// Timing logs the time elapsed since t along with the current memory usage.
// It does nothing unless Mode is Performance.
func Timing(task string, t time.Time) {
	if Mode != Performance {
		return
	}
	slog.Info("timing", "task", task, "elapsed", time.Since(t).String(),
		"memory", MemString())
}

// MemString returns a string containing various statistics on the current
// memory usage of baofs.
func MemString() string {
	ms := runtime.MemStats{}
	runtime.ReadMemStats(&ms)
	return fmt.Sprintf(
		"Alloc - %d MB; Sys - %d MB Integrated - %d MB",
		ms.Alloc>>20, ms.Sys>>20, ms.TotalAlloc>>20,
	)
}
