// Package rflog provides leveled logging for the learner; its one
// call site is ParallelForestLearner's per-tree progress at Info.
// Modeled on
// ClusterCockpit's pkg/log: one *log.Logger per level, each backed by
// its own io.Writer so SetLevel can silence a level by redirecting
// its writer to io.Discard rather than branching on a level number at
// every call site.
package rflog

import (
	"fmt"
	"io"
	"log"
	"os"
)

var (
	DebugWriter io.Writer = os.Stderr
	InfoWriter  io.Writer = os.Stderr
	WarnWriter  io.Writer = os.Stderr
	ErrWriter   io.Writer = os.Stderr
)

var (
	DebugLog = log.New(DebugWriter, "[DEBUG] ", 0)
	InfoLog  = log.New(InfoWriter, "[INFO]  ", 0)
	WarnLog  = log.New(WarnWriter, "[WARN]  ", 0)
	ErrLog   = log.New(ErrWriter, "[ERROR] ", log.Lshortfile)
)

// SetLevel silences every level below lvl by redirecting its writer
// to io.Discard. Valid values, from quietest to loudest: "error",
// "warn", "info", "debug".
func SetLevel(lvl string) {
	switch lvl {
	case "error":
		WarnWriter = io.Discard
		fallthrough
	case "warn":
		InfoWriter = io.Discard
		fallthrough
	case "info":
		DebugWriter = io.Discard
	case "debug":
	default:
		fmt.Fprintf(os.Stderr, "rflog: unknown level %q, defaulting to debug\n", lvl)
	}

	DebugLog = log.New(DebugWriter, "[DEBUG] ", 0)
	InfoLog = log.New(InfoWriter, "[INFO]  ", 0)
	WarnLog = log.New(WarnWriter, "[WARN]  ", 0)
	ErrLog = log.New(ErrWriter, "[ERROR] ", log.Lshortfile)
}

func Debug(v ...interface{}) {
	if DebugWriter != io.Discard {
		DebugLog.Output(2, fmt.Sprint(v...))
	}
}

func Debugf(format string, v ...interface{}) {
	if DebugWriter != io.Discard {
		DebugLog.Output(2, fmt.Sprintf(format, v...))
	}
}

func Info(v ...interface{}) {
	if InfoWriter != io.Discard {
		InfoLog.Output(2, fmt.Sprint(v...))
	}
}

func Infof(format string, v ...interface{}) {
	if InfoWriter != io.Discard {
		InfoLog.Output(2, fmt.Sprintf(format, v...))
	}
}

func Warn(v ...interface{}) {
	if WarnWriter != io.Discard {
		WarnLog.Output(2, fmt.Sprint(v...))
	}
}

func Warnf(format string, v ...interface{}) {
	if WarnWriter != io.Discard {
		WarnLog.Output(2, fmt.Sprintf(format, v...))
	}
}

func Error(v ...interface{}) {
	if ErrWriter != io.Discard {
		ErrLog.Output(2, fmt.Sprint(v...))
	}
}

func Errorf(format string, v ...interface{}) {
	if ErrWriter != io.Discard {
		ErrLog.Output(2, fmt.Sprintf(format, v...))
	}
}
