package logger

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strconv"

	"github.com/golang-cz/devslog"
	"github.com/google/uuid"
)

type Logger struct{}

// Init builds the process-wide slog logger. Debug level outside prod.
func Init(prodEnv bool) Logger {
	slogOpts := &slog.HandlerOptions{}

	if !prodEnv {
		slogOpts.Level = slog.LevelDebug
	}

	opts := &devslog.Options{
		HandlerOptions:    slogOpts,
		MaxSlicePrintSize: 4,
		SortKeys:          true,
		NewLineAfterLog:   true,
	}

	logger := slog.New(devslog.NewHandler(os.Stdout, opts))

	slog.SetDefault(logger)

	return Logger{}
}

// example Info("new deposit", LS_DEPOSITS, false, "invoice_id", "...")
func (l Logger) Info(message string, logStream Logstream, isTemplate bool, args ...any) {
	var skip int

	if isTemplate {
		skip = 2
	} else {
		skip = 1
	}

	_, file, line, _ := runtime.Caller(skip)
	printLog(LL_INFO, message, file, line, append(args, "stream", logStream.ToString())...)
}

func (l Logger) Error(message string, logStream Logstream, isTemplate bool, args ...any) {
	var skip int

	if isTemplate {
		skip = 2
	} else {
		skip = 1
	}

	_, file, line, _ := runtime.Caller(skip)
	printLog(LL_ERROR, message, file, line, append(args, "stream", logStream.ToString())...)
}

func (l Logger) Fatal(message string, logStream Logstream, isTemplate bool, args ...any) {
	var skip int

	if isTemplate {
		skip = 2
	} else {
		skip = 1
	}

	_, file, line, _ := runtime.Caller(skip)
	printLog(LL_FATAL, message, file, line, append(args, "stream", logStream.ToString())...)
}

func (l Logger) Debug(message string, args ...any) {
	_, file, line, _ := runtime.Caller(1)

	printLog(LL_DEBUG, message, file, line, args...)
}

func printLog(ll LogLevel, message string, file string, line int, args ...any) {
	args = append(args, "source", file+":"+strconv.Itoa(line))
	switch ll {
	case LL_ERROR:
		slog.Error(message, args...)
	case LL_INFO:
		slog.Info(message, args...)
	case LL_FATAL:
		slog.Error(message, args...)
	case LL_DEBUG:
		slog.Debug(message, args...)
	}
}

func AnyToStr(t any) string {
	return fmt.Sprintf("%v", t)
}

func GenErrorId() string {
	var errorId string
	uuid, err := uuid.NewRandom()
	if err != nil {
		errorId = NA
	} else {
		errorId = uuid.String()
	}
	return errorId
}
