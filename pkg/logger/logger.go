// Package logger provides leveled logging helpers shared by the client
// plumbing and the default console notifier.
package logger

import (
	"log"
	"os"
)

var (
	infoLogger  *log.Logger
	errorLogger *log.Logger
	debugLogger *log.Logger
	warnLogger  *log.Logger
)

func init() {
	infoLogger = log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	errorLogger = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	debugLogger = log.New(os.Stdout, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)
	warnLogger = log.New(os.Stdout, "WARN: ", log.Ldate|log.Ltime|log.Lshortfile)
}

func Info(format string, v ...any) {
	infoLogger.Printf(format, v...)
}

func Error(format string, v ...any) {
	errorLogger.Printf(format, v...)
}

// Debug only emits in development; request traces are too chatty otherwise.
func Debug(format string, v ...any) {
	if os.Getenv("ENVIRONMENT") == "development" {
		debugLogger.Printf(format, v...)
	}
}

func Warn(format string, v ...any) {
	warnLogger.Printf(format, v...)
}
