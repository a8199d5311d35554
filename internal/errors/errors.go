package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/levelup/internal/logger"
)

var (
	// ErrNotFound is returned by stores when a profile or habit does not exist
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput marks errors caused by bad caller input rather than storage failures
	ErrInvalidInput = errors.New("invalid input")
)

// Invalidf builds an error that matches ErrInvalidInput.
func Invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// NotFoundf builds an error that matches ErrNotFound.
func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound)
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}
