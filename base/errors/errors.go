// Copyright (c) 2026, Ember UI Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errors provides small wrappers around the standard library
// errors package plus helpers for logging errors via [log/slog].
package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
)

// New returns an error that formats as the given text.
// It is a direct wrapper of [errors.New].
func New(text string) error {
	return errors.New(text)
}

// Is reports whether any error in err's tree matches target.
// It is a direct wrapper of [errors.Is].
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
// It is a direct wrapper of [errors.As].
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Join returns an error wrapping the given errors.
// It is a direct wrapper of [errors.Join].
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// Log takes the given error and logs it to [slog.Error] if it is non-nil,
// with information about the caller. It returns the error unchanged so
// that it can be used in-line with a return statement.
func Log(err error) error {
	if err != nil {
		slog.Error(err.Error(), "from", CallerInfo())
	}
	return err
}

// Log1 is a version of [Log] for functions that also return a value.
// It logs any non-nil error and passes the value through.
func Log1[T any](v T, err error) T {
	if err != nil {
		slog.Error(err.Error(), "from", CallerInfo())
	}
	return v
}

// Must panics if the given error is non-nil. It should only be used for
// errors that indicate an unrecoverable programming bug.
func Must(err error) {
	if err != nil {
		panic(err)
	}
}

// Must1 is a version of [Must] for functions that also return a value.
func Must1[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// CallerInfo returns the file and line number of the third function up the
// call stack (the caller of the function that called CallerInfo).
func CallerInfo() string {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return "unknown"
	}
	return fmt.Sprintf("%s:%d", file, line)
}
