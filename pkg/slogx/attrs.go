package slogx

import (
	"fmt"
	"log/slog"
)

// Error returns a slog.Attr for the provided error. The attribute key is
// "error" and the value is the error's message, so every log line in the
// module reports failures under the same key.
func Error(err error) slog.Attr {
	return slog.String("error", err.Error())
}

// Stringer returns a slog.Attr with the given key and the string
// representation of a fmt.Stringer value. Handy for logging category tags and
// other domain values that know how to print themselves.
func Stringer(key string, value fmt.Stringer) slog.Attr {
	return slog.String(key, value.String())
}
