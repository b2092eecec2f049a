//go:build eqdebug

// Package assert turns contract violations into panics when the module is
// built with the eqdebug tag. Release builds compile the checks away and
// callers fall back to their documented defaults.
package assert

import "fmt"

// Enabled reports whether assertions panic.
const Enabled = true

// Failf panics with the formatted message.
func Failf(format string, args ...any) {
	panic(fmt.Sprintf(format, args...))
}
