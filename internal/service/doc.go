// Package service is the invocation surface of bone-renamer.
//
// A Service loads the configured preset tables fresh for every call and
// turns the outcome of renaming, detecting or listing into a Result. Errors
// from the lower packages are classified into diagnostics here; no call
// panics or returns a bare error to its caller.
package service
