// Package cache stores parsed preset tables in a SQLite database.
//
// Entries are keyed by the checksum the loader computes over a source's
// bytes and parse options, so an edited table file simply misses. Payloads
// are msgpack-encoded presets together with the diagnostics produced when
// the table was first parsed.
package cache
