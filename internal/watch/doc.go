// Package watch reports changes to preset table files.
//
// fsnotify watches directories rather than files so that editors which
// replace a file on save keep being observed. Bursts of events for the same
// file are coalesced into one callback.
package watch
