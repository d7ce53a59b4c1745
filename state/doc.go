// Package state holds the observable state behind each ghscout screen.
//
// A container owns data, a loading flag and an error message for one
// concern. Containers never return errors: a failed fetch becomes an
// ErrorMessage in the container's snapshot and previously loaded data is
// kept. Each container allows one fetch in flight at a time; calls made
// while loading are no-ops.
//
// Observers registered with Subscribe receive a complete snapshot after
// every change, so a reader never sees a partially applied update.
package state
