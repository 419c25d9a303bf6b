// Package logbook is the record-reconciliation layer of ANDY.
//
// It maps logical keys to single entities: a Record is identified by
// (studentID, date) and a Case by (group, date). Resolve returns the
// stored entity for a key, or synthesizes an unsaved draft with a
// fresh primary identifier when none exists. Save re-resolves the
// logical key before writing and adopts any existing row's primary
// identifier into the draft, so saving the same key twice always
// overwrites one row instead of inserting a second.
//
// The package also hosts the scoring calculator and the roster and
// settings helpers the CLI consumes.
package logbook
