// Package model defines the persisted entities of the ANDY logbook:
// the Settings singleton, Students, daily Records and daily Cases.
//
// JSON field names match the backup payload of earlier ANDY releases
// (profNome, matricula, obsDia, ...) so that previously exported
// backups import without translation.
//
// Identity rules:
//   - Every entity carries an opaque primary identifier (ID).
//   - A Record is logically identified by (StudentID, Date).
//   - A Case is logically identified by (Group, Date).
//
// The primary identifier is the storage handle that allows
// overwrite-in-place; the logical key is what lookups use.
package model
