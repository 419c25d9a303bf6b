// Package backup serializes the entire store to a portable JSON
// document and restores from one.
//
// The document layout matches the backup files of earlier ANDY
// releases, so exports from older installations import unchanged. Import is a raw
// overwrite by primary identifier, NOT a logical-key reconciliation:
// a backup carrying stale primary identifiers that collide with
// different logical rows already present can leave duplicate
// (student, date) rows behind. That limitation is part of the format's
// contract and is deliberately preserved.
package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/andyapp/andy/internal/model"
	"github.com/andyapp/andy/internal/store"
)

// FormatVersion is the backup document version this codec produces.
const FormatVersion = 1

// Document is a point-in-time snapshot of all persisted collections.
type Document struct {
	ExportedAt string          `json:"exportedAt"` // RFC 3339
	Settings   model.Settings  `json:"settings"`
	Students   []model.Student `json:"students"`
	Records    []model.Record  `json:"records"`
	Cases      []model.Case    `json:"cases"`
	Version    int             `json:"version"`
}

// InvalidBackupError reports a malformed or unversioned backup
// document. Import aborts before any write when this is returned.
type InvalidBackupError struct {
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *InvalidBackupError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid backup: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid backup: %s", e.Reason)
}

func (e *InvalidBackupError) Unwrap() error { return e.Err }

// IsInvalidBackup returns true if the error is an InvalidBackupError.
// Uses errors.As to handle wrapped errors.
func IsInvalidBackup(err error) bool {
	var ib *InvalidBackupError
	return errors.As(err, &ib)
}

// Export reads every collection and wraps it with an export timestamp
// and the current format version. Settings fall back to first-run
// defaults when none were ever saved, mirroring what the editing
// surface would see.
func Export(ctx context.Context, st *store.Store, now time.Time) (Document, error) {
	settings, ok, err := st.GetSettings(ctx)
	if err != nil {
		return Document{}, fmt.Errorf("export snapshot: %w", err)
	}
	if !ok {
		settings = model.DefaultSettings(now.Format(model.ISODate))
	}

	students, err := st.AllStudents(ctx)
	if err != nil {
		return Document{}, fmt.Errorf("export snapshot: %w", err)
	}
	records, err := st.AllRecords(ctx)
	if err != nil {
		return Document{}, fmt.Errorf("export snapshot: %w", err)
	}
	cases, err := st.AllCases(ctx)
	if err != nil {
		return Document{}, fmt.Errorf("export snapshot: %w", err)
	}

	return Document{
		ExportedAt: now.UTC().Format(time.RFC3339),
		Settings:   settings,
		Students:   students,
		Records:    records,
		Cases:      cases,
		Version:    FormatVersion,
	}, nil
}

// Import upserts every entity of the document into the store.
//
// Settings are forced onto the fixed singleton identifier; students,
// records and cases are written by their own primary identifiers via
// raw Put. No logical-key reconciliation happens here (see the
// package comment). An unversioned document is rejected before any
// write. There is no rollback on partial failure.
func Import(ctx context.Context, st *store.Store, doc Document) error {
	if doc.Version == 0 {
		return &InvalidBackupError{Reason: "missing version field"}
	}

	settings := doc.Settings
	settings.ID = model.SettingsID
	if err := st.PutSettings(ctx, settings); err != nil {
		return fmt.Errorf("import snapshot: %w", err)
	}

	for _, s := range doc.Students {
		if err := st.PutStudent(ctx, s); err != nil {
			return fmt.Errorf("import snapshot: student %s: %w", s.ID, err)
		}
	}
	for _, r := range doc.Records {
		if err := st.PutRecord(ctx, r); err != nil {
			return fmt.Errorf("import snapshot: record %s: %w", r.ID, err)
		}
	}
	for _, c := range doc.Cases {
		if err := st.PutCase(ctx, c); err != nil {
			return fmt.Errorf("import snapshot: case %s: %w", c.ID, err)
		}
	}

	return nil
}

// Write encodes a document as indented JSON, the same shape earlier
// releases produced.
func Write(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	return nil
}

// Read decodes a backup document. Malformed JSON is reported as
// InvalidBackupError; the version check happens at Import time so a
// Read-only caller can still inspect unversioned files.
func Read(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, &InvalidBackupError{Reason: "malformed JSON", Err: err}
	}
	return doc, nil
}
