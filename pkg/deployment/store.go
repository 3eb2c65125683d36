package deployment

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// RecordFile is the fixed name of the primary document inside a project
	// directory.
	RecordFile = "deployment.json"
	// BackupFile holds the previous generation of the document. Overwritten
	// on every save, so it always lags the primary by exactly one save.
	BackupFile = "deployment.backup.json"
)

// Store reads and writes the deployment record for one project directory.
// It is an explicit handle: callers thread it (and the record it returns)
// through every operation. There is no ambient global mirroring the file.
//
// The store performs no locking. Correctness assumes the operator serializes
// invocations against one project; concurrent writers are last-writer-wins.
type Store struct {
	dir string
}

// NewStore returns a store rooted at the given project directory.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns the location of the primary document.
func (s *Store) Path() string { return filepath.Join(s.dir, RecordFile) }

// BackupPath returns the location of the single-generation backup.
func (s *Store) BackupPath() string { return filepath.Join(s.dir, BackupFile) }

// Load reads the deployment record. A missing file yields *NotFoundError;
// malformed JSON yields *ParseError carrying the backup path so the caller
// can offer restoration.
//
// Documents written before completion tracking existed have no state map.
// Load synthesizes one from resource-field presence and persists the
// canonicalized shape immediately, so the migration runs at most once per
// document.
func (s *Store) Load() (*Record, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Path: s.Path()}
		}
		return nil, fmt.Errorf("read deployment record: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, &ParseError{Path: s.Path(), BackupPath: s.BackupPath(), Err: err}
	}

	migrated := rec.State == nil
	rec.Normalize()
	if migrated {
		synthesizeState(&rec)
		if err := s.Save(&rec); err != nil {
			return nil, fmt.Errorf("persist migrated record: %w", err)
		}
	}
	return &rec, nil
}

// Save copies the current primary to the backup, then writes the record in
// full. A crash mid-write can corrupt the primary; the backup retains the
// previous last known good state.
func (s *Store) Save(rec *Record) error {
	if prev, err := os.ReadFile(s.Path()); err == nil {
		if err := os.WriteFile(s.BackupPath(), prev, 0644); err != nil {
			return fmt.Errorf("write backup: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("read current record for backup: %w", err)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal deployment record: %w", err)
	}
	if err := os.WriteFile(s.Path(), data, 0644); err != nil {
		return fmt.Errorf("write deployment record: %w", err)
	}
	return nil
}

// synthesizeState derives the completion map from resource-field presence.
// Used once per document, when loading a record that predates step tracking.
func synthesizeState(rec *Record) {
	rec.State = StepState{
		StepContractsDeployed: rec.HasContractAddresses(),
		StepDataDAORegistered: rec.DLPID != nil,
		StepProofConfigured:   rec.ProofRepo != "",
		StepProofPublished:    rec.ProofURL != "",
		StepRefinerConfigured: rec.RefinerRepo != "",
		StepRefinerPublished:  rec.RefinerID != nil,
		StepUIConfigured:      rec.UIRepo != "",
	}
}
