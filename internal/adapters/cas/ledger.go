// Package cas implements content-addressed storage of sanitization results.
package cas

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/zerr"

	"go.trai.ch/respec/internal/core/domain"
)

// Ledger implements ports.Ledger using a file-per-package strategy. All
// operations take an explicit workspace root so one instance can serve
// any number of workspaces.
type Ledger struct{}

// NewLedger creates a new Ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Get retrieves the last record for a package.
func (l *Ledger) Get(root, pkg string) (*domain.SanitizeRecord, error) {
	filename := l.filename(root, pkg)
	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.Wrap(err, domain.ErrLedgerReadFailed.Error())
	}

	var rec domain.SanitizeRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, zerr.Wrap(err, domain.ErrLedgerParseFailed.Error())
	}

	return &rec, nil
}

// Put stores the record for a package.
func (l *Ledger) Put(root string, rec domain.SanitizeRecord) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrLedgerWriteFailed.Error())
	}

	filename := l.filename(root, rec.Package)
	if err := os.MkdirAll(filepath.Dir(filename), domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrLedgerWriteFailed.Error())
	}

	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	if err := os.WriteFile(filename, data, domain.FilePerm); err != nil {
		return zerr.Wrap(err, domain.ErrLedgerWriteFailed.Error())
	}

	return nil
}

func (l *Ledger) filename(root, pkg string) string {
	hash := sha256.Sum256([]byte(pkg))
	hexHash := hex.EncodeToString(hash[:])
	return filepath.Join(root, domain.LedgerPath(), hexHash+".json")
}
