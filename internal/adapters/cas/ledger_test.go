package cas_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.trai.ch/respec/internal/adapters/cas"
	"go.trai.ch/respec/internal/core/domain"
)

func TestLedger_PutGet(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	ledger := cas.NewLedger()

	rec := domain.SanitizeRecord{
		Package:     "demo_pkg",
		Digest:      domain.TextDigest("Name: demo\n"),
		CorrectedAt: time.Now().UTC().Truncate(time.Second),
	}

	t.Run("put and get", func(t *testing.T) {
		err := ledger.Put(tmpDir, rec)
		require.NoError(t, err)

		got, err := ledger.Get(tmpDir, "demo_pkg")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, rec, *got)
	})

	t.Run("get missing", func(t *testing.T) {
		got, err := ledger.Get(tmpDir, "never_seen")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("put overwrites", func(t *testing.T) {
		updated := rec
		updated.Digest = domain.TextDigest("Name: demo\nVersion: 2\n")
		require.NoError(t, ledger.Put(tmpDir, updated))

		got, err := ledger.Get(tmpDir, "demo_pkg")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, updated.Digest, got.Digest)
	})
}

func TestLedger_GetCorrupt(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	ledger := cas.NewLedger()

	require.NoError(t, ledger.Put(tmpDir, domain.SanitizeRecord{Package: "broken"}))

	dir := filepath.Join(tmpDir, domain.LedgerPath())
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.NoError(t, os.WriteFile(filepath.Join(dir, entries[0].Name()), []byte("not json"), 0o644))

	_, err = ledger.Get(tmpDir, "broken")
	assert.ErrorContains(t, err, domain.ErrLedgerParseFailed.Error())
}
