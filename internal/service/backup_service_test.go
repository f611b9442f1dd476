package service

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-records-api/pkg/config"
	"github.com/noah-isme/campus-records-api/pkg/storage"
)

func newBackupFixture(t *testing.T, retentionDays int) (*BackupService, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)
	svc := NewBackupService(store, dir, config.BackupConfig{RetentionDays: retentionDays}, NewMetricsService(), zap.NewNop())
	return svc, dir
}

func TestBackupCreate(t *testing.T) {
	svc, dir := newBackupFixture(t, 30)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "exports"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "exports", "students.csv"), []byte("student_id\nS001\n"), 0o644))

	result, err := svc.Create(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.Name, "ccrm_backup_"))
	assert.True(t, strings.HasSuffix(result.Name, ".zip"))
	assert.Equal(t, 1, result.Files)
	assert.Greater(t, result.Size, int64(0))

	raw, err := os.ReadFile(filepath.Join(dir, "backups", result.Name))
	require.NoError(t, err)
	reader, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	require.NoError(t, err)
	require.Len(t, reader.File, 1)
	assert.Equal(t, "exports/students.csv", reader.File[0].Name)
}

func TestBackupExcludesExistingBackups(t *testing.T) {
	svc, dir := newBackupFixture(t, 30)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "data.csv"), []byte("x"), 0o644))

	first, err := svc.Create(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, first.Files)

	// The first archive must not be swallowed by the second.
	second, err := svc.Create(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, second.Files)
}

func TestBackupListAndTotalSize(t *testing.T) {
	svc, dir := newBackupFixture(t, 30)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data.csv"), []byte("x"), 0o644))

	_, err := svc.Create(context.Background())
	require.NoError(t, err)

	files, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, files, 1)

	total, err := svc.TotalSize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, files[0].Size, total)
}

func TestBackupCleanup(t *testing.T) {
	svc, dir := newBackupFixture(t, 30)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data.csv"), []byte("x"), 0o644))

	result, err := svc.Create(context.Background())
	require.NoError(t, err)

	// Nothing is old enough yet.
	deleted, err := svc.Cleanup(context.Background())
	require.NoError(t, err)
	assert.Empty(t, deleted)

	// Age the archive past the retention window.
	old := time.Now().Add(-31 * 24 * time.Hour)
	archivePath := filepath.Join(dir, "backups", result.Name)
	require.NoError(t, os.Chtimes(archivePath, old, old))

	deleted, err = svc.Cleanup(context.Background())
	require.NoError(t, err)
	require.Len(t, deleted, 1)

	files, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, files)
}
