package service

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/campus-records-api/pkg/config"
	"github.com/noah-isme/campus-records-api/pkg/storage"
)

// backupsSubdir is the storage subdirectory archives land in.
const backupsSubdir = "backups"

// BackupService archives the data directory into timestamped ZIP files.
// It works purely on the filesystem tree; in-memory entities are untouched.
type BackupService struct {
	store   *storage.LocalStorage
	dataDir string
	backup  config.BackupConfig
	metrics *MetricsService
	logger  *zap.Logger
}

// NewBackupService constructs the service.
func NewBackupService(store *storage.LocalStorage, dataDir string, backup config.BackupConfig, metrics *MetricsService, logger *zap.Logger) *BackupService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BackupService{
		store:   store,
		dataDir: dataDir,
		backup:  backup,
		metrics: metrics,
		logger:  logger,
	}
}

// BackupResult describes one archive run.
type BackupResult struct {
	Name  string `json:"name"`
	Size  int64  `json:"size"`
	Files int    `json:"files"`
}

// Create zips the data directory (backups themselves excluded) into
// ccrm_backup_<yyyy-MM-dd_HHmmss>.zip under the backup area.
func (s *BackupService) Create(ctx context.Context) (*BackupResult, error) {
	name := fmt.Sprintf("ccrm_backup_%s.zip", time.Now().Format("2006-01-02_150405"))
	target := filepath.Join(backupsSubdir, name)

	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	files := 0

	err := filepath.WalkDir(s.dataDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(s.dataDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if strings.HasPrefix(rel, backupsSubdir+"/") {
			return nil
		}

		entry, err := zw.Create(rel)
		if err != nil {
			return fmt.Errorf("create archive entry %s: %w", rel, err)
		}
		file, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", rel, err)
		}
		defer file.Close() //nolint:errcheck
		if _, err := io.Copy(entry, file); err != nil {
			return fmt.Errorf("archive %s: %w", rel, err)
		}
		files++
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize archive: %w", err)
	}

	if _, err := s.store.Save(target, buf.Bytes()); err != nil {
		return nil, err
	}

	result := &BackupResult{Name: name, Size: int64(buf.Len()), Files: files}
	s.metrics.SetBackupSize(result.Size)
	s.logger.Info("backup created",
		zap.String("name", name),
		zap.Int64("size", result.Size),
		zap.Int("files", files))
	return result, nil
}

// List returns the stored backup archives with sizes.
func (s *BackupService) List(ctx context.Context) ([]storage.FileInfo, error) {
	return s.store.List(backupsSubdir)
}

// TotalSize returns the recursive byte size of the backup area.
func (s *BackupService) TotalSize(ctx context.Context) (int64, error) {
	return s.store.TotalSize(backupsSubdir)
}

// Cleanup removes archives older than the configured retention window and
// returns the deleted names.
func (s *BackupService) Cleanup(ctx context.Context) ([]string, error) {
	ttl := time.Duration(s.backup.RetentionDays) * 24 * time.Hour
	deleted, err := s.store.CleanupOlderThan(backupsSubdir, ttl)
	if err != nil {
		return nil, err
	}
	if len(deleted) > 0 {
		s.logger.Info("backup cleanup", zap.Int("deleted", len(deleted)))
	}
	return deleted, nil
}
