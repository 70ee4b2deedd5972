// Package backup archives and restores the cards database as a timestamped ZIP file.
package backup

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"repeater/internal/repeatererr"
)

const dbEntryName = "cards.db"

// Manager creates and restores backups of a single SQLite database file.
type Manager struct {
	dbPath    string
	backupDir string
}

// NewManager returns a Manager for the database at dbPath, writing backups
// into backupDir.
func NewManager(dbPath, backupDir string) *Manager {
	return &Manager{dbPath: dbPath, backupDir: backupDir}
}

// Create writes a timestamped ZIP backup of the database and returns its path.
// The caller must ensure the store is closed (or otherwise quiesced) first, since
// SQLite's file is copied directly rather than through a consistent snapshot API.
func (m *Manager) Create(now time.Time) (string, error) {
	if err := os.MkdirAll(m.backupDir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	name := fmt.Sprintf("repeater-backup-%s.zip", now.Format("20060102-150405"))
	path := filepath.Join(m.backupDir, name)

	zipFile, err := os.Create(path)
	if err != nil {
		return "", &repeatererr.StoreError{Op: "create_backup", Err: err}
	}
	defer zipFile.Close()

	zw := zip.NewWriter(zipFile)
	defer zw.Close()

	if err := addFileToZip(zw, m.dbPath, dbEntryName); err != nil {
		return "", fmt.Errorf("failed to add database to backup: %w", err)
	}

	info := fmt.Sprintf("created: %s\nsource: %s\n", now.Format(time.RFC3339), filepath.Base(m.dbPath))
	w, err := zw.Create("backup-info.txt")
	if err != nil {
		return "", fmt.Errorf("failed to write backup metadata: %w", err)
	}
	if _, err := w.Write([]byte(info)); err != nil {
		return "", fmt.Errorf("failed to write backup metadata: %w", err)
	}

	return path, nil
}

// Restore replaces the database at m.dbPath with the one stored in backupPath.
// The current database is preserved alongside as dbPath+".pre-restore.backup"
// before being overwritten. The caller must close any open store handle on
// m.dbPath before calling Restore.
func (m *Manager) Restore(backupPath string) error {
	if _, err := os.Stat(backupPath); err != nil {
		return &repeatererr.NotFoundError{What: fmt.Sprintf("backup file %s", backupPath)}
	}

	zr, err := zip.OpenReader(backupPath)
	if err != nil {
		return fmt.Errorf("failed to open backup file: %w", err)
	}
	defer zr.Close()

	var dbFile *zip.File
	for _, f := range zr.File {
		if f.Name == dbEntryName {
			dbFile = f
			break
		}
	}
	if dbFile == nil {
		return fmt.Errorf("backup %s does not contain %s", backupPath, dbEntryName)
	}

	tempPath := m.dbPath + ".restore.tmp"
	defer os.Remove(tempPath)
	if err := extractFile(dbFile, tempPath); err != nil {
		return fmt.Errorf("failed to extract database from backup: %w", err)
	}

	if _, err := os.Stat(m.dbPath); err == nil {
		if err := copyFile(m.dbPath, m.dbPath+".pre-restore.backup"); err != nil {
			return fmt.Errorf("failed to preserve current database before restore: %w", err)
		}
	}

	if err := os.Rename(tempPath, m.dbPath); err != nil {
		return fmt.Errorf("failed to replace database with restored copy: %w", err)
	}
	return nil
}

// Prune removes backups beyond the retentionCount most recent, oldest first.
func (m *Manager) Prune(retentionCount int) error {
	files, err := filepath.Glob(filepath.Join(m.backupDir, "repeater-backup-*.zip"))
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(files) <= retentionCount {
		return nil
	}

	type dated struct {
		path    string
		modTime time.Time
	}
	var entries []dated
	for _, path := range files {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		entries = append(entries, dated{path: path, modTime: info.ModTime()})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].modTime.Before(entries[j].modTime) })

	toDelete := len(entries) - retentionCount
	for i := 0; i < toDelete; i++ {
		if err := os.Remove(entries[i].path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", entries[i].path, err)
		}
	}
	return nil
}

func addFileToZip(zw *zip.Writer, filePath, nameInZip string) error {
	f, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer f.Close()

	w, err := zw.Create(nameInZip)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, f)
	return err
}

func extractFile(zf *zip.File, destPath string) error {
	r, err := zf.Open()
	if err != nil {
		return err
	}
	defer r.Close()

	w, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer w.Close()

	_, err = io.Copy(w, r)
	return err
}

func copyFile(src, dst string) error {
	s, err := os.Open(src)
	if err != nil {
		return err
	}
	defer s.Close()

	d, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer d.Close()

	_, err = io.Copy(d, s)
	return err
}
