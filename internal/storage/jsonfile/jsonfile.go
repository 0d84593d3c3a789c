// Package jsonfile provides a storage.Storage backed by a single JSON
// document on disk:
//
//	{
//	  "students": { "<student_id>": { ...StudentRecord... } },
//	  "courses":  { "<course_code>": { ...CourseRecord... } }
//	}
//
// Saves are atomic: the document is written to a temporary file in the same
// directory, synced, and renamed over the target. A crash mid-save leaves
// the previous file intact.
package jsonfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/aanand-mishra/student-management/internal/config"
	"github.com/aanand-mishra/student-management/internal/storage"
	"github.com/aanand-mishra/student-management/internal/types"
)

// JSONFile is the JSON-document implementation of storage.Storage.
type JSONFile struct {
	Path string
}

// New returns a JSONFile writing to cfg.StoragePath. Nothing is opened or
// created until the first Save.
func New(cfg *config.Config) *JSONFile {
	return &JSONFile{Path: cfg.StoragePath}
}

// Save encodes snap with two-space indentation and atomically replaces the
// data file.
func (j *JSONFile) Save(snap types.Snapshot) error {
	if snap.Students == nil {
		snap.Students = map[string]types.StudentRecord{}
	}
	if snap.Courses == nil {
		snap.Courses = map[string]types.CourseRecord{}
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return types.Wrap(types.ErrPersistence, err, "cannot encode data")
	}
	data = append(data, '\n')

	if err := writeFileAtomic(j.Path, data, 0o644); err != nil {
		return types.Wrap(types.ErrPersistence, err, "cannot write data file %s", j.Path)
	}
	return nil
}

// Load reads and decodes the data file.
//
//   - file absent        → storage.ErrNoData
//   - syntax/type errors → types.ErrFormat (so is a top-level non-object)
//   - anything else      → types.ErrPersistence
func (j *JSONFile) Load() (types.Snapshot, error) {
	data, err := os.ReadFile(j.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return types.Snapshot{}, storage.ErrNoData
	}
	if err != nil {
		return types.Snapshot{}, types.Wrap(types.ErrPersistence, err, "cannot read data file %s", j.Path)
	}

	var raw json.RawMessage
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&raw); err != nil {
		return types.Snapshot{}, types.Wrap(types.ErrFormat, err, "invalid data file format")
	}
	// Ensure no trailing junk after the document.
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return types.Snapshot{}, types.Errorf(types.ErrFormat, "invalid data file format: trailing content")
	}
	// The document must be an object; null would decode as an empty snapshot.
	if !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("{")) {
		return types.Snapshot{}, types.Errorf(types.ErrFormat, "invalid data file format: top-level value must be an object")
	}

	// "students": null and a missing key both leave a nil map; defaulted below.
	var doc types.Snapshot
	if err := json.Unmarshal(raw, &doc); err != nil {
		return types.Snapshot{}, types.Wrap(types.ErrFormat, err, "invalid data file format")
	}

	if doc.Students == nil {
		doc.Students = map[string]types.StudentRecord{}
	}
	if doc.Courses == nil {
		doc.Courses = map[string]types.CourseRecord{}
	}
	return doc, nil
}

// Close is a no-op; JSONFile holds no open handles between calls.
func (j *JSONFile) Close() error {
	return nil
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("writeFileAtomic: mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, base+".tmp.*")
	if err != nil {
		return fmt.Errorf("writeFileAtomic: create temp: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("writeFileAtomic: write: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		return fmt.Errorf("writeFileAtomic: chmod: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("writeFileAtomic: sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writeFileAtomic: close: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("writeFileAtomic: rename: %w", err)
	}
	committed = true
	syncDir(dir)
	return nil
}

// syncDir makes the rename durable. Best effort: some platforms cannot
// fsync a directory.
func syncDir(dir string) {
	f, err := os.Open(dir)
	if err != nil {
		return
	}
	defer f.Close()
	_ = f.Sync()
}
