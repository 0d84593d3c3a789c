// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// WHY SQLite?
// ───────────
// SQLite stores everything in a single file on disk, like the JSON backend,
// but every Save runs inside a transaction: a failed save rolls back and the
// previous snapshot survives.
//
// The snapshot is stored normalized:
//
//	students        (student_id PK, name, age, address)
//	courses         (course_code PK, course_name, instructor)
//	student_courses (student_id, position, course_name)  ordered set
//	course_students (course_code, position, student_id)  ordered set
//	grades          (student_id, course_name, grade)
//	snapshot_meta   (id = 1, saved_at)                    marks "has been saved"
//
// The blank import below registers the sqlite3 driver with database/sql.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aanand-mishra/student-management/internal/config"
	"github.com/aanand-mishra/student-management/internal/storage"
	"github.com/aanand-mishra/student-management/internal/types"

	// Blank import: side-effect only (registers the "sqlite3" driver).
	_ "github.com/mattn/go-sqlite3"
)

// schema is idempotent, safe to run on every startup.
const schema = `
CREATE TABLE IF NOT EXISTS students (
	student_id TEXT    PRIMARY KEY,
	name       TEXT    NOT NULL,
	age        INTEGER NOT NULL,
	address    TEXT    NOT NULL
);
CREATE TABLE IF NOT EXISTS courses (
	course_code TEXT PRIMARY KEY,
	course_name TEXT NOT NULL,
	instructor  TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS student_courses (
	student_id  TEXT    NOT NULL,
	position    INTEGER NOT NULL,
	course_name TEXT    NOT NULL,
	PRIMARY KEY (student_id, position)
);
CREATE TABLE IF NOT EXISTS course_students (
	course_code TEXT    NOT NULL,
	position    INTEGER NOT NULL,
	student_id  TEXT    NOT NULL,
	PRIMARY KEY (course_code, position)
);
CREATE TABLE IF NOT EXISTS grades (
	student_id  TEXT NOT NULL,
	course_name TEXT NOT NULL,
	grade       TEXT NOT NULL,
	PRIMARY KEY (student_id, course_name)
);
CREATE TABLE IF NOT EXISTS snapshot_meta (
	id       INTEGER PRIMARY KEY CHECK (id = 1),
	saved_at TEXT    NOT NULL
);
`

// SQLite is the concrete implementation of storage.Storage.
// It holds a *sql.DB which is a connection pool managed by database/sql.
type SQLite struct {
	Db *sql.DB
}

// New opens the SQLite database at cfg.StoragePath, creates the tables if
// they do not already exist, and returns a ready-to-use *SQLite.
func New(cfg *config.Config) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.StoragePath), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite.New: create dir: %w", err)
	}
	db, err := sql.Open("sqlite3", cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: create tables: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Save replaces every row with the contents of snap in a single transaction.
// Either the whole snapshot is written or, on any error, nothing changes.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) Save(snap types.Snapshot) error {
	tx, err := s.Db.Begin()
	if err != nil {
		return types.Wrap(types.ErrPersistence, err, "cannot start save")
	}
	// Rollback after a successful Commit is a no-op returning ErrTxDone.
	defer tx.Rollback()

	for _, table := range []string{"students", "courses", "student_courses", "course_students", "grades", "snapshot_meta"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return types.Wrap(types.ErrPersistence, err, "cannot clear %s", table)
		}
	}

	if err := insertStudents(tx, snap.Students); err != nil {
		return types.Wrap(types.ErrPersistence, err, "cannot save students")
	}
	if err := insertCourses(tx, snap.Courses); err != nil {
		return types.Wrap(types.ErrPersistence, err, "cannot save courses")
	}
	if _, err := tx.Exec(
		"INSERT INTO snapshot_meta (id, saved_at) VALUES (1, ?)",
		time.Now().UTC().Format(time.RFC3339),
	); err != nil {
		return types.Wrap(types.ErrPersistence, err, "cannot save snapshot marker")
	}

	if err := tx.Commit(); err != nil {
		return types.Wrap(types.ErrPersistence, err, "cannot commit save")
	}
	return nil
}

func insertStudents(tx *sql.Tx, students map[string]types.StudentRecord) error {
	studentStmt, err := tx.Prepare("INSERT INTO students (student_id, name, age, address) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("insertStudents: prepare students: %w", err)
	}
	defer studentStmt.Close()

	courseStmt, err := tx.Prepare("INSERT INTO student_courses (student_id, position, course_name) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("insertStudents: prepare student_courses: %w", err)
	}
	defer courseStmt.Close()

	gradeStmt, err := tx.Prepare("INSERT INTO grades (student_id, course_name, grade) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("insertStudents: prepare grades: %w", err)
	}
	defer gradeStmt.Close()

	for id, rec := range students {
		// The map key is the identity; rec.StudentID is not stored twice.
		if _, err := studentStmt.Exec(id, rec.Name, rec.Age, rec.Address); err != nil {
			return fmt.Errorf("insertStudents: exec %s: %w", id, err)
		}
		for pos, course := range rec.Courses {
			if _, err := courseStmt.Exec(id, pos, course); err != nil {
				return fmt.Errorf("insertStudents: course %s/%s: %w", id, course, err)
			}
		}
		for course, grade := range rec.Grades {
			if _, err := gradeStmt.Exec(id, course, grade); err != nil {
				return fmt.Errorf("insertStudents: grade %s/%s: %w", id, course, err)
			}
		}
	}
	return nil
}

func insertCourses(tx *sql.Tx, courses map[string]types.CourseRecord) error {
	courseStmt, err := tx.Prepare("INSERT INTO courses (course_code, course_name, instructor) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("insertCourses: prepare courses: %w", err)
	}
	defer courseStmt.Close()

	rosterStmt, err := tx.Prepare("INSERT INTO course_students (course_code, position, student_id) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("insertCourses: prepare course_students: %w", err)
	}
	defer rosterStmt.Close()

	for code, rec := range courses {
		if _, err := courseStmt.Exec(code, rec.CourseName, rec.Instructor); err != nil {
			return fmt.Errorf("insertCourses: exec %s: %w", code, err)
		}
		for pos, id := range rec.Students {
			if _, err := rosterStmt.Exec(code, pos, id); err != nil {
				return fmt.Errorf("insertCourses: student %s/%s: %w", code, id, err)
			}
		}
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Load reads every table back into a Snapshot.
// Returns storage.ErrNoData when the database has never been saved to.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) Load() (types.Snapshot, error) {
	var savedAt string
	err := s.Db.QueryRow("SELECT saved_at FROM snapshot_meta WHERE id = 1").Scan(&savedAt)
	if err == sql.ErrNoRows {
		return types.Snapshot{}, storage.ErrNoData
	}
	if err != nil {
		return types.Snapshot{}, types.Wrap(types.ErrPersistence, err, "cannot read snapshot marker")
	}

	snap := types.NewSnapshot()
	if err := s.loadStudents(snap.Students); err != nil {
		return types.Snapshot{}, types.Wrap(types.ErrPersistence, err, "cannot load students")
	}
	if err := s.loadCourses(snap.Courses); err != nil {
		return types.Snapshot{}, types.Wrap(types.ErrPersistence, err, "cannot load courses")
	}
	return snap, nil
}

func (s *SQLite) loadStudents(out map[string]types.StudentRecord) error {
	rows, err := s.Db.Query("SELECT student_id, name, age, address FROM students")
	if err != nil {
		return fmt.Errorf("loadStudents: query students: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		rec := types.StudentRecord{Grades: map[string]string{}, Courses: []string{}}
		if err := rows.Scan(&rec.StudentID, &rec.Name, &rec.Age, &rec.Address); err != nil {
			return fmt.Errorf("loadStudents: scan student: %w", err)
		}
		out[rec.StudentID] = rec
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("loadStudents: rows iteration: %w", err)
	}

	courseRows, err := s.Db.Query("SELECT student_id, course_name FROM student_courses ORDER BY student_id, position")
	if err != nil {
		return fmt.Errorf("loadStudents: query student_courses: %w", err)
	}
	defer courseRows.Close()

	for courseRows.Next() {
		var id, course string
		if err := courseRows.Scan(&id, &course); err != nil {
			return fmt.Errorf("loadStudents: scan student_courses: %w", err)
		}
		if rec, ok := out[id]; ok {
			rec.Courses = append(rec.Courses, course)
			out[id] = rec
		}
	}
	if err := courseRows.Err(); err != nil {
		return fmt.Errorf("loadStudents: student_courses iteration: %w", err)
	}

	gradeRows, err := s.Db.Query("SELECT student_id, course_name, grade FROM grades")
	if err != nil {
		return fmt.Errorf("loadStudents: query grades: %w", err)
	}
	defer gradeRows.Close()

	for gradeRows.Next() {
		var id, course, grade string
		if err := gradeRows.Scan(&id, &course, &grade); err != nil {
			return fmt.Errorf("loadStudents: scan grades: %w", err)
		}
		if rec, ok := out[id]; ok {
			rec.Grades[course] = grade
		}
	}
	return gradeRows.Err()
}

func (s *SQLite) loadCourses(out map[string]types.CourseRecord) error {
	rows, err := s.Db.Query("SELECT course_code, course_name, instructor FROM courses")
	if err != nil {
		return fmt.Errorf("loadCourses: query courses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		rec := types.CourseRecord{Students: []string{}}
		if err := rows.Scan(&rec.CourseCode, &rec.CourseName, &rec.Instructor); err != nil {
			return fmt.Errorf("loadCourses: scan course: %w", err)
		}
		out[rec.CourseCode] = rec
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("loadCourses: rows iteration: %w", err)
	}

	rosterRows, err := s.Db.Query("SELECT course_code, student_id FROM course_students ORDER BY course_code, position")
	if err != nil {
		return fmt.Errorf("loadCourses: query course_students: %w", err)
	}
	defer rosterRows.Close()

	for rosterRows.Next() {
		var code, id string
		if err := rosterRows.Scan(&code, &id); err != nil {
			return fmt.Errorf("loadCourses: scan course_students: %w", err)
		}
		if rec, ok := out[code]; ok {
			rec.Students = append(rec.Students, id)
			out[code] = rec
		}
	}
	return rosterRows.Err()
}

// Close closes the underlying connection pool.
func (s *SQLite) Close() error {
	return s.Db.Close()
}
