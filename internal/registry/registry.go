// Package registry owns every Student and Course in the process and is the
// only place where cross-entity rules are enforced:
//
//   - student_id and course_code are unique keys
//   - enrollment is recorded on both sides (student.Courses holds the course
//     NAME, course.Students holds the student ID) or on neither
//   - a grade can only be given for a course the student is enrolled in
//
// Every operation validates first and mutates last, so a failed call leaves
// the registry exactly as it was.
//
// A Registry is not safe for concurrent use; it is owned by the single
// goroutine running the shell.
package registry

import (
	"errors"
	"fmt"
	"sort"

	"github.com/aanand-mishra/student-management/internal/storage"
	"github.com/aanand-mishra/student-management/internal/types"
)

// Registry is the student management system: two keyed collections.
type Registry struct {
	students map[string]*types.Student
	courses  map[string]*types.Course
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		students: map[string]*types.Student{},
		courses:  map[string]*types.Course{},
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Lookups
// ─────────────────────────────────────────────────────────────────────────────

// FindStudent returns a copy of the student with the exact id.
func (r *Registry) FindStudent(studentID string) (types.Student, bool) {
	s, ok := r.students[studentID]
	if !ok {
		return types.Student{}, false
	}
	return s.Clone(), true
}

// FindCourse returns a copy of the course with the exact code.
func (r *Registry) FindCourse(courseCode string) (types.Course, bool) {
	c, ok := r.courses[courseCode]
	if !ok {
		return types.Course{}, false
	}
	return c.Clone(), true
}

// StudentNames resolves student IDs to names, in order. Unknown IDs are
// skipped.
func (r *Registry) StudentNames(studentIDs []string) []string {
	names := make([]string, 0, len(studentIDs))
	for _, id := range studentIDs {
		if s, ok := r.students[id]; ok {
			names = append(names, s.Name)
		}
	}
	return names
}

// Len returns the number of students and courses.
func (r *Registry) Len() (students, courses int) {
	return len(r.students), len(r.courses)
}

// ─────────────────────────────────────────────────────────────────────────────
// Mutations
// ─────────────────────────────────────────────────────────────────────────────

// AddStudent creates and stores a new student.
//
// Errors:
//
//	types.ErrValidation: empty name/address/id or age <= 0
//	types.ErrConflict:   studentID already registered
func (r *Registry) AddStudent(name string, age int, address, studentID string) (types.Student, error) {
	rec := types.StudentRecord{Name: name, Age: age, Address: address, StudentID: studentID}
	if err := types.Validate(rec); err != nil {
		return types.Student{}, types.Wrap(types.ErrValidation, err, "invalid student")
	}
	if _, exists := r.students[studentID]; exists {
		return types.Student{}, types.Errorf(types.ErrConflict, "student with ID %s already exists", studentID)
	}

	s := types.NewStudent(name, age, address, studentID)
	r.students[studentID] = s
	return s.Clone(), nil
}

// AddCourse creates and stores a new course.
//
// Errors:
//
//	types.ErrValidation: empty name/code/instructor
//	types.ErrConflict:   courseCode already registered
func (r *Registry) AddCourse(courseName, courseCode, instructor string) (types.Course, error) {
	rec := types.CourseRecord{CourseName: courseName, CourseCode: courseCode, Instructor: instructor}
	if err := types.Validate(rec); err != nil {
		return types.Course{}, types.Wrap(types.ErrValidation, err, "invalid course")
	}
	if _, exists := r.courses[courseCode]; exists {
		return types.Course{}, types.Errorf(types.ErrConflict, "course with code %s already exists", courseCode)
	}

	c := types.NewCourse(courseName, courseCode, instructor)
	r.courses[courseCode] = c
	return c.Clone(), nil
}

// Enroll links a student and a course on both sides.
//
// Membership is checked by course NAME in the student's course list, so two
// courses sharing a name count as the same enrollment.
//
// Errors:
//
//	types.ErrNotFound: unknown studentID or courseCode
//	types.ErrState:    student already enrolled
func (r *Registry) Enroll(studentID, courseCode string) error {
	s, c, err := r.pair(studentID, courseCode)
	if err != nil {
		return err
	}
	if s.IsEnrolled(c.CourseName) {
		return types.Errorf(types.ErrState, "student %s is already enrolled in %s", s.Name, c.CourseName)
	}

	s.EnrollCourse(c.CourseName)
	c.AddStudent(studentID)
	return nil
}

// AddGrade records grade for the student in the course, overwriting any
// previous grade.
//
// Errors:
//
//	types.ErrNotFound:   unknown studentID or courseCode
//	types.ErrState:      student not enrolled in the course
//	types.ErrValidation: empty grade
func (r *Registry) AddGrade(studentID, courseCode, grade string) error {
	s, c, err := r.pair(studentID, courseCode)
	if err != nil {
		return err
	}
	if !s.IsEnrolled(c.CourseName) {
		return types.Errorf(types.ErrState, "student %s is not enrolled in %s", s.Name, c.CourseName)
	}
	if grade == "" {
		return types.Errorf(types.ErrValidation, "grade cannot be empty")
	}

	s.AddGrade(c.CourseName, grade)
	return nil
}

func (r *Registry) pair(studentID, courseCode string) (*types.Student, *types.Course, error) {
	s, ok := r.students[studentID]
	if !ok {
		return nil, nil, types.Errorf(types.ErrNotFound, "student with ID %s not found", studentID)
	}
	c, ok := r.courses[courseCode]
	if !ok {
		return nil, nil, types.Errorf(types.ErrNotFound, "course with code %s not found", courseCode)
	}
	return s, c, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Snapshot / persistence
// ─────────────────────────────────────────────────────────────────────────────

// Snapshot dumps the whole registry to record form.
func (r *Registry) Snapshot() types.Snapshot {
	snap := types.NewSnapshot()
	for id, s := range r.students {
		snap.Students[id] = s.Dump()
	}
	for code, c := range r.courses {
		snap.Courses[code] = c.Dump()
	}
	return snap
}

// Restore replaces the registry's contents with snap.
//
// Every record is validated and must be stored under its own key. If any
// record is rejected the registry is left untouched and a types.ErrFormat
// error is returned.
func (r *Registry) Restore(snap types.Snapshot) error {
	students := make(map[string]*types.Student, len(snap.Students))
	for _, id := range sortedKeys(snap.Students) {
		rec := snap.Students[id]
		if err := checkRecord(rec, id, rec.StudentID); err != nil {
			return types.Wrap(types.ErrFormat, err, "invalid student record %q", id)
		}
		students[id] = types.StudentFromRecord(rec)
	}

	courses := make(map[string]*types.Course, len(snap.Courses))
	for _, code := range sortedKeys(snap.Courses) {
		rec := snap.Courses[code]
		if err := checkRecord(rec, code, rec.CourseCode); err != nil {
			return types.Wrap(types.ErrFormat, err, "invalid course record %q", code)
		}
		courses[code] = types.CourseFromRecord(rec)
	}

	r.students = students
	r.courses = courses
	return nil
}

func checkRecord(rec any, key, ownKey string) error {
	if err := types.Validate(rec); err != nil {
		return err
	}
	if key != ownKey {
		return fmt.Errorf("stored under key %q but identifies as %q", key, ownKey)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Save writes a snapshot of the registry to store.
func (r *Registry) Save(store storage.Storage) error {
	if err := store.Save(r.Snapshot()); err != nil {
		return fmt.Errorf("registry.Save: %w", err)
	}
	return nil
}

// Load replaces the registry's contents with what store holds.
//
// loaded is false (and err nil) when the store has nothing saved yet; the
// registry is unchanged in that case. On any error the registry is also
// unchanged.
func (r *Registry) Load(store storage.Storage) (loaded bool, err error) {
	snap, err := store.Load()
	if errors.Is(err, storage.ErrNoData) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("registry.Load: %w", err)
	}
	if err := r.Restore(snap); err != nil {
		return false, fmt.Errorf("registry.Load: %w", err)
	}
	return true, nil
}
