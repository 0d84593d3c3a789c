// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles:
// the registry, storage backends, and shell handlers can all import types
// without depending on each other.
//
// Every entity has two shapes:
//
//  1. The live entity (Student, Course) with behaviour for mutating its own
//     fields. Cross-entity rules are NOT checked here; that is the
//     registry's job.
//
//  2. The record (StudentRecord, CourseRecord): a flat, JSON-tagged dump of
//     primitive values. Records are what storage backends read and write,
//     and they carry the validate:"..." rules used on the way in.
package types

import "slices"

// PersonalInfo is the personal part of a student record.
// It is embedded by value in Student so Student.Name, Student.Age and
// Student.Address are promoted fields.
type PersonalInfo struct {
	Name    string
	Age     int
	Address string
}

// Student is a person enrolled (or enrollable) in courses.
//
// Grades is keyed by course NAME, not course code.
// Courses is an ordered set: insertion order is kept and there are no
// duplicates.
type Student struct {
	PersonalInfo
	StudentID string
	Grades    map[string]string
	Courses   []string
}

// NewStudent returns a Student with empty (non-nil) grades and courses.
func NewStudent(name string, age int, address, studentID string) *Student {
	return &Student{
		PersonalInfo: PersonalInfo{Name: name, Age: age, Address: address},
		StudentID:    studentID,
		Grades:       map[string]string{},
		Courses:      []string{},
	}
}

// AddGrade sets (or overwrites) the grade for courseName.
// It does not check enrollment.
func (s *Student) AddGrade(courseName, grade string) {
	if s.Grades == nil {
		s.Grades = map[string]string{}
	}
	s.Grades[courseName] = grade
}

// EnrollCourse appends courseName unless it is already present.
func (s *Student) EnrollCourse(courseName string) {
	if s.IsEnrolled(courseName) {
		return
	}
	s.Courses = append(s.Courses, courseName)
}

// IsEnrolled reports whether courseName is in the student's course list.
func (s *Student) IsEnrolled(courseName string) bool {
	return slices.Contains(s.Courses, courseName)
}

// Clone returns a deep copy, so callers outside the registry cannot
// mutate registry-owned maps and slices.
func (s *Student) Clone() Student {
	out := *s
	out.Grades = make(map[string]string, len(s.Grades))
	for k, v := range s.Grades {
		out.Grades[k] = v
	}
	out.Courses = append(make([]string, 0, len(s.Courses)), s.Courses...)
	return out
}

// Dump converts the student to its record form.
func (s *Student) Dump() StudentRecord {
	c := s.Clone()
	return StudentRecord{
		Name:      c.Name,
		Age:       c.Age,
		Address:   c.Address,
		StudentID: c.StudentID,
		Grades:    c.Grades,
		Courses:   c.Courses,
	}
}

// Course is a class students can enroll in.
// Students is an ordered set of student IDs.
type Course struct {
	CourseName string
	CourseCode string
	Instructor string
	Students   []string
}

// NewCourse returns a Course with an empty (non-nil) student list.
func NewCourse(courseName, courseCode, instructor string) *Course {
	return &Course{
		CourseName: courseName,
		CourseCode: courseCode,
		Instructor: instructor,
		Students:   []string{},
	}
}

// AddStudent appends studentID unless it is already present.
func (c *Course) AddStudent(studentID string) {
	if c.HasStudent(studentID) {
		return
	}
	c.Students = append(c.Students, studentID)
}

// HasStudent reports whether studentID is on the course roster.
func (c *Course) HasStudent(studentID string) bool {
	return slices.Contains(c.Students, studentID)
}

// Clone returns a deep copy of the course, roster included.
func (c *Course) Clone() Course {
	out := *c
	out.Students = append(make([]string, 0, len(c.Students)), c.Students...)
	return out
}

// Dump converts the course to its record form.
func (c *Course) Dump() CourseRecord {
	cl := c.Clone()
	return CourseRecord{
		CourseName: cl.CourseName,
		CourseCode: cl.CourseCode,
		Instructor: cl.Instructor,
		Students:   cl.Students,
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Records
//
// Struct tags serve two purposes:
//
//  1. json:"..."     the key names of the persisted file.
//  2. validate:"..." rules checked by go-playground/validator, both when
//     a new entity is added and when records are loaded from disk.
//
// grades / courses / students are optional on input: a record without them
// reconstructs with empty containers.
// ─────────────────────────────────────────────────────────────────────────────

// StudentRecord is the dump form of a Student.
type StudentRecord struct {
	Name      string            `json:"name"       validate:"required"`
	Age       int               `json:"age"        validate:"gt=0"`
	Address   string            `json:"address"    validate:"required"`
	StudentID string            `json:"student_id" validate:"required"`
	Grades    map[string]string `json:"grades"     validate:"dive,keys,required,endkeys,required"`
	Courses   []string          `json:"courses"    validate:"dive,required"`
}

// CourseRecord is the dump form of a Course.
type CourseRecord struct {
	CourseName string   `json:"course_name" validate:"required"`
	CourseCode string   `json:"course_code" validate:"required"`
	Instructor string   `json:"instructor"  validate:"required"`
	Students   []string `json:"students"    validate:"dive,required"`
}

// StudentFromRecord rebuilds a Student. Missing grades/courses default to
// empty containers and duplicate course names are collapsed.
func StudentFromRecord(r StudentRecord) *Student {
	s := NewStudent(r.Name, r.Age, r.Address, r.StudentID)
	for course, grade := range r.Grades {
		s.Grades[course] = grade
	}
	for _, course := range r.Courses {
		s.EnrollCourse(course)
	}
	return s
}

// CourseFromRecord rebuilds a Course. A missing student list defaults to
// empty and duplicate IDs are collapsed.
func CourseFromRecord(r CourseRecord) *Course {
	c := NewCourse(r.CourseName, r.CourseCode, r.Instructor)
	for _, id := range r.Students {
		c.AddStudent(id)
	}
	return c
}

// Snapshot is the full registry in record form: the unit every storage
// backend saves and loads.
type Snapshot struct {
	Students map[string]StudentRecord `json:"students"`
	Courses  map[string]CourseRecord  `json:"courses"`
}

// NewSnapshot returns a Snapshot with empty (non-nil) maps.
func NewSnapshot() Snapshot {
	return Snapshot{
		Students: map[string]StudentRecord{},
		Courses:  map[string]CourseRecord{},
	}
}
