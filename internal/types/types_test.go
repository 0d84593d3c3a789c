package types

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestStudentAddGradeOverwrites(t *testing.T) {
	s := NewStudent("Ada", 30, "1 Main St", "S1")

	s.AddGrade("CS101", "B")
	s.AddGrade("CS101", "A")
	s.AddGrade("Unenrolled", "C") // entity does not check enrollment

	require.Equal(t, map[string]string{"CS101": "A", "Unenrolled": "C"}, s.Grades)
}

func TestStudentEnrollCourseIsIdempotentAndOrdered(t *testing.T) {
	s := NewStudent("Ada", 30, "1 Main St", "S1")

	s.EnrollCourse("Math")
	s.EnrollCourse("CS101")
	s.EnrollCourse("Math")

	require.Equal(t, []string{"Math", "CS101"}, s.Courses)
	require.True(t, s.IsEnrolled("CS101"))
	require.False(t, s.IsEnrolled("cs101"))
}

func TestCourseAddStudentIsIdempotent(t *testing.T) {
	c := NewCourse("Intro", "CS101", "Grace")

	c.AddStudent("S2")
	c.AddStudent("S1")
	c.AddStudent("S2")

	require.Equal(t, []string{"S2", "S1"}, c.Students)
	require.True(t, c.HasStudent("S1"))
}

func TestCloneIsDeep(t *testing.T) {
	s := NewStudent("Ada", 30, "1 Main St", "S1")
	s.EnrollCourse("CS101")
	s.AddGrade("CS101", "A")

	cp := s.Clone()
	cp.Courses[0] = "changed"
	cp.Grades["CS101"] = "F"

	require.Equal(t, []string{"CS101"}, s.Courses)
	require.Equal(t, "A", s.Grades["CS101"])

	c := NewCourse("Intro", "CS101", "Grace")
	c.AddStudent("S1")
	cc := c.Clone()
	cc.Students[0] = "changed"
	require.Equal(t, []string{"S1"}, c.Students)
}

func TestDumpEncodesEmptyContainers(t *testing.T) {
	s := NewStudent("Ada", 30, "1 Main St", "S1")
	data, err := json.Marshal(s.Dump())
	require.NoError(t, err)
	require.JSONEq(t,
		`{"name":"Ada","age":30,"address":"1 Main St","student_id":"S1","grades":{},"courses":[]}`,
		string(data))

	c := NewCourse("Intro", "CS101", "Grace")
	data, err = json.Marshal(c.Dump())
	require.NoError(t, err)
	require.JSONEq(t,
		`{"course_name":"Intro","course_code":"CS101","instructor":"Grace","students":[]}`,
		string(data))
}

func TestFromRecordDefaultsMissingOptionalFields(t *testing.T) {
	var rec StudentRecord
	require.NoError(t, json.Unmarshal(
		[]byte(`{"name":"Ada","age":30,"address":"1 Main St","student_id":"S1"}`), &rec))

	s := StudentFromRecord(rec)
	require.NotNil(t, s.Grades)
	require.NotNil(t, s.Courses)
	require.Empty(t, s.Grades)
	require.Empty(t, s.Courses)

	c := CourseFromRecord(CourseRecord{CourseName: "Intro", CourseCode: "CS101", Instructor: "Grace"})
	require.NotNil(t, c.Students)
	require.Empty(t, c.Students)
}

func TestDumpReconstructRoundTrip(t *testing.T) {
	s := NewStudent("Ada", 30, "1 Main St", "S1")
	s.EnrollCourse("CS101")
	s.EnrollCourse("Math")
	s.AddGrade("CS101", "A")

	got := StudentFromRecord(s.Dump())
	if diff := cmp.Diff(s, got); diff != "" {
		t.Fatalf("student round trip mismatch (-want +got):\n%s", diff)
	}

	c := NewCourse("Intro", "CS101", "Grace")
	c.AddStudent("S1")
	gotCourse := CourseFromRecord(c.Dump())
	if diff := cmp.Diff(c, gotCourse); diff != "" {
		t.Fatalf("course round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateReportsJSONFieldNames(t *testing.T) {
	err := Validate(StudentRecord{Name: "", Age: 0, Address: "x", StudentID: "S1"})
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))

	fields := map[string]string{}
	for _, fe := range verrs {
		fields[fe.Field()] = fe.ActualTag()
	}
	require.Equal(t, map[string]string{"name": "required", "age": "gt"}, fields)
}

func TestValidateRejectsEmptyListEntries(t *testing.T) {
	err := Validate(CourseRecord{CourseName: "Intro", CourseCode: "CS101", Instructor: "Grace", Students: []string{""}})
	require.Error(t, err)
}

func TestErrorKinds(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(ErrPersistence, cause, "cannot write %s", "data.json")

	require.EqualError(t, err, "cannot write data.json: disk full")
	require.ErrorIs(t, err, ErrPersistence)
	require.ErrorIs(t, err, cause)
	require.NotErrorIs(t, err, ErrFormat)
	require.Equal(t, ErrPersistence, KindOf(err))

	plain := Errorf(ErrNotFound, "student with ID %s not found", "S9")
	require.EqualError(t, plain, "student with ID S9 not found")
	require.Equal(t, ErrNotFound, KindOf(plain))
	require.Nil(t, KindOf(errors.New("other")))
}
