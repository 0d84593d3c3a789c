package student

import (
	"bytes"
	"io"
	"testing"

	"github.com/aanand-mishra/student-management/internal/registry"
	"github.com/aanand-mishra/student-management/internal/shell"
	"github.com/aanand-mishra/student-management/internal/types"
	"github.com/stretchr/testify/require"
)

// script answers prompts in order and returns io.EOF once exhausted.
type script []string

func (s *script) Ask(string) (string, error) {
	if len(*s) == 0 {
		return "", io.EOF
	}
	v := (*s)[0]
	*s = (*s)[1:]
	return v, nil
}

func run(t *testing.T, h shell.HandlerFunc, answers ...string) string {
	t.Helper()
	var out bytes.Buffer
	in := script(answers)
	require.NoError(t, h(&in, &out))
	return out.String()
}

func seeded(t *testing.T) *registry.Registry {
	t.Helper()
	reg := registry.New()
	_, err := reg.AddStudent("Ada", 30, "1 Main St", "S1")
	require.NoError(t, err)
	_, err = reg.AddCourse("Intro to CS", "CS101", "Grace")
	require.NoError(t, err)
	return reg
}

func TestNewAddsStudent(t *testing.T) {
	reg := registry.New()
	h := New(reg)

	out := run(t, h,
		"Ada", "30", "1 Main St", "S1")

	require.Contains(t, out, "Student Ada (ID: S1) added successfully.")
	s, ok := reg.FindStudent("S1")
	require.True(t, ok)
	require.Equal(t, 30, s.Age)
}

func TestNewRejectsNonNumericAge(t *testing.T) {
	reg := registry.New()
	h := New(reg)

	out := run(t, h,
		"Ada", "thirty")

	require.Contains(t, out, "Error: please enter a valid age (number).")
	students, _ := reg.Len()
	require.Zero(t, students)
}

func TestNewReportsValidationAndConflict(t *testing.T) {
	reg := seeded(t)
	h := New(reg)

	out := run(t, h,
		"", "-2", "1 Main St", "S2")
	require.Contains(t, out, "Error: name cannot be empty, age must be a positive number.")

	out = run(t, h,
		"Bob", "22", "2 Side St", "S1")
	require.Contains(t, out, "Error: student with ID S1 already exists.")
}

func TestNewStopsOnEndOfInput(t *testing.T) {
	var out bytes.Buffer
	in := script{"Ada"}
	require.ErrorIs(t, New(registry.New())(&in, &out), io.EOF)
}

func TestEnrollAndGrade(t *testing.T) {
	reg := seeded(t)

	out := run(t, AddGrade(reg),
		"S1", "CS101", "A")
	require.Contains(t, out, "Error: student Ada is not enrolled in Intro to CS.")

	out = run(t, Enroll(reg),
		"S1", "CS101")
	require.Contains(t, out, "Student Ada (ID: S1) enrolled in Intro to CS (Code: CS101).")

	out = run(t, Enroll(reg),
		"S1", "CS101")
	require.Contains(t, out, "Student Ada is already enrolled in Intro to CS.")
	require.NotContains(t, out, "Error:")

	out = run(t, AddGrade(reg),
		"S1", "CS101", "")
	require.Contains(t, out, "Error: grade cannot be empty.")

	out = run(t, AddGrade(reg),
		"S1", "CS101", "A")
	require.Contains(t, out, "Grade A added for Ada in Intro to CS.")

	s, _ := reg.FindStudent("S1")
	require.Equal(t, map[string]string{"Intro to CS": "A"}, s.Grades)
}

func TestEnrollUnknown(t *testing.T) {
	reg := seeded(t)

	out := run(t, Enroll(reg),
		"S9", "CS101")
	require.Contains(t, out, "Error: student with ID S9 not found.")
}

func TestShow(t *testing.T) {
	reg := seeded(t)

	out := run(t, Show(reg), "S1")
	require.Contains(t, out, "Enrolled Courses: None\n")
	require.Contains(t, out, "Grades: No grades assigned\n")

	require.NoError(t, reg.Enroll("S1", "CS101"))
	require.NoError(t, reg.AddGrade("S1", "CS101", "A"))

	out = run(t, Show(reg), "S1")
	require.Contains(t, out, "Student Information:\nName: Ada\nAge: 30\nAddress: 1 Main St\nID: S1\n")
	require.Contains(t, out, "Enrolled Courses: Intro to CS\n")
	require.Contains(t, out, "Grades: Intro to CS: A\n")

	out = run(t, Show(reg), "nobody")
	require.Contains(t, out, "Error: student with ID nobody not found.")
}

func TestDescribeSortsGrades(t *testing.T) {
	var out bytes.Buffer
	s := types.NewStudent("Ada", 30, "x", "S1")
	s.EnrollCourse("Math")
	s.EnrollCourse("Art")
	s.AddGrade("Math", "B")
	s.AddGrade("Art", "A")

	Describe(&out, s.Clone())
	require.Contains(t, out.String(), "Enrolled Courses: Math, Art\n")
	require.Contains(t, out.String(), "Grades: Art: A, Math: B\n")
}
