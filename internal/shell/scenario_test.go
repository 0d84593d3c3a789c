package shell_test

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aanand-mishra/student-management/internal/config"
	"github.com/aanand-mishra/student-management/internal/registry"
	"github.com/aanand-mishra/student-management/internal/shell"
	"github.com/aanand-mishra/student-management/internal/shell/handlers/course"
	"github.com/aanand-mishra/student-management/internal/shell/handlers/data"
	"github.com/aanand-mishra/student-management/internal/shell/handlers/student"
	"github.com/aanand-mishra/student-management/internal/storage"
	"github.com/aanand-mishra/student-management/internal/storage/jsonfile"
	"github.com/stretchr/testify/require"
)

func newMenu(reg *registry.Registry, store storage.Storage, input string, out *bytes.Buffer) *shell.Shell {
	sh := shell.New("Student Management System", strings.NewReader(input), out)
	sh.Handle("1", "Add New Student", student.New(reg))
	sh.Handle("2", "Add New Course", course.New(reg))
	sh.Handle("3", "Enroll Student in Course", student.Enroll(reg))
	sh.Handle("4", "Add Grade for Student", student.AddGrade(reg))
	sh.Handle("5", "Display Student Details", student.Show(reg))
	sh.Handle("6", "Display Course Details", course.Show(reg))
	sh.Handle("7", "Save Data to File", data.Save(reg, store))
	sh.Handle("8", "Load Data from File", data.Load(reg, store))
	return sh
}

func TestScenarioAddEnrollGradeSaveLoad(t *testing.T) {
	store := jsonfile.New(&config.Config{StoragePath: filepath.Join(t.TempDir(), "student_data.json")})
	reg := registry.New()

	input := strings.Join([]string{
		"1", "Ada", "30", "1 Main St", "S1",
		"2", "CS101", "CS101", "Grace",
		"3", "S1", "CS101",
		"4", "S1", "CS101", "A",
		"7",
		"8",
		"5", "S1",
		"6", "CS101",
		"0",
	}, "\n") + "\n"

	var out bytes.Buffer
	require.NoError(t, newMenu(reg, store, input, &out).Run(context.Background()))

	text := out.String()
	for _, want := range []string{
		"Student Ada (ID: S1) added successfully.",
		"Course CS101 (Code: CS101) created with instructor Grace.",
		"Student Ada (ID: S1) enrolled in CS101 (Code: CS101).",
		"Grade A added for Ada in CS101.",
		"All student and course data saved successfully.",
		"Data loaded successfully.",
		"Grades: CS101: A",
		"Enrolled Students: Ada",
		"Exiting Student Management System. Goodbye!",
	} {
		require.Contains(t, text, want)
	}
	require.NotContains(t, text, "Error:")

	// A fresh process reading the same file sees the same state.
	fresh := registry.New()
	loaded, err := fresh.Load(store)
	require.NoError(t, err)
	require.True(t, loaded)

	s, ok := fresh.FindStudent("S1")
	require.True(t, ok)
	require.Equal(t, map[string]string{"CS101": "A"}, s.Grades)
}

func TestScenarioErrorsDoNotStopTheMenu(t *testing.T) {
	store := jsonfile.New(&config.Config{StoragePath: filepath.Join(t.TempDir(), "student_data.json")})
	reg := registry.New()

	input := strings.Join([]string{
		"3", "S1", "CS101",
		"abc",
		"5", "S1",
		"1", "Ada", "30", "1 Main St", "S1",
	}, "\n") + "\n"

	var out bytes.Buffer
	require.NoError(t, newMenu(reg, store, input, &out).Run(context.Background()))

	text := out.String()
	require.Contains(t, text, "Error: student with ID S1 not found.")
	require.Contains(t, text, "Invalid option. Please try again.")
	require.Contains(t, text, "Student Ada (ID: S1) added successfully.")
	require.Contains(t, text, "Goodbye!")
}
