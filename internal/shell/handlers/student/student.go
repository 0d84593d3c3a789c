// Package student contains the shell handlers for the Student menu options.
//
// HANDLER PATTERN USED HERE (CLOSURE / FACTORY):
// ────────────────────────────────────────────────────────────
// The shell expects handler functions with the signature:
//
//	func(in shell.Prompter, out io.Writer) error
//
// That signature has no room for the registry. A factory function accepts
// the registry once at startup and returns a closure over it:
//
//	sh.Handle("1", "Add New Student", student.New(reg))
package student

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/aanand-mishra/student-management/internal/registry"
	"github.com/aanand-mishra/student-management/internal/shell"
	"github.com/aanand-mishra/student-management/internal/types"
	"github.com/aanand-mishra/student-management/internal/utils/response"
)

// ─────────────────────────────────────────────────────────────────────────────
// New handles "Add New Student".
//
// Prompts: Name, Age, Address, Student ID.
// Age must parse as an integer here; every other rule (non-empty fields,
// positive age, unique ID) is enforced by the registry.
// ─────────────────────────────────────────────────────────────────────────────
func New(reg *registry.Registry) shell.HandlerFunc {
	return func(in shell.Prompter, out io.Writer) error {
		fmt.Fprintln(out, "\n--- Add New Student ---")

		name, err := in.Ask("Name")
		if err != nil {
			return err
		}
		ageText, err := in.Ask("Age")
		if err != nil {
			return err
		}
		age, err := strconv.Atoi(ageText)
		if err != nil {
			return response.Write(out, response.Response{
				Status: response.StatusError,
				Error:  "please enter a valid age (number)",
			})
		}
		address, err := in.Ask("Address")
		if err != nil {
			return err
		}
		studentID, err := in.Ask("Student ID")
		if err != nil {
			return err
		}

		slog.Info("creating a student", slog.String("student_id", studentID))

		s, err := reg.AddStudent(name, age, address, studentID)
		if err != nil {
			slog.Warn("student not created",
				slog.String("student_id", studentID),
				slog.String("error", err.Error()))
			return response.Write(out, response.GeneralError(err))
		}

		slog.Info("student created", slog.String("student_id", s.StudentID))
		return response.Write(out, response.OK("Student %s (ID: %s) added successfully.", s.Name, s.StudentID))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Enroll handles "Enroll Student in Course".
//
// Prompts: Student ID, Course Code.
// ─────────────────────────────────────────────────────────────────────────────
func Enroll(reg *registry.Registry) shell.HandlerFunc {
	return func(in shell.Prompter, out io.Writer) error {
		fmt.Fprintln(out, "\n--- Enroll Student in Course ---")

		studentID, err := in.Ask("Student ID")
		if err != nil {
			return err
		}
		courseCode, err := in.Ask("Course Code")
		if err != nil {
			return err
		}

		slog.Info("enrolling a student",
			slog.String("student_id", studentID),
			slog.String("course_code", courseCode))

		if err := reg.Enroll(studentID, courseCode); err != nil {
			slog.Warn("enrollment rejected", slog.String("error", err.Error()))
			if !errors.Is(err, types.ErrState) {
				return response.Write(out, response.GeneralError(err))
			}
			s, _ := reg.FindStudent(studentID)
			c, _ := reg.FindCourse(courseCode)
			return response.Write(out, response.Notice("Student %s is already enrolled in %s.", s.Name, c.CourseName))
		}

		// Both lookups succeed: Enroll just validated them.
		s, _ := reg.FindStudent(studentID)
		c, _ := reg.FindCourse(courseCode)
		return response.Write(out, response.OK("Student %s (ID: %s) enrolled in %s (Code: %s).",
			s.Name, s.StudentID, c.CourseName, c.CourseCode))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// AddGrade handles "Add Grade for Student".
//
// Prompts: Student ID, Course Code, Grade.
// An existing grade for the same course is overwritten.
// ─────────────────────────────────────────────────────────────────────────────
func AddGrade(reg *registry.Registry) shell.HandlerFunc {
	return func(in shell.Prompter, out io.Writer) error {
		fmt.Fprintln(out, "\n--- Add Grade for Student ---")

		studentID, err := in.Ask("Student ID")
		if err != nil {
			return err
		}
		courseCode, err := in.Ask("Course Code")
		if err != nil {
			return err
		}
		grade, err := in.Ask("Grade")
		if err != nil {
			return err
		}

		if err := reg.AddGrade(studentID, courseCode, grade); err != nil {
			slog.Warn("grade rejected",
				slog.String("student_id", studentID),
				slog.String("course_code", courseCode),
				slog.String("error", err.Error()))
			return response.Write(out, response.GeneralError(err))
		}

		s, _ := reg.FindStudent(studentID)
		c, _ := reg.FindCourse(courseCode)
		slog.Info("grade recorded",
			slog.String("student_id", studentID),
			slog.String("course_code", courseCode))
		return response.Write(out, response.OK("Grade %s added for %s in %s.", grade, s.Name, c.CourseName))
	}
}

// Show handles "Display Student Details".
func Show(reg *registry.Registry) shell.HandlerFunc {
	return func(in shell.Prompter, out io.Writer) error {
		fmt.Fprintln(out, "\n--- Display Student Details ---")

		studentID, err := in.Ask("Student ID")
		if err != nil {
			return err
		}

		s, ok := reg.FindStudent(studentID)
		if !ok {
			return response.Write(out, response.GeneralError(
				types.Errorf(types.ErrNotFound, "student with ID %s not found", studentID)))
		}

		fmt.Fprintln(out)
		Describe(out, s)
		return nil
	}
}

// Describe prints the student information block.
func Describe(out io.Writer, s types.Student) {
	courses := "None"
	if len(s.Courses) > 0 {
		courses = strings.Join(s.Courses, ", ")
	}

	grades := "No grades assigned"
	if len(s.Grades) > 0 {
		names := make([]string, 0, len(s.Grades))
		for course := range s.Grades {
			names = append(names, course)
		}
		sort.Strings(names)

		parts := make([]string, 0, len(names))
		for _, course := range names {
			parts = append(parts, course+": "+s.Grades[course])
		}
		grades = strings.Join(parts, ", ")
	}

	fmt.Fprintln(out, "Student Information:")
	fmt.Fprintf(out, "Name: %s\n", s.Name)
	fmt.Fprintf(out, "Age: %d\n", s.Age)
	fmt.Fprintf(out, "Address: %s\n", s.Address)
	fmt.Fprintf(out, "ID: %s\n", s.StudentID)
	fmt.Fprintf(out, "Enrolled Courses: %s\n", courses)
	fmt.Fprintf(out, "Grades: %s\n", grades)
}
