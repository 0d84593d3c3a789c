// Package course contains the shell handlers for the Course menu options.
package course

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aanand-mishra/student-management/internal/registry"
	"github.com/aanand-mishra/student-management/internal/shell"
	"github.com/aanand-mishra/student-management/internal/types"
	"github.com/aanand-mishra/student-management/internal/utils/response"
)

// New handles "Add New Course".
//
// Prompts: Course Name, Course Code, Instructor Name.
func New(reg *registry.Registry) shell.HandlerFunc {
	return func(in shell.Prompter, out io.Writer) error {
		fmt.Fprintln(out, "\n--- Add New Course ---")

		name, err := in.Ask("Course Name")
		if err != nil {
			return err
		}
		code, err := in.Ask("Course Code")
		if err != nil {
			return err
		}
		instructor, err := in.Ask("Instructor Name")
		if err != nil {
			return err
		}

		slog.Info("creating a course", slog.String("course_code", code))

		c, err := reg.AddCourse(name, code, instructor)
		if err != nil {
			slog.Warn("course not created",
				slog.String("course_code", code),
				slog.String("error", err.Error()))
			return response.Write(out, response.GeneralError(err))
		}

		slog.Info("course created", slog.String("course_code", c.CourseCode))
		return response.Write(out, response.OK("Course %s (Code: %s) created with instructor %s.",
			c.CourseName, c.CourseCode, c.Instructor))
	}
}

// Show handles "Display Course Details". Enrolled students are listed by
// name; IDs that no longer resolve are skipped.
func Show(reg *registry.Registry) shell.HandlerFunc {
	return func(in shell.Prompter, out io.Writer) error {
		fmt.Fprintln(out, "\n--- Display Course Details ---")

		code, err := in.Ask("Course Code")
		if err != nil {
			return err
		}

		c, ok := reg.FindCourse(code)
		if !ok {
			return response.Write(out, response.GeneralError(
				types.Errorf(types.ErrNotFound, "course with code %s not found", code)))
		}

		students := "None"
		if names := reg.StudentNames(c.Students); len(names) > 0 {
			students = strings.Join(names, ", ")
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, "Course Information:")
		fmt.Fprintf(out, "Course Name: %s\n", c.CourseName)
		fmt.Fprintf(out, "Code: %s\n", c.CourseCode)
		fmt.Fprintf(out, "Instructor: %s\n", c.Instructor)
		fmt.Fprintf(out, "Enrolled Students: %s\n", students)
		return nil
	}
}
