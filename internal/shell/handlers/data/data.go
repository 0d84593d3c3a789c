// Package data contains the shell handlers that save and load the registry.
// Neither handler prompts, so both can also be called directly with a nil
// Prompter (main does this for the startup load and the save on exit).
package data

import (
	"io"
	"log/slog"

	"github.com/aanand-mishra/student-management/internal/registry"
	"github.com/aanand-mishra/student-management/internal/shell"
	"github.com/aanand-mishra/student-management/internal/storage"
	"github.com/aanand-mishra/student-management/internal/types"
	"github.com/aanand-mishra/student-management/internal/utils/response"
)

// Save handles "Save Data to File".
func Save(reg *registry.Registry, store storage.Storage) shell.HandlerFunc {
	return func(_ shell.Prompter, out io.Writer) error {
		students, courses := reg.Len()
		slog.Info("saving data", slog.Int("students", students), slog.Int("courses", courses))

		if err := reg.Save(store); err != nil {
			slog.Error("error saving data",
				slog.Any("kind", types.KindOf(err)),
				slog.String("error", err.Error()))
			return response.Write(out, response.GeneralError(err))
		}

		return response.Write(out, response.OK("All student and course data saved successfully."))
	}
}

// Load handles "Load Data from File". The in-memory registry is replaced
// only when the file is present and valid; otherwise it is left as is.
func Load(reg *registry.Registry, store storage.Storage) shell.HandlerFunc {
	return func(_ shell.Prompter, out io.Writer) error {
		loaded, err := reg.Load(store)
		if err != nil {
			slog.Error("error loading data",
				slog.Any("kind", types.KindOf(err)),
				slog.String("error", err.Error()))
			return response.Write(out, response.GeneralError(err))
		}
		if !loaded {
			slog.Info("no saved data found")
			return response.Write(out, response.OK("No data file found. Starting with empty system."))
		}

		students, courses := reg.Len()
		slog.Info("data loaded", slog.Int("students", students), slog.Int("courses", courses))
		return response.Write(out, response.OK("Data loaded successfully."))
	}
}
