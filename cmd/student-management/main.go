// main is the entry point of the Student Management System.
//
// STARTUP SEQUENCE:
//  1. Load configuration (YAML file and/or environment)
//  2. Initialise the logger
//  3. Open the storage backend (JSON file or SQLite)
//  4. Construct an empty registry and load saved data into it
//  5. Register the menu options
//  6. Run the menu loop in a separate goroutine
//  7. Block until the menu exits or an OS signal (Ctrl+C / kill) arrives
//  8. Optionally save, close storage, exit
//
// RUNNING:
//
//	go run ./cmd/student-management --config=config/local.yaml
//
// or, with no config file at all (./student_data.json, JSON driver):
//
//	go run ./cmd/student-management
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/aanand-mishra/student-management/internal/config"
	"github.com/aanand-mishra/student-management/internal/registry"
	"github.com/aanand-mishra/student-management/internal/shell"
	"github.com/aanand-mishra/student-management/internal/shell/handlers/course"
	"github.com/aanand-mishra/student-management/internal/shell/handlers/data"
	"github.com/aanand-mishra/student-management/internal/shell/handlers/student"
	"github.com/aanand-mishra/student-management/internal/storage"
	"github.com/aanand-mishra/student-management/internal/storage/jsonfile"
	"github.com/aanand-mishra/student-management/internal/storage/sqlite"
)

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	// Logs never go to stdout: that is where the menu is drawn.
	logOut, closeLog, err := openLogOutput(cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot open log file: %s\n", err)
		os.Exit(1)
	}
	defer closeLog()

	log := setupLogger(cfg.Env, logOut)
	slog.SetDefault(log)

	log.Info("starting student-management",
		slog.String("env", cfg.Env),
		slog.String("storage_driver", cfg.StorageDriver),
		slog.String("version", "1.0.0"),
	)

	// ── 3. Initialise Storage ─────────────────────────────────────────────
	// Held as the storage.Storage INTERFACE: the registry and handlers
	// never know which backend they are talking to.
	store, err := openStorage(cfg)
	if err != nil {
		log.Error("failed to initialise storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer store.Close()

	log.Info("storage initialised", slog.String("path", cfg.StoragePath))

	// ── 4. Registry + startup load ────────────────────────────────────────
	// A failed load is reported and leaves the registry empty; it is not
	// fatal.
	reg := registry.New()

	fmt.Println("Welcome to Student Management System!")
	runDirect(log, "load", data.Load(reg, store), os.Stdout)

	// ── 5. Register Menu Options ──────────────────────────────────────────
	sh := shell.New("Student Management System", os.Stdin, os.Stdout)

	sh.Handle("1", "Add New Student", student.New(reg))
	sh.Handle("2", "Add New Course", course.New(reg))
	sh.Handle("3", "Enroll Student in Course", student.Enroll(reg))
	sh.Handle("4", "Add Grade for Student", student.AddGrade(reg))
	sh.Handle("5", "Display Student Details", student.Show(reg))
	sh.Handle("6", "Display Course Details", course.Show(reg))
	sh.Handle("7", "Save Data to File", data.Save(reg, store))
	sh.Handle("8", "Load Data from File", data.Load(reg, store))

	// ── 6. Run the Menu in a Goroutine ────────────────────────────────────
	// Reading stdin blocks; running the loop in its own goroutine lets
	// main react to Ctrl+C even while a prompt is waiting.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	done := make(chan error, 1)
	go func() {
		done <- sh.Run(ctx)
	}()

	// ── 7. Wait for the Menu or a Signal ──────────────────────────────────
	select {
	case err := <-done:
		if err != nil {
			log.Error("shell stopped with an error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		// The shell goroutine may be mid-operation, so the registry is
		// not touched from here: no save on interrupt.
		fmt.Println("\n\nExiting Student Management System. Goodbye!")
		log.Info("interrupted, exiting without saving")
		return
	}

	// ── 8. Save on Exit ───────────────────────────────────────────────────
	if cfg.SaveOnExit {
		runDirect(log, "save", data.Save(reg, store), os.Stdout)
	}

	log.Info("stopped")
}

// runDirect calls a handler that never prompts outside the menu loop.
// Registry failures are already reported by the handler itself; what
// comes back here is a failure to write the outcome line.
func runDirect(log *slog.Logger, step string, h shell.HandlerFunc, out io.Writer) {
	if err := h(nil, out); err != nil {
		log.Error("data step failed", slog.String("step", step), slog.String("error", err.Error()))
	}
}

// openStorage picks the backend named by cfg.StorageDriver.
func openStorage(cfg *config.Config) (storage.Storage, error) {
	switch cfg.StorageDriver {
	case config.DriverSQLite:
		db, err := sqlite.New(cfg)
		if err != nil {
			return nil, err
		}
		return db, nil
	default:
		return jsonfile.New(cfg), nil
	}
}

// openLogOutput returns the log destination: the file at path (appended
// to) or stderr when path is empty.
func openLogOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stderr, func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
func setupLogger(env string, w io.Writer) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(w, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(w, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default: // "dev" and anything unrecognised
		return slog.New(
			slog.NewTextHandler(w, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	}
}
