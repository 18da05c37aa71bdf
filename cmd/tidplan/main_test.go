package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/hylla/tidplan/internal/adapters/storage/sqlite"
	"github.com/hylla/tidplan/internal/app"
	"github.com/hylla/tidplan/internal/config"
)

// TestMain sets deterministic environment defaults for CLI tests.
func TestMain(m *testing.M) {
	_ = os.Setenv("TIDPLAN_DEV_MODE", "false")
	os.Exit(m.Run())
}

// fakeProgram represents fake program data used by this package.
type fakeProgram struct {
	runErr error
}

// Run runs the requested command flow.
func (f fakeProgram) Run() (tea.Model, error) {
	return nil, f.runErr
}

// seedActivity persists one named activity into the database at dbPath.
func seedActivity(t *testing.T, dbPath, name string) {
	t.Helper()
	store, err := sqlite.Open(dbPath)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			t.Fatalf("Close() error = %v", closeErr)
		}
	}()
	svc := app.NewService(store, func() string { return "seed-" + name }, func() time.Time {
		return time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	})
	if _, err := svc.AddActivity(app.AddActivityInput{Name: name, Duration: 2}); err != nil {
		t.Fatalf("AddActivity() error = %v", err)
	}
	if err := svc.Save(context.Background()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
}

// TestRunVersion verifies behavior for the covered scenario.
func TestRunVersion(t *testing.T) {
	var out strings.Builder
	err := run(context.Background(), []string{"--version"}, &out, io.Discard)
	if err != nil {
		t.Fatalf("run(version) error = %v", err)
	}
	if !strings.Contains(out.String(), "tidplan") {
		t.Fatalf("expected version output, got %q", out.String())
	}
}

// TestRunStartsProgram verifies behavior for the covered scenario.
func TestRunStartsProgram(t *testing.T) {
	origFactory := programFactory
	t.Cleanup(func() { programFactory = origFactory })

	programFactory = func(_ tea.Model) program {
		return fakeProgram{}
	}

	dbPath := filepath.Join(t.TempDir(), "tidplan.db")
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	err := run(context.Background(), []string{"--db", dbPath, "--config", cfgPath}, io.Discard, io.Discard)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}
}

// TestRunInvalidFlag verifies behavior for the covered scenario.
func TestRunInvalidFlag(t *testing.T) {
	err := run(context.Background(), []string{"--unknown-flag"}, io.Discard, io.Discard)
	if err == nil {
		t.Fatal("expected flag parse error")
	}
}

// TestRunUnknownCommand verifies behavior for the covered scenario.
func TestRunUnknownCommand(t *testing.T) {
	err := run(context.Background(), []string{"unknown-command"}, io.Discard, io.Discard)
	if err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

// TestRunPathsCommand verifies behavior for the covered scenario.
func TestRunPathsCommand(t *testing.T) {
	var out strings.Builder
	err := run(context.Background(), []string{"--app", "tidplanx", "--dev", "paths"}, &out, io.Discard)
	if err != nil {
		t.Fatalf("run(paths) error = %v", err)
	}
	output := out.String()
	if !strings.Contains(output, "app: tidplanx") {
		t.Fatalf("expected app name in paths output, got %q", output)
	}
	if !strings.Contains(output, "dev_mode: true") {
		t.Fatalf("expected dev mode in paths output, got %q", output)
	}
}

// TestRunExportCommandWritesCSVFile verifies behavior for the covered scenario.
func TestRunExportCommandWritesCSVFile(t *testing.T) {
	tmp := t.TempDir()
	dbPath := filepath.Join(tmp, "tidplan.db")
	cfgPath := filepath.Join(tmp, "missing.toml")
	outPath := filepath.Join(tmp, "schedule.csv")
	seedActivity(t, dbPath, "Design")

	if err := run(context.Background(), []string{"--db", dbPath, "--config", cfgPath, "export", "--format", "csv", "--out", outPath}, io.Discard, io.Discard); err != nil {
		t.Fatalf("run(export) error = %v", err)
	}

	content, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	output := string(content)
	if !strings.HasPrefix(output, "#,Activity,Days,") {
		t.Fatalf("expected csv header, got %q", output)
	}
	if !strings.Contains(output, "Design") {
		t.Fatalf("expected seeded activity in export, got %q", output)
	}
	if !strings.Contains(output, "2024-01-01") {
		t.Fatalf("expected scheduled start date in export, got %q", output)
	}
}

// TestRunExportToStdout verifies behavior for the covered scenario.
func TestRunExportToStdout(t *testing.T) {
	tmp := t.TempDir()
	dbPath := filepath.Join(tmp, "tidplan.db")
	cfgPath := filepath.Join(tmp, "missing.toml")

	var out strings.Builder
	if err := run(context.Background(), []string{"--db", dbPath, "--config", cfgPath, "export", "--out", "-"}, &out, io.Discard); err != nil {
		t.Fatalf("run(export stdout) error = %v", err)
	}
	if !strings.Contains(out.String(), app.DefaultProjectName) {
		t.Fatalf("expected rendered project table on stdout, got %q", out.String())
	}
}

// TestRunExportDefaultFormatFromConfig verifies behavior for the covered scenario.
func TestRunExportDefaultFormatFromConfig(t *testing.T) {
	tmp := t.TempDir()
	dbPath := filepath.Join(tmp, "tidplan.db")
	cfgPath := filepath.Join(tmp, "config.toml")
	cfgContent := "[export]\ndefault_format = \"html\"\n"
	if err := os.WriteFile(cfgPath, []byte(cfgContent), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	var out strings.Builder
	if err := run(context.Background(), []string{"--db", dbPath, "--config", cfgPath, "export", "--out", "-"}, &out, io.Discard); err != nil {
		t.Fatalf("run(export html) error = %v", err)
	}
	if !strings.Contains(out.String(), "<!DOCTYPE html>") {
		t.Fatalf("expected html document on stdout, got %q", out.String())
	}
}

// TestRunExportUnknownFormat verifies behavior for the covered scenario.
func TestRunExportUnknownFormat(t *testing.T) {
	tmp := t.TempDir()
	dbPath := filepath.Join(tmp, "tidplan.db")
	cfgPath := filepath.Join(tmp, "missing.toml")

	err := run(context.Background(), []string{"--db", dbPath, "--config", cfgPath, "export", "--format", "pdf"}, io.Discard, io.Discard)
	if err == nil || !strings.Contains(err.Error(), "unknown export format") {
		t.Fatalf("expected unknown format error, got %v", err)
	}
}

// TestRunExportUnexpectedArguments verifies behavior for the covered scenario.
func TestRunExportUnexpectedArguments(t *testing.T) {
	tmp := t.TempDir()
	dbPath := filepath.Join(tmp, "tidplan.db")
	cfgPath := filepath.Join(tmp, "missing.toml")

	err := run(context.Background(), []string{"--db", dbPath, "--config", cfgPath, "export", "extra"}, io.Discard, io.Discard)
	if err == nil || !strings.Contains(err.Error(), "unexpected export arguments") {
		t.Fatalf("expected unexpected arguments error, got %v", err)
	}
}

// TestRunExportToClipboard verifies behavior for the covered scenario.
func TestRunExportToClipboard(t *testing.T) {
	origCopy := copyToClipboard
	t.Cleanup(func() { copyToClipboard = origCopy })

	var copied string
	copyToClipboard = func(text string) error {
		copied = text
		return nil
	}

	tmp := t.TempDir()
	dbPath := filepath.Join(tmp, "tidplan.db")
	cfgPath := filepath.Join(tmp, "missing.toml")
	seedActivity(t, dbPath, "Handover")

	if err := run(context.Background(), []string{"--db", dbPath, "--config", cfgPath, "export", "--format", "csv", "--clipboard"}, io.Discard, io.Discard); err != nil {
		t.Fatalf("run(export clipboard) error = %v", err)
	}
	if !strings.Contains(copied, "Handover") {
		t.Fatalf("expected clipboard payload with seeded activity, got %q", copied)
	}
}

// TestRunConfigAndDBEnvOverrides verifies behavior for the covered scenario.
func TestRunConfigAndDBEnvOverrides(t *testing.T) {
	tmp := t.TempDir()
	dbPath := filepath.Join(tmp, "env.db")
	cfgPath := filepath.Join(tmp, "env.toml")
	cfgContent := "[database]\npath = \"/tmp/ignore-me.db\"\n"
	if err := os.WriteFile(cfgPath, []byte(cfgContent), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	t.Setenv("TIDPLAN_CONFIG", cfgPath)
	t.Setenv("TIDPLAN_DB_PATH", dbPath)

	err := run(context.Background(), []string{"export", "--format", "csv", "--out", filepath.Join(tmp, "out.csv")}, io.Discard, io.Discard)
	if err != nil {
		t.Fatalf("run(export with env paths) error = %v", err)
	}
	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("expected db created at env path, stat error %v", err)
	}
}

// TestParseBoolEnv verifies behavior for the covered scenario.
func TestParseBoolEnv(t *testing.T) {
	t.Setenv("TIDPLAN_BOOL_TEST", "true")
	got, ok := parseBoolEnv("TIDPLAN_BOOL_TEST")
	if !ok || !got {
		t.Fatalf("expected true bool env parse, got value=%t ok=%t", got, ok)
	}

	t.Setenv("TIDPLAN_BOOL_TEST", "not-bool")
	_, ok = parseBoolEnv("TIDPLAN_BOOL_TEST")
	if ok {
		t.Fatal("expected invalid bool env to return ok=false")
	}
}

// TestRunRejectsInvalidLoggingLevelFromConfig verifies behavior for the covered scenario.
func TestRunRejectsInvalidLoggingLevelFromConfig(t *testing.T) {
	tmp := t.TempDir()
	dbPath := filepath.Join(tmp, "tidplan.db")
	cfgPath := filepath.Join(tmp, "tidplan.toml")
	cfgContent := "[logging]\nlevel = \"verbose\"\n"
	if err := os.WriteFile(cfgPath, []byte(cfgContent), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	err := run(context.Background(), []string{"--db", dbPath, "--config", cfgPath}, io.Discard, io.Discard)
	if err == nil {
		t.Fatal("expected invalid logging level error")
	}
	if !strings.Contains(err.Error(), "invalid logging.level") {
		t.Fatalf("expected logging level validation error, got %v", err)
	}
}

// TestRunDevModeCreatesWorkspaceLogFile verifies behavior for the covered scenario.
func TestRunDevModeCreatesWorkspaceLogFile(t *testing.T) {
	origFactory := programFactory
	t.Cleanup(func() { programFactory = origFactory })
	programFactory = func(_ tea.Model) program { return fakeProgram{} }

	workspace := t.TempDir()
	t.Chdir(workspace)

	dbPath := filepath.Join(workspace, "tidplan.db")
	cfgPath := filepath.Join(workspace, "config.toml")
	cfgContent := "[logging]\nlevel = \"debug\"\n\n[logging.dev_file]\nenabled = true\ndir = \".tidplan/log\"\n"
	if err := os.WriteFile(cfgPath, []byte(cfgContent), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if err := run(context.Background(), []string{"--dev", "--db", dbPath, "--config", cfgPath}, io.Discard, io.Discard); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	logDir := filepath.Join(workspace, ".tidplan", "log")
	entries, err := os.ReadDir(logDir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	foundLog := false
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".log") {
			foundLog = true
			break
		}
	}
	if !foundLog {
		t.Fatalf("expected at least one .log file in %s, got %v", logDir, entries)
	}
}

// TestRunTUIModeWritesRuntimeLogsToFileOnly verifies TUI runtime logs stay out of stderr and persist to the dev log file.
func TestRunTUIModeWritesRuntimeLogsToFileOnly(t *testing.T) {
	origFactory := programFactory
	t.Cleanup(func() { programFactory = origFactory })
	programFactory = func(_ tea.Model) program { return fakeProgram{} }

	workspace := t.TempDir()
	t.Chdir(workspace)

	dbPath := filepath.Join(workspace, "tidplan.db")
	cfgPath := filepath.Join(workspace, "config.toml")
	cfgContent := "[logging]\nlevel = \"debug\"\n\n[logging.dev_file]\nenabled = true\ndir = \".tidplan/log\"\n"
	if err := os.WriteFile(cfgPath, []byte(cfgContent), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	var stderr bytes.Buffer
	if err := run(context.Background(), []string{"--dev", "--db", dbPath, "--config", cfgPath}, io.Discard, &stderr); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	if got := strings.TrimSpace(stderr.String()); got != "" {
		t.Fatalf("expected no runtime stderr output in TUI mode, got %q", got)
	}

	logDir := filepath.Join(workspace, ".tidplan", "log")
	entries, err := os.ReadDir(logDir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}

	var logPath string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".log") {
			continue
		}
		logPath = filepath.Join(logDir, entry.Name())
		break
	}
	if logPath == "" {
		t.Fatalf("expected a .log file in %s", logDir)
	}

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	logOutput := string(content)
	if !strings.Contains(logOutput, "starting tui program loop") {
		t.Fatalf("expected runtime log file to include TUI lifecycle entries, got %q", logOutput)
	}
}

// TestWorkspaceRootFromUsesNearestMarker verifies workspace-root resolution behavior.
func TestWorkspaceRootFromUsesNearestMarker(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "go.mod"), []byte("module example.com/test\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	nested := filepath.Join(root, "cmd", "tidplan")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	got := workspaceRootFrom(nested)
	if filepath.Clean(got) != filepath.Clean(root) {
		t.Fatalf("expected workspace root %q, got %q", root, got)
	}
}

// TestDevLogFilePathResolvesAgainstWorkspaceRoot verifies relative log dirs anchor at workspace root.
func TestDevLogFilePathResolvesAgainstWorkspaceRoot(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "go.mod"), []byte("module example.com/test\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	nested := filepath.Join(root, "cmd", "tidplan")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() error = %v", err)
	}
	if err := os.Chdir(nested); err != nil {
		t.Fatalf("Chdir() error = %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(prev)
	})
	got, err := devLogFilePath(".tidplan/log", "tidplan", time.Date(2026, 2, 22, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("devLogFilePath() error = %v", err)
	}
	wantPrefix := filepath.Join(root, ".tidplan", "log")
	normalize := func(p string) string {
		return strings.TrimPrefix(filepath.Clean(p), "/private")
	}
	if !strings.HasPrefix(normalize(got), normalize(wantPrefix)) {
		t.Fatalf("expected log path under %q, got %q", wantPrefix, got)
	}
}

// TestRuntimeLoggerCanMuteConsoleSink verifies console output can be suppressed while other sinks remain active.
func TestRuntimeLoggerCanMuteConsoleSink(t *testing.T) {
	var console bytes.Buffer
	cfg := config.Default("/tmp/tidplan.db").Logging

	logger, err := newRuntimeLogger(&console, "tidplan", false, cfg, func() time.Time {
		return time.Date(2026, 2, 23, 12, 0, 0, 0, time.UTC)
	})
	if err != nil {
		t.Fatalf("newRuntimeLogger() error = %v", err)
	}

	logger.Info("before")
	logger.SetConsoleEnabled(false)
	logger.Info("during")
	logger.SetConsoleEnabled(true)
	logger.Info("after")

	out := console.String()
	if !strings.Contains(out, "before") {
		t.Fatalf("expected console log to include 'before', got %q", out)
	}
	if strings.Contains(out, "during") {
		t.Fatalf("expected muted console log to omit 'during', got %q", out)
	}
	if !strings.Contains(out, "after") {
		t.Fatalf("expected console log to include 'after', got %q", out)
	}
}
