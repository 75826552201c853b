package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sadopc/streakr/internal/store"
)

type env struct {
	db  string
	log string
}

func newEnv(t *testing.T) env {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	return env{db: filepath.Join(dir, "streakr.db"), log: filepath.Join(dir, "streakr.log")}
}

func (e env) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(append(args, "--db", e.db, "--log-file", e.log))
	err := root.Execute()
	return buf.String(), err
}

func (e env) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(t, args...)
	if err != nil {
		t.Fatalf("%v: %v\n%s", args, err, out)
	}
	return out
}

// ============================================================
// status / toggle / log
// ============================================================

func TestStatusFreshDatabase(t *testing.T) {
	e := newEnv(t)
	out := e.mustRun(t, "status")

	if !strings.Contains(out, "0/11 tasks (0%)") {
		t.Fatalf("expected an empty checklist, got:\n%s", out)
	}
	for _, id := range []string{"wake-up", "cycle-10", "calories", "journal"} {
		if !strings.Contains(out, id) {
			t.Fatalf("status missing task %q", id)
		}
	}
	if !strings.Contains(out, "no entry today") {
		t.Fatalf("expected no journal entry, got:\n%s", out)
	}
}

func TestToggleThenStatus(t *testing.T) {
	e := newEnv(t)

	out := e.mustRun(t, "toggle", "homework")
	if !strings.Contains(out, "homework: done (1/11, 9%)") {
		t.Fatalf("unexpected toggle output: %q", out)
	}

	out = e.mustRun(t, "status")
	if !strings.Contains(out, "1/11 tasks (9%)") || !strings.Contains(out, "[x]") {
		t.Fatalf("toggle not persisted:\n%s", out)
	}

	out = e.mustRun(t, "toggle", "homework")
	if !strings.Contains(out, "homework: not done") {
		t.Fatalf("second toggle should undo: %q", out)
	}
}

func TestToggleUnknownTask(t *testing.T) {
	e := newEnv(t)
	if _, err := e.run(t, "toggle", "ghost"); err == nil || !strings.Contains(err.Error(), "unknown task") {
		t.Fatalf("expected unknown task error, got %v", err)
	}
}

func TestToggleRequiresID(t *testing.T) {
	e := newEnv(t)
	if _, err := e.run(t, "toggle"); err == nil {
		t.Fatal("expected an argument error")
	}
}

func TestLogUpdatesData(t *testing.T) {
	e := newEnv(t)
	out := e.mustRun(t, "log", "cycle-10", "--distance", "10.2", "--duration", "52")
	if !strings.Contains(out, "cycle-10: 10.2 mi, 52 min") {
		t.Fatalf("unexpected log output: %q", out)
	}
	// Distance only counts once the ride is marked done.
	if !strings.Contains(out, "today: 0.0 mi") {
		t.Fatalf("incomplete ride should not count: %q", out)
	}

	e.mustRun(t, "toggle", "cycle-10")
	out = e.mustRun(t, "log", "cycle-10", "--duration", "55")
	if !strings.Contains(out, "cycle-10: 10.2 mi, 55 min") {
		t.Fatalf("partial log should keep distance: %q", out)
	}
	if !strings.Contains(out, "today: 10.2 mi, 55 min") {
		t.Fatalf("completed ride should count: %q", out)
	}
}

func TestLogCalories(t *testing.T) {
	e := newEnv(t)
	out := e.mustRun(t, "log", "calories", "--calories", "1850")
	if !strings.Contains(out, "1850 kcal") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestLogRequiresAFlag(t *testing.T) {
	e := newEnv(t)
	if _, err := e.run(t, "log", "cycle-10"); err == nil || !strings.Contains(err.Error(), "nothing to log") {
		t.Fatalf("expected nothing-to-log error, got %v", err)
	}
}

func TestLogRejectsNegative(t *testing.T) {
	e := newEnv(t)
	if _, err := e.run(t, "log", "cycle-10", "--distance", "-3"); err == nil {
		t.Fatal("expected negative distance to be rejected")
	}
}

func TestLogUnknownTask(t *testing.T) {
	e := newEnv(t)
	if _, err := e.run(t, "log", "ghost", "--calories", "5"); err == nil {
		t.Fatal("expected unknown task error")
	}
}

// ============================================================
// export
// ============================================================

func TestExportStatsCSV(t *testing.T) {
	e := newEnv(t)
	e.mustRun(t, "toggle", "wake-up")

	path := filepath.Join(t.TempDir(), "stats.csv")
	out := e.mustRun(t, "export", "--what", "stats", "--format", "csv", "--out", path)
	if !strings.Contains(out, path) {
		t.Fatalf("output should name the file: %q", out)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "Date,Completion Rate (%)") {
		t.Fatalf("unexpected csv:\n%s", data)
	}
}

func TestExportJournalJSON(t *testing.T) {
	e := newEnv(t)
	path := filepath.Join(t.TempDir(), "journal.json")
	out := e.mustRun(t, "export", "--what", "journal", "--format", "json", "-o", path)
	if !strings.Contains(out, "exported 0 journal records") {
		t.Fatalf("unexpected output: %q", out)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), `"count": 0`) {
		t.Fatalf("unexpected json:\n%s", data)
	}
}

func TestExportRejectsBadFlags(t *testing.T) {
	e := newEnv(t)
	if _, err := e.run(t, "export", "--format", "xml"); err == nil {
		t.Fatal("expected bad format error")
	}
	if _, err := e.run(t, "export", "--what", "tasks"); err == nil {
		t.Fatal("expected bad kind error")
	}
}

// ============================================================
// clear / version / config
// ============================================================

func TestClearRequiresYes(t *testing.T) {
	e := newEnv(t)
	e.mustRun(t, "toggle", "homework")
	if _, err := e.run(t, "clear"); err == nil {
		t.Fatal("clear without --yes should refuse")
	}
}

func TestClearDeletesEverything(t *testing.T) {
	e := newEnv(t)
	e.mustRun(t, "toggle", "homework")
	e.mustRun(t, "clear", "--yes")

	s, err := store.New(e.db)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	keys, err := s.Keys()
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 0 {
		t.Fatalf("expected no slots after clear, got %v", keys)
	}
}

func TestVersion(t *testing.T) {
	e := newEnv(t)
	out := e.mustRun(t, "version")
	if !strings.Contains(out, "streakr "+Version) {
		t.Fatalf("unexpected version output: %q", out)
	}
}

func TestInvalidLogLevelFlag(t *testing.T) {
	e := newEnv(t)
	if _, err := e.run(t, "status", "--log-level", "loud"); err == nil {
		t.Fatal("expected invalid log level to fail")
	}
}

func TestWritesLogFile(t *testing.T) {
	e := newEnv(t)
	e.mustRun(t, "toggle", "journal", "--log-level", "debug")

	data, err := os.ReadFile(e.log)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), "task toggled") {
		t.Fatalf("expected toggle log line:\n%s", data)
	}
}
