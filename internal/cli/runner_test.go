package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/gofrs/flock"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store/jsonstore"
	"github.com/Makepad-fr/tada/internal/store/kv"
	"github.com/Makepad-fr/tada/internal/ui"
)

type env struct {
	dir string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(home, ".cache"))
	t.Setenv("TADA_THEME", "mono")
	return &env{dir: t.TempDir()}
}

func (e *env) run(args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	full := append([]string{"--data-dir", e.dir, "--log-file", "off"}, args...)
	code = run(full, &out, &errOut)
	return code, ui.StripANSI(out.String()), ui.StripANSI(errOut.String())
}

func (e *env) items(t *testing.T) []model.Item {
	t.Helper()
	items, err := jsonstore.Load(kv.NewFileStorage(e.dir), "todos")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return items
}

func TestCommandsScenario(t *testing.T) {
	e := newEnv(t)

	steps := []struct {
		args []string
		out  string
		want []model.Item
	}{
		{[]string{"add", "Buy", "milk"}, "added #1", []model.Item{{ID: 1, Text: "Buy milk"}}},
		{[]string{"add", "Walk dog"}, "added #2", []model.Item{{ID: 1, Text: "Buy milk"}, {ID: 2, Text: "Walk dog"}}},
		{[]string{"done", "1"}, "toggled #1", []model.Item{{ID: 1, Text: "Buy milk", Complete: true}, {ID: 2, Text: "Walk dog"}}},
		{[]string{"rm", "2"}, "removed #2", []model.Item{{ID: 1, Text: "Buy milk", Complete: true}}},
		{[]string{"edit", "1", "Buy", "oat", "milk"}, "edited #1", []model.Item{{ID: 1, Text: "Buy oat milk", Complete: true}}},
	}
	for _, st := range steps {
		code, out, errOut := e.run(st.args...)
		if code != 0 {
			t.Fatalf("%v: exit %d, stderr %q", st.args, code, errOut)
		}
		if !strings.Contains(out, st.out) {
			t.Errorf("%v: stdout %q, want %q", st.args, out, st.out)
		}
		if got := e.items(t); !reflect.DeepEqual(got, st.want) {
			t.Fatalf("%v: persisted %+v, want %+v", st.args, got, st.want)
		}
	}
}

func TestList(t *testing.T) {
	e := newEnv(t)
	e.run("add", "Buy milk")
	e.run("add", "Walk dog")
	e.run("done", "2")

	code, out, _ := e.run("ls")
	if code != 0 {
		t.Fatalf("ls exit %d", code)
	}
	for _, want := range []string{"Total 2", "1   [ ] Buy milk", "2   [x] Walk dog"} {
		if !strings.Contains(out, want) {
			t.Errorf("ls missing %q:\n%s", want, out)
		}
	}

	code, out, _ = e.run("ls", "--group")
	if code != 0 {
		t.Fatalf("ls --group exit %d", code)
	}
	if p, d := strings.Index(out, "Pending"), strings.Index(out, "Done"); p < 0 || d < p {
		t.Errorf("grouped listing out of order:\n%s", out)
	}
}

func TestListEmpty(t *testing.T) {
	e := newEnv(t)
	code, out, _ := e.run("ls")
	if code != 0 || !strings.Contains(out, "No tasks yet") {
		t.Fatalf("exit %d:\n%s", code, out)
	}
}

func TestMalformedSnapshotStartsEmpty(t *testing.T) {
	e := newEnv(t)
	if err := os.WriteFile(filepath.Join(e.dir, "todos.json"), []byte("{oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	code, out, _ := e.run("add", "fresh")
	if code != 0 || !strings.Contains(out, "added #1") {
		t.Fatalf("exit %d: %q", code, out)
	}
	if got := e.items(t); len(got) != 1 || got[0].Text != "fresh" {
		t.Fatalf("got %+v", got)
	}
}

func TestUsageErrors(t *testing.T) {
	e := newEnv(t)
	e.run("add", "a")

	tests := []struct {
		name string
		args []string
		msg  string
	}{
		{"unknown subcommand", []string{"frobnicate"}, "unknown command"},
		{"add without text", []string{"add"}, "arg"},
		{"blank add", []string{"add", "  "}, "empty text"},
		{"done not a number", []string{"done", "x"}, "not a number: x"},
		{"rm unknown id", []string{"rm", "9"}, "no task with id 9"},
		{"edit missing text", []string{"edit", "1"}, "arg"},
		{"bad flag", []string{"ls", "--nope"}, "unknown flag"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, errOut := e.run(tt.args...)
			if code != 2 {
				t.Fatalf("exit: got %d, want 2 (stderr %q)", code, errOut)
			}
			if !strings.Contains(errOut, "✖") || !strings.Contains(errOut, tt.msg) {
				t.Errorf("stderr %q, want %q", errOut, tt.msg)
			}
		})
	}

	if got := e.items(t); len(got) != 1 {
		t.Fatalf("usage errors changed the list: %+v", got)
	}
}

func TestConfigErrorIsRuntimeFailure(t *testing.T) {
	e := newEnv(t)
	code, _, errOut := e.run("--theme", "plaid", "ls")
	if code != 1 || !strings.Contains(errOut, "theme") {
		t.Fatalf("exit %d, stderr %q", code, errOut)
	}
}

func TestStorageKeyFlag(t *testing.T) {
	e := newEnv(t)
	if code, _, errOut := e.run("--key", "work", "add", "a"); code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if _, err := os.Stat(filepath.Join(e.dir, "work.json")); err != nil {
		t.Fatalf("work slot not written: %v", err)
	}
	if got := e.items(t); len(got) != 0 {
		t.Fatalf("default slot touched: %+v", got)
	}
}

func TestSaveFailureExitsNonZero(t *testing.T) {
	e := newEnv(t)
	if code, _, errOut := e.run("add", "a"); code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}

	// A reader holding the slot blocks every write until it lets go.
	lock := flock.New(filepath.Join(e.dir, "todos.json.lock"))
	if err := lock.RLock(); err != nil {
		t.Fatal(err)
	}
	defer lock.Unlock()

	for _, args := range [][]string{{"add", "b"}, {"done", "1"}} {
		code, out, errOut := e.run(args...)
		if code != 1 {
			t.Fatalf("%v: exit %d, want 1", args, code)
		}
		if out != "" {
			t.Errorf("%v: reported success: %q", args, out)
		}
		if !strings.Contains(errOut, "✖ save:") {
			t.Errorf("%v: stderr %q", args, errOut)
		}
	}

	lock.Unlock()
	want := []model.Item{{ID: 1, Text: "a"}}
	if got := e.items(t); !reflect.DeepEqual(got, want) {
		t.Fatalf("persisted %+v, want %+v", got, want)
	}
}
