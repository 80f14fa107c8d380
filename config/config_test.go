package config

import (
	"os"
	"path/filepath"
	"testing"

	golfscript "github.com/Starklosch/Golfscript/core"
)

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	content := `
[interpreter]
max-depth = 100
seed = 7

[repl]
prompt = "gs> "
reset = ["stack", "vars"]

[output]
native = true

[log]
verbosity = 2

[prelude]
sq = ".*"
`
	path := filepath.Join(dir, "golfscript.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.Interpreter.MaxDepth != 100 || c.Interpreter.Seed != 7 {
		t.Errorf("interpreter = %+v", c.Interpreter)
	}
	if c.REPL.Prompt != "gs> " {
		t.Errorf("repl = %+v", c.REPL)
	}
	if opts, err := c.ResetOptions(); err != nil || opts != golfscript.ResetStack|golfscript.ResetVars {
		t.Errorf("reset options = %d, %v", opts, err)
	}
	if c.REPL.ContinuationPrompt != ". " {
		t.Errorf("continuation prompt = %q, want default", c.REPL.ContinuationPrompt)
	}
	if !c.Output.Native || c.Log.Verbosity != 2 {
		t.Errorf("output %+v log %+v", c.Output, c.Log)
	}
	if c.Prelude["sq"] != ".*" {
		t.Errorf("prelude = %v", c.Prelude)
	}
	if c.Path != path {
		t.Errorf("path = %q, want %q", c.Path, path)
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	content := `
interpreter:
  max-depth: 50
repl:
  continuation-prompt: "... "
prelude:
  inc: ")"
`
	path := filepath.Join(dir, "golfscript.yml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.Interpreter.MaxDepth != 50 {
		t.Errorf("max depth = %d, want 50", c.Interpreter.MaxDepth)
	}
	if c.REPL.Prompt != "> " || c.REPL.ContinuationPrompt != "... " {
		t.Errorf("repl = %+v", c.REPL)
	}
	if c.Prelude["inc"] != ")" {
		t.Errorf("prelude = %v", c.Prelude)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "golfscript.toml")
	if err := os.WriteFile(bad, []byte("[interpreter\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("expected a parse error")
	}

	other := filepath.Join(dir, "golfscript.json")
	if err := os.WriteFile(other, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(other); err == nil {
		t.Error("expected an unsupported format error")
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("expected a read error")
	}
}

func TestFindAndLoad(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(root, "golfscript.yaml")
	if err := os.WriteFile(path, []byte("interpreter:\n  seed: 3\n"), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := FindAndLoad(sub)
	if err != nil {
		t.Fatalf("FindAndLoad failed: %v", err)
	}
	if c.Path != path || c.Interpreter.Seed != 3 {
		t.Errorf("loaded %q seed %d", c.Path, c.Interpreter.Seed)
	}
}

func TestDefault(t *testing.T) {
	c := Default()
	if c.Interpreter.MaxDepth != golfscript.DefaultMaxDepth {
		t.Errorf("max depth = %d", c.Interpreter.MaxDepth)
	}
	if c.Path != "" || c.Prelude == nil {
		t.Errorf("default = %+v", c)
	}
	ic := c.InterpConfig()
	if ic.MaxDepth != golfscript.DefaultMaxDepth {
		t.Errorf("interp max depth = %d", ic.MaxDepth)
	}
}

func TestParseReset(t *testing.T) {
	tests := []struct {
		names []string
		want  int
		err   bool
	}{
		{nil, 0, false},
		{[]string{"stack"}, golfscript.ResetStack, false},
		{[]string{"vars", " stack"}, golfscript.ResetStack | golfscript.ResetVars, false},
		{[]string{""}, 0, false},
		{[]string{"ns"}, 0, true},
	}
	for _, tt := range tests {
		got, err := ParseReset(tt.names)
		if (err != nil) != tt.err {
			t.Errorf("ParseReset(%q) error = %v, want error %v", tt.names, err, tt.err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseReset(%q) = %d, want %d", tt.names, got, tt.want)
		}
	}
}
