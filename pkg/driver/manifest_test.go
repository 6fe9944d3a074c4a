package driver

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestFileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
name: demo
version: 0.1.0
authors: [" alice ", "", bob]
log:
  level: DEBUG
  format: json
  file: logs/plc.log
targets:
  app:
    main: src/main.plc
  java:
    main: src/main.plc
    mode: java
    output: out/Main.java
    class: Demo
`)
	manifest, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if manifest.Name != "demo" || manifest.Version != "0.1.0" {
		t.Fatalf("unexpected header %+v", manifest)
	}
	if got := strings.Join(manifest.Authors, ","); got != "alice,bob" {
		t.Fatalf("authors = %q", got)
	}
	if manifest.Log.Level != "debug" || manifest.Log.Format != "json" {
		t.Fatalf("unexpected log config %+v", manifest.Log)
	}
	if manifest.Log.File != filepath.Join(dir, "logs", "plc.log") {
		t.Fatalf("log file not resolved: %q", manifest.Log.File)
	}
	if got := strings.Join(manifest.TargetOrder, ","); got != "app,java" {
		t.Fatalf("target order = %q", got)
	}
	app, err := manifest.DefaultTarget()
	if err != nil {
		t.Fatalf("DefaultTarget: %v", err)
	}
	if app.Mode != TargetModeRun || app.Main != filepath.Join(dir, "src", "main.plc") {
		t.Fatalf("unexpected default target %+v", app)
	}
	java, ok := manifest.Target("JAVA")
	if !ok {
		t.Fatalf("expected case-insensitive target lookup")
	}
	if java.Mode != TargetModeJava || java.Class != "Demo" || java.Output != filepath.Join(dir, "out", "Main.java") {
		t.Fatalf("unexpected java target %+v", java)
	}
	if _, ok := manifest.Target("missing"); ok {
		t.Fatalf("expected missing target lookup to fail")
	}
}

func TestLoadManifestValidation(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
log:
  level: loud
targets:
  app:
    mode: native
  tool:
    main: a.plc
    class: Tool
`)
	_, err := LoadManifest(path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	want := []string{
		"name must be provided",
		`log.level "loud"`,
		`target "app" requires a main entrypoint`,
		`target "app" has unsupported mode "native"`,
		`target "tool" sets output or class outside java mode`,
	}
	if len(verr.Issues) != len(want) {
		t.Fatalf("issues = %v", verr.Issues)
	}
	for i, fragment := range want {
		if !strings.Contains(verr.Issues[i], fragment) {
			t.Fatalf("issue %d = %q, want fragment %q", i, verr.Issues[i], fragment)
		}
	}
}

func TestLoadManifestRejectsUnknownFields(t *testing.T) {
	cases := map[string]string{
		"top level": "name: demo\nlicense: MIT\n",
		"target":    "name: demo\ntargets:\n  app:\n    main: a.plc\n    entry: b\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := writeManifest(t, t.TempDir(), content)
			if _, err := LoadManifest(path); err == nil {
				t.Fatalf("expected unknown field error")
			}
		})
	}
}

func TestLoadManifestEmpty(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "")
	_, err := LoadManifest(path)
	if err == nil || !strings.Contains(err.Error(), "is empty") {
		t.Fatalf("expected empty manifest error, got %v", err)
	}
}

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	path := writeManifest(t, root, "name: demo\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	found, err := FindManifest(nested)
	if err != nil {
		t.Fatalf("FindManifest: %v", err)
	}
	if found != path {
		t.Fatalf("found %q, want %q", found, path)
	}
}

func TestDefaultTargetWithoutTargets(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "name: demo\n")
	manifest, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if _, err := manifest.DefaultTarget(); !errors.Is(err, ErrNoTargets) {
		t.Fatalf("expected ErrNoTargets, got %v", err)
	}
}
