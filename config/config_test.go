package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dhamidi/jurand/strict"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jurand.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
names = ["Nullable", "Nonnull"]
patterns = ["^javax[.]annotation[.]"]
remove_annotations = true
`)

	f, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if strings.Join(f.Names, ",") != "Nullable,Nonnull" {
		t.Errorf("Names = %v, want [Nullable Nonnull]", f.Names)
	}
	if len(f.Patterns) != 1 || f.Patterns[0] != "^javax[.]annotation[.]" {
		t.Errorf("Patterns = %v, want [^javax[.]annotation[.]]", f.Patterns)
	}
	if !f.RemoveAnnotations {
		t.Error("RemoveAnnotations = false, want true")
	}
}

func TestLoadFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown key", "names = [\"A\"]\nin_place = true\n", "unknown keys: in_place"},
		{"wrong type", "names = \"A\"\n", "failed to parse TOML"},
		{"syntax", "names = [\n", "failed to parse TOML"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeConfig(t, tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("LoadFile() error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadFile() error = %v, want os.ErrNotExist", err)
	}
}

func TestBuild(t *testing.T) {
	params, err := Build(Options{
		Names:             []string{"Nullable", "Nullable", "Inject"},
		Patterns:          []string{"junit"},
		RemoveAnnotations: true,
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !params.RemoveAnnotations {
		t.Error("RemoveAnnotations = false, want true")
	}
	if params.InPlace || params.Strict {
		t.Errorf("InPlace = %v, Strict = %v, want both false", params.InPlace, params.Strict)
	}
	if _, ok := params.Observer().(strict.Nop); !ok {
		t.Errorf("Observer() = %T, want strict.Nop", params.Observer())
	}

	tests := []struct {
		name string
		want bool
	}{
		{"javax.annotation.Nullable", true},
		{"Inject", true},
		{"org.junit.Test", true},
		{"Override", false},
	}
	for _, tt := range tests {
		if got := params.Matcher.Match(tt.name, nil); got != tt.want {
			t.Errorf("Match(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want error
	}{
		{"no matcher", Options{}, ErrNoMatcher},
		{"no matcher with flags", Options{RemoveAnnotations: true, InPlace: true, Roots: []string{"."}}, ErrNoMatcher},
		{"in place without files", Options{Names: []string{"A"}, InPlace: true}, ErrNoInputFiles},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Build(tt.opts); !errors.Is(err, tt.want) {
				t.Errorf("Build() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestBuildInvalidPattern(t *testing.T) {
	_, err := Build(Options{Patterns: []string{"ok", "(unclosed"}})
	if err == nil || !strings.Contains(err.Error(), `invalid pattern "(unclosed"`) {
		t.Errorf("Build() error = %v, want invalid pattern", err)
	}
}

func TestBuildMergesConfigFile(t *testing.T) {
	path := writeConfig(t, `
names = ["Inject", "Nullable"]
patterns = ["errorprone"]
remove_annotations = true
`)

	params, err := Build(Options{
		Names:      []string{"Nullable"},
		ConfigFile: path,
		InPlace:    true,
		Strict:     true,
		Roots:      []string{"src"},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !params.RemoveAnnotations {
		t.Error("RemoveAnnotations = false, want true from config file")
	}

	tracker, ok := params.Observer().(*strict.Tracker)
	if !ok {
		t.Fatalf("Observer() = %T, want *strict.Tracker", params.Observer())
	}
	var got []string
	for _, v := range tracker.Violations(false) {
		got = append(got, v.Key)
	}
	want := []string{"Nullable", "Inject", "errorprone", "src"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Violations() keys = %v, want %v", got, want)
	}
}

func TestBuildConfigFileOnly(t *testing.T) {
	path := writeConfig(t, "patterns = [\"junit\"]\n")

	params, err := Build(Options{ConfigFile: path})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !params.Matcher.Match("org.junit.Test", nil) {
		t.Error("Match(org.junit.Test) = false, want true")
	}
}

func TestBuildStrictWithoutInPlace(t *testing.T) {
	params, err := Build(Options{Names: []string{"A"}, Strict: true})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if params.Strict {
		t.Error("Strict = true, want false without in-place")
	}
	if _, ok := params.Observer().(strict.Nop); !ok {
		t.Errorf("Observer() = %T, want strict.Nop", params.Observer())
	}
}
