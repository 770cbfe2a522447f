package rewrite

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/dhamidi/jurand/java/symbols"
	"github.com/dhamidi/jurand/strict"
)

const javaSource = `package com.example;

import java.util.List;
import javax.annotation.Nullable;

class Example {
    @Nullable
    List<String> items;
}
`

const javaStripped = `package com.example;

import java.util.List;

class Example {
    List<String> items;
}
`

func newParams(inPlace bool, observer strict.Observer) *symbols.Parameters {
	return &symbols.Parameters{
		Matcher:           symbols.NewMatcher(nil, symbols.NewNameSet("Nullable"), observer),
		RemoveAnnotations: true,
		InPlace:           inPlace,
	}
}

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("MkdirAll: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}
	return dir
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	return string(data)
}

func TestHandleFilePrints(t *testing.T) {
	dir := writeFiles(t, map[string]string{"Example.java": javaSource})
	path := filepath.Join(dir, "Example.java")

	var stdout bytes.Buffer
	r := NewRunner(newParams(false, nil))
	r.Stdout = &stdout

	got, err := r.HandleFile(context.Background(), Task{Path: path, Origin: path})
	if err != nil {
		t.Fatalf("HandleFile: %v", err)
	}
	if string(got) != javaStripped {
		t.Errorf("HandleFile() = %q, want %q", got, javaStripped)
	}
	if want := path + ":\n" + javaStripped; stdout.String() != want {
		t.Errorf("stdout = %q, want %q", stdout.String(), want)
	}
	if readFile(t, path) != javaSource {
		t.Error("file was modified without in-place")
	}
}

func TestHandleFileStdin(t *testing.T) {
	var stdout bytes.Buffer
	r := NewRunner(newParams(false, nil))
	r.Stdin = strings.NewReader(javaSource)
	r.Stdout = &stdout

	if _, err := r.HandleFile(context.Background(), Task{}); err != nil {
		t.Fatalf("HandleFile: %v", err)
	}
	if stdout.String() != javaStripped {
		t.Errorf("stdout = %q, want %q", stdout.String(), javaStripped)
	}
}

func TestHandleFileInPlace(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"Example.java":   javaSource,
		"Unchanged.java": "class Unchanged {}\n",
	})
	if err := os.Chmod(filepath.Join(dir, "Example.java"), 0o600); err != nil {
		t.Fatalf("Chmod: %v", err)
	}

	tracker := strict.NewTracker([]string{"Nullable"}, nil, []string{"example", "unchanged"})
	var stdout, stderr bytes.Buffer
	r := NewRunner(newParams(true, tracker))
	r.Stdout = &stdout
	r.Stderr = &stderr

	example := filepath.Join(dir, "Example.java")
	if _, err := r.HandleFile(context.Background(), Task{Path: example, Origin: "example"}); err != nil {
		t.Fatalf("HandleFile(Example): %v", err)
	}
	unchanged := filepath.Join(dir, "Unchanged.java")
	if _, err := r.HandleFile(context.Background(), Task{Path: unchanged, Origin: "unchanged"}); err != nil {
		t.Fatalf("HandleFile(Unchanged): %v", err)
	}

	if got := readFile(t, example); got != javaStripped {
		t.Errorf("Example.java = %q, want %q", got, javaStripped)
	}
	info, err := os.Stat(example)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("mode = %v, want %v", info.Mode().Perm(), os.FileMode(0o600))
	}
	if got := readFile(t, unchanged); got != "class Unchanged {}\n" {
		t.Errorf("Unchanged.java = %q, want it untouched", got)
	}

	if stdout.Len() != 0 {
		t.Errorf("stdout = %q, want empty", stdout.String())
	}
	if want := "Removing symbols from file " + example + "\n"; stderr.String() != want {
		t.Errorf("stderr = %q, want %q", stderr.String(), want)
	}

	violations := tracker.Violations(true)
	if len(violations) != 1 || violations[0] != (strict.Violation{Kind: strict.UntouchedFile, Key: "unchanged"}) {
		t.Errorf("Violations() = %v, want only unchanged untouched", violations)
	}
}

func TestHandleFileDiff(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"Example.java":   javaSource,
		"Unchanged.java": "class Unchanged {}\n",
	})

	var stdout bytes.Buffer
	r := NewRunner(newParams(false, nil))
	r.Stdout = &stdout
	r.Diff = true

	example := filepath.Join(dir, "Example.java")
	if _, err := r.HandleFile(context.Background(), Task{Path: example}); err != nil {
		t.Fatalf("HandleFile: %v", err)
	}
	if _, err := r.HandleFile(context.Background(), Task{Path: filepath.Join(dir, "Unchanged.java")}); err != nil {
		t.Fatalf("HandleFile: %v", err)
	}

	out := stdout.String()
	for _, want := range []string{
		"--- a/" + example + "\n",
		"+++ b/" + example + "\n",
		"-import javax.annotation.Nullable;\n",
		"-    @Nullable\n",
		" class Example {\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("diff missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Unchanged") {
		t.Errorf("diff mentions unchanged file:\n%s", out)
	}
}

func TestHandleFileReadError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Missing.java")
	r := NewRunner(newParams(false, nil))

	_, err := r.HandleFile(context.Background(), Task{Path: path})
	var fileErr *FileError
	if !errors.As(err, &fileErr) {
		t.Fatalf("HandleFile() error = %v, want *FileError", err)
	}
	if fileErr.Path != path || fileErr.Op != "read" {
		t.Errorf("FileError = {%q, %q}, want {%q, read}", fileErr.Path, fileErr.Op, path)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("HandleFile() error = %v, want os.ErrNotExist", err)
	}
	if !strings.HasPrefix(err.Error(), path+": read: ") {
		t.Errorf("Error() = %q, want %q prefix", err.Error(), path+": read: ")
	}
}

func TestRunMatchesSequential(t *testing.T) {
	files := map[string]string{}
	for i := 0; i < 40; i++ {
		content := javaSource
		if i%3 == 0 {
			content = fmt.Sprintf("class Plain%d {}\n", i)
		}
		files[fmt.Sprintf("pkg%d/File%d.java", i%4, i)] = content
	}

	sequential := writeFiles(t, files)
	parallel := writeFiles(t, files)

	run := func(root string, jobs int) {
		tasks, err := Collect([]string{root})
		if err != nil {
			t.Fatalf("Collect: %v", err)
		}
		r := NewRunner(newParams(true, nil))
		r.Stderr = &bytes.Buffer{}
		r.Jobs = jobs
		if errs := r.Run(context.Background(), tasks); len(errs) != 0 {
			t.Fatalf("Run(jobs=%d) errors = %v", jobs, errs)
		}
	}
	run(sequential, 1)
	run(parallel, 8)

	for name := range files {
		a := readFile(t, filepath.Join(sequential, name))
		b := readFile(t, filepath.Join(parallel, name))
		if a != b {
			t.Errorf("%s differs: sequential %q, parallel %q", name, a, b)
		}
	}
}

func TestRunCollectsErrors(t *testing.T) {
	dir := writeFiles(t, map[string]string{"A.java": javaSource, "B.java": javaSource})
	tasks := []Task{
		{Path: filepath.Join(dir, "A.java")},
		{Path: filepath.Join(dir, "Missing1.java")},
		{Path: filepath.Join(dir, "B.java")},
		{Path: filepath.Join(dir, "Missing2.java")},
	}

	var stdout bytes.Buffer
	r := NewRunner(newParams(false, nil))
	r.Stdout = &stdout
	r.Jobs = 3

	errs := r.Run(context.Background(), tasks)
	var failed []string
	for _, err := range errs {
		var fileErr *FileError
		if !errors.As(err, &fileErr) {
			t.Fatalf("error %v is not a *FileError", err)
		}
		failed = append(failed, filepath.Base(fileErr.Path))
	}
	sort.Strings(failed)
	if strings.Join(failed, ",") != "Missing1.java,Missing2.java" {
		t.Errorf("failed = %v, want [Missing1.java Missing2.java]", failed)
	}

	out := stdout.String()
	for _, name := range []string{"A.java", "B.java"} {
		block := filepath.Join(dir, name) + ":\n" + javaStripped
		if !strings.Contains(out, block) {
			t.Errorf("stdout missing block for %s:\n%s", name, out)
		}
	}
}

func TestRunUsesCallerContext(t *testing.T) {
	dir := writeFiles(t, map[string]string{"A.java": javaSource, "B.java": javaSource})
	tasks := []Task{
		{Path: filepath.Join(dir, "A.java")},
		{Path: filepath.Join(dir, "B.java")},
	}

	var stdout bytes.Buffer
	r := NewRunner(newParams(false, nil))
	r.Stdout = &stdout
	r.Jobs = 2

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	errs := r.Run(ctx, tasks)
	if len(errs) != len(tasks) {
		t.Fatalf("Run() returned %d errors, want %d: %v", len(errs), len(tasks), errs)
	}
	for _, err := range errs {
		if !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want %v", err, context.Canceled)
		}
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout = %q, want empty", stdout.String())
	}
}

func TestRunEmpty(t *testing.T) {
	r := NewRunner(newParams(false, nil))
	if errs := r.Run(context.Background(), nil); len(errs) != 0 {
		t.Errorf("Run(nil) = %v, want no errors", errs)
	}
}

func TestWorkers(t *testing.T) {
	tests := []struct {
		jobs  int
		tasks int
		want  int
	}{
		{jobs: 4, tasks: 10, want: 4},
		{jobs: 4, tasks: 2, want: 2},
		{jobs: 4, tasks: 0, want: 1},
		{jobs: 1, tasks: 10, want: 1},
	}
	for _, tt := range tests {
		r := &Runner{Jobs: tt.jobs}
		if got := r.workers(tt.tasks); got != tt.want {
			t.Errorf("workers(jobs=%d, tasks=%d) = %d, want %d", tt.jobs, tt.tasks, got, tt.want)
		}
	}
}
