package rewrite

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Task is one file to process.
type Task struct {
	// Path of the file, empty for standard input.
	Path string
	// Origin is the file root Path was found under.
	Origin string
}

// Collect expands file roots into tasks. A root that is a regular file is
// used as is, a directory contributes every regular ".java" file below it.
// Symbolic links are not followed, except for a root naming a directory.
// A root that does not exist is an error; anything else is skipped.
func Collect(roots []string) ([]Task, error) {
	var tasks []Task
	for _, root := range roots {
		info, err := os.Lstat(root)
		if err != nil {
			return nil, &FileError{Path: root, Op: "stat", Err: err}
		}
		if info.Mode().IsRegular() {
			tasks = append(tasks, Task{Path: root, Origin: root})
			continue
		}

		walkRoot := root
		if info.Mode()&fs.ModeSymlink != 0 {
			target, err := os.Stat(root)
			if err != nil || !target.IsDir() {
				log.Warningf("skipping %s: not a regular file or directory", root)
				continue
			}
			walkRoot = root + string(filepath.Separator)
		} else if !info.IsDir() {
			log.Warningf("skipping %s: not a regular file or directory", root)
			continue
		}

		err = filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				log.Warningf("skipping %s: %s", path, err)
				return nil
			}
			if d.Type().IsRegular() && strings.HasSuffix(path, ".java") {
				tasks = append(tasks, Task{Path: path, Origin: root})
			}
			return nil
		})
		if err != nil {
			return nil, &FileError{Path: root, Op: "walk", Err: err}
		}
	}
	return tasks, nil
}
