package rewrite

import "fmt"

// FileError is a failure to process one file. An empty Path stands for
// standard input.
type FileError struct {
	Path string
	Op   string
	Err  error
}

func (e *FileError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Path, e.Op, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}
