package deployment

import "fmt"

// NotFoundError indicates the deployment record file does not exist. Fatal:
// the project has not been initialized (or the command ran in the wrong
// directory).
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no deployment record at %s: run 'daoforge init' to create a project", e.Path)
}

// ParseError indicates the deployment record file exists but is not valid
// JSON. Recoverable: the previous generation survives at BackupPath, but
// restoring it is the caller's decision, never automatic.
type ParseError struct {
	Path       string
	BackupPath string
	Err        error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("deployment record %s is unreadable: %v (last known good state is at %s)", e.Path, e.Err, e.BackupPath)
}

func (e *ParseError) Unwrap() error { return e.Err }
