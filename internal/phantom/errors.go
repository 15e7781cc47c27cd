package phantom

import "fmt"

// RepoError reports a failure obtaining, validating, or pinning the Phantom
// git repository.
type RepoError struct {
	msg string
	err error
}

func NewRepoError(err error, msg string) *RepoError {
	return &RepoError{msg: msg, err: err}
}

func (e *RepoError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("repository: %s: %v", e.msg, e.err)
	}
	return fmt.Sprintf("repository: %s", e.msg)
}

func (e *RepoError) Unwrap() error { return e.err }

// PatchError reports a patch that did not apply cleanly.
type PatchError struct {
	msg string
	err error
}

func NewPatchError(err error, msg string) *PatchError {
	return &PatchError{msg: msg, err: err}
}

func (e *PatchError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("patch: %s: %v", e.msg, e.err)
	}
	return fmt.Sprintf("patch: %s", e.msg)
}

func (e *PatchError) Unwrap() error { return e.err }

// CompileError reports a non-zero exit from the make invocation.
type CompileError struct {
	msg string
	err error
}

func NewCompileError(err error, msg string) *CompileError {
	return &CompileError{msg: msg, err: err}
}

func (e *CompileError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("compile: %s: %v", e.msg, e.err)
	}
	return fmt.Sprintf("compile: %s", e.msg)
}

func (e *CompileError) Unwrap() error { return e.err }

// HDF5NotFoundError reports a missing HDF5 installation directory.
type HDF5NotFoundError struct {
	dir string
}

func NewHDF5NotFoundError(dir string) *HDF5NotFoundError {
	return &HDF5NotFoundError{dir: dir}
}

func (e *HDF5NotFoundError) Error() string {
	return fmt.Sprintf("hdf5: cannot determine HDF5 library location: %q", e.dir)
}

// SetupError reports a non-zero exit from the phantomsetup binary.
type SetupError struct {
	msg string
	err error
}

func NewSetupError(err error, msg string) *SetupError {
	return &SetupError{msg: msg, err: err}
}

func (e *SetupError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("setup: %s: %v", e.msg, e.err)
	}
	return fmt.Sprintf("setup: %s", e.msg)
}

func (e *SetupError) Unwrap() error { return e.err }

// ScheduleError reports a failed job submission to the scheduler.
type ScheduleError struct {
	msg string
	err error
}

func NewScheduleError(err error, msg string) *ScheduleError {
	return &ScheduleError{msg: msg, err: err}
}

func (e *ScheduleError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("schedule: %s: %v", e.msg, e.err)
	}
	return fmt.Sprintf("schedule: %s", e.msg)
}

func (e *ScheduleError) Unwrap() error { return e.err }
