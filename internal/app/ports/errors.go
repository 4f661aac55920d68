package ports

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrWorldQuery       = errors.New("world query failed")
	ErrNotAuthoritative = errors.New("world is not server authoritative")
)

// WorldQueryError records which World call failed.
type WorldQueryError struct {
	Op  string
	Err error
}

func (e *WorldQueryError) Error() string {
	return ErrWorldQuery.Error() + ": " + e.Op + ": " + e.Err.Error()
}

func (e *WorldQueryError) Unwrap() []error {
	return []error{ErrWorldQuery, e.Err}
}

func WorldFailure(op string, err error) error {
	if err == nil {
		return nil
	}
	return &WorldQueryError{Op: op, Err: err}
}
