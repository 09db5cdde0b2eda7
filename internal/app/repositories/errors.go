package repositories

import "fmt"

// StorageReadError wraps a failure to read or decode the local blob.
type StorageReadError struct {
	Err error
}

func (e *StorageReadError) Error() string {
	return fmt.Sprintf("storage read failed: %v", e.Err)
}

func (e *StorageReadError) Unwrap() error { return e.Err }

// StorageWriteError wraps a failure to encode or write the local blob,
// e.g. quota exceeded or a permission problem.
type StorageWriteError struct {
	Err error
}

func (e *StorageWriteError) Error() string {
	return fmt.Sprintf("storage write failed: %v", e.Err)
}

func (e *StorageWriteError) Unwrap() error { return e.Err }

// RemoteRequestError is a failed CRUD call against the remote endpoint:
// either the request itself failed or the response was not 2xx.
type RemoteRequestError struct {
	Op         string // "list", "create", "update", "delete"
	StatusCode int    // 0 when the request never got a response
	Err        error
}

func (e *RemoteRequestError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("remote %s failed: status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("remote %s failed: %v", e.Op, e.Err)
}

func (e *RemoteRequestError) Unwrap() error { return e.Err }

// RemoteDisabledError is returned when a remote operation is invoked
// while remote mode is off. It fails fast, before any network call.
type RemoteDisabledError struct {
	Op string
}

func (e *RemoteDisabledError) Error() string {
	return fmt.Sprintf("remote %s called while remote mode is disabled", e.Op)
}

// StorageUnavailableError means a read failed on the remote endpoint
// and the local fallback failed too.
type StorageUnavailableError struct {
	RemoteErr error
	LocalErr  error
}

func (e *StorageUnavailableError) Error() string {
	return fmt.Sprintf("storage unavailable: remote: %v; local: %v", e.RemoteErr, e.LocalErr)
}

func (e *StorageUnavailableError) Unwrap() error { return e.LocalErr }
