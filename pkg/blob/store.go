package blob

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when a handle does not resolve to a stored object.
var ErrNotFound = errors.New("blob: object not found")

// Handle is an opaque reference to a stored object. Callers must not parse
// it; only the store that issued it can resolve it.
type Handle string

func (h Handle) IsZero() bool { return h == "" }

// Store persists uploaded documents (resumes, job descriptions) and resolves
// handles back to bytes. Implementations must make Save atomic: on error no
// handle is issued and nothing is left behind for it.
type Store interface {
	Save(ctx context.Context, fileName string, r io.Reader) (Handle, int64, error)
	Open(ctx context.Context, h Handle) (io.ReadCloser, error)
	Delete(ctx context.Context, h Handle) error
}
