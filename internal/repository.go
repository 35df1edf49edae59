package internal

import (
	"context"
	"io"
)

// Repository is where preserved artifacts end up: local disk, object
// storage, or stdout during development.
type Repository interface {
	Write(ctx context.Context, key string, reader io.Reader) error
}
