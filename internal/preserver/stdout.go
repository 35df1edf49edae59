package preserver

import (
	"context"
	"fmt"

	"github.com/scribe-data/scribe/internal"
)

// Stdout prints decoded records instead of preserving them. Useful for
// inspecting a pipeline before pointing it at real storage.
type Stdout struct{}

func (s *Stdout) Preserve(ctx context.Context, record *internal.Record) error {
	fmt.Println(record.Map())
	return nil
}

func (s *Stdout) Flush(ctx context.Context) error {
	return nil
}

func (s *Stdout) Close(ctx context.Context) error {
	return nil
}

func (s *Stdout) Count() int {
	return 0
}
