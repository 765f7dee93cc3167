// Package labelstudio reserves the Label Studio backend name. Every
// operation reports not implemented until the adapter is written.
package labelstudio

import (
	"context"

	"github.com/lewtec/labelbridge/backend"
)

const Name = "labelstudio"

func init() {
	backend.Register(Name, New)
}

// Adapter is a placeholder for the Label Studio REST adapter.
type Adapter struct {
	backend.Unimplemented
}

func New(ctx context.Context, opts backend.Options) (backend.Backend, error) {
	return &Adapter{Unimplemented: backend.Unimplemented{BackendName: Name}}, nil
}

var _ backend.Backend = (*Adapter)(nil)
