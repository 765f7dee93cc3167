// Package roboflow reserves the Roboflow backend name. Every operation
// reports not implemented until the adapter is written.
package roboflow

import (
	"context"

	"github.com/lewtec/labelbridge/backend"
)

const Name = "roboflow"

func init() {
	backend.Register(Name, New)
}

// Adapter is a placeholder for the Roboflow REST adapter.
type Adapter struct {
	backend.Unimplemented
}

func New(ctx context.Context, opts backend.Options) (backend.Backend, error) {
	return &Adapter{Unimplemented: backend.Unimplemented{BackendName: Name}}, nil
}

var _ backend.Backend = (*Adapter)(nil)
