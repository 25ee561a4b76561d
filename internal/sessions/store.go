// Package sessions persists widget instances between inbound events so a
// stateless HTTP adapter can host many widgets. Two backends exist: an
// in-process map (default) and Redis (for multi-process deployments).
package sessions

import (
	"context"

	"phonewidget_backend/internal/widget/domain"
)

// Instance is the persisted form of one widget: its id, construction options
// and current state. Function-valued options (DisplayName, BoundValue) do not
// survive persistence; the service re-attaches its defaults after a load.
type Instance struct {
	ID      string         `json:"id"`
	Options domain.Options `json:"options"`
	State   domain.State   `json:"state"`
}

// Store is the widget instance store. Get returns apperr.NotFound for an
// unknown id.
type Store interface {
	Get(ctx context.Context, id string) (Instance, error)
	Put(ctx context.Context, inst Instance) error
	Delete(ctx context.Context, id string) error
}
