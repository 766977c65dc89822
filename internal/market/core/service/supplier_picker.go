package service

import (
	"context"
	"errors"

	"github.com/freshly-yours/marketplace/internal/market/core/domain/entity"
	"github.com/freshly-yours/marketplace/internal/market/core/ports"
)

var _ ports.SupplierPicker = (*FirstAvailablePicker)(nil)

// FirstAvailablePicker assigns whichever supplier the directory returns
// first. It matches the observed behavior of the system: no delivery radius,
// stock or load awareness. Smarter strategies implement the same port.
type FirstAvailablePicker struct {
	directory ports.ActorDirectory
}

func NewFirstAvailablePicker(directory ports.ActorDirectory) *FirstAvailablePicker {
	return &FirstAvailablePicker{directory: directory}
}

func (p *FirstAvailablePicker) Pick(ctx context.Context) (*entity.Actor, error) {
	supplier, err := p.directory.FindFirstByRole(ctx, entity.RoleSupplier)
	if err != nil {
		if errors.Is(err, ports.ErrActorNotFound) {
			return nil, ports.ErrNoSuppliers
		}
		return nil, err
	}
	return supplier, nil
}
