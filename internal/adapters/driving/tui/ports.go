// Package tui provides the interactive search overlay for feedsearch.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/feedsearch/internal/core/ports/driving"
)

// Ports aggregates the driving ports the overlay needs.
type Ports struct {
	// Overlay coordinates incremental search.
	Overlay driving.OverlayService

	// Navigator opens a selected record.
	Navigator driving.Navigator
}

// NewPorts creates a new Ports aggregate.
func NewPorts(overlay driving.OverlayService, navigator driving.Navigator) *Ports {
	return &Ports{
		Overlay:   overlay,
		Navigator: navigator,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Overlay == nil {
		return ErrMissingOverlayService
	}
	if p.Navigator == nil {
		return ErrMissingNavigator
	}
	return nil
}
