//go:build !ebiten

package ui

import "walks/internal/core"

// Overlay is the headless stand-in for the boundary and heads overlay.
type Overlay struct{}

func NewOverlay(core.Sim, int) *Overlay { return &Overlay{} }

func (o *Overlay) Update() {}

func (o *Overlay) Draw(any) {}
