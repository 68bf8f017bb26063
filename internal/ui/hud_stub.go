//go:build !ebiten

package ui

import "walks/internal/core"

// HUD is the headless stand-in for the side panel.
type HUD struct{}

func NewHUD(core.Sim, int) *HUD { return nil }

func (h *HUD) Update() {}

func (h *HUD) Draw(any, int, int) {}
