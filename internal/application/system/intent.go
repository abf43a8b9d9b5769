package system

import "golang.org/x/image/math/fixed"

// Intent represents an action the player wants to perform this frame
type Intent interface {
	isIntent()
}

// WalkIntent sets the horizontal speed. Zero stops the sprite.
type WalkIntent struct {
	Speed fixed.Int52_12 // signed, per frame
}

func (WalkIntent) isIntent() {}

// JumpIntent starts a jump when the sprite stands on something.
type JumpIntent struct {
	Speed fixed.Int52_12
}

func (JumpIntent) isIntent() {}

// CutJumpIntent ends the rise of a jump early.
type CutJumpIntent struct{}

func (CutJumpIntent) isIntent() {}
