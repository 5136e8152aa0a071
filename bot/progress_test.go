package bot

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestStuckFiresOnce(t *testing.T) {
	p := DefaultParams()
	pos := mgl64.Vec3{}
	target := mgl64.Vec3{0, 0, 10}
	pp := NewPathProgress(p, pos)

	fired := 0
	for elapsed := 0.0; elapsed < 2.5; elapsed += 0.25 {
		if pp.Update(pos, target, false, 0.25) {
			fired++
			assert.Equal(t, 0.0, pp.StuckTimer())
		}
	}
	assert.Equal(t, 1, fired)
	assert.Equal(t, 0.0, pp.StuckTimer())
}

func TestProgressResetsTimer(t *testing.T) {
	p := DefaultParams()
	target := mgl64.Vec3{0, 0, 10}
	pp := NewPathProgress(p, mgl64.Vec3{})

	pp.Update(mgl64.Vec3{}, target, false, 0.5)
	pp.Update(mgl64.Vec3{0, 0, 0.1}, target, false, 0.5)
	assert.Equal(t, 0.5, pp.StuckTimer())

	// closing in by more than the epsilon counts as progress
	pp.Update(mgl64.Vec3{0, 0, 1}, target, false, 0.5)
	assert.Equal(t, 0.0, pp.StuckTimer())

	pp.Update(mgl64.Vec3{0, 0, 1}, target, false, 0.5)
	assert.Equal(t, 0.5, pp.StuckTimer())
	assert.False(t, pp.Update(mgl64.Vec3{0, 0, 1}, target, true, 0.5))
	assert.Equal(t, 0.0, pp.StuckTimer())

	pp.Update(mgl64.Vec3{0, 0, 1}, target, false, 0.5)
	pp.Reset()
	assert.Equal(t, 0.0, pp.StuckTimer())
	pp.Update(mgl64.Vec3{0, 0, 1}, target, false, 0.5)
	assert.Equal(t, 0.0, pp.StuckTimer())
}

func TestProgressSpeed(t *testing.T) {
	pp := NewPathProgress(DefaultParams(), mgl64.Vec3{})
	pp.Update(mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0, 0, 10}, false, 0.5)
	assert.InDelta(t, 0.5, pp.Speed(), 1e-9)
	pp.Update(mgl64.Vec3{0, 0, 2}, mgl64.Vec3{0, 0, 10}, true, 0.5)
	assert.InDelta(t, 0.875, pp.Speed(), 1e-9)
}

func TestMoveIntent(t *testing.T) {
	m := NewMoveIntent(mgl64.Vec2{3, 4})
	assert.InDelta(t, 1.0, m.Direction.Len(), 1e-9)
	assert.InDelta(t, 0.6, m.Direction[0], 1e-9)

	m = NewMoveIntent(mgl64.Vec2{0.3, 0})
	assert.Equal(t, mgl64.Vec3{0.3, 0, 0}, m.World())

	assert.False(t, m.ConsumeJumpRequest())
	m.RequestJump()
	assert.True(t, m.ConsumeJumpRequest())
	assert.False(t, m.ConsumeJumpRequest())
}
