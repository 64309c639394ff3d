package pilot

import (
	"testing"

	"github.com/lao-tseu-is-alive/go-sky-pilot/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-sky-pilot/pkg/geometry"
	"github.com/stretchr/testify/assert"
)

func TestOfferDecoy(t *testing.T) {
	missile := entity("m1", behavior.KindSmartMissile, behavior.TeamRed, home.Add(geometry.Vector2D{X: -300}), 8, 4)
	other := entity("m2", behavior.KindSmartMissile, behavior.TeamRed, home.Add(geometry.Vector2D{X: 300}), 8, 4)
	near := entity("balloon", behavior.KindBalloon, behavior.TeamNeutral, home.Add(geometry.Vector2D{X: 60}), 24, 28)
	far := entity("far", behavior.KindBalloon, behavior.TeamNeutral, home.Add(geometry.Vector2D{X: 500}), 24, 28)

	world := newFakeWorld()
	world.put(missile, other, near, far)
	agent := newTestAgent("ai", behavior.TeamBlue, home)
	p, _ := newTestPilot(agent, world)

	p.MarkChased(missile.ID)
	assert.True(t, p.Chased())

	assert.False(t, p.OfferDecoy(missile, far), "too far from the agent")
	assert.False(t, p.OfferDecoy(other, near), "not the munition being tracked")
	assert.False(t, p.OfferDecoy(missile, agent.Body()), "the agent is no decoy of itself")

	dead := near
	dead.Dead = true
	assert.False(t, p.OfferDecoy(missile, dead))

	assert.True(t, p.OfferDecoy(missile, near))
	assert.False(t, p.Chased())
}

func TestChase_ForgottenWhenMunitionGone(t *testing.T) {
	world := newFakeWorld()
	world.put(entity("m1", behavior.KindSmartMissile, behavior.TeamRed, home.Add(geometry.Vector2D{X: -300}), 8, 4))
	p, _ := newTestPilot(newTestAgent("ai", behavior.TeamBlue, home), world)

	p.MarkChased("m1")
	p.Step(1)
	assert.True(t, p.Chased())

	delete(world.bodies, "m1")
	p.Step(2)
	assert.False(t, p.Chased())
}
