package simulation

import (
	"cmp"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/lao-tseu-is-alive/go-sky-pilot/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-sky-pilot/pkg/geometry"
	"google.golang.org/protobuf/types/known/structpb"
)

// Snapshot is a read-only copy of the battle handed to the viewer and the
// headless report. Nothing in it points back into the battle.
type Snapshot struct {
	BattleID    string      `json:"battleId"`
	Tick        uint64      `json:"tick"`
	Over        bool        `json:"over"`
	Winner      string      `json:"winner,omitempty"`
	WorldWidth  float64     `json:"worldWidth"`
	WorldHeight float64     `json:"worldHeight"`
	Agents      []AgentView `json:"agents"`
	Bodies      []BodyView  `json:"bodies"`

	BlueHelicopters int `json:"blueHelicopters"`
	RedHelicopters  int `json:"redHelicopters"`
}

// AgentView is one helicopter as the pilot left it this tick.
type AgentView struct {
	ID     string            `json:"id"`
	Team   string            `json:"team"`
	Mode   string            `json:"mode"`
	Target string            `json:"target,omitempty"`
	Rect   geometry.Rect     `json:"rect"`
	Vel    geometry.Vector2D `json:"vel"`

	Fuel     float64 `json:"fuel"`
	Health   float64 `json:"health"`
	Ammo     int     `json:"ammo"`
	Bombs    int     `json:"bombs"`
	Missiles int     `json:"missiles"`

	Firing  bool `json:"firing,omitempty"`
	Bombing bool `json:"bombing,omitempty"`
	Landed  bool `json:"landed,omitempty"`
	Flipped bool `json:"flipped,omitempty"`
	Chased  bool `json:"chased,omitempty"`

	Whiskers []geometry.Vector2D `json:"whiskers,omitempty"`
}

// BodyView is any other entity.
type BodyView struct {
	ID   string        `json:"id"`
	Kind string        `json:"kind"`
	Team string        `json:"team"`
	Rect geometry.Rect `json:"rect"`
}

func teamName(t behavior.Team) string {
	switch t {
	case behavior.TeamBlue:
		return "blue"
	case behavior.TeamRed:
		return "red"
	default:
		return "neutral"
	}
}

// Snapshot copies the current state. Whiskers are only filled in when the
// config asks for them.
func (b *Battle) Snapshot() *Snapshot {
	s := &Snapshot{
		BattleID:    b.ID.String(),
		Tick:        b.tick,
		Over:        b.over,
		WorldWidth:  b.world.W,
		WorldHeight: b.world.H,
		Agents:      make([]AgentView, 0, len(b.crafts)),
		Bodies:      make([]BodyView, 0, len(b.units)),
	}
	if b.over {
		s.Winner = teamName(b.winner)
	}

	for _, c := range b.crafts {
		if c.down {
			continue
		}
		a := c.agent
		v := AgentView{
			ID:       string(a.ID),
			Team:     teamName(a.Team),
			Mode:     c.pilot.Mode().String(),
			Target:   string(c.pilot.Target()),
			Rect:     a.Rect,
			Vel:      a.Vel,
			Fuel:     a.Fuel,
			Health:   a.Health,
			Ammo:     a.Ammo,
			Bombs:    a.Bombs,
			Missiles: a.Missiles,
			Firing:   a.Firing,
			Bombing:  a.Bombing,
			Landed:   a.Landed,
			Flipped:  a.Flipped,
			Chased:   c.pilot.Chased(),
		}
		if b.cfg.DisplayWhiskers {
			probes := behavior.Probes(&a.Craft, b.cfg.Pilot.Tuning)
			v.Whiskers = probes[:]
		}
		s.Agents = append(s.Agents, v)

		switch a.Team {
		case behavior.TeamBlue:
			s.BlueHelicopters++
		case behavior.TeamRed:
			s.RedHelicopters++
		}
	}

	for _, u := range b.units {
		s.Bodies = append(s.Bodies, BodyView{
			ID:   string(u.body.ID),
			Kind: u.body.Kind.String(),
			Team: teamName(u.body.Team),
			Rect: u.body.Rect,
		})
	}
	slices.SortFunc(s.Bodies, func(x, y BodyView) int { return cmp.Compare(x.ID, y.ID) })
	return s
}

// ToProto converts the snapshot to a protobuf Struct so it can travel as an
// actor reply.
func (s *Snapshot) ToProto() (*structpb.Struct, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("cannot encode snapshot: %w", err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("cannot decode snapshot: %w", err)
	}
	return structpb.NewStruct(m)
}
