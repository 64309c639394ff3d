package pilot

import "github.com/lao-tseu-is-alive/go-sky-pilot/pkg/behavior"

// MarkChased records that a guided munition locked on to the agent.
// A chased agent looks for cloud cover.
func (p *Pilot) MarkChased(missile behavior.ID) {
	if missile == "" || missile == p.chasedBy {
		return
	}
	p.chasedBy = missile
	p.logger.Debugf("[%s] chased by %s", p.agent.ID, missile)
}

// OfferDecoy is called by a guided munition homing on the agent. The pilot
// accepts a live decoy close enough to itself, which ends the chase; the
// munition should then retarget the decoy. Offers from another munition than
// the one being tracked are refused.
func (p *Pilot) OfferDecoy(missile, decoy behavior.Body) bool {
	if missile.Dead || decoy.Dead || decoy.ID == p.agent.ID || decoy.ID == missile.ID {
		return false
	}
	if p.chasedBy != "" && p.chasedBy != missile.ID {
		return false
	}
	if decoy.Center().DistanceTo(p.agent.Center()) > p.tuning.DecoyRange {
		return false
	}
	p.chasedBy = ""
	p.logger.Debugf("[%s] decoy %s accepted for %s", p.agent.ID, decoy.ID, missile.ID)
	return true
}

// refreshChase forgets a munition that no longer exists.
func (p *Pilot) refreshChase() {
	if p.chasedBy == "" {
		return
	}
	if b, ok := p.lookup(p.chasedBy); !ok || b.Dead {
		p.chasedBy = ""
	}
}
