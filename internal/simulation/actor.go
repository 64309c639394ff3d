package simulation

import (
	"time"

	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/goaktpb"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// BattleActor owns a Battle and serialises every access to it.
//
//   - *durationpb.Duration advances the battle by that much simulated time
//     (at least one tick) and pushes a snapshot to the viewer channel.
//   - *emptypb.Empty is answered with the current snapshot as a *structpb.Struct.
type BattleActor struct {
	battle *Battle
	// Communication with UI, may be nil in headless runs
	snapshotCh chan<- *Snapshot
}

var _ actor.Actor = (*BattleActor)(nil)

// NewBattleActor wraps battle. snapshotCh may be nil.
func NewBattleActor(battle *Battle, snapshotCh chan<- *Snapshot) *BattleActor {
	return &BattleActor{battle: battle, snapshotCh: snapshotCh}
}

func (a *BattleActor) PreStart(ctx *actor.Context) error {
	ctx.ActorSystem().Logger().Infof("battle %s ready", a.battle.ID)
	return nil
}

func (a *BattleActor) Receive(ctx *actor.ReceiveContext) {
	switch msg := ctx.Message().(type) {
	case *goaktpb.PostStart:
		ctx.Logger().Info("Battle actor started")

	case *durationpb.Duration:
		a.battle.Run(Ticks(msg.AsDuration()))

		// Non-blocking send to avoid slowing down simulation if UI is slow
		if a.snapshotCh != nil {
			select {
			case a.snapshotCh <- a.battle.Snapshot():
			default:
			}
		}

	case *emptypb.Empty:
		reply, err := a.battle.Snapshot().ToProto()
		if err != nil {
			ctx.Logger().Error(err)
			reply = &structpb.Struct{}
		}
		ctx.Response(reply)

	default:
		ctx.Unhandled()
	}
}

func (a *BattleActor) PostStop(ctx *actor.Context) error {
	ctx.ActorSystem().Logger().Infof("battle %s stopped at tick %d", a.battle.ID, a.battle.Tick())
	return nil
}

// Ticks converts simulated time to a tick count, never less than one.
func Ticks(d time.Duration) uint64 {
	if d < TickDuration {
		return 1
	}
	return uint64(d / TickDuration)
}
