package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lao-tseu-is-alive/go-sky-pilot/internal/simulation"
	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/emptypb"
)

const (
	defaultTicks = 3600
	askTimeout   = 2 * time.Minute
)

func main() {
	configFile := flag.String("config", "", "battle config file (.json, .yaml); built-in defaults when empty")
	schemaFile := flag.String("schema", "", "JSON schema for the config; the embedded one when empty")
	headless := flag.Bool("headless", false, "run without a window and print the final snapshot")
	ticks := flag.Uint64("ticks", 0, "ticks to simulate in headless mode (default maxTicks, else 3600)")
	debug := flag.Bool("debug", false, "log pilot decisions")
	flag.Parse()

	cfg := simulation.DefaultConfig()
	if *configFile != "" {
		var err error
		if cfg, err = simulation.LoadConfig(*configFile, *schemaFile); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	level := golog.InfoLevel
	if *debug {
		level = golog.DebugLevel
	}
	logger := golog.New(level, os.Stderr)

	ctx := context.Background()
	system, err := actor.NewActorSystem("SkyPilot", actor.WithLogger(logger))
	if err != nil {
		log.Fatalf("Failed to create actor system: %v", err)
	}
	if err := system.Start(ctx); err != nil {
		log.Fatalf("Failed to start actor system: %v", err)
	}
	defer func() { _ = system.Stop(ctx) }()

	if *headless {
		n := *ticks
		if n == 0 {
			n = cfg.MaxTicks
		}
		if n == 0 {
			n = defaultTicks
		}
		if err := runHeadless(ctx, system, cfg, n); err != nil {
			log.Fatal(err)
		}
		return
	}

	game, err := simulation.GetNewGame(ctx, cfg, system)
	if err != nil {
		log.Fatal(err)
	}
	ebiten.SetWindowSize(int(cfg.ViewWidth), int(cfg.WorldHeight)+32)
	ebiten.SetWindowTitle("Sky Pilot: Blue vs Red")
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

// runHeadless advances the battle in one message and prints the snapshot
// it ends in.
func runHeadless(ctx context.Context, system actor.ActorSystem, cfg *simulation.Config, ticks uint64) error {
	battle, err := simulation.NewBattle(cfg, system.Logger())
	if err != nil {
		return err
	}
	pid, err := system.Spawn(ctx, "battle", simulation.NewBattleActor(battle, nil))
	if err != nil {
		return fmt.Errorf("failed to spawn battle: %w", err)
	}

	if err := actor.Tell(ctx, pid, durationpb.New(time.Duration(ticks)*simulation.TickDuration)); err != nil {
		return fmt.Errorf("failed to run battle: %w", err)
	}
	reply, err := actor.Ask(ctx, pid, &emptypb.Empty{}, askTimeout)
	if err != nil {
		return fmt.Errorf("failed to fetch snapshot: %w", err)
	}

	out, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(reply)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
