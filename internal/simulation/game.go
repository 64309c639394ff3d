package simulation

import (
	"context"
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lao-tseu-is-alive/go-sky-pilot/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-sky-pilot/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-sky-pilot/pkg/ui"
	"github.com/tochemey/goakt/v3/actor"
	"google.golang.org/protobuf/types/known/durationpb"
)

const (
	panelHeight = 32
	scrollSpeed = 12
)

var (
	skyColor     = color.RGBA{R: 18, G: 24, B: 48, A: 255}
	blueColor    = color.RGBA{R: 50, G: 100, B: 255, A: 255}
	redColor     = color.RGBA{R: 255, G: 50, B: 50, A: 255}
	neutralColor = color.RGBA{R: 160, G: 160, B: 160, A: 255}
	whiskerColor = color.RGBA{R: 255, G: 220, B: 80, A: 160}
)

var kindColors = map[string]color.RGBA{
	behavior.KindCloud.String():        {R: 230, G: 230, B: 240, A: 90},
	behavior.KindTerrain.String():      {R: 90, G: 70, B: 50, A: 255},
	behavior.KindChain.String():        {R: 120, G: 120, B: 120, A: 255},
	behavior.KindGunfire.String():      {R: 255, G: 255, B: 160, A: 255},
	behavior.KindBomb.String():         {R: 40, G: 40, B: 40, A: 255},
	behavior.KindSmartMissile.String(): {R: 255, G: 140, B: 0, A: 255},
}

// Game is the ebiten viewer. It ticks the battle actor once per frame and
// draws the latest snapshot it received.
type Game struct {
	ctx        context.Context
	System     actor.ActorSystem
	battlePID  *actor.PID
	snapshotCh chan *Snapshot
	lastState  *Snapshot
	cfg        *Config

	// UI Controls
	panel          *ui.Panel
	widgetPause    *ui.Toggle
	widgetWhiskers *ui.Toggle
	widgetFollow   *ui.Toggle
	stepOnce       bool

	camX   float64
	follow int // index into lastState.Agents

	// Timing instrumentation
	updateAvg float64 // Rolling average in ms
	drawAvg   float64 // Rolling average in ms
}

// GetNewGame builds the battle described by cfg and spawns its actor.
func GetNewGame(ctx context.Context, cfg *Config, system actor.ActorSystem) (*Game, error) {
	battle, err := NewBattle(cfg, system.Logger())
	if err != nil {
		return nil, err
	}

	// Buffer to avoid blocking
	snapshotCh := make(chan *Snapshot, 10)
	pid, err := system.Spawn(ctx, "battle", NewBattleActor(battle, snapshotCh))
	if err != nil {
		return nil, fmt.Errorf("failed to spawn battle: %w", err)
	}

	g := &Game{
		ctx:        ctx,
		System:     system,
		battlePID:  pid,
		snapshotCh: snapshotCh,
		lastState:  battle.Snapshot(),
		cfg:        cfg,
	}

	g.panel = ui.NewPanel(0, cfg.WorldHeight, cfg.ViewWidth, panelHeight)
	g.widgetPause = g.panel.AddToggle("Pause", false)
	g.panel.AddButton("Step", func() { g.stepOnce = true })
	g.widgetWhiskers = g.panel.AddToggle("Whiskers", cfg.DisplayWhiskers)
	g.widgetFollow = g.panel.AddToggle("Follow", true)
	g.panel.AddButton("Next", g.nextAgent)
	return g, nil
}

func (g *Game) nextAgent() {
	if n := len(g.lastState.Agents); n > 0 {
		g.follow = (g.follow + 1) % n
	}
}

func (g *Game) Update() error {
	start := time.Now()
	defer func() {
		g.updateAvg = g.updateAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	g.panel.Update()
	g.handleKeys()

	// keep only the newest snapshot
Drain:
	for {
		select {
		case snap := <-g.snapshotCh:
			g.lastState = snap
		default:
			break Drain
		}
	}

	if !g.lastState.Over && (!g.widgetPause.Value || g.stepOnce) {
		g.stepOnce = false
		if err := actor.Tell(g.ctx, g.battlePID, durationpb.New(TickDuration)); err != nil {
			return err
		}
	}

	g.moveCamera()
	return nil
}

func (g *Game) handleKeys() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.widgetPause.Value = !g.widgetPause.Value
	case inpututil.IsKeyJustPressed(ebiten.KeyW):
		g.widgetWhiskers.Value = !g.widgetWhiskers.Value
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		g.widgetFollow.Value = !g.widgetFollow.Value
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		g.nextAgent()
	case inpututil.IsKeyJustPressed(ebiten.KeyPeriod):
		g.stepOnce = true
	}

	if ebiten.IsKeyPressed(ebiten.KeyLeft) {
		g.widgetFollow.Value = false
		g.camX -= scrollSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) {
		g.widgetFollow.Value = false
		g.camX += scrollSpeed
	}
}

func (g *Game) moveCamera() {
	agents := g.lastState.Agents
	if g.widgetFollow.Value && len(agents) > 0 {
		if g.follow >= len(agents) {
			g.follow = 0
		}
		g.camX = agents[g.follow].Rect.Center().X - g.cfg.ViewWidth/2
	}
	g.camX = clamp(g.camX, 0, max(g.cfg.WorldWidth-g.cfg.ViewWidth, 0))
}

func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	defer func() {
		g.drawAvg = g.drawAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	screen.Fill(skyColor)
	s := g.lastState

	for _, b := range s.Bodies {
		g.fillRect(screen, b.Rect, bodyColor(b))
	}
	for _, a := range s.Agents {
		g.drawAgent(screen, a)
	}

	g.panel.Draw(screen)
	g.drawStatsBar(screen)
	g.drawHUD(screen)

	if s.Over {
		msg := "GAME OVER\nDRAW"
		if s.Winner != "neutral" {
			msg = fmt.Sprintf("GAME OVER\n%s is the WINNER !", strings.ToUpper(s.Winner))
		}
		ebitenutil.DebugPrintAt(screen, msg, int(g.cfg.ViewWidth/2-60), int(g.cfg.WorldHeight/2))
	}
}

func bodyColor(b BodyView) color.RGBA {
	if c, ok := kindColors[b.Kind]; ok {
		return c
	}
	switch b.Team {
	case "blue":
		return blueColor
	case "red":
		return redColor
	default:
		return neutralColor
	}
}

// fillRect draws a world rectangle, skipping it when off screen.
func (g *Game) fillRect(screen *ebiten.Image, r geometry.Rect, clr color.RGBA) {
	x := r.X - g.camX
	if x+r.W < 0 || x > g.cfg.ViewWidth {
		return
	}
	vector.FillRect(screen, float32(x), float32(r.Y), float32(r.W), float32(r.H), clr, false)
}

func (g *Game) drawAgent(screen *ebiten.Image, a AgentView) {
	clr := blueColor
	if a.Team == "red" {
		clr = redColor
	}
	g.fillRect(screen, a.Rect, clr)

	// rotor and nose show which way the craft faces
	rotor := geometry.Rect{X: a.Rect.X - 4, Y: a.Rect.Y - 3, W: a.Rect.W + 8, H: 2}
	g.fillRect(screen, rotor, neutralColor)
	nose := geometry.Rect{X: a.Rect.Right() - 6, Y: a.Rect.Y + 4, W: 6, H: 6}
	if a.Flipped {
		nose.X = a.Rect.Left()
	}
	g.fillRect(screen, nose, color.RGBA{R: 200, G: 240, B: 255, A: 255})

	if g.widgetWhiskers.Value && !a.Landed {
		craft := behavior.Craft{Rect: a.Rect, Vel: a.Vel, Flipped: a.Flipped}
		c := a.Rect.Center()
		for _, p := range behavior.Probes(&craft, g.cfg.Pilot.Tuning) {
			vector.StrokeLine(screen,
				float32(c.X-g.camX), float32(c.Y),
				float32(p.X-g.camX), float32(p.Y),
				1, whiskerColor, true)
		}
	}

	label := fmt.Sprintf("%s %s", a.ID, a.Mode)
	ebitenutil.DebugPrintAt(screen, label, int(a.Rect.X-g.camX), int(a.Rect.Y)-18)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "tick %d\n", g.lastState.Tick)
	for _, a := range g.lastState.Agents {
		fmt.Fprintf(&sb, "%-8s %-8s fuel %3.0f hp %3.0f gun %2d bomb %d msl %d",
			a.ID, a.Mode, a.Fuel, a.Health, a.Ammo, a.Bombs, a.Missiles)
		if a.Target != "" {
			fmt.Fprintf(&sb, " -> %s", a.Target)
		}
		if a.Chased {
			sb.WriteString(" [chased]")
		}
		sb.WriteByte('\n')
	}
	ebitenutil.DebugPrintAt(screen, sb.String(), 10, 10)

	msg := fmt.Sprintf("FPS: %.2f\nTPS: %.2f\nUpdate: %.2fms\nDraw:   %.2fms",
		ebiten.ActualFPS(), ebiten.ActualTPS(), g.updateAvg, g.drawAvg)
	ebitenutil.DebugPrintAt(screen, msg, int(g.cfg.ViewWidth)-150, 50)
}

// drawStatsBar shows the share of surviving helicopters per team.
func (g *Game) drawStatsBar(screen *ebiten.Image) {
	reds := float32(g.lastState.RedHelicopters)
	blues := float32(g.lastState.BlueHelicopters)
	total := reds + blues
	if total == 0 {
		return
	}

	barWidth := float32(200.0)
	barHeight := float32(12.0)
	x := float32(g.cfg.ViewWidth) - barWidth - 10
	y := float32(10.0)

	blueW := barWidth * blues / total
	vector.FillRect(screen, x, y, blueW, barHeight, blueColor, true)
	vector.FillRect(screen, x+blueW, y, barWidth-blueW, barHeight, redColor, true)

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d", int(blues)), int(x), int(y+barHeight+3))
	redMsg := fmt.Sprintf("%d", int(reds))
	ebitenutil.DebugPrintAt(screen, redMsg, int(x+barWidth)-len(redMsg)*8, int(y+barHeight+3))
}

func (g *Game) Layout(w, h int) (int, int) {
	return int(g.cfg.ViewWidth), int(g.cfg.WorldHeight) + panelHeight
}
