// Package desktop runs a session in an ebiten window.
package desktop

import (
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"legend-of-kiro/internal/render"
	"legend-of-kiro/internal/sim"
	"legend-of-kiro/internal/world"
)

const (
	screenWidth  = int(world.ViewportWidth)
	screenHeight = int(world.ViewportHeight)
	heartSize    = 14
)

// bindings maps logical keys to the physical keys that hold them.
var bindings = map[sim.Key][]ebiten.Key{
	sim.KeyUp:     {ebiten.KeyW, ebiten.KeyArrowUp},
	sim.KeyDown:   {ebiten.KeyS, ebiten.KeyArrowDown},
	sim.KeyLeft:   {ebiten.KeyA, ebiten.KeyArrowLeft},
	sim.KeyRight:  {ebiten.KeyD, ebiten.KeyArrowRight},
	sim.KeyAttack: {ebiten.KeySpace, ebiten.KeyJ},
}

// keyOrder fixes the order key edges reach the session within one frame.
var keyOrder = []sim.Key{sim.KeyUp, sim.KeyDown, sim.KeyLeft, sim.KeyRight, sim.KeyAttack}

// Game implements ebiten.Game around one session. ebiten calls Update at
// 60 TPS, so each Update is exactly one session tick.
type Game struct {
	session *sim.Session
	hud     *render.HUDTracker
}

// New builds the session with HUD hooks installed in front of deps.Hooks.
func New(cfg sim.Config, deps sim.Deps) *Game {
	tracker := render.NewHUDTracker()
	deps.Hooks = tracker.Hooks(deps.Hooks)
	return &Game{session: sim.New(cfg, deps), hud: tracker}
}

// Run opens the window and blocks until it closes.
func Run(g *Game, title string) error {
	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle(title)
	ebiten.SetTPS(sim.DefaultTickRate)
	return ebiten.RunGame(g)
}

func (g *Game) Update() error {
	for _, key := range keyOrder {
		g.session.SetKey(key, anyPressed(bindings[key]))
	}
	if g.session.Phase() == sim.PhaseNotStarted && inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.session.Start()
	}
	if g.session.Phase().Terminal() && inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.session.Restart()
	}
	g.session.Tick()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(render.ColorBackground)
	scene := render.Compose(g.session.Snapshot(), g.hud.HUD())

	for _, s := range scene.Shapes {
		switch s.Kind {
		case render.ShapeCircle:
			vector.DrawFilledCircle(screen, float32(s.X), float32(s.Y), float32(s.W/2), s.Fill, true)
		default:
			vector.FillRect(screen, float32(s.X), float32(s.Y), float32(s.W), float32(s.H), s.Fill, false)
		}
	}
	drawHUD(screen, scene)
	if scene.Overlay != nil {
		drawOverlay(screen, scene.Overlay)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func drawHUD(screen *ebiten.Image, scene render.Scene) {
	for i, fill := range scene.Hearts {
		x := float32(10 + i*(heartSize+4))
		vector.FillRect(screen, x, 10, heartSize, heartSize, render.ColorHeartEmpty, false)
		if fill > 0 {
			vector.FillRect(screen, x, 10, float32(heartSize*fill), heartSize, render.ColorHeart, false)
		}
	}
	ebitenutil.DebugPrintAt(screen, "SCORE "+strconv.Itoa(scene.Score), screenWidth-110, 10)
	label := string(scene.Weapon)
	if scene.Status != "" {
		label += " [" + string(scene.Status) + "]"
	}
	ebitenutil.DebugPrintAt(screen, label, 10, 30)
}

func drawOverlay(screen *ebiten.Image, o *render.Overlay) {
	vector.FillRect(screen, 0, 0, float32(screenWidth), float32(screenHeight), render.ColorShade, false)
	printCentered(screen, o.Title, screenHeight/2-16)
	printCentered(screen, o.Subtitle, screenHeight/2+4)
}

// printCentered approximates centering with the 6px debug font.
func printCentered(screen *ebiten.Image, text string, y int) {
	ebitenutil.DebugPrintAt(screen, text, (screenWidth-len(text)*6)/2, y)
}

func anyPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}
