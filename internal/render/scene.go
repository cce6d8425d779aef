// Package render turns session snapshots into frontend-neutral draw lists.
// Frontends only rasterize the shapes; they never read session internals.
package render

import (
	"fmt"
	"image/color"
	"math"

	"legend-of-kiro/internal/sim"
	"legend-of-kiro/internal/state"
	"legend-of-kiro/internal/world"
)

// ShapeKind selects how a shape is rasterized.
type ShapeKind int

const (
	ShapeRect ShapeKind = iota
	ShapeCircle
)

// Shape is one draw operation in viewport coordinates. Rects use X/Y as
// the top-left corner; circles use X/Y as the center and W as the diameter.
type Shape struct {
	Kind  ShapeKind
	X, Y  float64
	W, H  float64
	Fill  color.RGBA
	Glyph rune
}

// Overlay is the centered text shown on the start and end screens.
type Overlay struct {
	Title    string
	Subtitle string
}

// Scene is everything a frontend draws for one frame, back to front.
type Scene struct {
	Shapes  []Shape
	Hearts  []float64
	Score   int
	Weapon  state.Weapon
	Status  state.StatusEffect
	Overlay *Overlay
}

// invulnerability blinks the player every blinkTicks ticks.
const blinkTicks = 4

// Compose builds the scene for snap. The HUD values come from hud rather
// than the snapshot so frontends can refresh them through session hooks.
func Compose(snap sim.Snapshot, hud HUD) Scene {
	cam := snap.Camera
	scene := Scene{
		Hearts: Hearts(hud.Health, hud.MaxHealth),
		Score:  hud.Score,
		Weapon: snap.Player.Weapon,
		Status: snap.Player.Status,
	}

	for _, o := range snap.Obstacles {
		if !cam.Visible(o.Rect) {
			continue
		}
		scene.Shapes = append(scene.Shapes, rectShape(cam, o.Rect, obstacleStyle(o.Kind)))
	}
	for _, c := range snap.Collectibles {
		box := world.CenteredRect(c.Pos, state.CollectibleSize, state.CollectibleSize)
		if !cam.Visible(box) {
			continue
		}
		scene.Shapes = append(scene.Shapes, circleShape(cam, c.Pos, state.CollectibleSize, collectibleStyle(c.Kind)))
	}
	for _, e := range snap.Enemies {
		box := world.CenteredRect(e.Pos, e.Size, e.Size)
		if cam.Visible(box) {
			scene.Shapes = append(scene.Shapes, rectShape(cam, box, enemyStyle(e.Kind)))
		}
		for _, b := range e.Bolts {
			scene.appendProjectile(cam, b)
		}
	}
	for _, a := range snap.Player.Arrows {
		scene.appendProjectile(cam, a)
	}

	p := snap.Player
	if !p.Invulnerable || (snap.Tick/blinkTicks)%2 == 0 {
		scene.Shapes = append(scene.Shapes, rectShape(cam, p.Box(), playerStyle(p.Status)))
	}
	if p.Attacking && !p.Weapon.Ranged() {
		tip := p.Pos.Add(p.Facing.Unit().Scale(p.Stats.Range * 0.75))
		scene.Shapes = append(scene.Shapes, circleShape(cam, tip, 10, style{fill: colorSwing, glyph: swingGlyph(p.Facing)}))
	}

	scene.Overlay = overlayFor(snap.Phase, hud.Score)
	return scene
}

func (s *Scene) appendProjectile(cam world.Camera, p state.Projectile) {
	box := world.CenteredRect(p.Pos, 6, 6)
	if !cam.Visible(box) {
		return
	}
	st := style{fill: colorBolt, glyph: '*'}
	if p.Kind == state.ProjectileArrow {
		st = style{fill: colorArrow, glyph: arrowGlyph(p.Vel)}
	}
	s.Shapes = append(s.Shapes, circleShape(cam, p.Pos, 6, st))
}

// Hearts splits health into per-heart fill fractions: 1, 0.5 or 0.
func Hearts(health, maxHealth float64) []float64 {
	count := int(math.Ceil(maxHealth))
	if count <= 0 {
		return nil
	}
	hearts := make([]float64, count)
	for i := range hearts {
		remaining := health - float64(i)
		switch {
		case remaining >= 1:
			hearts[i] = 1
		case remaining >= 0.5:
			hearts[i] = 0.5
		}
	}
	return hearts
}

func overlayFor(phase sim.Phase, score int) *Overlay {
	switch phase {
	case sim.PhaseNotStarted:
		return &Overlay{Title: "LEGEND OF KIRO", Subtitle: "press any key to start"}
	case sim.PhaseLost:
		return &Overlay{Title: "GAME OVER", Subtitle: fmt.Sprintf("score %d - press R to restart", score)}
	case sim.PhaseWon:
		return &Overlay{Title: "VICTORY", Subtitle: fmt.Sprintf("score %d - press R to play again", score)}
	default:
		return nil
	}
}

func rectShape(cam world.Camera, r world.Rect, st style) Shape {
	top := cam.WorldToScreen(world.Vec2{X: r.X, Y: r.Y})
	return Shape{Kind: ShapeRect, X: top.X, Y: top.Y, W: r.Width, H: r.Height, Fill: st.fill, Glyph: st.glyph}
}

func circleShape(cam world.Camera, center world.Vec2, diameter float64, st style) Shape {
	c := cam.WorldToScreen(center)
	return Shape{Kind: ShapeCircle, X: c.X, Y: c.Y, W: diameter, H: diameter, Fill: st.fill, Glyph: st.glyph}
}

func arrowGlyph(vel world.Vec2) rune {
	if math.Abs(vel.X) > math.Abs(vel.Y) {
		return '-'
	}
	return '|'
}

func swingGlyph(f state.Facing) rune {
	switch f {
	case state.FacingLeft, state.FacingRight:
		return ')'
	default:
		return '~'
	}
}
