package arena

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-arena/internal/core"
)

// Glyphs for the top-down arena view.
const (
	PlayerChar    = '@'
	BorderChar    = '·'
	HitChar       = '*'
	BlockedChar   = '#'
	DeathChar     = 'x'
	ShockChar     = 'o'
	AimChar       = '!'
	TrailChar     = '.'
	ObstacleChar  = '▓'
	HUDRows       = 2
	minArenaCells = 20
)

// enemyGlyphs maps each archetype to its rune.
var enemyGlyphs = map[EnemyType]rune{
	EnemyNormal:   'n',
	EnemySniper:   's',
	EnemyHeavy:    'H',
	EnemyFast:     'f',
	EnemyShielder: 'D',
	EnemySpawner:  'S',
	EnemyBoss:     'B',
}

// viewport maps world coordinates (arena-centered, y-down) onto screen cells.
// Terminal cells are roughly twice as tall as wide, so the x scale doubles
// the y scale to keep the circular arena looking circular.
type viewport struct {
	cx, cy int
	sx, sy float64
}

func newViewport(dst *core.Screen, lvl LevelContext) viewport {
	w := dst.Width()
	h := dst.Height() - HUDRows
	sy := float64(h-2) / (2 * lvl.ArenaRadius)
	if sx := float64(w-2) / (2 * lvl.ArenaRadius); sx/2 < sy {
		sy = sx / 2
	}
	return viewport{cx: w / 2, cy: HUDRows + h/2, sx: sy * 2, sy: sy}
}

func (v viewport) cell(p core.Vec2) (int, int) {
	return v.cx + int(math.Round(p.X*v.sx)), v.cy + int(math.Round(p.Y*v.sy))
}

// Render draws the run to the screen buffer: HUD, arena boundary, entities,
// transient effects, and the modal overlay for the current phase.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if dst.Width() < minArenaCells || dst.Height() < minArenaCells/2 {
		dst.DrawTextCentered(dst.Height()/2, "Window too small")
		return
	}

	v := newViewport(dst, g.Level)
	g.renderHUD(dst)
	g.renderBoundary(dst, v)
	g.renderObstacles(dst, v)
	g.renderEnemies(dst, v)
	g.renderEffects(dst, v)
	g.renderPlayer(dst, v)
	g.renderOverlay(dst)
}

func (g *Game) renderHUD(dst *core.Screen) {
	p := g.Player
	left := fmt.Sprintf("HP %3.0f/%3.0f  EN %3.0f/%3.0f", p.HP, p.MaxHP, p.Energy, p.MaxEnergy)
	if p.Combo > 1 {
		left += fmt.Sprintf("  x%d", p.Combo)
	}
	dst.DrawText(1, 0, left)

	mid := fmt.Sprintf("Wave %d  %s", g.Wave, g.Level.Theme)
	dst.DrawTextCentered(0, mid)

	right := fmt.Sprintf("Score %d", g.Score)
	dst.DrawText(dst.Width()-len(right)-1, 0, right)

	contract := fmt.Sprintf("[%s] %s", g.ContractStatus, g.Contract.Name)
	dst.DrawText(1, 1, contract)
	if g.Daily {
		tag := "DAILY " + g.DailyDate
		dst.DrawText(dst.Width()-len(tag)-1, 1, tag)
	}
}

// renderBoundary dots the arena circle.
func (g *Game) renderBoundary(dst *core.Screen, v viewport) {
	const steps = 96
	for i := 0; i < steps; i++ {
		ang := 2 * math.Pi * float64(i) / steps
		x, y := v.cell(core.FromAngle(ang).Scale(g.Level.ArenaRadius))
		dst.Set(x, y, BorderChar)
	}
}

// renderObstacles blocks out each static obstacle's footprint.
func (g *Game) renderObstacles(dst *core.Screen, v viewport) {
	for _, o := range g.Level.Obstacles() {
		x, y := v.cell(o.Pos)
		dst.Set(x, y, ObstacleChar)
		const steps = 8
		for i := 0; i < steps; i++ {
			ang := 2 * math.Pi * float64(i) / steps
			px, py := v.cell(o.Pos.Add(core.FromAngle(ang).Scale(o.Radius)))
			dst.Set(px, py, ObstacleChar)
		}
	}
}

func (g *Game) renderEnemies(dst *core.Screen, v viewport) {
	for _, e := range g.Enemies {
		// Active shockwave ring draws under its owner.
		if r := e.shockRadius(); r > 0 {
			const steps = 32
			for i := 0; i < steps; i++ {
				ang := 2 * math.Pi * float64(i) / steps
				x, y := v.cell(e.ShockOrigin.Add(core.FromAngle(ang).Scale(r)))
				dst.Set(x, y, ShockChar)
			}
		}
		// Sniper telegraph: warning markers along the locked ray.
		if e.Aiming {
			aim := core.FromAngle(e.AimAngle)
			for d := 20.0; d < 2*g.Level.ArenaRadius; d += 20 {
				x, y := v.cell(e.Pos.Add(aim.Scale(d)))
				dst.Set(x, y, AimChar)
			}
		}

		glyph := enemyGlyphs[e.Type]
		if e.FlashTime > 0 {
			glyph = HitChar
		}
		x, y := v.cell(e.Pos)
		dst.Set(x, y, glyph)
	}
}

func (g *Game) renderEffects(dst *core.Screen, v viewport) {
	for _, fx := range g.Effects {
		glyph := HitChar
		switch {
		case fx.Blocked:
			glyph = BlockedChar
		case fx.Death:
			glyph = DeathChar
		}
		x, y := v.cell(fx.Pos)
		dst.Set(x, y, glyph)
	}
	for _, n := range g.Numbers {
		x, y := v.cell(n.Pos)
		dst.DrawText(x, y, fmt.Sprintf("%.0f", n.Amount))
	}
}

func (g *Game) renderPlayer(dst *core.Screen, v viewport) {
	p := g.Player
	for _, t := range p.Trail {
		x, y := v.cell(t)
		dst.Set(x, y, TrailChar)
	}
	glyph := PlayerChar
	if p.FlashTime > 0 {
		glyph = HitChar
	}
	x, y := v.cell(p.Pos)
	dst.Set(x, y, glyph)

	// Facing tick one cell out.
	fx, fy := v.cell(p.Pos.Add(core.FromAngle(p.Facing).Scale(PlayerRadius + 6)))
	if fx != x || fy != y {
		dst.Set(fx, fy, '+')
	}
}

func (g *Game) renderOverlay(dst *core.Screen) {
	mid := dst.Height() / 2
	switch g.phase {
	case PhaseMutatorSelect:
		dst.DrawTextCentered(mid-len(g.MutatorOffer)-1, "── CHOOSE A MUTATOR ──")
		for i, m := range g.MutatorOffer {
			line := fmt.Sprintf("%d) [%s] %s: %s", i+1, m.Rarity, m.Name, m.Desc)
			dst.DrawTextCentered(mid-len(g.MutatorOffer)+1+i*2, line)
		}
	case PhaseEventOffer:
		ev := g.PendingEvent
		dst.DrawTextCentered(mid-2, "── WAVE EVENT ──")
		dst.DrawTextCentered(mid, fmt.Sprintf("%s: %s (+%d score)", ev.Name, ev.Desc, ev.ScoreBonus))
		dst.DrawTextCentered(mid+2, "y accept / n decline")
	case PhaseGameOver:
		bw := core.Min(56, dst.Width()-2)
		bx := (dst.Width() - bw) / 2
		by := mid - 4
		const bh = 9
		dst.FillRect(bx, by, bw, bh, ' ')
		dst.DrawBox(bx, by, bw, bh)
		dst.DrawTextCentered(by+1, "GAME OVER")
		dst.DrawHLine(bx+1, by+2, bw-2, '─')
		dst.DrawTextCentered(by+3, fmt.Sprintf("Slain by %s on wave %d", g.DeathCause, g.Wave))
		dst.DrawTextCentered(by+4, fmt.Sprintf("Score %d  Best %d  Kills %d", g.Score, g.HighScore, g.Kills))
		if recap := g.damageRecap(); recap != "" {
			dst.DrawTextCentered(by+5, "took "+recap)
		}
		dst.DrawTextCentered(by+7, "r restart / q quit")
	default:
		if g.Paused {
			dst.DrawTextCentered(mid, "── PAUSED ──")
		}
	}
}

// damageRecap summarizes damage taken by source, worst first.
func (g *Game) damageRecap() string {
	type entry struct {
		typ EnemyType
		dmg float64
	}
	entries := make([]entry, 0, len(g.DamageByType))
	for typ, dmg := range g.DamageByType {
		entries = append(entries, entry{typ, dmg})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].dmg != entries[j].dmg {
			return entries[i].dmg > entries[j].dmg
		}
		return entries[i].typ < entries[j].typ
	})
	if len(entries) > 3 {
		entries = entries[:3]
	}

	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = fmt.Sprintf("%.0f from %s", e.dmg, e.typ)
	}
	return strings.Join(parts, ", ")
}
