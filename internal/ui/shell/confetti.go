// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package shell

import (
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/siteshell/internal/ui/styles"
)

const (
	confettiParticles = 48
	confettiMaxFrames = styles.ConfettiFPS * 3
)

type confettiFrameMsg struct {
	token uint64
}

type particle struct {
	glyph string
	color lipgloss.Color
	proj  *harmonica.Projectile
	pos   harmonica.Point
}

// Confetti is a short burst of falling particles. Particles follow
// harmonica projectiles under terminal gravity.
type Confetti struct {
	particles []particle
	width     int
	height    int
	frames    int
	token     uint64
}

// Active reports whether particles are on screen.
func (c *Confetti) Active() bool { return len(c.particles) > 0 }

// Start launches a burst from the top of a width x height area. It
// replaces any burst in progress.
func (c *Confetti) Start(width, height int, r *rand.Rand) tea.Cmd {
	if width <= 0 || height <= 0 {
		return nil
	}
	c.token++
	c.width, c.height, c.frames = width, height, 0
	c.particles = make([]particle, 0, confettiParticles)

	dt := harmonica.FPS(styles.ConfettiFPS)
	for i := 0; i < confettiParticles; i++ {
		start := harmonica.Point{X: r.Float64() * float64(width), Y: 0}
		vel := harmonica.Vector{
			X: (r.Float64() - 0.5) * float64(width) / 2,
			Y: -r.Float64() * 6,
		}
		sw := styles.RandomSwatch(r)
		c.particles = append(c.particles, particle{
			glyph: styles.ConfettiGlyphs[r.Intn(len(styles.ConfettiGlyphs))],
			color: sw.Primary,
			proj:  harmonica.NewProjectile(dt, start, vel, harmonica.TerminalGravity),
			pos:   start,
		})
	}
	return c.tick()
}

// Stop clears the burst. Pending frames become no-ops.
func (c *Confetti) Stop() {
	c.token++
	c.particles = nil
}

func (c *Confetti) tick() tea.Cmd {
	token := c.token
	return tea.Tick(time.Second/styles.ConfettiFPS, func(time.Time) tea.Msg {
		return confettiFrameMsg{token: token}
	})
}

// Update advances one frame.
func (c *Confetti) Update(msg confettiFrameMsg) tea.Cmd {
	if msg.token != c.token || !c.Active() {
		return nil
	}
	c.frames++

	kept := c.particles[:0]
	for _, p := range c.particles {
		p.pos = p.proj.Update()
		if p.pos.Y < float64(c.height) && p.pos.X >= 0 && p.pos.X < float64(c.width) {
			kept = append(kept, p)
		}
	}
	c.particles = kept

	if !c.Active() || c.frames >= confettiMaxFrames {
		c.Stop()
		return nil
	}
	return c.tick()
}

// View draws the particles into a block of the burst's size.
func (c *Confetti) View() string {
	if !c.Active() {
		return ""
	}
	grid := make([][]string, c.height)
	for y := range grid {
		grid[y] = make([]string, c.width)
		for x := range grid[y] {
			grid[y][x] = " "
		}
	}
	for _, p := range c.particles {
		x, y := int(p.pos.X), int(p.pos.Y)
		if y < 0 || y >= c.height || x < 0 || x >= c.width {
			continue
		}
		grid[y][x] = lipgloss.NewStyle().Foreground(p.color).Render(p.glyph)
	}

	rows := make([]string, c.height)
	for y, row := range grid {
		rows[y] = strings.Join(row, "")
	}
	return strings.Join(rows, "\n")
}
