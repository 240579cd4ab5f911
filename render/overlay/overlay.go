// Package overlay hosts the clock in a borderless, transparent,
// click-through desktop window.
package overlay

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/lixenwraith/clockdate/clock"
	"github.com/lixenwraith/clockdate/config"
	"github.com/lixenwraith/clockdate/render/pixel"
	"github.com/lixenwraith/clockdate/scheduler"
)

const (
	title = "clockdate"
	// Update rate; the scheduler decides when a tick is due
	tps = 20
)

// Overlay implements ebiten.Game. Update and Draw run on the ebiten
// goroutine, which is the only owner of the clock state.
type Overlay struct {
	ctx    context.Context
	cfg    *config.Config
	clock  *clock.Clock
	sched  *scheduler.Scheduler
	raster *pixel.Rasterizer
	canvas *pixel.Canvas

	img   *ebiten.Image
	dirty bool

	now func() time.Time
}

// New builds the game around a pixel canvas of the configured window size
func New(ctx context.Context, cfg *config.Config, c *clock.Clock, r *pixel.Rasterizer) *Overlay {
	return &Overlay{
		ctx:    ctx,
		cfg:    cfg,
		clock:  c,
		sched:  scheduler.New(scheduler.Interval),
		raster: r,
		canvas: pixel.NewCanvas(cfg.Window.Width, cfg.Window.Height, r),
		now:    time.Now,
	}
}

// Update redraws the canvas when a tick is due and the clock face changed.
// It ends the game once ctx is done.
func (o *Overlay) Update() error {
	if o.ctx.Err() != nil {
		log.Printf("overlay: stopped after %d ticks", o.sched.Fired())
		return ebiten.Termination
	}
	now := o.now()
	if o.sched.Poll(now) {
		o.redraw(now)
	}
	return nil
}

func (o *Overlay) redraw(now time.Time) {
	if !o.clock.Tick(now) {
		return
	}
	frame := o.clock.Frame(o.cfg.Window.Width, o.raster)
	if err := o.canvas.Present(frame); err != nil {
		log.Printf("overlay: present: %v", err)
		return
	}
	o.dirty = true
}

// Draw uploads the canvas when it changed and blits it
func (o *Overlay) Draw(screen *ebiten.Image) {
	if o.img == nil {
		b := o.canvas.Bounds()
		o.img = ebiten.NewImage(b.Dx(), b.Dy())
	}
	if o.dirty {
		o.img.WritePixels(o.canvas.Image().Pix)
		o.dirty = false
	}
	screen.DrawImage(o.img, nil)
}

// Layout keeps the logical screen at the configured size
func (o *Overlay) Layout(_, _ int) (int, int) {
	return o.cfg.Window.Width, o.cfg.Window.Height
}

// pickMonitor returns the index of the monitor named want, or -1
func pickMonitor(names []string, want string) int {
	for i, n := range names {
		if n == want {
			return i
		}
	}
	return -1
}

// configureWindow sets window attributes; it must run before RunGame
func configureWindow(w config.Window) {
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowDecorated(false)
	ebiten.SetWindowFloating(true)
	ebiten.SetWindowMousePassthrough(true)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	ebiten.SetWindowSize(w.Width, w.Height)
	ebiten.SetTPS(tps)

	monitors := ebiten.AppendMonitors(nil)
	names := make([]string, len(monitors))
	for i, m := range monitors {
		names[i] = m.Name()
	}
	if i := pickMonitor(names, w.Monitor); i >= 0 {
		ebiten.SetMonitor(monitors[i])
	} else {
		log.Printf("overlay: monitor %q not found among %v, using primary", w.Monitor, names)
	}

	screenW, _ := ebiten.Monitor().Size()
	pos := pixel.Anchor(screenW, w.Width, w.MarginTop, w.MarginRight)
	ebiten.SetWindowPosition(pos.X, pos.Y)
}

// Run opens the overlay window and blocks until it closes or ctx is done
func Run(ctx context.Context, cfg *config.Config, c *clock.Clock) error {
	r, err := pixel.NewRasterizer()
	if err != nil {
		return fmt.Errorf("overlay: %w", err)
	}

	configureWindow(cfg.Window)
	game := New(ctx, cfg, c, r)

	err = ebiten.RunGameWithOptions(game, &ebiten.RunGameOptions{
		ScreenTransparent: true,
		InitUnfocused:     true,
		SkipTaskbar:       true,
	})
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("overlay: %w", err)
	}
	return nil
}
