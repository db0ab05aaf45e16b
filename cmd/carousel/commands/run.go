package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/agiangrant/carousel"
	"github.com/agiangrant/carousel/loop"
	"github.com/agiangrant/carousel/retained"
)

const frameRate = 60

func newRunCommand(opts *rootOptions) *cobra.Command {
	var ascii bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Show the carousel in the terminal",
		Long: `Shows the carousel full width in the terminal.

  ←/→ or h/l   swipe to the previous/next page
  mouse drag   drag the pages
  space        toggle autoplay
  q, Esc       quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := carousel.LoadConfig(opts.configPath)
			if err != nil {
				return err
			}
			// The terminal belongs to the UI; only --log-file gets logs.
			logger, closeLog, err := opts.logger(io.Discard)
			if err != nil {
				return err
			}
			defer closeLog()

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("failed to open terminal: %w", err)
			}
			return runTerminal(cmd.Context(), screen, cfg, logger, ascii)
		},
	}

	cmd.Flags().BoolVar(&ascii, "ascii", false, "draw with ASCII characters only")
	return cmd
}

// pagerConfig maps the [surface] config section onto a pager of the given
// page width.
func pagerConfig(s carousel.SurfaceConfig, width float32) (retained.PagerConfig, error) {
	easing := retained.EasingByName(s.Easing)
	if easing == nil {
		return retained.PagerConfig{}, fmt.Errorf("unknown surface.easing %q", s.Easing)
	}
	return retained.PagerConfig{
		PageWidth:       width,
		Duration:        time.Duration(s.AnimationMS) * time.Millisecond,
		Easing:          easing,
		FPS:             frameRate,
		SpringFrequency: s.SpringFrequency,
		SpringDamping:   s.SpringDamping,
		FlingVelocity:   float32(s.FlingPagesPerSecond),
	}, nil
}

// runTerminal shows the carousel on screen until ctx is done or the user
// quits. The screen is finalized on return.
func runTerminal(ctx context.Context, screen tcell.Screen, cfg carousel.Config, logger *log.Logger, ascii bool) error {
	list, err := carousel.Build(cfg.Items)
	if err != nil {
		return err
	}

	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	screen.EnableMouse()
	width, _ := screen.Size()

	pcfg, err := pagerConfig(cfg.Surface, float32(width))
	if err != nil {
		screen.Fini()
		return err
	}
	pager := retained.NewPager(list.Len(), pcfg)
	dots := retained.NewPageDots(ascii)
	ui := loop.New()

	ctrl, err := carousel.New(list, carousel.Options{
		Surface:     pager,
		Indicator:   dots,
		Scheduler:   ui,
		Logger:      logger,
		SettleDelay: cfg.SettleDelay(),
	})
	if err != nil {
		screen.Fini()
		return err
	}
	pager.OnSettle(ctrl.OnSettle)
	pager.OnDragBegin(ctrl.OnUserInteractionBegin)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	view := &terminalView{
		screen:   screen,
		pager:    pager,
		dots:     dots,
		ctrl:     ctrl,
		list:     list,
		ascii:    ascii,
		autoplay: cfg.Autoplay,
		interval: cfg.Interval(),
		quit:     cancel,
	}
	ui.Post(func() {
		if view.autoplay {
			ctrl.Start(view.interval)
		}
		view.draw()
	})

	// UI loop: owns the controller, the pager and the screen.
	uiDone := make(chan struct{})
	g.Go(func() error {
		defer close(uiDone)
		if err := ui.Run(ctx); !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	// Frames.
	g.Go(func() error {
		ticker := time.NewTicker(time.Second / frameRate)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case now := <-ticker.C:
				ui.Post(func() {
					pager.Tick(now)
					view.draw()
				})
			}
		}
	})

	// Input. PollEvent returns nil once the screen is finalized.
	g.Go(func() error {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return nil
			}
			ui.Post(func() { view.handle(ev) })
		}
	})

	// Fini only once the UI loop has stopped drawing. It also unblocks
	// PollEvent.
	g.Go(func() error {
		<-uiDone
		screen.Fini()
		return nil
	})

	err = g.Wait()
	ctrl.Close()
	logger.Debug("terminal closed")
	return err
}

// terminalView renders the pager and handles terminal input. All methods
// run on the UI loop.
type terminalView struct {
	screen tcell.Screen
	pager  *retained.Pager
	dots   *retained.PageDots
	ctrl   *carousel.Controller
	list   carousel.DisplayList[string]
	ascii  bool

	autoplay bool
	interval time.Duration
	quit     func()

	// mouse drag tracking
	dragging bool
	lastX    int
	lastAt   time.Time
	velocity float32
}

var cardColors = []tcell.Color{
	tcell.ColorNavy,
	tcell.ColorDarkGreen,
	tcell.ColorMaroon,
	tcell.ColorPurple,
	tcell.ColorTeal,
	tcell.ColorOlive,
}

func (v *terminalView) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, _ := ev.Size()
		v.pager.SetPageWidth(float32(w))
		v.screen.Sync()

	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			v.quit()
		case tcell.KeyLeft:
			v.swipe(1)
		case tcell.KeyRight:
			v.swipe(-1)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				v.quit()
			case 'h':
				v.swipe(1)
			case 'l':
				v.swipe(-1)
			case ' ':
				v.toggleAutoplay()
			}
		}

	case *tcell.EventMouse:
		x, _ := ev.Position()
		pressed := ev.Buttons()&tcell.Button1 != 0
		switch {
		case pressed && !v.dragging:
			v.dragging = true
			v.velocity = 0
			v.lastX, v.lastAt = x, ev.When()
			v.pager.BeginDrag(float32(x))
		case pressed:
			if dt := ev.When().Sub(v.lastAt).Seconds(); dt > 0 {
				v.velocity = float32(float64(x-v.lastX) / dt)
			}
			v.lastX, v.lastAt = x, ev.When()
			v.pager.DragTo(float32(x))
		case v.dragging:
			v.dragging = false
			v.pager.EndDrag(v.velocity)
		}
	}
	v.draw()
}

// swipe imitates a quick finger flick; dir 1 moves the finger right (to
// the previous page), -1 left.
func (v *terminalView) swipe(dir float32) {
	if v.dragging {
		return
	}
	pw := v.pager.PageWidth()
	v.pager.BeginDrag(0)
	v.pager.DragTo(dir * pw * 0.1)
	v.pager.EndDrag(dir * pw * 4)
}

func (v *terminalView) toggleAutoplay() {
	v.autoplay = !v.autoplay
	if v.autoplay {
		v.ctrl.Start(v.interval)
	} else {
		v.ctrl.Stop()
	}
}

func (v *terminalView) draw() {
	s := v.screen
	s.Clear()
	w, h := s.Size()
	if w <= 0 || h < 5 {
		s.Show()
		return
	}

	top, bottom := 1, h-5
	mid := (top + bottom) / 2
	offset := v.pager.Offset()
	pw := v.pager.PageWidth()
	border := '│'
	if v.ascii {
		border = '|'
	}

	for x := 0; x < w; x++ {
		content := offset + float32(x)
		slot := int(content / pw)
		if content < 0 || slot >= v.list.Len() {
			continue
		}
		local := int(content - float32(slot)*pw)
		// Clones share their real item's color so the rewind is invisible.
		page := carousel.PageFor(v.list.Len(), slot)
		style := tcell.StyleDefault.
			Background(cardColors[page%len(cardColors)]).
			Foreground(tcell.ColorWhite)

		for y := top; y <= bottom; y++ {
			ch := ' '
			if local == 0 || local == int(pw)-1 {
				ch = border
			}
			s.SetContent(x, y, ch, nil, style)
		}

		label := []rune(v.list.At(slot))
		start := (int(pw) - len(label)) / 2
		if i := local - start; i >= 0 && i < len(label) {
			s.SetContent(x, mid, label[i], nil, style.Bold(true))
		}
	}

	dots := v.dots.String()
	drawText(s, (w-len([]rune(dots)))/2, h-3, dots, tcell.StyleDefault.Foreground(tcell.ColorGreen))

	state := "off"
	if v.autoplay {
		state = "on"
	}
	status := fmt.Sprintf("page %d/%d  autoplay %s  ←/→ swipe  space toggle  q quit",
		v.dots.Current()+1, v.dots.Count(), state)
	drawText(s, 1, h-1, status, tcell.StyleDefault.Foreground(tcell.ColorGray))

	s.Show()
}

func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}
