package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/agiangrant/carousel"
	"github.com/agiangrant/carousel/loop"
)

func newTraceCommand(opts *rootOptions) *cobra.Command {
	var ticks int

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Print a simulated autoplay run without a terminal UI",
		Long: `Runs the carousel against a recording surface on a simulated clock and
prints every offset change and published page. Animated moves settle
immediately after the tick that issued them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := carousel.LoadConfig(opts.configPath)
			if err != nil {
				return err
			}
			logger, closeLog, err := opts.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeLog()

			return runTrace(cmd.OutOrStdout(), cfg, ticks, carousel.Options{Logger: logger})
		},
	}

	cmd.Flags().IntVarP(&ticks, "ticks", "n", 6, "number of autoplay intervals to simulate")
	return cmd
}

// runTrace drives a controller for ticks intervals on a manual clock.
func runTrace(out io.Writer, cfg carousel.Config, ticks int, opts carousel.Options) error {
	list, err := carousel.Build(cfg.Items)
	if err != nil {
		return err
	}

	clock := loop.NewManual(time.Unix(0, 0))
	rec := &traceRecorder{out: out, clock: clock, start: clock.Now(), list: list}

	opts.Surface = rec
	opts.Indicator = rec
	opts.Scheduler = clock
	opts.SettleDelay = cfg.SettleDelay()

	ctrl, err := carousel.New(list, opts)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	ctrl.Start(cfg.Interval())
	for i := 0; i < ticks; i++ {
		clock.Advance(cfg.Interval())
		if rec.moving {
			rec.moving = false
			ctrl.OnSettle()
		}
	}
	return nil
}

// traceRecorder is both the surface and the page indicator of a trace run.
type traceRecorder struct {
	out    io.Writer
	clock  *loop.Manual
	start  time.Time
	list   carousel.DisplayList[string]
	slot   int
	pages  int
	moving bool
}

func (r *traceRecorder) SetOffset(slot int, animated bool) {
	r.slot = slot
	r.moving = animated
	kind := "jump"
	if animated {
		kind = "animate"
	}
	r.printf(kind, "slot %d (%s)", slot, r.list.At(slot))
}

func (r *traceRecorder) CurrentVisibleSlot() int {
	return r.slot
}

func (r *traceRecorder) SetPageCount(n int) {
	r.pages = n
	r.printf("pages", "%d", n)
}

func (r *traceRecorder) SetCurrentPage(page int) {
	r.printf("page", "%d/%d", page+1, r.pages)
}

func (r *traceRecorder) printf(kind, format string, args ...any) {
	elapsed := r.clock.Now().Sub(r.start)
	fmt.Fprintf(r.out, "%5s  %-8s %s\n", elapsed, kind, fmt.Sprintf(format, args...))
}
