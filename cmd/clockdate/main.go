// Command clockdate shows the time and date as large glyph art, either in a
// transparent desktop overlay or in the terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/lixenwraith/clockdate/asset"
	"github.com/lixenwraith/clockdate/chime"
	"github.com/lixenwraith/clockdate/clock"
	"github.com/lixenwraith/clockdate/config"
	"github.com/lixenwraith/clockdate/render/overlay"
	"github.com/lixenwraith/clockdate/render/tui"
)

type options struct {
	terminal   bool
	debug      bool
	configPath string
}

func parseOptions(args []string, errOut io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("clockdate", flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.BoolVar(&opts.terminal, "terminal", false, "Render in the terminal instead of a desktop overlay")
	fs.BoolVar(&opts.debug, "debug", false, "Write a debug log to "+logDir+"/"+logFileName)
	fs.StringVar(&opts.configPath, "config", "", "Config file tried before the default locations")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return opts, nil
}

func main() {
	// tui.Run has already restored the terminal by the time a panic gets here
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\n\x1b[31mCLOCKDATE CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	opts, err := parseOptions(os.Args[1:], os.Stderr)
	if err != nil {
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, opts)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "clockdate: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	if logFile := setupLogging(opts.debug); logFile != nil {
		defer logFile.Close()
	}

	var extra []string
	if opts.configPath != "" {
		extra = append(extra, opts.configPath)
	}
	cfg := config.LoadOrDefault(extra...)

	c, closeChime, err := newClock(cfg)
	if err != nil {
		return err
	}
	defer closeChime()

	if opts.terminal {
		return tui.Run(ctx, c)
	}
	return overlay.Run(ctx, cfg, c)
}

// newClock loads the fonts and wires the optional chime. Audio failures
// leave the clock silent.
func newClock(cfg *config.Config) (*clock.Clock, func(), error) {
	timeFont, dateFont, err := asset.LoadFonts()
	if err != nil {
		return nil, nil, err
	}

	var opts []clock.Option
	closer := func() {}
	if cfg.Chime.Enabled {
		player, err := chime.Open(cfg.Chime)
		if err != nil {
			log.Printf("chime disabled: %v", err)
		} else {
			opts = append(opts, clock.OnHour(player.Ring))
			closer = player.Close
		}
	}
	return clock.New(cfg, timeFont, dateFont, opts...), closer, nil
}
