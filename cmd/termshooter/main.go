// Command termshooter plays the shooter in a terminal
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"spaceshooter/combat"
	"spaceshooter/config"
	"spaceshooter/state"
	"spaceshooter/world"
)

const frame = 33 * time.Millisecond

// bellSounds rings the terminal bell when the player dies
type bellSounds struct {
	screen tcell.Screen
}

func (b bellSounds) Play(s combat.Sound) {
	if s == combat.SoundDeath {
		_ = b.screen.Beep()
	}
}

type app struct {
	screen   tcell.Screen
	world    *world.World
	machine  *state.Machine
	controls *latchControls
	cfg      config.Config
	logger   *zap.Logger
}

func main() {
	configPath := flag.String("config", "", "YAML config file (defaults when empty)")
	logPath := flag.String("log", "termshooter.log", "log file")
	seed := flag.String("seed", "", "spawn seed; empty seeds from the clock")
	flag.Parse()

	if err := run(*configPath, *logPath, *seed); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, logPath, seed string) error {
	cfg := config.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
	}
	if seed != "" {
		cfg.Seed = seed
	}
	cfg.Log.Path = logPath
	cfg.Log.Development = false

	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()

	w, err := world.New(cfg, combat.NewSession(cfg.Player.MaxHealth),
		world.WithLogger(logger.Named("world")),
		world.WithSoundPlayer(bellSounds{screen: screen}),
	)
	if err != nil {
		return err
	}

	a := &app{
		screen:   screen,
		world:    w,
		machine:  state.NewMachine(logger.Named("state")),
		controls: newLatchControls(time.Now),
		cfg:      cfg,
		logger:   logger,
	}
	a.machine.OnEnter(state.Playing, func(from, _ state.GameState) {
		if from != state.Paused {
			a.world.Reset(cfg.Player.NewGameHealth)
		}
	})
	if err := a.machine.Set(state.Playing); err != nil {
		return err
	}
	return a.loop(context.Background())
}

var errQuit = errors.New("quit")

func (a *app) loop(ctx context.Context) error {
	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	defer close(quit)
	go a.screen.ChannelEvents(events, quit)

	ticker := time.NewTicker(frame)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := a.handle(ev); err != nil {
				if errors.Is(err, errQuit) {
					return nil
				}
				return err
			}

		case now := <-ticker.C:
			dt := min(now.Sub(last).Seconds(), 0.1)
			last = now
			if a.machine.Is(state.Playing) {
				rep, err := a.world.Step(ctx, dt, a.controls)
				if err != nil {
					return err
				}
				if rep.PlayerDied {
					if err := a.machine.Set(state.GameOver); err != nil {
						return err
					}
				}
			}
			draw(a.screen, a.world.Objects(), a.cfg.Playfield,
				statusLine(a.world.Session().Snapshot(), a.machine.Is(state.Paused), a.machine.Is(state.GameOver)))
		}
	}
}

func (a *app) handle(ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return errQuit
		case tcell.KeyEnter:
			if a.machine.Is(state.GameOver) {
				return a.machine.Set(state.Playing)
			}
		case tcell.KeyLeft:
			a.controls.press(-1, 0)
		case tcell.KeyRight:
			a.controls.press(1, 0)
		case tcell.KeyUp:
			a.controls.press(0, 1)
		case tcell.KeyDown:
			a.controls.press(0, -1)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'a':
				a.controls.press(-1, 0)
			case 'd':
				a.controls.press(1, 0)
			case 'w':
				a.controls.press(0, 1)
			case 's':
				a.controls.press(0, -1)
			case ' ':
				a.controls.fire()
			case 'p':
				a.machine.TogglePause()
			}
		}
	}
	return nil
}
