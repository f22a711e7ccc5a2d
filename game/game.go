package game

import (
	"context"
	"fmt"
	"image/color"
	"runtime"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"spaceshooter/combat"
	"spaceshooter/config"
	"spaceshooter/profiler"
	"spaceshooter/state"
	"spaceshooter/world"
)

const (
	// maxStep clamps delta time so a stall never teleports objects
	maxStep = 0.1
	// fpsWindow is how often the frame rate is sampled
	fpsWindow = 0.5
	// startupGrace ignores frame drops while the game warms up
	startupGrace = 3 * time.Second
)

var background = color.RGBA{5, 5, 16, 255}

// Game represents the main game state
type Game struct {
	ctx      context.Context
	cfg      config.Config
	logger   *zap.Logger
	world    *world.World
	machine  *state.Machine
	renderer *Renderer
	camera   *Camera
	stars    *Starfield
	audio    *AudioPlayer
	controls world.Controls
	debug    DebugState

	lastReport world.StepReport

	// FPS tracking
	fps              float64
	fpsUpdateCounter int
	fpsUpdateTimer   float64

	// Performance profiling
	profiler      *profiler.Profiler
	gameStartTime time.Time

	// Last update time for delta time calculation
	lastUpdateTime time.Time
}

// NewGame creates a game in the main menu
func NewGame(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Game, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var sounds *AudioPlayer
	if cfg.Audio.Enabled {
		sounds = NewAudioPlayer(cfg.Audio, logger)
	}

	w, err := world.New(cfg, combat.NewSession(cfg.Player.MaxHealth),
		world.WithLogger(logger.Named("world")),
		world.WithSoundPlayer(sounds),
	)
	if err != nil {
		return nil, fmt.Errorf("create world: %w", err)
	}

	var prof *profiler.Profiler
	if cfg.Debug.ProfileOnDrop {
		prof, err = profiler.New(cfg.Debug.ProfilesDir, logger.Named("profiler"))
		if err != nil {
			return nil, err
		}
	}

	width, height := float64(cfg.Window.Width), float64(cfg.Window.Height)
	camera := NewCamera(width, height, cfg.Playfield.Width, cfg.Playfield.Height)
	g := &Game{
		ctx:            ctx,
		cfg:            cfg,
		logger:         logger,
		world:          w,
		machine:        state.NewMachine(logger.Named("state")),
		renderer:       NewRenderer(camera),
		camera:         camera,
		stars:          NewStarfield(150, width, height, world.NewRand(world.SeedFrom(cfg.Seed))),
		audio:          sounds,
		controls:       KeyboardControls{},
		debug:          DebugState{ShowColliders: cfg.Debug.ShowColliders},
		fps:            60,
		profiler:       prof,
		gameStartTime:  time.Now(),
		lastUpdateTime: time.Now(),
	}

	// a run starts from the menu, the loading screen or a game over; resuming
	// from pause keeps the current run
	g.machine.OnEnter(state.Playing, func(from, _ state.GameState) {
		if from != state.Paused {
			g.world.Reset(cfg.Player.NewGameHealth)
		}
	})
	g.machine.OnEnter(state.GameOver, func(_, _ state.GameState) {
		snap := g.world.Session().Snapshot()
		g.logger.Info("game over",
			zap.String("run", snap.RunID.String()),
			zap.Int("score", snap.Score),
		)
	})
	return g, nil
}

// State returns the current game state
func (g *Game) State() state.GameState {
	return g.machine.Current()
}

// setState logs rejected transitions; input handlers only request valid ones
func (g *Game) setState(next state.GameState) {
	if err := g.machine.Set(next); err != nil {
		g.logger.Warn("state change rejected", zap.Error(err))
	}
}

// Update advances the game by one tick
func (g *Game) Update() error {
	now := time.Now()
	dt := now.Sub(g.lastUpdateTime).Seconds()
	g.lastUpdateTime = now
	if dt > maxStep {
		dt = maxStep
	}

	if justPressed(ebiten.KeyF1) {
		g.debug.Toggle()
	}
	if justPressed(ebiten.KeyM) {
		g.audio.ToggleMute()
	}
	g.trackFPS(dt)
	g.stars.Update(dt)

	switch g.machine.Current() {
	case state.MainMenu:
		switch {
		case justPressed(ebiten.KeyEnter, ebiten.KeySpace):
			if g.audio == nil || g.audio.Loaded() {
				g.setState(state.Playing)
			} else {
				g.setState(state.Loading)
			}
		case justPressed(ebiten.KeyS):
			g.setState(state.Settings)
		case justPressed(ebiten.KeyEscape):
			return ebiten.Termination
		}

	case state.Loading:
		if err := g.audio.Load(); err != nil {
			g.logger.Error("audio disabled", zap.Error(err))
			g.audio = nil
		}
		g.setState(state.Playing)

	case state.Settings:
		switch {
		case justPressed(ebiten.KeyArrowLeft, ebiten.KeyA):
			g.audio.AdjustVolume(-0.1)
		case justPressed(ebiten.KeyArrowRight, ebiten.KeyD):
			g.audio.AdjustVolume(0.1)
		case justPressed(ebiten.KeyEscape, ebiten.KeyEnter):
			g.setState(state.MainMenu)
		}

	case state.Playing:
		if justPressed(ebiten.KeyEscape) {
			g.machine.TogglePause()
			return nil
		}
		rep, err := g.world.Step(g.ctx, dt, g.controls)
		if err != nil {
			return fmt.Errorf("step: %w", err)
		}
		g.lastReport = rep
		if rep.PlayerDied {
			g.setState(state.GameOver)
		}

	case state.Paused:
		switch {
		case justPressed(ebiten.KeyEscape):
			g.machine.TogglePause()
		case justPressed(ebiten.KeyQ, ebiten.KeyBackspace):
			g.setState(state.MainMenu)
		}

	case state.GameOver:
		switch {
		case justPressed(ebiten.KeyEnter, ebiten.KeySpace):
			g.setState(state.Playing)
		case justPressed(ebiten.KeyEscape):
			g.setState(state.MainMenu)
		}
	}
	return nil
}

// trackFPS samples the frame rate every fpsWindow seconds and captures a
// profile when it drops
func (g *Game) trackFPS(dt float64) {
	g.fpsUpdateTimer += dt
	g.fpsUpdateCounter++
	if g.fpsUpdateTimer < fpsWindow {
		return
	}
	g.fps = float64(g.fpsUpdateCounter) / g.fpsUpdateTimer
	g.fpsUpdateCounter = 0
	g.fpsUpdateTimer = 0

	if g.profiler == nil || g.fps >= g.cfg.Debug.DropFPS || time.Since(g.gameStartTime) < startupGrace {
		return
	}
	reason := fmt.Sprintf("fps%.0f-objects%d", g.fps, g.world.Index().Len())

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	err := g.profiler.Capture(reason)
	if err != nil {
		g.logger.Debug("profile not captured", zap.Error(err))
		return
	}
	g.logger.Warn("fps drop, capturing profile",
		zap.Float64("fps", g.fps),
		zap.Uint32("num_gc", m.NumGC),
		zap.Uint64("heap_alloc_kb", m.HeapAlloc/1024),
	)
}

// Draw renders the current screen
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	g.stars.Draw(screen)

	switch st := g.machine.Current(); st {
	case state.MainMenu:
		drawMenu(screen, "SPACE SHOOTER",
			"ENTER  play",
			"S  settings",
			"ESC  quit",
		)

	case state.Loading:
		drawMenu(screen, "LOADING")

	case state.Settings:
		vol := "off"
		if g.audio != nil {
			vol = fmt.Sprintf("%.0f%%", g.audio.Volume()*100)
		}
		drawMenu(screen, "SETTINGS",
			"volume  < "+vol+" >",
			"ESC  back",
		)

	case state.Playing, state.Paused, state.GameOver:
		g.drawWorld(screen)
		if st == state.GameOver {
			drawOverlay(screen)
			drawMenu(screen, "GAME OVER",
				fmt.Sprintf("score  %d", g.world.Session().Score()),
				"ENTER  replay",
				"ESC  main menu",
			)
			return
		}
		drawHUD(screen, g.world.Session().Snapshot())
		if st == state.Paused {
			drawOverlay(screen)
			drawMenu(screen, "PAUSED",
				"ESC  resume",
				"Q  main menu",
			)
		}
	}
}

func (g *Game) drawWorld(screen *ebiten.Image) {
	g.renderer.Render(screen, g.world.Objects(), g.debug.ShowColliders)
	if !g.debug.ShowColliders {
		return
	}
	g.renderer.RenderPlayfield(screen, g.cfg.Playfield.Width, g.cfg.Playfield.Height)
	r := g.lastReport
	stats := fmt.Sprintf("fps %.0f  objects %d  contacts %d  began %d  resolved %d  skipped %d  consumed %d",
		g.fps, g.world.Index().Len(), r.Contacts,
		r.Resolution.Began, r.Resolution.Resolved, r.Resolution.Skipped, r.Resolution.Consumed)
	drawText(screen, stats, hudMargin, float64(screen.Bounds().Dy())-hudMargin-13, 1, dimColor)
}

// Layout keeps a fixed logical screen; ebiten scales it to the window
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Window.Width, g.cfg.Window.Height
}
