package game

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"go.uber.org/zap"

	"spaceshooter/combat"
	"spaceshooter/config"
	"spaceshooter/sound"
	"spaceshooter/world"
)

// AudioPlayer plays sound bank effects through the ebiten audio context.
// A nil AudioPlayer is silent.
type AudioPlayer struct {
	ctx     *audio.Context
	cfg     config.AudioConfig
	players map[combat.Sound]*audio.Player
	volume  float64
	muted   bool
	logger  *zap.Logger
}

var _ world.SoundPlayer = (*AudioPlayer)(nil)

// NewAudioPlayer creates the process-wide audio context. Effects are not
// available until Load.
func NewAudioPlayer(cfg config.AudioConfig, logger *zap.Logger) *AudioPlayer {
	return &AudioPlayer{
		ctx:    audio.NewContext(cfg.SampleRate),
		cfg:    cfg,
		volume: 1,
		logger: logger,
	}
}

// Loaded reports whether effects are ready
func (a *AudioPlayer) Loaded() bool {
	return a != nil && a.players != nil
}

// Load renders the sound bank and creates one player per effect
func (a *AudioPlayer) Load() error {
	if a == nil || a.Loaded() {
		return nil
	}
	bank, err := sound.NewBank(a.cfg.SampleRate, a.cfg.Volume, a.logger.Named("sound"))
	if err != nil {
		return fmt.Errorf("load sounds: %w", err)
	}
	players := make(map[combat.Sound]*audio.Player, len(sound.Effects))
	for _, s := range sound.Effects {
		pcm, err := bank.PCM(s)
		if err != nil {
			return fmt.Errorf("load sounds: %w", err)
		}
		p := a.ctx.NewPlayerFromBytes(pcm)
		p.SetVolume(a.volume)
		players[s] = p
	}
	a.players = players
	return nil
}

// Play restarts the effect for s
func (a *AudioPlayer) Play(s combat.Sound) {
	if a == nil || a.muted {
		return
	}
	p, ok := a.players[s]
	if !ok {
		return
	}
	if err := p.Rewind(); err != nil {
		a.logger.Debug("rewind failed", zap.Stringer("sound", s), zap.Error(err))
		return
	}
	p.Play()
}

// Volume returns the playback volume in [0, 1] on top of the bank volume
func (a *AudioPlayer) Volume() float64 {
	if a == nil {
		return 0
	}
	return a.volume
}

// AdjustVolume changes the playback volume by delta, clamped to [0, 1]
func (a *AudioPlayer) AdjustVolume(delta float64) {
	if a == nil {
		return
	}
	a.volume = min(1, max(0, a.volume+delta))
	for _, p := range a.players {
		p.SetVolume(a.volume)
	}
}

// ToggleMute silences or restores effects
func (a *AudioPlayer) ToggleMute() {
	if a == nil {
		return
	}
	a.muted = !a.muted
}

// Muted reports whether effects are silenced
func (a *AudioPlayer) Muted() bool {
	return a == nil || a.muted
}
