package sound

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/gopxl/beep"
	"go.uber.org/zap"

	"spaceshooter/combat"
)

// ErrUnknownSound is returned for sounds the bank cannot synthesize
var ErrUnknownSound = errors.New("unknown sound")

// Effects lists every sound the bank renders
var Effects = []combat.Sound{combat.SoundHit, combat.SoundDeath, combat.SoundVolley}

// BytesPerFrame is the size of one stereo 16-bit frame
const BytesPerFrame = 4

// Render drains s into signed 16-bit little-endian stereo PCM
func Render(s beep.Streamer) ([]byte, error) {
	var out []byte
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for _, frame := range buf[:n] {
			for _, v := range frame {
				v = math.Max(-1, math.Min(1, v))
				out = binary.LittleEndian.AppendUint16(out, uint16(int16(v*math.MaxInt16)))
			}
		}
		if !ok || n == 0 {
			break
		}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return out, nil
}

// Bank caches rendered PCM for every effect at one sample rate
type Bank struct {
	mu     sync.RWMutex
	rate   beep.SampleRate
	volume float64
	pcm    map[combat.Sound][]byte
	logger *zap.Logger
}

// NewBank renders all effects. Volume is linear in [0, 1].
func NewBank(sampleRate int, volume float64, logger *zap.Logger) (*Bank, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	b := &Bank{
		rate:   beep.SampleRate(sampleRate),
		logger: logger,
	}
	if err := b.SetVolume(volume); err != nil {
		return nil, err
	}
	return b, nil
}

// SampleRate returns the rate the bank renders at
func (b *Bank) SampleRate() int {
	return int(b.rate)
}

// Volume returns the current linear volume
func (b *Bank) Volume() float64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.volume
}

// SetVolume re-renders every effect at a new volume
func (b *Bank) SetVolume(volume float64) error {
	pcm := make(map[combat.Sound][]byte, len(Effects))
	for _, s := range Effects {
		data, err := Render(Synth(s, b.rate, volume))
		if err != nil {
			return fmt.Errorf("sound %s: %w", s, err)
		}
		pcm[s] = data
	}

	b.mu.Lock()
	b.volume = volume
	b.pcm = pcm
	b.mu.Unlock()

	b.logger.Debug("sound bank rendered",
		zap.Int("sample_rate", int(b.rate)),
		zap.Float64("volume", volume),
	)
	return nil
}

// PCM returns the rendered bytes for s. Callers must not modify them.
func (b *Bank) PCM(s combat.Sound) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	data, ok := b.pcm[s]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSound, s)
	}
	return data, nil
}
