package sound

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"spaceshooter/combat"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

const (
	hitDuration    = 90 * time.Millisecond
	deathDuration  = 450 * time.Millisecond
	volleyDuration = 120 * time.Millisecond
)

// oscillator generates a raw wave for a fixed number of samples. Frequency
// slides linearly from freq to endFreq over the duration.
type oscillator struct {
	freq, endFreq float64
	phase         float64
	duration      int
	position      int
	wave          WaveType
	rate          beep.SampleRate
	noise         *rand.Rand
}

// NewOscillator creates an oscillator. Noise is seeded so effects render
// identically every time.
func NewOscillator(freq, endFreq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		endFreq:  endFreq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		noise:    rand.New(rand.NewPCG(uint64(freq), uint64(endFreq))),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		case WaveNoise:
			val = o.noise.Float64()*2 - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		t := float64(o.position) / float64(o.duration)
		f := o.freq + (o.endFreq-o.freq)*t
		o.phase += f / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a stream
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

// NewEnvelope shapes s. The stream ends after duration even if s is longer.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if e.position >= e.total {
		return 0, false
	}
	if rest := e.total - e.position; len(samples) > rest {
		samples = samples[:rest]
	}
	n, ok = e.streamer.Stream(samples)

	releaseStart := e.total - e.release
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if e.position >= releaseStart && e.release > 0 {
			vol = math.Min(vol, float64(e.total-e.position)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly by vol. Zero is silent since log2(0) is -Inf.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Duration is the length of an effect. Unknown sounds have zero length.
func Duration(s combat.Sound) time.Duration {
	switch s {
	case combat.SoundHit:
		return hitDuration
	case combat.SoundDeath:
		return deathDuration
	case combat.SoundVolley:
		return volleyDuration
	default:
		return 0
	}
}

// Synth builds the streamer for one effect at the given volume, or nil for
// an unknown sound
func Synth(s combat.Sound, rate beep.SampleRate, volume float64) beep.Streamer {
	var st beep.Streamer
	switch s {
	case combat.SoundHit:
		// short crunch: falling square over a burst of noise
		tone := NewEnvelope(NewOscillator(520, 180, hitDuration, WaveSquare, rate), hitDuration, 2*time.Millisecond, 70*time.Millisecond, rate)
		noise := NewEnvelope(NewOscillator(1, 2, hitDuration, WaveNoise, rate), hitDuration, time.Millisecond, 80*time.Millisecond, rate)
		st = beep.Mix(newVolume(tone, 0.6), newVolume(noise, 0.4))
	case combat.SoundDeath:
		rumble := NewEnvelope(NewOscillator(140, 40, deathDuration, WaveSaw, rate), deathDuration, 5*time.Millisecond, 350*time.Millisecond, rate)
		noise := NewEnvelope(NewOscillator(3, 4, deathDuration, WaveNoise, rate), deathDuration, 2*time.Millisecond, 420*time.Millisecond, rate)
		st = beep.Mix(newVolume(rumble, 0.5), newVolume(noise, 0.5))
	case combat.SoundVolley:
		// two-step laser zap
		half := volleyDuration / 2
		first := NewEnvelope(NewOscillator(1400, 700, half, WaveSquare, rate), half, time.Millisecond, 20*time.Millisecond, rate)
		second := NewEnvelope(NewOscillator(1100, 500, half, WaveSquare, rate), half, time.Millisecond, 40*time.Millisecond, rate)
		st = beep.Seq(first, second)
	default:
		return nil
	}
	return newVolume(st, volume)
}
