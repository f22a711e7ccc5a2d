package sound

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"spaceshooter/combat"
)

const rate = beep.SampleRate(22050)

func TestOscillatorSquare(t *testing.T) {
	osc := NewOscillator(220, 440, 50*time.Millisecond, WaveSquare, rate)

	samples := make([][2]float64, 64)
	n, ok := osc.Stream(samples)
	require.True(t, ok)
	require.Equal(t, 64, n)
	for _, s := range samples {
		assert.Contains(t, []float64{-1, 1}, s[0])
		assert.Equal(t, s[0], s[1], "mono signal on both channels")
	}
	assert.NoError(t, osc.Err())
}

func TestOscillatorDrains(t *testing.T) {
	osc := NewOscillator(440, 440, 10*time.Millisecond, WaveSine, rate)
	total := 0
	buf := make([][2]float64, 100)
	for {
		n, ok := osc.Stream(buf)
		total += n
		if !ok {
			break
		}
	}
	assert.Equal(t, rate.N(10*time.Millisecond), total)
}

func TestEnvelopeShape(t *testing.T) {
	d := 20 * time.Millisecond
	osc := NewOscillator(100, 100, time.Second, WaveSquare, rate)
	env := NewEnvelope(osc, d, 5*time.Millisecond, 5*time.Millisecond, rate)

	buf := make([][2]float64, rate.N(time.Second))
	n, _ := env.Stream(buf)
	require.Equal(t, rate.N(d), n, "envelope cuts the source at its duration")

	assert.Equal(t, 0.0, buf[0][0], "attack starts silent")
	mid := buf[n/2][0]
	assert.InDelta(t, 1, mid*mid, 1e-9, "sustain is full scale")

	n, ok := env.Stream(buf)
	assert.Equal(t, 0, n)
	assert.False(t, ok)
}

func TestRenderEffects(t *testing.T) {
	for _, s := range Effects {
		t.Run(s.String(), func(t *testing.T) {
			pcm, err := Render(Synth(s, rate, 1))
			require.NoError(t, err)
			require.NotEmpty(t, pcm)
			assert.Zero(t, len(pcm)%BytesPerFrame)
			assert.LessOrEqual(t, len(pcm)/BytesPerFrame, rate.N(Duration(s)))

			again, err := Render(Synth(s, rate, 1))
			require.NoError(t, err)
			assert.Equal(t, pcm, again, "effects render deterministically")
		})
	}
}

func TestRenderSilent(t *testing.T) {
	pcm, err := Render(Synth(combat.SoundHit, rate, 0))
	require.NoError(t, err)
	require.NotEmpty(t, pcm)
	for _, b := range pcm {
		if b != 0 {
			t.Fatal("zero volume must render silence")
		}
	}
}

func TestSynthUnknown(t *testing.T) {
	assert.Nil(t, Synth(combat.Sound(99), rate, 1))
	assert.Zero(t, Duration(combat.Sound(99)))
}

func TestBank(t *testing.T) {
	bank, err := NewBank(int(rate), 0.5, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, int(rate), bank.SampleRate())

	for _, s := range Effects {
		pcm, err := bank.PCM(s)
		require.NoError(t, err)
		assert.NotEmpty(t, pcm)
	}

	_, err = bank.PCM(combat.Sound(0))
	assert.ErrorIs(t, err, ErrUnknownSound)

	loud, _ := bank.PCM(combat.SoundDeath)
	require.NoError(t, bank.SetVolume(0))
	assert.Equal(t, 0.0, bank.Volume())
	quiet, _ := bank.PCM(combat.SoundDeath)
	assert.Len(t, quiet, len(loud))
	assert.NotEqual(t, loud, quiet)
}
