package combat

// Sound identifies a sound effect the engine should play
type Sound uint8

const (
	SoundHit Sound = iota + 1
	SoundDeath
	SoundVolley
)

func (s Sound) String() string {
	switch s {
	case SoundHit:
		return "hit"
	case SoundDeath:
		return "death"
	case SoundVolley:
		return "volley"
	default:
		return "none"
	}
}

// CommandSink receives deferred removal and sound commands.
// Removal must not happen while a resolution pass is iterating.
type CommandSink interface {
	Remove(h Handle)
	PlaySound(s Sound)
}

// Effects is the pending effects list accumulated by one pass
type Effects struct {
	Removals []Handle
	Sounds   []Sound
}

var _ CommandSink = (*Effects)(nil)

func (e *Effects) Remove(h Handle) {
	e.Removals = append(e.Removals, h)
}

func (e *Effects) PlaySound(s Sound) {
	e.Sounds = append(e.Sounds, s)
}

// Apply replays the removals and then the sounds into sink
func (e Effects) Apply(sink CommandSink) {
	for _, h := range e.Removals {
		sink.Remove(h)
	}
	for _, s := range e.Sounds {
		sink.PlaySound(s)
	}
}

// Empty reports whether nothing was queued
func (e Effects) Empty() bool {
	return len(e.Removals) == 0 && len(e.Sounds) == 0
}
