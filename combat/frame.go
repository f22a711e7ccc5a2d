package combat

// FramePhase is the state of the resolver within one simulation frame
type FramePhase uint32

const (
	// FrameIdle means no pass is running
	FrameIdle FramePhase = iota
	// FrameDraining means events of the current batch are being consumed
	FrameDraining
	// FrameCommitted means the batch is consumed and commands are final
	FrameCommitted
)

func (p FramePhase) String() string {
	switch p {
	case FrameIdle:
		return "idle"
	case FrameDraining:
		return "draining"
	case FrameCommitted:
		return "committed"
	default:
		return "invalid"
	}
}

// ContactPhase is the lifecycle stage of an overlap between two objects
type ContactPhase uint8

const (
	ContactBegan ContactPhase = iota
	ContactPersisting
	ContactEnded
)

func (p ContactPhase) String() string {
	switch p {
	case ContactBegan:
		return "began"
	case ContactPersisting:
		return "persisting"
	case ContactEnded:
		return "ended"
	default:
		return "invalid"
	}
}

// OverlapEvent reports that two objects' shapes changed contact state.
// The pair is unordered.
type OverlapEvent struct {
	A, B  Handle
	Phase ContactPhase
}

// Began is shorthand for a began event
func Began(a, b Handle) OverlapEvent {
	return OverlapEvent{A: a, B: b, Phase: ContactBegan}
}

// AttackerPolicy decides what happens to the surviving member of a pair whose
// other member was already removed earlier in the same pass
type AttackerPolicy uint8

const (
	// AttackerConsume removes a surviving projectile that the pair's rule
	// would have destroyed anyway. No score, damage or sound is produced.
	AttackerConsume AttackerPolicy = iota
	// AttackerSkipPair skips the pair and leaves the survivor to cleanup
	AttackerSkipPair
)

func (p AttackerPolicy) String() string {
	switch p {
	case AttackerConsume:
		return "consume"
	case AttackerSkipPair:
		return "skip"
	default:
		return "invalid"
	}
}

// ParseAttackerPolicy maps a config name to a policy
func ParseAttackerPolicy(s string) (AttackerPolicy, bool) {
	switch s {
	case "consume", "":
		return AttackerConsume, true
	case "skip":
		return AttackerSkipPair, true
	default:
		return AttackerConsume, false
	}
}
