package core

// Input is the intent frame the simulation consumes once per tick. The shell
// translates raw key events into this struct; held keys stay true across
// frames while press-style intents are cleared after the tick consumes them
// (see ClearOneShot). The simulation never reads the keyboard directly.
type Input struct {
	// Held movement intents.
	Up, Down, Left, Right bool

	// Press-style ability intents. Guard conditions inside the simulation
	// (cooldowns, energy, already attacking) silently drop these; holding a
	// key simply re-attempts next tick.
	Dash         bool
	Light        bool
	HeavyPress   bool
	HeavyRelease bool
	Pulse        bool
	TimeSlow     bool

	// UI-layer intents. The orchestrator consumes and the shell clears them;
	// each field has exactly one writer per tick so an intent can be neither
	// dropped nor double-applied.
	MutatorChoice int // index into the offered draft, -1 for none
	EventAccept   bool
	EventDecline  bool
	Restart       bool
	Pause         bool
}

// NewInput returns an empty intent frame.
func NewInput() Input {
	return Input{MutatorChoice: -1}
}

// ClearOneShot resets press-style and UI intents after a tick has consumed
// them. Held movement directions are left alone.
func (in *Input) ClearOneShot() {
	in.Dash = false
	in.Light = false
	in.HeavyPress = false
	in.HeavyRelease = false
	in.Pulse = false
	in.TimeSlow = false
	in.MutatorChoice = -1
	in.EventAccept = false
	in.EventDecline = false
	in.Restart = false
	in.Pause = false
}
