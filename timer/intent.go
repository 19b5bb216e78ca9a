package timer

// Intent is a request from the UI to the engine.
type Intent interface {
	intent()
}

// SelectTarget replaces the run with a fresh one for a new target time.
type SelectTarget struct {
	Seconds int
}

// Start begins timing an attempt.
type Start struct{}

// Stop ends the running attempt and records it.
type Stop struct{}

// Continue readies the timer for another attempt in the same run.
type Continue struct{}

// BeginFinishHold starts the hold-to-finish progress ramp.
type BeginFinishHold struct{}

// CancelFinishHold aborts the hold-to-finish ramp.
type CancelFinishHold struct{}

// Reset discards the run, keeping the target.
type Reset struct{}

// Finalize ends the run without a hold gesture, for example when the
// user leaves the timer screen. Runs without attempts are discarded.
type Finalize struct{}

func (SelectTarget) intent()     {}
func (Start) intent()            {}
func (Stop) intent()             {}
func (Continue) intent()         {}
func (BeginFinishHold) intent()  {}
func (CancelFinishHold) intent() {}
func (Reset) intent()            {}
func (Finalize) intent()         {}
