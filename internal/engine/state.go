package engine

// State is the outer display state of one mounted view.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateFailed  State = "failed"
)

// SubState layers over StateReady without leaving it. At most one of
// Creating/Editing is active at a time.
type SubState string

const (
	SubViewing  SubState = "viewing"
	SubCreating SubState = "creating"
	SubEditing  SubState = "editing"
)
