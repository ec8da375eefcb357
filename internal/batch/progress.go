package batch

// Status is the orchestrator's externally visible state.
type Status string

const (
	StatusIdle       Status = "IDLE"
	StatusCounting   Status = "COUNTING"
	StatusProcessing Status = "PROCESSING"
	StatusComplete   Status = "COMPLETE"
)

// Progress is handed to the presentation hook after every processed unit.
// Total is fixed during counting, before any model call.
type Progress struct {
	Status Status
	Done   int
	Total  int
	Label  string // current unit label, empty outside PROCESSING
}

// ProgressFunc receives progress updates; may be nil.
type ProgressFunc func(Progress)
