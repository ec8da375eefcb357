package constants

// RunStatus is the canonical status for rows in the runs history table.
type RunStatus string

// Stable values (store these exact strings in DB).
const (
	RunStatusRunning  RunStatus = "RUNNING"  // batch in progress
	RunStatusComplete RunStatus = "COMPLETE" // all work units accounted for
	RunStatusFailed   RunStatus = "FAILED"   // aborted before completion
)
