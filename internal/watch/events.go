// Package watch fans generation reports out to any number of viewers, such
// as the local dashboard and remote SSH sessions, without ever blocking the
// training loop.
package watch

import "github.com/vovakirdan/jumpman/internal/evolution"

// ViewerID uniquely identifies a viewer (e.g., an SSH connection).
type ViewerID string

// Event is sent from the hub to a viewer.
type Event interface {
	watchEvent()
}

// ReportEvent carries one completed generation.
type ReportEvent struct {
	Report evolution.Report
}

func (ReportEvent) watchEvent() {}

// FinishedEvent is sent once when training ends.
type FinishedEvent struct {
	Reason     FinishReason
	BestScore  float64
	Generation int
}

func (FinishedEvent) watchEvent() {}

// FinishReason describes why training ended.
type FinishReason int

const (
	FinishTargetReached FinishReason = iota // Best score reached the target
	FinishGenerationCap                     // Generation limit hit
	FinishStopped                           // Stopped by a user or signal
	FinishFailed                            // Training aborted with an error
)

func (r FinishReason) String() string {
	switch r {
	case FinishTargetReached:
		return "Target reached"
	case FinishGenerationCap:
		return "Generation limit reached"
	case FinishStopped:
		return "Stopped"
	case FinishFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}
