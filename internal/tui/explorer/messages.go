package explorer

import (
	"time"

	"github.com/msto63/mote/foundation/mote"
)

// analyzeTickMsg fires after typing pauses; seq identifies the edit it belongs to
type analyzeTickMsg struct {
	seq int
}

// analyzedMsg carries the result of a live analysis
type analyzedMsg struct {
	seq    int
	result *mote.Result
	err    error
}

// recordedMsg is sent when the current source was stored as a run
type recordedMsg struct {
	runID string
	ok    bool
	err   error
	at    time.Time
}
