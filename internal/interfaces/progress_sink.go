package interfaces

import (
	"github.com/ternarybob/finsight/internal/models"
)

// ProgressSink receives staged-progress checkpoints during a pipeline
// run. Events arrive synchronously from the running goroutine, in fixed
// stage order with non-decreasing percents; a sink must not block for
// long. Callers that don't care pass nil.
type ProgressSink interface {
	// Progress is invoked at the start of each pipeline stage.
	Progress(event models.ProgressEvent)
}

// ProgressFunc adapts a plain function to the ProgressSink interface.
type ProgressFunc func(event models.ProgressEvent)

// Progress implements ProgressSink.
func (f ProgressFunc) Progress(event models.ProgressEvent) {
	f(event)
}
