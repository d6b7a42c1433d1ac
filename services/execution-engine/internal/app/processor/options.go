package processor

import (
	"time"

	"github.com/segmentio/kafka-go"
)

// Options holds configuration options for the processor.
type Options struct {
	// QueueSize bounds the pending commands of one symbol.
	QueueSize        int
	SnapshotInterval time.Duration
	// StartOffset is applied to partition readers on Start.
	StartOffset int64
	// ReadBackoff is the pause after a failed read.
	ReadBackoff time.Duration
}

// DefaultProcessorOptions returns default processor options
func DefaultProcessorOptions() *Options {
	return &Options{
		QueueSize:        1024,
		SnapshotInterval: 5 * time.Second,
		StartOffset:      kafka.LastOffset,
		ReadBackoff:      100 * time.Millisecond,
	}
}
