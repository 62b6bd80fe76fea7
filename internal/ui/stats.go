package ui

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"
)

// Stats summarises a batch of visits.
type Stats struct {
	Recorded   atomic.Int64
	Index      atomic.Int64
	Skipped    atomic.Int64
	Failed     atomic.Int64
	Characters atomic.Int64
}

func (s *Stats) Print(w io.Writer, elapsed time.Duration) {
	fmt.Fprintln(w, "Visit Summary:")
	fmt.Fprintf(w, "Recorded:   %d\n", s.Recorded.Load())
	fmt.Fprintf(w, "Index:      %d\n", s.Index.Load())
	fmt.Fprintf(w, "Skipped:    %d\n", s.Skipped.Load())
	fmt.Fprintf(w, "Failed:     %d\n", s.Failed.Load())
	fmt.Fprintf(w, "Characters: %d\n", s.Characters.Load())
	fmt.Fprintf(w, "Time:       %s\n", elapsed.Round(time.Second))
}
