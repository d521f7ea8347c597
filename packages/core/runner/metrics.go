package runner

import (
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

const maxLatencyUs = 60_000_000

// Latency summarizes the round trip times of completed transport calls.
type Latency struct {
	Count int64
	P50   time.Duration
	P95   time.Duration
	P99   time.Duration
	Max   time.Duration
}

type latencyRecorder struct {
	mu sync.Mutex
	// Latency histogram (in microseconds for precision)
	histogram *hdrhistogram.Histogram
}

func newLatencyRecorder() *latencyRecorder {
	return &latencyRecorder{
		// 1us to 60s range, 3 significant digits
		histogram: hdrhistogram.New(1, maxLatencyUs, 3),
	}
}

func (l *latencyRecorder) Record(d time.Duration) {
	us := d.Microseconds()
	if us < 1 {
		us = 1
	}
	if us > maxLatencyUs {
		us = maxLatencyUs
	}

	l.mu.Lock()
	_ = l.histogram.RecordValue(us)
	l.mu.Unlock()
}

func (l *latencyRecorder) Snapshot() Latency {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.histogram.TotalCount() == 0 {
		return Latency{}
	}
	return Latency{
		Count: l.histogram.TotalCount(),
		P50:   time.Duration(l.histogram.ValueAtQuantile(50)) * time.Microsecond,
		P95:   time.Duration(l.histogram.ValueAtQuantile(95)) * time.Microsecond,
		P99:   time.Duration(l.histogram.ValueAtQuantile(99)) * time.Microsecond,
		Max:   time.Duration(l.histogram.Max()) * time.Microsecond,
	}
}
