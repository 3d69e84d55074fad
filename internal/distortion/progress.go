package distortion

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// progressBar redraws a single status line while workers report finished
// units. Increment may be called from any goroutine.
type progressBar struct {
	out   io.Writer
	label string
	unit  string
	total int64
	width int

	done  atomic.Int64
	start time.Time
	stop  chan struct{}
	idle  chan struct{} // closed when loop returns
	mu    sync.Mutex
}

func newProgressBar(label string, total int64) *progressBar {
	return startProgress(os.Stderr, label, "rows", total, 100*time.Millisecond)
}

func startProgress(out io.Writer, label, unit string, total int64, every time.Duration) *progressBar {
	pb := &progressBar{
		out:   out,
		label: label,
		unit:  unit,
		total: total,
		width: 30,
		start: time.Now(),
		stop:  make(chan struct{}),
		idle:  make(chan struct{}),
	}
	go pb.loop(every)
	return pb
}

func (pb *progressBar) Increment() { pb.done.Add(1) }

// Finish draws the final state and ends the line.
func (pb *progressBar) Finish() {
	close(pb.stop)
	<-pb.idle
	pb.draw()
	fmt.Fprintln(pb.out)
}

func (pb *progressBar) loop(every time.Duration) {
	defer close(pb.idle)
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-pb.stop:
			return
		case <-t.C:
			pb.draw()
		}
	}
}

func (pb *progressBar) draw() {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	fmt.Fprint(pb.out, pb.line(pb.done.Load(), time.Since(pb.start)))
}

// line formats the status for n finished units after elapsed.
func (pb *progressBar) line(n int64, elapsed time.Duration) string {
	frac := 0.0
	if pb.total > 0 {
		frac = min(float64(n)/float64(pb.total), 1)
	}
	filled := int(float64(pb.width) * frac)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", pb.width-filled)
	return fmt.Sprintf("\r%s [%s] %3.0f%%  %d/%d %s  %s\033[K",
		pb.label, bar, frac*100, n, pb.total, pb.unit, elapsed.Truncate(time.Second))
}
