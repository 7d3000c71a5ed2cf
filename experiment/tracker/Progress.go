package tracker

import (
	"fmt"
	"io"
	"strings"
	"time"

	ts "github.com/samuelfneumann/qtetris/timestep"
)

// Progress is a Tracker which redraws a progress bar over the episodes
// of an experiment each time an episode is tracked. Nothing is saved to
// disk; Save finishes the bar with a newline.
type Progress struct {
	out       io.Writer
	width     int
	epochs    int
	done      int
	record    int
	startTime time.Time
	bar       strings.Builder
}

// NewProgress returns a new Progress which draws a bar width
// characters wide to out, reaching 100% after epochs episodes
func NewProgress(out io.Writer, width, epochs int) *Progress {
	return &Progress{
		out:       out,
		width:     width,
		epochs:    epochs,
		startTime: time.Now(),
	}
}

// Track advances the bar by one episode and redraws it
func (p *Progress) Track(s ts.Summary) {
	if p.done < p.epochs {
		p.done++
	}
	if s.Stones > p.record {
		p.record = s.Stones
	}
	p.display()
}

// Save ends the line the bar is drawn on
func (p *Progress) Save() error {
	_, err := fmt.Fprintln(p.out)
	return err
}

// String returns the current bar without terminal control codes
func (p *Progress) String() string {
	p.bar.Reset()
	p.bar.WriteString("|")

	filled := 0
	if p.epochs > 0 {
		filled = p.done * p.width / p.epochs
	}
	p.bar.WriteString(strings.Repeat("█", filled))
	p.bar.WriteString(strings.Repeat(" ", p.width-filled))

	percent := 0.0
	if p.epochs > 0 {
		percent = float64(p.done) / float64(p.epochs) * 100
	}
	fmt.Fprintf(&p.bar, "| [%.2f%% | record: %d | elapsed: %v]", percent,
		p.record, time.Since(p.startTime).Truncate(time.Second))
	return p.bar.String()
}

func (p *Progress) display() {
	fmt.Fprintf(p.out, "\n\033[1A\033[K%v", p.String())
}
