package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Astrovicis/Ocean-Bounty-Upgradeability-POC/internal/usecase"
	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

// SpinnerProgressReporter renders deployment progress on a terminal: a spinner
// while a transaction is pending, then one line per finished step.
type SpinnerProgressReporter struct {
	spinner   *spinner.Spinner
	out       io.Writer
	stepStart time.Time
	pending   string
}

// NewSpinnerProgressReporter creates a new spinner-based progress reporter
func NewSpinnerProgressReporter() *SpinnerProgressReporter {
	return NewSpinnerProgressReporterTo(os.Stderr)
}

// NewSpinnerProgressReporterTo creates a reporter writing to out
func NewSpinnerProgressReporterTo(out io.Writer) *SpinnerProgressReporter {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
	s.HideCursor = false

	return &SpinnerProgressReporter{
		spinner: s,
		out:     out,
	}
}

// OnProgress handles progress events
func (r *SpinnerProgressReporter) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	switch event.Stage {
	case usecase.StageDeploying:
		r.finishPending("")
		r.pending = event.Message
		r.stepStart = time.Now()
	case usecase.StageReusing:
		r.finishPending("")
		r.println(color.New(color.FgWhite, color.Faint), "⊘", counter(event)+event.Message)
		return
	case usecase.StageFailed:
		r.finishPending(event.Message)
		return
	case usecase.StageCompleted:
		r.finishPending("")
		r.println(color.New(color.FgGreen, color.Bold), "✓", event.Message)
		return
	}

	if event.Spinner {
		r.spinner.Suffix = " " + counter(event) + event.Message
		if !r.spinner.Active() {
			r.spinner.Start()
		}
	} else if r.spinner.Active() {
		r.spinner.Stop()
	}
}

// finishPending closes the line of the step in flight, as failed when failure is set
func (r *SpinnerProgressReporter) finishPending(failure string) {
	if r.spinner.Active() {
		r.spinner.Stop()
	}
	if r.pending == "" {
		return
	}
	elapsed := time.Since(r.stepStart).Round(time.Millisecond)
	if failure != "" {
		r.println(color.New(color.FgRed), "✗", fmt.Sprintf("%s (%s)", failure, elapsed))
	} else {
		r.println(color.New(color.FgGreen), "✓", fmt.Sprintf("%s (%s)", r.pending, elapsed))
	}
	r.pending = ""
}

func counter(event usecase.ProgressEvent) string {
	if event.Total == 0 {
		return ""
	}
	return fmt.Sprintf("[%d/%d] ", event.Current, event.Total)
}

func (r *SpinnerProgressReporter) println(c *color.Color, icon, message string) {
	fmt.Fprintf(r.out, "%s %s\n", c.Sprint(icon), message)
}

// Info prints an info message
func (r *SpinnerProgressReporter) Info(message string) {
	r.interrupt(func() {
		fmt.Fprintln(r.out, color.New(color.FgCyan).Sprint(message))
	})
}

// Error prints an error message
func (r *SpinnerProgressReporter) Error(message string) {
	r.interrupt(func() {
		fmt.Fprintln(r.out, color.New(color.FgRed).Sprint(message))
	})
}

// interrupt stops the spinner around print
func (r *SpinnerProgressReporter) interrupt(print func()) {
	wasActive := r.spinner.Active()
	if wasActive {
		r.spinner.Stop()
	}
	print()
	if wasActive {
		r.spinner.Start()
	}
}

// Ensure SpinnerProgressReporter implements ProgressSink
var _ usecase.ProgressSink = (*SpinnerProgressReporter)(nil)
