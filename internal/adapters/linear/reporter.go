// Package linear provides a synchronous, line-oriented batch reporter for
// CI and non-interactive environments.
package linear

import (
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/muesli/termenv"

	"go.trai.ch/respec/internal/core/domain"
	"go.trai.ch/respec/internal/ui/output"
	"go.trai.ch/respec/internal/ui/style"
)

// Reporter implements ports.Reporter with chronological, prefixed log lines.
// Progress goes to stderr; per-package audit details go to stdout.
type Reporter struct {
	stdout io.Writer
	stderr io.Writer
	output *termenv.Output

	mu       sync.Mutex
	packages map[string]*packageState // spanID -> state
}

type packageState struct {
	name      string
	startTime time.Time
}

// NewReporter creates a Reporter. Nil writers default to os.Stdout and
// os.Stderr; a nil profile selector defaults to the CI-safe ANSI profile.
func NewReporter(stdout, stderr io.Writer, profileFn func() termenv.Profile) *Reporter {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	if profileFn == nil {
		profileFn = output.ProfileANSI
	}

	return &Reporter{
		stdout:   stdout,
		stderr:   stderr,
		output:   output.NewWithProfile(stderr, profileFn),
		packages: make(map[string]*packageState),
	}
}

// OnBatchStart announces the batch before any package runs.
func (r *Reporter) OnBatchStart(packages []string, osRelease, arch string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, _ = fmt.Fprintf(r.stderr, "Sanitizing %d package(s) for %s/%s\n",
		len(packages), osRelease, arch)
}

// OnPackageStart records the span and prints a start line.
func (r *Reporter) OnPackageStart(spanID, name string, startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.packages[spanID] = &packageState{
		name:      name,
		startTime: startTime,
	}

	prefix := r.output.String(fmt.Sprintf("[%s]", name)).Faint().String()
	_, _ = fmt.Fprintf(r.stderr, "%s Starting...\n", prefix)
}

// OnPackageComplete prints the completion status for a span.
func (r *Reporter) OnPackageComplete(spanID string, endTime time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pkg, ok := r.packages[spanID]
	if !ok {
		return
	}

	duration := endTime.Sub(pkg.startTime).Round(time.Millisecond)
	prefix := fmt.Sprintf("[%s]", pkg.name)

	if err != nil {
		symbol := r.output.String(style.Cross).Foreground(termenv.ANSIRed).String()
		_, _ = fmt.Fprintf(r.stderr, "%s %s Failed after %v: %v\n",
			prefix, symbol, duration, err)
	} else {
		symbol := r.output.String(style.Check).Foreground(termenv.ANSIGreen).String()
		_, _ = fmt.Fprintf(r.stderr, "%s %s Corrected in %v\n",
			prefix, symbol, duration)
	}

	delete(r.packages, spanID)
}

// OnOutcome prints the audit details for a finished package.
func (r *Reporter) OnOutcome(outcome *domain.Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prefix := fmt.Sprintf("[%s]", outcome.Package)

	if !outcome.IsCorrected() {
		reason := "unknown"
		detail := ""
		if outcome.Failure != nil {
			reason = string(outcome.Failure.Reason)
			detail = outcome.Failure.Detail
		}
		_, _ = fmt.Fprintf(r.stdout, "%s %s: %s\n", prefix, reason, detail)
		return
	}

	_, _ = fmt.Fprintf(r.stdout, "%s %d change(s), digest %s\n",
		prefix, len(outcome.Changes), outcome.Digest)

	for _, dep := range outcome.LowConfidence {
		symbol := r.output.String(style.Warning).Foreground(termenv.ANSIYellow).String()
		_, _ = fmt.Fprintf(r.stdout, "%s %s low-confidence dependency: %s\n",
			prefix, symbol, dep)
	}
}

// OnSummary prints the batch counts.
func (r *Reporter) OnSummary(summary domain.Summary) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, _ = fmt.Fprintf(r.stderr, "Done: %d corrected, %d failed (%d total)\n",
		summary.Corrected, summary.Failed, summary.Total)

	reasons := make([]string, 0, len(summary.ByReason))
	for reason := range summary.ByReason {
		reasons = append(reasons, reason)
	}
	sort.Strings(reasons)

	for _, reason := range reasons {
		_, _ = fmt.Fprintf(r.stderr, "  %s: %d\n", reason, summary.ByReason[reason])
	}
}
