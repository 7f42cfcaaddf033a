package efflux

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
)

// Reporter emits counter and status directives on the side channel in the
// exact textual form the orchestrator parses. Each directive goes out as a
// single Write call and callers are serialized, since a torn line would be
// dropped or misparsed by the poller. Deltas are not batched: every call is
// one orchestrator-visible event, so hot call sites should rate-limit.
type Reporter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewReporter creates a Reporter over the side channel.
func NewReporter(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

// Counter emits a delta for the (group, name) counter. The orchestrator
// splits the directive on commas, so neither identifier may contain one.
func (r *Reporter) Counter(group, name string, amount int64) error {
	if strings.ContainsAny(group, ",\n") || strings.ContainsAny(name, ",\n") {
		return fmt.Errorf("counter identifiers must not contain ',' or newline: %q,%q", group, name)
	}
	return r.write("reporter:counter:" + group + "," + name + "," + strconv.FormatInt(amount, 10) + "\n")
}

// Status replaces the current task status. Newlines are flattened to keep
// the directive on one line.
func (r *Reporter) Status(status string) error {
	return r.write("reporter:status:" + strings.ReplaceAll(status, "\n", " ") + "\n")
}

func (r *Reporter) write(line string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, err := io.WriteString(r.w, line); err != nil {
		return fmt.Errorf("reporting channel: %w", err)
	}
	return nil
}
