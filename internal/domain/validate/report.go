package validate

import (
	"fmt"
	"io"
	"strings"
)

// Check names a validation check.
type Check string

// Checks, in the order they run.
const (
	CheckDuplicatePGID    Check = "duplicate_pgid"
	CheckDuplicatePOID    Check = "duplicate_poid"
	CheckDuplicateName    Check = "duplicate_name_position"
	CheckDuplicateJersey  Check = "duplicate_jersey"
	CheckPosition         Check = "position"
	CheckMissingValues    Check = "missing_values"
	CheckRange            Check = "range"
	CheckRatingDeviation  Check = "rating_deviation"
	CheckFreeAgentSalary  Check = "free_agent_salary"
	CheckRosteredNoSalary Check = "rostered_without_salary"
	CheckEmptyPosition    Check = "empty_position"
	CheckRosterSize       Check = "roster_size"
)

// Checks lists every check in run order.
var Checks = []Check{
	CheckDuplicatePGID, CheckDuplicatePOID, CheckDuplicateName, CheckDuplicateJersey,
	CheckPosition, CheckMissingValues, CheckRange, CheckRatingDeviation,
	CheckFreeAgentSalary, CheckRosteredNoSalary, CheckEmptyPosition, CheckRosterSize,
}

// Finding is one reported anomaly. Subjects are player ids, or team ids for
// team level checks.
type Finding struct {
	Check    Check
	Message  string
	Subjects []int
}

// Report holds every finding of a run.
type Report struct {
	Findings []Finding
}

// OK reports whether the run found nothing.
func (r Report) OK() bool { return len(r.Findings) == 0 }

// Count returns the number of findings of a check.
func (r Report) Count(c Check) int {
	n := 0
	for _, f := range r.Findings {
		if f.Check == c {
			n++
		}
	}
	return n
}

// Of returns the findings of a check.
func (r Report) Of(c Check) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Check == c {
			out = append(out, f)
		}
	}
	return out
}

// WriteTo renders the report grouped by check.
func (r Report) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	if r.OK() {
		b.WriteString("validation: no findings\n")
	}
	for _, c := range Checks {
		fs := r.Of(c)
		if len(fs) == 0 {
			continue
		}
		fmt.Fprintf(&b, "%s (%d)\n", c, len(fs))
		for _, f := range fs {
			fmt.Fprintf(&b, "  - %s\n", f.Message)
		}
	}
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

func (r Report) String() string {
	var b strings.Builder
	_, _ = r.WriteTo(&b)
	return b.String()
}
