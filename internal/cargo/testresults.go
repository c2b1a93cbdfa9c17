package cargo

import (
	"bufio"
	"fmt"
	"regexp"
	"strings"
)

// TestStatus is the normalized outcome of a single test.
type TestStatus string

const (
	TestPassed  TestStatus = "passed"
	TestFailed  TestStatus = "failed"
	TestSkipped TestStatus = "skipped"
)

// TestOutcome is one normalized test result.
type TestOutcome struct {
	// Name as the harness reported it. Doc tests carry embedded
	// whitespace and a parenthetical line reference, e.g.
	// "src/lib.rs - Point::new (line 12)".
	Name   string
	Status TestStatus
}

// TestReport holds every outcome of one test run, in the order the
// harness reported them, plus a derived summary string.
type TestReport struct {
	Outcomes []TestOutcome
	// Summary is "N passed, N failed, N ignored" when the harness
	// printed its result line, or "N tests found" when the run ended
	// before reaching it (a compile error, a panic in the harness).
	Summary string
}

// CountByStatus returns how many outcomes carry the given status.
func (r TestReport) CountByStatus(status TestStatus) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}

// FailedNames returns the names of all failed outcomes, in report order.
func (r TestReport) FailedNames() []string {
	var names []string
	for _, o := range r.Outcomes {
		if o.Status == TestFailed {
			names = append(names, o.Name)
		}
	}
	return names
}

var (
	// Name capture is non-greedy so doc test identifiers with
	// embedded spaces survive; the " ... " separator anchors the end.
	testOutcomeRe = regexp.MustCompile(`^test (.+?) \.\.\. (ok|FAILED|ignored)`)
	testSummaryRe = regexp.MustCompile(`(\d+) passed; (\d+) failed; (\d+) ignored`)
)

// ParseTestResults scans test-harness text output for individual test
// outcomes and the harness result line. Free-form program output
// (println! noise) never matches the outcome pattern and is ignored.
// The caller concatenates stdout and stderr before parsing; cargo
// splits harness output across both.
func ParseTestResults(output string) TestReport {
	report := TestReport{Outcomes: []TestOutcome{}}
	summaryFound := false

	scanner := bufio.NewScanner(strings.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()

		if m := testOutcomeRe.FindStringSubmatch(line); m != nil {
			report.Outcomes = append(report.Outcomes, TestOutcome{
				Name:   m[1],
				Status: normalizeTestStatus(m[2]),
			})
			continue
		}

		if !summaryFound {
			if m := testSummaryRe.FindStringSubmatch(line); m != nil {
				report.Summary = fmt.Sprintf("%s passed, %s failed, %s ignored", m[1], m[2], m[3])
				summaryFound = true
			}
		}
	}

	if !summaryFound {
		// Degraded summary: the authoritative result line never
		// appeared, count what was recognized.
		report.Summary = fmt.Sprintf("%d tests found", len(report.Outcomes))
	}

	return report
}

func normalizeTestStatus(token string) TestStatus {
	switch strings.ToLower(token) {
	case "ok":
		return TestPassed
	case "failed":
		return TestFailed
	default:
		return TestSkipped
	}
}
