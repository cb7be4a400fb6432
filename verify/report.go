package verify

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/sarchlab/bfsim/config"
	"github.com/sarchlab/bfsim/optimize"
	"github.com/sarchlab/bfsim/program"
)

// VerificationReport represents a complete verification report
type VerificationReport struct {
	Name         string
	Length       int
	Stats        *optimize.Stats
	LintIssues   []Issue
	StructIssues []Issue
	ValueIssues  []Issue
	Check        CrossCheckResult
}

// GenerateReport compiles src with the optimizer, lints the result and
// cross checks it against the unoptimized program.
func GenerateReport(
	name, src string,
	input []byte,
	cfg config.RunConfig,
	maxSteps uint64,
) (*VerificationReport, error) {
	p, err := program.Compile(src, program.Options{Optimize: true})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	report := &VerificationReport{
		Name:       name,
		Length:     p.Len(),
		Stats:      p.Stats,
		LintIssues: RunLint(p.Code),
	}

	for _, issue := range report.LintIssues {
		if issue.Type == IssueStruct {
			report.StructIssues = append(report.StructIssues, issue)
		} else {
			report.ValueIssues = append(report.ValueIssues, issue)
		}
	}

	report.Check = CrossCheck(src, input, cfg, maxSteps)

	return report, nil
}

// Passed reports whether lint found nothing and the cross check agreed.
func (r *VerificationReport) Passed() bool {
	return len(r.LintIssues) == 0 && r.Check.Agree
}

// WriteReport writes a formatted report to a writer
func (r *VerificationReport) WriteReport(w io.Writer) error {
	var sb strings.Builder

	separator := strings.Repeat("=", 60)

	fmt.Fprintln(&sb, separator)
	fmt.Fprintf(&sb, "VERIFICATION REPORT: %s\n", r.Name)
	fmt.Fprintln(&sb, separator)

	if r.Stats != nil {
		fmt.Fprintln(&sb, r.Stats.Table())
	}

	fmt.Fprintln(&sb, "\nSTAGE 1: STATIC LINT CHECKS")
	if len(r.LintIssues) == 0 {
		fmt.Fprintln(&sb, "No lint issues found")
	} else {
		t := table.NewWriter()
		t.AppendHeader(table.Row{"Type", "Index", "Message"})
		for _, issue := range r.LintIssues {
			t.AppendRow(table.Row{issue.Type, issue.Index, issue.Message})
		}
		fmt.Fprintln(&sb, t.Render())
	}

	fmt.Fprintln(&sb, "\nSTAGE 2: CROSS CHECK")

	t := table.NewWriter()
	t.AppendHeader(table.Row{"Run", "Steps", "Output", "Status"})
	t.AppendRow(outcomeRow("plain", r.Check.Plain))
	t.AppendRow(outcomeRow("optimized", r.Check.Optimized))
	fmt.Fprintln(&sb, t.Render())

	fmt.Fprintln(&sb, "\n"+separator)

	switch {
	case r.Check.Inconclusive:
		fmt.Fprintf(&sb, "INCONCLUSIVE: %s\n", r.Check.Mismatch)
	case !r.Check.Agree:
		fmt.Fprintf(&sb, "MISMATCH: %s\n", r.Check.Mismatch)
	case len(r.LintIssues) > 0:
		fmt.Fprintf(&sb, "FAILED: %d lint issues (%d STRUCT, %d VALUE)\n",
			len(r.LintIssues), len(r.StructIssues), len(r.ValueIssues))
	default:
		fmt.Fprintln(&sb, "PASSED")
	}

	_, err := io.WriteString(w, sb.String())

	return err
}

func outcomeRow(name string, o Outcome) table.Row {
	status := "halted"
	if o.Err != nil {
		status = o.Err.Error()
	}

	return table.Row{name, o.Result.Steps, len(o.Output), status}
}

// SaveReportToFile saves the report to a file
func (r *VerificationReport) SaveReportToFile(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	return r.WriteReport(file)
}
