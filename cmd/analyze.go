package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/caseforge/caseforge/internal/analyzer"
	"github.com/caseforge/caseforge/internal/logging"
	"github.com/caseforge/caseforge/pkg/output"
)

var (
	analyzeTop          int
	analyzeGapThreshold time.Duration
	analyzeJSON         bool
	analyzeShowFindings int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <log.csv>",
	Short: "Analyze an event log for inefficiency patterns",
	Long: `Read an event log back and report case statistics plus detected
inefficiencies: self-loops, returns to a previous stage, backward steps,
abnormally long gaps, error outcomes, and incomplete cases.

The log must carry case_id, timestamp, activity and result columns; a
resource column is accepted. Use this to verify what a generated fixture
actually contains.

Examples:
  caseforge analyze generated_log.csv
  caseforge analyze generated_log.csv --json
  caseforge analyze generated_log.csv --gap-threshold 1h --top 10`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().IntVar(&analyzeTop, "top", 5, "number of most frequent activities to report")
	analyzeCmd.Flags().DurationVar(&analyzeGapThreshold, "gap-threshold", 0, "flag gaps longer than this (0 uses the IQR outlier rule)")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "emit the report as JSON")
	analyzeCmd.Flags().IntVar(&analyzeShowFindings, "findings", 3, "findings to print per detection (0 hides them)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cases, err := analyzer.ReadLog(args[0])
	if err != nil {
		return fmt.Errorf("failed to read log: %w", err)
	}

	a := &analyzer.Analyzer{Top: analyzeTop, GapThreshold: analyzeGapThreshold}
	report := a.Analyze(cases)

	log.Info("log analyzed",
		logging.Input(args[0]),
		logging.Cases(report.TotalCases),
		logging.Events(report.TotalEvents),
		"report_id", report.ReportID)

	if analyzeJSON {
		if err := output.JSON(report); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		return nil
	}

	renderReport(report)
	return nil
}

func renderReport(report *analyzer.Report) {
	output.Header("Log summary")
	fmt.Printf("  Cases:  %d\n", report.TotalCases)
	fmt.Printf("  Events: %d\n", report.TotalEvents)
	fmt.Printf("  Case duration: avg %s, median %s\n",
		seconds(report.AvgCaseSeconds), seconds(report.MedianCaseSeconds))

	if len(report.TopActivities) > 0 {
		output.Header("\nMost frequent activities")
		tbl := output.NewTable("activity", "count")
		for _, ac := range report.TopActivities {
			tbl.AddRow(ac.Activity, strconv.Itoa(ac.Count))
		}
		tbl.Render()
	}

	output.Header("\nDetections")
	for _, d := range report.Detections {
		if d.Count == 0 {
			output.Success("%s: none", d.Name)
			continue
		}
		output.Warn("%s: %d", d.Name, d.Count)
		if analyzeShowFindings <= 0 {
			continue
		}
		for i, f := range d.Findings {
			if i >= analyzeShowFindings {
				fmt.Printf("      … %d more\n", d.Count-analyzeShowFindings)
				break
			}
			fmt.Printf("      %s: %s\n", f.CaseID, f.Detail)
		}
	}
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second)).Round(time.Second)
}
