package commands

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/livp123/loglens/internal/classify"
	"github.com/livp123/loglens/internal/utils/fileutil"
)

var (
	scanShowRanges bool
	scanFilter     string
)

var scanCmd = &cobra.Command{
	Use:   "scan [file...]",
	Short: "Classify log files and print per-level counts",
	Long: `Scan walks each file (or stdin when no file is given) once, printing
how many lines were counted per severity level. Counting is exclusive: a line
matching several levels is counted only under the most severe one. With
--ranges, the per-level line ranges from non-exclusive matching are printed
as well, so a line may appear under several levels. With --filter only lines
accepted by the expression are counted; line numbers in --ranges then refer
to the filtered sequence.`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().BoolVar(&scanShowRanges, "ranges", false, "Print per-level line ranges (1-based, inclusive)")
	scanCmd.Flags().StringVar(&scanFilter, "filter", "", `Filter expression, e.g. 'Primary == "ERROR" and Line contains "db"'`)
	RootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg := manager.Get()
	cls := classify.NewClassifier(classify.NewRuleSet(cfg.Colors))
	scanner := classify.NewScanner(cls)

	filterSrc := cfg.Filter
	if scanFilter != "" {
		filterSrc = scanFilter
	}
	filter, err := classify.CompileFilter(filterSrc)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		lines, err := readStdinLines(cmd)
		if err != nil {
			return err
		}
		printScan(cmd, "", scanner.Scan(filterLines(filter, cls, "", lines)))
		return nil
	}

	for i, path := range args {
		lines, err := fileutil.ReadAllLines(path)
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Fprintln(cmd.OutOrStdout())
		}
		source := ""
		if len(args) > 1 {
			source = path
		}
		printScan(cmd, source, scanner.Scan(filterLines(filter, cls, path, lines)))
	}
	return nil
}

// filterLines drops lines the filter rejects before they are counted.
func filterLines(filter *classify.Filter, cls *classify.Classifier, source string, lines []string) []string {
	if filter == nil {
		return lines
	}
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if filter.Accept(line, source, cls.Classify(line)) {
			kept = append(kept, line)
		}
	}
	return kept
}

func readStdinLines(cmd *cobra.Command) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(cmd.InOrStdin())
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func printScan(cmd *cobra.Command, source string, res *classify.ScanResult) {
	out := cmd.OutOrStdout()
	if source != "" {
		fmt.Fprintf(out, "%s:\n", source)
	}
	for _, level := range classify.Levels {
		fmt.Fprintf(out, "%-5s %d\n", string(level), res.Counts[level])
	}
	fmt.Fprintf(out, "total %d\n", res.Total())

	if !scanShowRanges {
		return
	}
	for _, level := range classify.Levels {
		ranges := res.Ranges[level]
		if len(ranges) == 0 {
			continue
		}
		parts := make([]string, 0, len(ranges))
		for _, r := range ranges {
			if r.Start == r.End {
				parts = append(parts, fmt.Sprintf("%d", r.Start+1))
			} else {
				parts = append(parts, fmt.Sprintf("%d-%d", r.Start+1, r.End+1))
			}
		}
		fmt.Fprintf(out, "%-5s lines %s\n", string(level), strings.Join(parts, ","))
	}
}
