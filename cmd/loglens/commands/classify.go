package commands

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/livp123/loglens/internal/classify"
)

var (
	classifyFilter      string
	classifyPrimaryOnly bool
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify stdin lines one at a time",
	Long: `Classify reads lines from stdin and prints each line prefixed with
the levels it matched. A line may match several levels at once; the first
printed level is the primary one. Lines matching no level are printed with a
"-" prefix. With --filter only lines accepted by the expression are printed.`,
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().StringVar(&classifyFilter, "filter", "", `Filter expression, e.g. 'Primary == "ERROR" and Line contains "db"'`)
	classifyCmd.Flags().BoolVar(&classifyPrimaryOnly, "primary", false, "Print only the primary level instead of the full match set")
	RootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	cfg := manager.Get()
	cls := classify.NewClassifier(classify.NewRuleSet(cfg.Colors))

	filterSrc := cfg.Filter
	if classifyFilter != "" {
		filterSrc = classifyFilter
	}
	filter, err := classify.CompileFilter(filterSrc)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	sc := bufio.NewScanner(cmd.InOrStdin())
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		res := cls.Classify(line)
		if !filter.Accept(line, "", res) {
			continue
		}
		fmt.Fprintf(out, "%s\t%s\n", formatLevels(res), line)
	}
	return sc.Err()
}

func formatLevels(res classify.Result) string {
	if res.Primary == classify.LevelNone {
		return "-"
	}
	if classifyPrimaryOnly {
		return string(res.Primary)
	}
	names := make([]string, 0, len(res.Levels))
	for _, l := range res.Levels {
		names = append(names, string(l))
	}
	return strings.Join(names, ",")
}
