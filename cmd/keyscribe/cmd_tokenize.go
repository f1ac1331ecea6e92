package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/dshills/keyscribe/internal/renderer/highlight"
)

func newTokenizeCmd() *cobra.Command {
	var jsonOutput, summary bool

	cmd := &cobra.Command{
		Use:   "tokenize FILE",
		Short: "Print the highlight tokens of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			tokens := highlight.Tokenize(string(data))
			out := cmd.OutOrStdout()

			switch {
			case jsonOutput:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(tokens)
			case summary:
				printSummary(out, tokens)
			default:
				for _, t := range tokens {
					fmt.Fprintf(out, "%-12s %q\n", t.Kind, t.Text)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	cmd.Flags().BoolVar(&summary, "summary", false, "print token counts per kind")
	return cmd
}

func printSummary(out io.Writer, tokens []highlight.Token) {
	counts := highlight.Count(tokens)
	kinds := make([]highlight.Kind, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	for _, k := range kinds {
		fmt.Fprintf(out, "%-12s %d\n", k, counts[k])
	}
	fmt.Fprintf(out, "%-12s %d\n", "total", len(tokens))
}
