package main

import (
	"fmt"
	"strconv"

	"rttrim/internal/criterion"
	"rttrim/internal/errors"

	"github.com/spf13/cobra"
)

func newTableCmd(flags *cliFlags) *cobra.Command {
	var maxN int

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the SD multiplier for each sample size",
		Long: `Print the criterion multipliers used by both procedures, after any
--nonrecursive-table / --modified-table overrides are applied.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if maxN < 1 || maxN > criterion.MaxSampleSize {
				return errors.InvalidInput(fmt.Sprintf("--max must be in 1..%d", criterion.MaxSampleSize))
			}
			tables, err := criterion.LoadSet(flags.nonRecursiveTable, flags.modifiedTable)
			if err != nil {
				return errors.WithCode(errors.CodeConfigInvalid, err)
			}

			nr := tables.NonRecursive.Multipliers()
			mr := tables.ModifiedRecursive.Multipliers()
			rows := [][]string{{"n", tables.NonRecursive.Name(), tables.ModifiedRecursive.Name()}}
			for n := 1; n <= maxN; n++ {
				rows = append(rows, []string{
					strconv.Itoa(n),
					strconv.FormatFloat(nr[n-1], 'f', 4, 64),
					strconv.FormatFloat(mr[n-1], 'f', 4, 64),
				})
			}
			return printTable(cmd.OutOrStdout(), rows)
		},
	}

	cmd.Flags().IntVar(&maxN, "max", criterion.MaxSampleSize, "Largest sample size to print")
	return cmd
}
