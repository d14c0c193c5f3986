package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"rttrim/internal/config"
	"rttrim/internal/errors"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := newRootCmd(appConfig, os.Stdout, os.Stderr)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "rttrim: %v [%s]\n", err, errors.GetCode(err))
		stop()
		os.Exit(1)
	}
}

// cliFlags holds the persistent flags shared by every subcommand
type cliFlags struct {
	input  string
	output string
	format string

	minRT      float64
	digits     int
	omitErrors bool
	workers    int

	participantField string
	conditionField   string
	rtField          string
	accuracyField    string

	nonRecursiveTable string
	modifiedTable     string

	logLevel string
}

func newRootCmd(cfg *config.Config, stdout, stderr io.Writer) *cobra.Command {
	flags := &cliFlags{}

	rootCmd := &cobra.Command{
		Use:   "rttrim",
		Short: "Trim reaction-time outliers with Van Selst & Jolicoeur moving criteria",
		Long: `rttrim computes trimmed mean reaction times per participant × condition.

Input is a CSV or XLSX file with one trial per row. Results are written to
--output (.csv or .xlsx) or printed to stdout. Cells with no surviving trials
are reported as NA.

Example: rttrim hybrid --input trials.csv --min-rt 150 --output means.xlsx`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.input, "input", "i", "", "Trial file (.csv or .xlsx)")
	pf.StringVarP(&flags.output, "output", "o", "", "Result file (.csv or .xlsx); stdout when empty")
	pf.StringVar(&flags.format, "format", "table", "Stdout format: table, csv or json")
	pf.Float64Var(&flags.minRT, "min-rt", cfg.Trim.MinRT, "Drop trials with rt at or below this value")
	pf.IntVar(&flags.digits, "digits", cfg.Trim.Digits, "Decimals kept in the result table")
	pf.BoolVar(&flags.omitErrors, "omit-errors", cfg.Trim.OmitErrors, "Drop trials whose accuracy is not 1")
	pf.IntVar(&flags.workers, "workers", cfg.Trim.Workers, "Cells computed concurrently")
	pf.StringVar(&flags.participantField, "participant-field", cfg.Trim.ParticipantField, "Participant column")
	pf.StringVar(&flags.conditionField, "condition-field", cfg.Trim.ConditionField, "Condition column")
	pf.StringVar(&flags.rtField, "rt-field", cfg.Trim.RTField, "Reaction time column")
	pf.StringVar(&flags.accuracyField, "accuracy-field", cfg.Trim.AccuracyField, "Accuracy column (1 = correct)")
	pf.StringVar(&flags.nonRecursiveTable, "nonrecursive-table", cfg.Criterion.NonRecursiveTable, "CSV of sample size,multiplier overriding the non-recursive table")
	pf.StringVar(&flags.modifiedTable, "modified-table", cfg.Criterion.ModifiedRecursiveTable, "CSV of sample size,multiplier overriding the modified-recursive table")
	pf.StringVar(&flags.logLevel, "log-level", cfg.Log.Level.String(), "ERROR, WARN, INFO, DEBUG or TRACE")

	rootCmd.AddCommand(
		newTrimCmd(flags, "nonrecursive", []string{"nonRecursive", "nr"}, "Non-recursive trimming with a moving criterion"),
		newTrimCmd(flags, "modified", []string{"modifiedRecursive", "mr"}, "Modified-recursive trimming"),
		newTrimCmd(flags, "hybrid", []string{"hybridRecursive", "hr"}, "Mean of non-recursive and modified-recursive trimming"),
		newTableCmd(flags),
	)

	return rootCmd
}
