package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"rttrim/adapters/excel"
	"rttrim/app"
	"rttrim/domain/trial"
	"rttrim/internal"
	"rttrim/internal/criterion"
	"rttrim/internal/errors"
	"rttrim/internal/trim"

	"github.com/spf13/cobra"
)

func newTrimCmd(flags *cliFlags, name string, aliases []string, short string) *cobra.Command {
	return &cobra.Command{
		Use:     name,
		Aliases: aliases,
		Short:   short,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			method, err := trial.ParseMethod(name)
			if err != nil {
				return errors.WithCode(errors.CodeInvalidInput, err)
			}
			return runTrim(cmd, flags, method)
		},
	}
}

func runTrim(cmd *cobra.Command, flags *cliFlags, method trial.Method) error {
	if flags.input == "" {
		return errors.InvalidInput("--input is required")
	}
	format := strings.ToLower(flags.format)
	if format != "table" && format != "csv" && format != "json" {
		return errors.InvalidInput(fmt.Sprintf("unknown --format %q", flags.format))
	}

	logger, err := newLogger(cmd, flags)
	if err != nil {
		return err
	}

	tables, err := criterion.LoadSet(flags.nonRecursiveTable, flags.modifiedTable)
	if err != nil {
		return errors.WithCode(errors.CodeConfigInvalid, err)
	}
	trimmer, err := trim.NewTrimmer(tables, logger)
	if err != nil {
		return err
	}

	excelConfig := excel.DefaultConfig()
	writer := excel.NewResultWriter(excelConfig, logger)
	service := app.NewTrimService(excel.NewDataReader(excelConfig, logger), writer, trimmer, logger)

	table, err := service.Run(cmd.Context(), app.TrimRequest{
		InputPath:  flags.input,
		OutputPath: flags.output,
		Method:     method,
		Options:    flags.options(),
	})
	if err != nil {
		return err
	}
	if flags.output != "" {
		return nil
	}

	out := cmd.OutOrStdout()
	switch format {
	case "csv":
		return writer.WriteCSV(out, table)
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(table)
	}
	return printTable(out, excel.TableRows(table, excelConfig.RowLabel, excelConfig.UndefinedLabel))
}

func (f *cliFlags) options() trim.Options {
	return trim.Options{
		MinRT:            f.minRT,
		ParticipantField: f.participantField,
		ConditionField:   f.conditionField,
		RTField:          f.rtField,
		AccuracyField:    f.accuracyField,
		OmitErrors:       f.omitErrors,
		Digits:           f.digits,
		Workers:          f.workers,
	}
}

func newLogger(cmd *cobra.Command, flags *cliFlags) (*internal.Logger, error) {
	level, ok := internal.ParseLogLevel(flags.logLevel)
	if !ok {
		return nil, errors.ConfigInvalid(fmt.Sprintf("unknown --log-level %q", flags.logLevel))
	}
	return internal.NewLoggerTo(cmd.ErrOrStderr(), level), nil
}

func printTable(out io.Writer, rows [][]string) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t")+"\t")
	}
	return tw.Flush()
}
