package main

import (
	"brevet-times-service/internal/api/dto"
	"brevet-times-service/internal/config"
	"brevet-times-service/internal/domain"
	"brevet-times-service/internal/services"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const appVersion = "0.1.0"

type options struct {
	brevetKm  int
	start     string
	timezone  string
	miles     bool
	tolerance float64
	asJSON    bool
}

func main() {
	_ = godotenv.Load()

	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command. TIMEZONE and FINISH_TOLERANCE from the
// environment (or .env) replace the flag defaults, as they do for the server.
func newRootCmd(out io.Writer) *cobra.Command {
	opts := options{}

	tolerance := services.DefaultFinishTolerance
	var envErr error
	if raw := config.Get("FINISH_TOLERANCE", ""); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			envErr = fmt.Errorf("FINISH_TOLERANCE %q must be a non-negative number", raw)
		} else {
			tolerance = v
		}
	}

	cmd := &cobra.Command{
		Use:          "acpcalc [flags] DISTANCE...",
		Short:        "Print ACP control open and close times for a brevet",
		Version:      appVersion,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if envErr != nil && !cmd.Flags().Changed("finish-tolerance") {
				return envErr
			}
			return runSheet(cmd.Context(), out, opts, args)
		},
	}
	cmd.SetOut(out)

	f := cmd.Flags()
	f.IntVarP(&opts.brevetKm, "brevet", "b", 200, fmt.Sprintf("brevet distance in km %v", domain.SanctionedDistances()))
	f.StringVarP(&opts.start, "start", "s", "", "start time (RFC3339 or 2006-01-02T15:04)")
	f.StringVar(&opts.timezone, "tz", config.Get("TIMEZONE", "UTC"), "zone for start times without an offset")
	f.BoolVar(&opts.miles, "miles", false, "distances are given in miles")
	f.Float64Var(&opts.tolerance, "finish-tolerance", tolerance, "fraction of the brevet distance a final control may exceed it")
	f.BoolVar(&opts.asJSON, "json", false, "print JSON instead of a table")
	_ = cmd.MarkFlagRequired("start")

	cmd.AddCommand(newLimitsCmd(out))

	return cmd
}

func runSheet(ctx context.Context, out io.Writer, opts options, args []string) error {
	loc, err := time.LoadLocation(opts.timezone)
	if err != nil {
		return fmt.Errorf("timezone %q: %w", opts.timezone, err)
	}

	start, err := services.ParseStartTime(opts.start, loc)
	if err != nil {
		return err
	}

	inputs := make([]services.ControlInput, 0, len(args))
	for _, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return fmt.Errorf("distance %q is not a number", a)
		}
		if opts.miles {
			inputs = append(inputs, services.ControlInput{Miles: &v})
		} else {
			inputs = append(inputs, services.ControlInput{Km: &v})
		}
	}

	calc := services.Calculator{FinishTolerance: opts.tolerance}
	sheet, err := services.BuildControlSheet(ctx, calc, services.BrevetSheetRequest{
		BrevetKm:  opts.brevetKm,
		StartTime: start,
		Controls:  inputs,
	})
	if err != nil {
		return err
	}

	if opts.asJSON {
		rows := make([]dto.ControlRow, 0, len(sheet))
		for _, c := range sheet {
			rows = append(rows, dto.ControlRow{
				Index:     c.Index,
				Miles:     c.Miles,
				Km:        c.Km,
				OpenTime:  c.OpenTime,
				CloseTime: c.CloseTime,
			})
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tMILES\tKM\tOPEN\tCLOSE")
	for _, c := range sheet {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", c.Index, c.Miles, c.Km, c.OpenTime, c.CloseTime)
	}
	return tw.Flush()
}

func newLimitsCmd(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "limits",
		Short: "Print the speed brackets and overall time limits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "FROM KM\tTO KM\tMIN KPH\tMAX KPH")
			for _, b := range domain.SpeedBrackets() {
				fmt.Fprintf(tw, "%g\t%g\t%g\t%g\n", b.LowerKm, b.UpperKm, b.MinKph, b.MaxKph)
			}
			fmt.Fprintln(tw)
			fmt.Fprintln(tw, "BREVET KM\tLIMIT HOURS")
			for _, l := range domain.OverallLimits() {
				fmt.Fprintf(tw, "%d\t%g\n", l.BrevetKm, l.MaxHours)
			}
			return tw.Flush()
		},
	}
}
