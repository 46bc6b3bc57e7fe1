package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/brfiscal/spedsim/internal/api"
	"github.com/brfiscal/spedsim/internal/config"
	"github.com/brfiscal/spedsim/internal/extract"
	"github.com/brfiscal/spedsim/internal/output"
	"github.com/brfiscal/spedsim/internal/simulation"
	"github.com/brfiscal/spedsim/internal/sped"
	"github.com/brfiscal/spedsim/internal/validation"
)

// simpleCLILogger implements simulation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "spedsim %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Path)
			}
		},
	}
}

var rootCmd = &cobra.Command{
	Use:   "spedsim",
	Short: "SPED fiscal analysis and IVA transition simulator",
	Long:  "Parses SPED EFD files, scores fiscal data quality and simulates the working-capital impact of the Brazilian IVA transition with mitigation strategy optimization",
}

// readSpedFile runs the parse pipeline on one file.
func readSpedFile(path string) (*extract.ExtractedFiscalData, sped.DocumentKind, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, sped.KindUnknown, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	records := sped.Tokenize(string(content))
	kind := sped.Classify(records)
	if kind == sped.KindUnknown {
		return nil, kind, fmt.Errorf("unrecognized document layout in %s", path)
	}

	doc := sped.Index(records)
	return extract.Extract(doc, kind), kind, nil
}

var parseCmd = &cobra.Command{
	Use:   "parse [sped-file]",
	Short: "Parse a SPED file and print its structure",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		content, err := os.ReadFile(args[0])
		if err != nil {
			log.Fatal(err)
		}

		records := sped.Tokenize(string(content))
		kind := sped.Classify(records)
		doc := sped.Index(records)

		fmt.Printf("File:    %s\n", args[0])
		fmt.Printf("Kind:    %s\n", kind)
		fmt.Printf("Company: %s (%s)\n", doc.Header.LegalName, doc.Header.CNPJ)
		fmt.Printf("Period:  %s to %s\n", doc.Header.PeriodStart, doc.Header.PeriodEnd)
		fmt.Printf("Records: %d\n", len(records))
		for block, blockRecords := range doc.Blocks {
			fmt.Printf("  block %s: %d records\n", block, len(blockRecords))
		}
	},
}

var extractCmd = &cobra.Command{
	Use:   "extract [sped-file...]",
	Short: "Extract fiscal figures from one or two SPED files",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		var datasets []*extract.ExtractedFiscalData
		for _, path := range args {
			data, kind, err := readSpedFile(path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
				continue
			}
			fmt.Fprintf(os.Stderr, "%s: %s document for %s\n", path, kind, data.Company.Name)
			datasets = append(datasets, data)
		}
		if len(datasets) == 0 {
			log.Fatal("no file could be extracted")
		}

		printJSON(extract.Consolidate(datasets...))
	},
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(data))
}

var validateCmd = &cobra.Command{
	Use:   "validate [sped-file...]",
	Short: "Score the quality of the fiscal data in one or two SPED files",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		var datasets []*extract.ExtractedFiscalData
		for _, path := range args {
			data, _, err := readSpedFile(path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
				continue
			}
			datasets = append(datasets, data)
		}
		if len(datasets) == 0 {
			log.Fatal("no file could be extracted")
		}

		nested := extract.Consolidate(datasets...)
		report := output.NewAnalysisReport()
		report.SourceFile = args[0]
		report.Validation = validation.Validate(nested)

		writeReport(cmd, report)
	},
}

var simulateCmd = &cobra.Command{
	Use:   "simulate [input-file]",
	Short: "Project the IVA transition impact over the phase-in years",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		parser := config.NewInputParser()
		input, err := parser.LoadFromFile(args[0])
		if err != nil {
			log.Fatal(err)
		}

		model := simulation.NewDualSystemModel()
		if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
			model.SetLogger(simpleCLILogger{})
		}

		report := output.NewAnalysisReport()
		report.SourceFile = args[0]
		report.Company = &input.Company
		report.Projection = simulation.Project(model, input.Company, input.StartYear, input.Years, input.Sector)

		// Mitigation against the deepest projected gap.
		if len(input.Strategies.ActiveStrategies()) > 0 {
			session := simulation.NewSession(model)
			session.RunBaseline(input.Company, input.StartYear+input.Years-1, input.Sector)
			outcome, err := session.RunMitigation(input.Company, input.Strategies)
			if err != nil {
				log.Fatal(err)
			}
			report.Mitigation = outcome
		}

		writeReport(cmd, report)
	},
}

var optimizeCmd = &cobra.Command{
	Use:   "optimize [input-file]",
	Short: "Search for the cost-optimal mitigation strategy combination",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		parser := config.NewInputParser()
		input, err := parser.LoadFromFile(args[0])
		if err != nil {
			log.Fatal(err)
		}

		year, _ := cmd.Flags().GetInt("year")

		session := simulation.NewSession(simulation.NewDualSystemModel())
		if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
			session.SetLogger(simpleCLILogger{})
		}
		session.RunBaseline(input.Company, year, input.Sector)

		outcome, err := session.RunMitigation(input.Company, input.Strategies)
		if err != nil {
			log.Fatal(err)
		}
		if outcome.Empty {
			fmt.Println("No mitigation strategy activated in the input file.")
			return
		}

		format, _ := cmd.Flags().GetString("format")
		if format == "csv" {
			csvFormatter := &output.CSVFormatter{}
			out, err := csvFormatter.FormatRanking(outcome.Result)
			if err != nil {
				log.Fatal(err)
			}
			fmt.Print(out)
			return
		}

		report := output.NewAnalysisReport()
		report.SourceFile = args[0]
		report.Company = &input.Company
		report.Mitigation = outcome
		writeReport(cmd, report)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP analysis API",
	Run: func(cmd *cobra.Command, args []string) {
		addr, _ := cmd.Flags().GetString("addr")
		devMode, _ := cmd.Flags().GetBool("dev")

		server := api.NewServer(devMode)
		fmt.Printf("Listening on %s\n", addr)
		if err := server.Run(addr); err != nil {
			log.Fatal(err)
		}
	},
}

// writeReport renders a report in the format selected by --format.
func writeReport(cmd *cobra.Command, report *output.AnalysisReport) {
	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "json":
		formatter := &output.JSONFormatter{Pretty: true}
		out, err := formatter.Format(report)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(out)
	case "csv":
		formatter := &output.CSVFormatter{}
		out, err := formatter.FormatProjection(report.Projection)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Print(out)
	default:
		formatter := &output.TableFormatter{}
		fmt.Print(formatter.Format(report))
	}
}

func init() {
	for _, cmd := range []*cobra.Command{validateCmd, simulateCmd, optimizeCmd} {
		cmd.Flags().StringP("format", "f", "table", "Output format: table, json, csv")
	}
	simulateCmd.Flags().Bool("debug", false, "Enable debug logging")
	optimizeCmd.Flags().Bool("debug", false, "Enable debug logging")
	optimizeCmd.Flags().IntP("year", "y", 2033, "Simulation year for the baseline impact")
	serveCmd.Flags().String("addr", ":8080", "Listen address")
	serveCmd.Flags().Bool("dev", false, "Development mode (verbose gin output)")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
