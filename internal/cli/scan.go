package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/microbiomedata/refscan/internal/catalog"
	"github.com/microbiomedata/refscan/internal/config"
	apperrors "github.com/microbiomedata/refscan/internal/errors"
	"github.com/microbiomedata/refscan/internal/progress"
	"github.com/microbiomedata/refscan/internal/report"
	"github.com/microbiomedata/refscan/internal/scanner"
	"github.com/microbiomedata/refscan/internal/schema"
	"github.com/microbiomedata/refscan/internal/store"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the database for referential integrity violations",
	Long: `Scan the database for referential integrity violations.

The command first compiles the schema into a reference catalog and writes it
as a TSV report (this needs no database access). It then connects to MongoDB,
streams every reference-bearing document from every schema-described
collection, resolves each referenced identifier against the collections the
schema permits, and writes every unresolvable reference to the violation
report.`,
	Example: `  # Scan the default database at the default URI
  refscan scan --schema schema.yaml

  # Skip noisy collections and also locate misplaced documents
  refscan scan --schema schema.yaml --skip functional_annotation_agg --locate-misplaced-documents

  # Catalog only
  refscan scan --schema schema.yaml --no-scan`,
	RunE: runScan,
}

func runScan(cmd *cobra.Command, _ []string) error {
	schemaPath, _ := cmd.Flags().GetString("schema")
	databaseName, _ := cmd.Flags().GetString("database")
	mongoURI, _ := cmd.Flags().GetString("mongo-uri")
	skipCollections, _ := cmd.Flags().GetStringArray("skip-source-collection")
	referenceReportPath, _ := cmd.Flags().GetString("reference-report")
	violationReportPath, _ := cmd.Flags().GetString("violation-report")
	skipScan, _ := cmd.Flags().GetBool("no-scan")
	locateMisplaced, _ := cmd.Flags().GetBool("locate-misplaced-documents")
	configPath, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")

	cfg, err := config.Load(configPath)
	if err != nil {
		cliErr := apperrors.ConfigParseError(configPath, err)
		apperrors.PrintError(cliErr)
		return cliErr
	}
	if cmd.Flags().Changed("schema") {
		cfg.SchemaPath = schemaPath
	}
	if cmd.Flags().Changed("database") {
		cfg.DatabaseName = databaseName
	}
	if cmd.Flags().Changed("mongo-uri") {
		cfg.MongoURI = mongoURI
	}
	if cmd.Flags().Changed("reference-report") {
		cfg.ReferenceReportPath = referenceReportPath
	}
	if cmd.Flags().Changed("violation-report") {
		cfg.ViolationReportPath = violationReportPath
	}
	if cfg.SchemaPath == "" {
		cliErr := apperrors.NewArgumentError("no schema file specified",
			"pass --schema or set schema_path in the config file")
		apperrors.PrintError(cliErr)
		return cliErr
	}

	caps := progress.DetectTerminalCapabilities()

	if verbose {
		fmt.Printf("Schema YAML file: %s\n", cfg.SchemaPath)
	}
	view, err := schema.LoadView(cfg.SchemaPath)
	if err != nil {
		cliErr := apperrors.SchemaLoadError(cfg.SchemaPath, err)
		apperrors.PrintError(cliErr)
		return cliErr
	}
	fmt.Printf("refscan version: %s\n", Version)
	fmt.Printf("Schema version: %s\n", view.SchemaVersion())

	progress.PrintSectionHeader(caps, "Identifying references")

	collectionNames := view.CollectionNames()
	fmt.Printf("Collections described by schema: %d\n", len(collectionNames))

	cat, err := catalog.Build(view)
	if err != nil {
		cliErr := apperrors.NewSchemaError(err.Error(),
			"check that every slot range the schema names is a defined class or type")
		apperrors.PrintError(cliErr)
		return cliErr
	}
	fmt.Printf("References described by schema: %d\n", cat.Len())
	fmt.Printf("Collections containing references: %d\n", cat.CountSourceCollections())
	fmt.Println()

	fmt.Printf("Writing reference report: %s\n", cfg.ReferenceReportPath)
	if err := report.WriteReferencesFile(cfg.ReferenceReportPath, cat.References()); err != nil {
		cliErr := apperrors.NewRuntimeError(err.Error())
		apperrors.PrintError(cliErr)
		return cliErr
	}

	if skipScan {
		fmt.Println()
		fmt.Println("Skipping scan and exiting.")
		fmt.Println()
		return nil
	}

	progress.PrintSectionHeader(caps, "Scanning for violations")

	ctx := cmd.Context()
	connectTimeout := time.Duration(cfg.ConnectTimeoutSeconds) * time.Second
	connecting := progress.StartPhase(caps, fmt.Sprintf("Connecting to %s", cfg.MongoURI))
	db, err := store.Connect(ctx, cfg.MongoURI, cfg.DatabaseName, connectTimeout)
	connecting.Stop()
	if err != nil {
		cliErr := apperrors.ConnectionError(cfg.MongoURI, err)
		apperrors.PrintError(cliErr)
		return cliErr
	}
	defer db.Close(context.Background())

	var observer scanner.Observer = progress.NewScanDisplay(caps)
	if !cfg.ShowProgress {
		observer = scanner.NopObserver{}
	}
	result, err := scanner.New(db, view, cat).Scan(ctx, scanner.Options{
		SkipCollections:          skipCollections,
		LocateMisplacedDocuments: locateMisplaced,
		Observer:                 observer,
	})
	if err != nil {
		cliErr := apperrors.NewDataError(err.Error(),
			"fix the offending documents before re-running the scan")
		apperrors.PrintError(cliErr)
		return cliErr
	}

	progress.PrintSectionHeader(caps, "Summarizing results")
	summarize(result)

	fmt.Printf("Writing violation report: %s\n", cfg.ViolationReportPath)
	includeLastColumn := !cfg.OmitMisplacedColumn
	if err := report.WriteViolationsFile(cfg.ViolationReportPath, result.AllViolations(), includeLastColumn); err != nil {
		cliErr := apperrors.NewRuntimeError(err.Error())
		apperrors.PrintError(cliErr)
		return cliErr
	}
	fmt.Println()
	return nil
}

// summarize prints per-collection and grand-total violation counts, red when
// nonzero.
func summarize(result *scanner.Result) {
	names := make([]string, 0, len(result.ViolationsByCollection))
	for name := range result.ViolationsByCollection {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})
	for _, name := range names {
		count := len(result.ViolationsByCollection[name])
		label := fmt.Sprintf("%d", count)
		if count > 0 {
			label = color.RedString(label)
		}
		fmt.Printf("Number of violations in %s: %s\n", name, label)
	}

	total := result.TotalViolations()
	totalLabel := fmt.Sprintf("%d", total)
	if total > 0 {
		totalLabel = color.RedString(totalLabel)
	}
	fmt.Println()
	fmt.Printf("Total violations: %s\n", totalLabel)
	fmt.Println()
}

func init() {
	scanCmd.Flags().String("schema", "", "Filesystem path of the YAML file representing the schema")
	scanCmd.Flags().String("database", "nmdc", "Name of the database")
	scanCmd.Flags().String("mongo-uri", "mongodb://localhost:27017",
		"Connection string for the MongoDB server (env: REFSCAN_MONGO_URI)")
	scanCmd.Flags().StringArray("skip-source-collection", nil,
		"Name of a collection to not search for referring documents (repeatable)")
	scanCmd.Flags().String("reference-report", "references.tsv",
		"Filesystem path at which to write the reference report")
	scanCmd.Flags().String("violation-report", "violations.tsv",
		"Filesystem path at which to write the violation report")
	scanCmd.Flags().Bool("no-scan", false,
		"Generate a reference report, but do not scan the database for violations")
	scanCmd.Flags().Bool("locate-misplaced-documents", false,
		"For each referenced document not found in any of the collections the schema allows, also search all other collections")
	scanCmd.Flags().SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		if name == "skip" {
			name = "skip-source-collection"
		}
		return pflag.NormalizedName(name)
	})
	rootCmd.AddCommand(scanCmd)
}
