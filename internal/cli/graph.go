package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/microbiomedata/refscan/internal/catalog"
	apperrors "github.com/microbiomedata/refscan/internal/errors"
	"github.com/microbiomedata/refscan/internal/graph"
	"github.com/microbiomedata/refscan/internal/progress"
	"github.com/microbiomedata/refscan/internal/schema"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Generate an interactive graph of the references described by a schema",
	Long: `Generate an interactive graph (network diagram) of the references described
by a schema. No database access is involved; the graph is a pure function of
the schema. Each node represents a collection (or a class, with --subject
class); each edge points from referrer to referee and is labeled with the
fields that can hold the reference.`,
	Example: `  refscan graph --schema schema.yaml
  refscan graph --schema schema.yaml --subject class --graph classes.html`,
	RunE: runGraph,
}

func runGraph(cmd *cobra.Command, _ []string) error {
	schemaPath, _ := cmd.Flags().GetString("schema")
	graphPath, _ := cmd.Flags().GetString("graph")
	subjectValue, _ := cmd.Flags().GetString("subject")
	verbose, _ := cmd.Flags().GetBool("verbose")

	subject, err := graph.ParseSubject(subjectValue)
	if err != nil {
		cliErr := apperrors.NewArgumentError(err.Error())
		apperrors.PrintError(cliErr)
		return cliErr
	}

	caps := progress.DetectTerminalCapabilities()
	progress.PrintSectionHeader(caps, "Reading schema")

	if verbose {
		fmt.Printf("Schema YAML file: %s\n", schemaPath)
	}
	view, err := schema.LoadView(schemaPath)
	if err != nil {
		cliErr := apperrors.SchemaLoadError(schemaPath, err)
		apperrors.PrintError(cliErr)
		return cliErr
	}
	fmt.Printf("Schema version: %s\n", view.SchemaVersion())

	progress.PrintSectionHeader(caps, "Identifying references")

	fmt.Printf("Collections described by schema: %d\n", len(view.CollectionNames()))
	cat, err := catalog.Build(view)
	if err != nil {
		cliErr := apperrors.NewSchemaError(err.Error())
		apperrors.PrintError(cliErr)
		return cliErr
	}
	fmt.Printf("References described by schema: %d\n", cat.Len())

	progress.PrintSectionHeader(caps, "Generating graph")

	nodes, edges := graph.NodeCount(cat.References(), subject)
	fmt.Printf("Nodes: %d\n", nodes)
	fmt.Printf("Edges: %d\n", edges)
	fmt.Println()

	html, err := graph.Render(cat.References(), subject, view.IsClassAbstract, graph.Metadata{
		AppVersion:    Version,
		SchemaVersion: view.SchemaVersion(),
	})
	if err != nil {
		cliErr := apperrors.NewRuntimeError(err.Error())
		apperrors.PrintError(cliErr)
		return cliErr
	}
	if err := os.WriteFile(graphPath, []byte(html), 0o644); err != nil {
		cliErr := apperrors.NewRuntimeError(fmt.Sprintf("writing graph file: %v", err))
		apperrors.PrintError(cliErr)
		return cliErr
	}

	fmt.Printf("Graph generated at: %s\n", graphPath)
	fmt.Println()
	return nil
}

func init() {
	graphCmd.Flags().String("schema", "", "Filesystem path of the YAML file representing the schema")
	graphCmd.Flags().String("graph", "graph.html", "Filesystem path at which to write the graph")
	graphCmd.Flags().String("subject", string(graph.SubjectCollection),
		"Whether each node represents a collection or a class")
	_ = graphCmd.MarkFlagRequired("schema")
	rootCmd.AddCommand(graphCmd)
}
