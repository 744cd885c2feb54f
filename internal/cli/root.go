// Package cli provides the Cobra-based refscan commands: scan (audit a
// database for referential-integrity violations), graph (render the schema's
// reference network), and version.
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "refscan",
	Short: "Scan a schema-governed MongoDB database for referential integrity violations",
	Long: `refscan audits a schema-governed MongoDB database for dangling references:
fields that claim to point at another document's identifier, where no such
document exists in any collection the schema permits.

The schema (a LinkML-flavored YAML file) declares which collections may
contain references to which other collections, via which fields. refscan
compiles that schema into a reference catalog, then streams every
reference-bearing document and resolves each identifier it points at.`,
	Example: `  # Generate the reference catalog and scan the database
  refscan scan --schema schema.yaml --database nmdc

  # Catalog only, no database access
  refscan scan --schema schema.yaml --no-scan

  # Render the schema's reference network as an interactive HTML page
  refscan graph --schema schema.yaml --subject class`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to config file")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
}
