package main

import (
	"fmt"
	"os"

	"github.com/akashch1512/Prep-Tester/database"
	"github.com/akashch1512/Prep-Tester/importer"
	"github.com/spf13/cobra"
)

var updateExisting bool

var rootCmd = &cobra.Command{
	Use:   "prepctl",
	Short: "Operator tooling for the Prep Tester backend",
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Bulk-import branches, subjects, tests and questions from a nested JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}

		doc, err := importer.Parse(data)
		if err != nil {
			return err
		}

		database.ConnectDB()
		database.Migrate()

		summary, err := importer.Run(database.DB, doc, updateExisting)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		fmt.Printf("Import completed: %s\n", summary)
		return nil
	},
}

func init() {
	importCmd.Flags().BoolVar(&updateExisting, "update-existing", false,
		"overwrite questions that already exist instead of skipping them")
	rootCmd.AddCommand(importCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
