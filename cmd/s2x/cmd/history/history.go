package history

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"s2x/cmd/s2x/cmd/cli"
	"s2x/internal/app/export"
)

var (
	asJSON         bool
	outputFilePath string
)

func init() {
	listCmd.Flags().BoolVar(&asJSON, "json", false, "print entries as JSON")
	exportCmd.Flags().StringVarP(&outputFilePath, "outputFilePath", "o", "", "xlsx file to write")
	exportCmd.MarkFlagRequired("outputFilePath")

	Cmd.AddCommand(listCmd, clearCmd, exportCmd)
}

// Cmd represents the history command
var Cmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect the local ledger of successful transcriptions",
	Long: `Inspect the local ledger of successful transcriptions

- Holds the 50 most recent successful jobs, newest first
- Stored in sqlite by default; postgres, redis or memory via config`,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List history entries, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := cli.Open(cmd.Context(), nil)
		if err != nil {
			return err
		}
		defer a.Close()

		entries, err := a.Store.List(cmd.Context())
		if err != nil {
			return err
		}
		if asJSON {
			return cli.PrintJSON(cmd.OutOrStdout(), entries)
		}
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "history is empty")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "DATE\tJOB\tLANG\tTEXT")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				e.CreatedAt.Local().Format("2006-01-02 15:04"), e.ID, e.Language, e.Excerpt(60))
		}
		return w.Flush()
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every history entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := cli.Open(cmd.Context(), nil)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Store.Clear(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "history cleared")
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the history to excel",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := cli.Open(cmd.Context(), nil)
		if err != nil {
			return err
		}
		defer a.Close()

		entries, err := a.Store.List(cmd.Context())
		if err != nil {
			return err
		}
		if err := export.ToExcel(entries, outputFilePath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "export finished, exported file path: %v\n", outputFilePath)
		return nil
	},
}
