package library

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"s2x/cmd/s2x/cmd/cli"
)

var asJSON bool

func init() {
	listCmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	Cmd.AddCommand(listCmd, useCmd)
}

// Cmd represents the library command
var Cmd = &cobra.Command{
	Use:   "library",
	Short: "Browse and select sample audio from the manifest",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the audio samples the manifest offers",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := cli.Open(cmd.Context(), nil)
		if err != nil {
			return err
		}
		defer a.Close()

		result := a.Library.Load(cmd.Context())
		if asJSON {
			return cli.PrintJSON(cmd.OutOrStdout(), result)
		}

		out := cmd.OutOrStdout()
		if result.Fallback() {
			fmt.Fprintf(out, "%s\n\n", result.Diagnostic)
		}
		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tTITLE\tHINT")
		for _, item := range result.Items {
			fmt.Fprintf(w, "%s\t%s\t%s\n", item.Name, item.DisplayTitle(), item.Hint)
		}
		return w.Flush()
	},
}

var useCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Select a sample as the audio for the next transcription",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := cli.Open(ctx, nil)
		if err != nil {
			return err
		}
		defer a.Close()

		name := args[0]
		if _, ok := a.Library.Load(ctx).Find(name); !ok {
			a.Logger.Warn("sample not in manifest, selecting it anyway", zap.String("name", name))
		}

		a.Preferences.AudioURL = a.Library.AudioURL(name)
		a.Preferences.Tab = "transcribe"
		if err := a.SavePreferences(ctx); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "selected %s\n", a.Preferences.AudioURL)
		return nil
	},
}
