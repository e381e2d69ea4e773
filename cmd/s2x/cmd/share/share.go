package share

import (
	"fmt"

	"github.com/spf13/cobra"

	"s2x/cmd/s2x/cmd/cli"
	"s2x/internal/app/jobs"
)

var asJSON bool

func init() {
	Cmd.PersistentFlags().BoolVar(&asJSON, "json", false, "print the share as JSON")
	Cmd.AddCommand(resolveCmd)
}

// Cmd represents the share command
var Cmd = &cobra.Command{
	Use:   "share [job-id]",
	Short: "Create a public share link for a finished job",
	Long: `Create a public share link for a finished job

- Without a job id the most recent history entry is shared
- Links never expire and are read-only`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := cli.Open(ctx, nil)
		if err != nil {
			return err
		}
		defer a.Close()

		jobID := ""
		if len(args) == 1 {
			jobID = args[0]
		} else {
			entries, err := a.Store.List(ctx)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				return fmt.Errorf("history is empty; pass a job id")
			}
			jobID = entries[0].ID
		}

		req, err := jobs.NewShareRequest(jobID, a.UserID())
		if err != nil {
			return err
		}
		share, err := a.Remote.CreateShare(ctx, req)
		if err != nil {
			return fmt.Errorf("create share: %w", err)
		}

		link := a.ShareLink(share.Token)
		if asJSON {
			return cli.PrintJSON(cmd.OutOrStdout(), map[string]any{"share": share, "link": link})
		}
		fmt.Fprintln(cmd.OutOrStdout(), link)
		return nil
	},
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <token>",
	Short: "Look up the job behind a share token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := cli.Open(cmd.Context(), nil)
		if err != nil {
			return err
		}
		defer a.Close()

		share, err := a.Remote.ResolveShare(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("resolve share: %w", err)
		}
		if asJSON {
			return cli.PrintJSON(cmd.OutOrStdout(), share)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "job:  %s\nkind: %s\n", share.TranscriptionID, share.Kind)
		return nil
	},
}
