package artifacts

import (
	"context"
	"fmt"
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"s2x/cmd/s2x/cmd/cli"
	"s2x/internal/app"
	"s2x/internal/app/model"
)

var (
	kind           string
	outputFilePath string
)

func init() {
	downloadCmd.Flags().StringVarP(&kind, "kind", "k", "srt", "artifact kind: srt or vtt")
	downloadCmd.Flags().StringVarP(&outputFilePath, "outputFilePath", "o", "", "file to write (default <job-id>.<kind>)")
	Cmd.AddCommand(downloadCmd)
}

// Cmd represents the artifacts command
var Cmd = &cobra.Command{
	Use:   "artifacts",
	Short: "Work with subtitle files produced by finished jobs",
}

var downloadCmd = &cobra.Command{
	Use:   "download <job-id>",
	Short: "Download the SRT or VTT file of a finished job",
	Long: `Download the SRT or VTT file of a finished job

- The artifact URL is taken from the local history when the job is there
- Otherwise the job is fetched from the service`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if kind != "srt" && kind != "vtt" {
			return fmt.Errorf("unknown artifact kind %q, want srt or vtt", kind)
		}

		ctx := cmd.Context()
		a, err := cli.Open(ctx, nil)
		if err != nil {
			return err
		}
		defer a.Close()

		jobID := args[0]
		artifactURL, err := resolve(ctx, a, jobID, kind)
		if err != nil {
			return err
		}

		path := outputFilePath
		if path == "" {
			path = jobID + "." + kind
		}
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		n, err := a.Remote.Download(ctx, artifactURL, f)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(path)
			return fmt.Errorf("download %s: %w", kind, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", path, n)
		return nil
	},
}

func resolve(ctx context.Context, a *app.App, jobID, kind string) (string, error) {
	entries, err := a.Store.List(ctx)
	if err != nil {
		return "", err
	}
	if entry, ok := lo.Find(entries, func(e model.HistoryEntry) bool { return e.ID == jobID }); ok {
		if u, ok := entry.Artifacts[kind]; ok && u != "" {
			return u, nil
		}
	}

	job, err := a.Remote.GetTranscription(ctx, jobID)
	if err != nil {
		return "", fmt.Errorf("fetch job %s: %w", jobID, err)
	}
	if !job.Succeeded() {
		return "", fmt.Errorf("job %s has status %s, artifacts exist only for succeeded jobs", jobID, job.Status)
	}
	u, ok := job.Artifacts[kind]
	if !ok || u == "" {
		return "", fmt.Errorf("job %s has no %s artifact", jobID, kind)
	}
	return u, nil
}
