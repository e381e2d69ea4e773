package upload

import (
	"fmt"

	"github.com/spf13/cobra"

	"s2x/cmd/s2x/cmd/cli"
	"s2x/cmd/s2x/cmd/transcribe"
	"s2x/internal/app/storage"
)

var (
	andTranscribe bool
	opts          transcribe.Options
)

func init() {
	Cmd.Flags().BoolVar(&andTranscribe, "transcribe", false, "submit the uploaded file for transcription")
	transcribe.Register(Cmd, &opts)
}

// Cmd represents the upload command
var Cmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a local audio file to object storage",
	Long: `Upload a local audio file to object storage

- The file is stored under audio/<year>/<uuid><ext> in the configured bucket
- A presigned GET URL valid for one hour is printed
- With --transcribe the URL is submitted right away`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := cli.Open(ctx, nil)
		if err != nil {
			return err
		}

		uploader, err := storage.New(a.Config.Storage)
		if err != nil {
			a.Close()
			return err
		}
		if err := uploader.EnsureBucket(ctx); err != nil {
			a.Close()
			return err
		}
		result, err := uploader.Upload(ctx, args[0])
		a.Close()
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "uploaded %s (%d bytes), URL valid until %s\n%s\n",
			result.Key, result.Size, result.ExpiresAt.Format("15:04:05"), result.URL)

		if !andTranscribe {
			return nil
		}
		return transcribe.Run(ctx, cmd.OutOrStdout(), result.URL, opts)
	},
}
