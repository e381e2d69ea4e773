package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"s2x/cmd/s2x/cmd/artifacts"
	"s2x/cmd/s2x/cmd/bootstrap"
	"s2x/cmd/s2x/cmd/cli"
	"s2x/cmd/s2x/cmd/configcmd"
	"s2x/cmd/s2x/cmd/health"
	"s2x/cmd/s2x/cmd/history"
	"s2x/cmd/s2x/cmd/library"
	"s2x/cmd/s2x/cmd/serve"
	"s2x/cmd/s2x/cmd/share"
	"s2x/cmd/s2x/cmd/transcribe"
	"s2x/cmd/s2x/cmd/upload"
	"s2x/cmd/s2x/cmd/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "s2x",
	Short: "Command-line client for the Speech2Text X transcription service",
	Long: `Command-line client for the Speech2Text X transcription service.
- Submit an audio URL, follow the job until it finishes and print the transcript
- Keep a local history of the last 50 successful jobs
- Share results, download SRT/VTT artifacts, or serve a small local API`,
	SilenceUsage:     true,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(artifacts.Cmd)
	rootCmd.AddCommand(bootstrap.Cmd)
	rootCmd.AddCommand(configcmd.Cmd)
	rootCmd.AddCommand(health.Cmd)
	rootCmd.AddCommand(history.Cmd)
	rootCmd.AddCommand(library.Cmd)
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(share.Cmd)
	rootCmd.AddCommand(transcribe.Cmd)
	rootCmd.AddCommand(upload.Cmd)
	rootCmd.AddCommand(version.Cmd)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cli.Global.ConfigPath, "config", "", "config file (default is $S2X_CONFIG or ~/.config/s2x/config.yaml)")
	flags.StringVar(&cli.Global.APIBase, "api-base", "", "transcription service base URL, overrides the stored preference")
	flags.BoolVarP(&cli.Global.Verbose, "verbose", "V", false, "verbose output")
}
