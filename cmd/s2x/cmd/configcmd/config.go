package configcmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"s2x/cmd/s2x/cmd/cli"
	"s2x/internal/config"
)

func init() {
	Cmd.AddCommand(showCmd, setAPICmd)
}

// Cmd represents the config command
var Cmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change client configuration",
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration and stored preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := cli.Open(cmd.Context(), nil)
		if err != nil {
			return err
		}
		defer a.Close()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "# %s\n", a.ConfigPath)
		redacted := *a.Config
		redacted.Storage.SecretKey = mask(redacted.Storage.SecretKey)
		redacted.History.RedisPassword = mask(redacted.History.RedisPassword)
		data, err := yaml.Marshal(&redacted)
		if err != nil {
			return err
		}
		out.Write(data)

		fmt.Fprintln(out, "\n# preferences")
		data, err = yaml.Marshal(map[string]any{
			"tab":       a.Preferences.Tab,
			"api_base":  a.Remote.BaseURL(),
			"audio_url": a.Preferences.AudioURL,
			"user":      a.UserID(),
			"project":   a.ProjectID(),
		})
		if err != nil {
			return err
		}
		out.Write(data)
		return nil
	},
}

var setAPICmd = &cobra.Command{
	Use:   "set-api <url>",
	Short: "Store the transcription service base URL as a preference",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.ValidateBaseURL(args[0], "api base"); err != nil {
			return err
		}

		a, err := cli.Open(cmd.Context(), nil)
		if err != nil {
			return err
		}
		defer a.Close()

		a.Preferences.APIBase = args[0]
		if err := a.SavePreferences(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "api base set to %s\n", args[0])
		return nil
	},
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return "********"
}
