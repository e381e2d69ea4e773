package health

import (
	"fmt"

	"github.com/spf13/cobra"

	"s2x/cmd/s2x/cmd/cli"
)

// Cmd represents the health command
var Cmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the transcription service is reachable and healthy",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := cli.Open(cmd.Context(), nil)
		if err != nil {
			return err
		}
		defer a.Close()

		status, err := a.Remote.Health(cmd.Context())
		if err != nil {
			return fmt.Errorf("service at %s unreachable: %w", a.Remote.BaseURL(), err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "service: %s\n", a.Remote.BaseURL())
		fmt.Fprintf(out, "status:  %s\n", status.Status)
		if status.DB != nil {
			fmt.Fprintf(out, "db:      %v\n", status.DB)
		}
		if !status.OK() {
			if status.Error != "" {
				return fmt.Errorf("service unhealthy: %s", status.Error)
			}
			return fmt.Errorf("service unhealthy")
		}
		return nil
	},
}
