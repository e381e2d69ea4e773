package bootstrap

import (
	"fmt"

	"github.com/spf13/cobra"

	"s2x/cmd/s2x/cmd/cli"
)

var force bool

func init() {
	Cmd.Flags().BoolVarP(&force, "force", "f", false, "create a new guest user and project even if one is stored")
}

// Cmd represents the bootstrap command
var Cmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Create the guest user and project that own submitted audio",
	Long: `Create the guest user and project that own submitted audio

- Stored identities are reused unless --force is given
- The user and project are kept in the local preferences`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := cli.Open(cmd.Context(), nil)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.EnsureIdentity(cmd.Context(), force); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "user:    %s (%s)\n", a.Preferences.User.ID, a.Preferences.User.Email)
		fmt.Fprintf(out, "project: %s (%s)\n", a.Preferences.Project.ID, a.Preferences.Project.Name)
		return nil
	},
}
