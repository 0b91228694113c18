package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/socialjobs/workmatch/internal/domain/entity"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "User administration",
}

// grantAdminCmd promotes an existing account. The API has no route for
// this, so the first admin is always created here.
var grantAdminCmd = &cobra.Command{
	Use:   "grant-admin <email>",
	Short: "Give an existing user the admin role",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(cmd.Context(), true)
		if err != nil {
			return err
		}
		defer a.Close()

		email := strings.ToLower(strings.TrimSpace(args[0]))
		user, err := a.Users.GetUserByEmail(cmd.Context(), email)
		if err != nil {
			return fmt.Errorf("find user %s: %w", email, err)
		}
		if user.IsAdmin() {
			fmt.Fprintf(cmd.OutOrStdout(), "%s is already an admin\n", email)
			return nil
		}
		if _, err := a.Users.UpdateUser(cmd.Context(), user.ID, map[string]interface{}{"role": entity.UserRoleAdmin}); err != nil {
			return fmt.Errorf("promote %s: %w", email, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s is now an admin\n", email)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(grantAdminCmd)
}
