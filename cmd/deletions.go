package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// deletionsCmd groups maintenance of the account deletion workflow.
var deletionsCmd = &cobra.Command{
	Use:   "deletions",
	Short: "Account deletion maintenance",
}

var resumeOlderThan time.Duration

var deletionsResumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Resume approved deletions that stopped part way",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(cmd.Context(), true)
		if err != nil {
			return err
		}
		defer a.Close()

		n, err := a.Deletions.ResumeIncomplete(cmd.Context(), resumeOlderThan)
		fmt.Fprintf(cmd.OutOrStdout(), "resumed %d deletion workflow(s)\n", n)
		return err
	},
}

func init() {
	rootCmd.AddCommand(deletionsCmd)
	deletionsCmd.AddCommand(deletionsResumeCmd)
	deletionsResumeCmd.Flags().DurationVar(&resumeOlderThan, "older-than", 0, "only resume workflows untouched for at least this long")
}
