package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Manage posts",
}

var postDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a post with its comments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid post id %q", args[0])
		}
		return withApp(cmd.Context(), func(a *app) error {
			if err := a.posts.DeletePost(cmd.Context(), uint(id)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted post %d\n", id)
			return nil
		})
	},
}

func init() {
	postCmd.AddCommand(postDeleteCmd)
	rootCmd.AddCommand(postCmd)
}
