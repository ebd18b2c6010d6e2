package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// group create flags
	groupTitle       string
	groupSlug        string
	groupDescription string
)

var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "Manage groups",
}

var groupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a group",
	Long: `Create a group posts can be filed under.

Examples:
  yatube group create --slug cats --title "Cats" --description "All about cats"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			g, err := a.groups.CreateGroup(cmd.Context(), groupTitle, groupSlug, groupDescription)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created group %q (/group/%s/)\n", g.Title, g.Slug)
			return nil
		})
	},
}

var groupDeleteCmd = &cobra.Command{
	Use:   "delete <slug>",
	Short: "Delete a group; its posts are kept without a group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			if err := a.groups.DeleteGroup(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted group %s\n", args[0])
			return nil
		})
	},
}

func init() {
	groupCreateCmd.Flags().StringVar(&groupTitle, "title", "", "Group title")
	groupCreateCmd.Flags().StringVar(&groupSlug, "slug", "", "URL slug (letters, digits, - and _)")
	groupCreateCmd.Flags().StringVar(&groupDescription, "description", "", "Group description")
	_ = groupCreateCmd.MarkFlagRequired("title")
	_ = groupCreateCmd.MarkFlagRequired("slug")

	groupCmd.AddCommand(groupCreateCmd, groupDeleteCmd)
	rootCmd.AddCommand(groupCmd)
}
