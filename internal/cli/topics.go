package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"forumcli/internal/prompt"
	"forumcli/pkg/controller"
	"forumcli/pkg/view"
)

var (
	topicsSearch string
	topicsSort   string
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "Browse and manage topics",
}

var topicsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List topics",
	RunE:  runTopicsList,
}

var topicsAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Create a topic",
	Args:  cobra.ExactArgs(1),
	RunE:  runTopicsAdd,
}

var topicsEditCmd = &cobra.Command{
	Use:   "edit <id> <title>",
	Short: "Rename a topic you own",
	Args:  cobra.ExactArgs(2),
	RunE:  runTopicsEdit,
}

var topicsRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a topic you own",
	Args:  cobra.ExactArgs(1),
	RunE:  runTopicsRm,
}

func init() {
	topicsListCmd.Flags().StringVar(&topicsSearch, "search", "", "filter topics by title substring")
	topicsListCmd.Flags().StringVar(&topicsSort, "sort", "alphabetic", "sort mode: alphabetic, recent or liked")
	topicsCmd.AddCommand(topicsListCmd, topicsAddCmd, topicsEditCmd, topicsRmCmd)
	rootCmd.AddCommand(topicsCmd)
}

func newTopicsController(a *app, search, sortMode string) (*controller.Topics, error) {
	c := controller.NewTopics(a.api, a.store)
	c.SetSearch(search)
	if sortMode != "" {
		m, err := view.ParseSortMode(sortMode)
		if err != nil {
			c.Close()
			return nil, err
		}
		c.SetSort(m)
	}
	return c, nil
}

func runTopicsList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	c, err := newTopicsController(a, topicsSearch, topicsSort)
	if err != nil {
		return err
	}
	defer c.Close()

	c.Refresh(cmd.Context())
	c.Render(os.Stdout)
	return nil
}

func runTopicsAdd(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	c := controller.NewTopics(a.api, a.store)
	defer c.Close()
	if err := c.Add(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Println("Topic created.")
	return nil
}

func runTopicsEdit(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid topic id %q", args[0])
	}
	c := controller.NewTopics(a.api, a.store)
	defer c.Close()
	if err := c.Rename(cmd.Context(), id, args[1]); err != nil {
		return err
	}
	fmt.Println("Topic updated.")
	return nil
}

func runTopicsRm(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid topic id %q", args[0])
	}
	if !skipAsk && !prompt.Confirm(fmt.Sprintf("Delete topic %d and everything in it?", id)) {
		fmt.Println("Cancelled.")
		return nil
	}
	c := controller.NewTopics(a.api, a.store)
	defer c.Close()
	if err := c.Remove(cmd.Context(), id); err != nil {
		return err
	}
	fmt.Println("Topic deleted.")
	return nil
}
