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
	postsTopicID int
	postsSearch  string
	postsSort    string
)

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "Browse and manage posts in a topic",
}

var postsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List posts in a topic",
	RunE:  runPostsList,
}

var postsAddCmd = &cobra.Command{
	Use:   "add <title> <content>",
	Short: "Create a post",
	Args:  cobra.ExactArgs(2),
	RunE:  runPostsAdd,
}

var postsEditCmd = &cobra.Command{
	Use:   "edit <id> <title> <content>",
	Short: "Edit a post you own",
	Args:  cobra.ExactArgs(3),
	RunE:  runPostsEdit,
}

var postsRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a post you own",
	Args:  cobra.ExactArgs(1),
	RunE:  runPostsRm,
}

var postsLikeCmd = &cobra.Command{
	Use:   "like <id>",
	Short: "Like a post",
	Args:  cobra.ExactArgs(1),
	RunE:  runPostsLike,
}

var postsUnlikeCmd = &cobra.Command{
	Use:   "unlike <id>",
	Short: "Withdraw a like from a post",
	Args:  cobra.ExactArgs(1),
	RunE:  runPostsUnlike,
}

func init() {
	postsCmd.PersistentFlags().IntVarP(&postsTopicID, "topic", "t", 0, "topic id (required)")
	_ = postsCmd.MarkPersistentFlagRequired("topic")
	postsListCmd.Flags().StringVar(&postsSearch, "search", "", "filter posts by title substring")
	postsListCmd.Flags().StringVar(&postsSort, "sort", "recent", "sort mode: alphabetic, recent or liked")
	postsCmd.AddCommand(postsListCmd, postsAddCmd, postsEditCmd, postsRmCmd, postsLikeCmd, postsUnlikeCmd)
	rootCmd.AddCommand(postsCmd)
}

func newPostsController(a *app, topicID int, search, sortMode string) (*controller.Posts, error) {
	c := controller.NewPosts(a.api, a.store, topicID)
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

func runPostsList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	c, err := newPostsController(a, postsTopicID, postsSearch, postsSort)
	if err != nil {
		return err
	}
	defer c.Close()

	c.Refresh(cmd.Context())
	c.Render(os.Stdout)
	return nil
}

func runPostsAdd(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	c := controller.NewPosts(a.api, a.store, postsTopicID)
	defer c.Close()
	if err := c.Add(cmd.Context(), args[0], args[1]); err != nil {
		return err
	}
	fmt.Println("Post created.")
	return nil
}

func runPostsEdit(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid post id %q", args[0])
	}
	c := controller.NewPosts(a.api, a.store, postsTopicID)
	defer c.Close()
	if err := c.Edit(cmd.Context(), id, args[1], args[2]); err != nil {
		return err
	}
	fmt.Println("Post updated.")
	return nil
}

func runPostsRm(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid post id %q", args[0])
	}
	if !skipAsk && !prompt.Confirm(fmt.Sprintf("Delete post %d?", id)) {
		fmt.Println("Cancelled.")
		return nil
	}
	c := controller.NewPosts(a.api, a.store, postsTopicID)
	defer c.Close()
	if err := c.Remove(cmd.Context(), id); err != nil {
		return err
	}
	fmt.Println("Post deleted.")
	return nil
}

func runPostsLike(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid post id %q", args[0])
	}
	c := controller.NewPosts(a.api, a.store, postsTopicID)
	defer c.Close()
	return c.Like(cmd.Context(), id)
}

func runPostsUnlike(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid post id %q", args[0])
	}
	c := controller.NewPosts(a.api, a.store, postsTopicID)
	defer c.Close()
	return c.Unlike(cmd.Context(), id)
}
