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
	commentsPostID int
	commentsSearch string
	commentsSort   string
)

var commentsCmd = &cobra.Command{
	Use:   "comments",
	Short: "Browse and manage comments on a post",
}

var commentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List comments on a post",
	RunE:  runCommentsList,
}

var commentsAddCmd = &cobra.Command{
	Use:   "add <content>",
	Short: "Comment on a post",
	Args:  cobra.ExactArgs(1),
	RunE:  runCommentsAdd,
}

var commentsEditCmd = &cobra.Command{
	Use:   "edit <id> <content>",
	Short: "Edit a comment you own",
	Args:  cobra.ExactArgs(2),
	RunE:  runCommentsEdit,
}

var commentsRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a comment you own",
	Args:  cobra.ExactArgs(1),
	RunE:  runCommentsRm,
}

var commentsLikeCmd = &cobra.Command{
	Use:   "like <id>",
	Short: "Like a comment",
	Args:  cobra.ExactArgs(1),
	RunE:  runCommentsLike,
}

var commentsUnlikeCmd = &cobra.Command{
	Use:   "unlike <id>",
	Short: "Withdraw a like from a comment",
	Args:  cobra.ExactArgs(1),
	RunE:  runCommentsUnlike,
}

func init() {
	commentsCmd.PersistentFlags().IntVarP(&commentsPostID, "post", "P", 0, "post id (required)")
	_ = commentsCmd.MarkPersistentFlagRequired("post")
	commentsListCmd.Flags().StringVar(&commentsSearch, "search", "", "filter comments by content substring")
	commentsListCmd.Flags().StringVar(&commentsSort, "sort", "recent", "sort mode: alphabetic, recent or liked")
	commentsCmd.AddCommand(commentsListCmd, commentsAddCmd, commentsEditCmd, commentsRmCmd, commentsLikeCmd, commentsUnlikeCmd)
	rootCmd.AddCommand(commentsCmd)
}

func newCommentsController(a *app, postID int) *controller.Comments {
	return controller.NewComments(a.api, a.store, postID)
}

func runCommentsList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	c := newCommentsController(a, commentsPostID)
	defer c.Close()
	c.SetSearch(commentsSearch)
	if commentsSort != "" {
		m, err := view.ParseSortMode(commentsSort)
		if err != nil {
			return err
		}
		c.SetSort(m)
	}

	c.Refresh(cmd.Context())
	c.Render(os.Stdout)
	return nil
}

func runCommentsAdd(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	c := controller.NewComments(a.api, a.store, commentsPostID)
	defer c.Close()
	if err := c.Add(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Println("Comment added.")
	return nil
}

func runCommentsEdit(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid comment id %q", args[0])
	}
	c := controller.NewComments(a.api, a.store, commentsPostID)
	defer c.Close()
	if err := c.Edit(cmd.Context(), id, args[1]); err != nil {
		return err
	}
	fmt.Println("Comment updated.")
	return nil
}

func runCommentsRm(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid comment id %q", args[0])
	}
	if !skipAsk && !prompt.Confirm(fmt.Sprintf("Delete comment %d?", id)) {
		fmt.Println("Cancelled.")
		return nil
	}
	c := controller.NewComments(a.api, a.store, commentsPostID)
	defer c.Close()
	if err := c.Remove(cmd.Context(), id); err != nil {
		return err
	}
	fmt.Println("Comment deleted.")
	return nil
}

func runCommentsLike(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid comment id %q", args[0])
	}
	c := controller.NewComments(a.api, a.store, commentsPostID)
	defer c.Close()
	return c.Like(cmd.Context(), id)
}

func runCommentsUnlike(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid comment id %q", args[0])
	}
	c := controller.NewComments(a.api, a.store, commentsPostID)
	defer c.Close()
	return c.Unlike(cmd.Context(), id)
}
