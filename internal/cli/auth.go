package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"forumcli/internal/prompt"
)

var (
	authUsername string
	authPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the session locally",
	RunE:  runLogin,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	Long:  `Create a new account. Registration does not log you in; run "forumcli login" afterwards.`,
	RunE:  runRegister,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	RunE:  runWhoami,
}

func init() {
	for _, c := range []*cobra.Command{loginCmd, registerCmd} {
		c.Flags().StringVarP(&authUsername, "username", "u", "", "username (prompted when omitted)")
		c.Flags().StringVarP(&authPassword, "password", "p", "", "password (prompted when omitted)")
	}
	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)
}

func readCredentials() (string, string, error) {
	username := authUsername
	password := authPassword
	var err error
	if username == "" {
		if username, err = prompt.Line("Username"); err != nil {
			return "", "", err
		}
	}
	if password == "" {
		if password, err = prompt.Password("Password"); err != nil {
			return "", "", err
		}
	}
	return username, password, nil
}

func runLogin(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	username, password, err := readCredentials()
	if err != nil {
		return err
	}
	token, user, err := a.api.Login(cmd.Context(), username, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	if err := a.store.Set(token, user); err != nil {
		return err
	}
	fmt.Printf("Logged in as %s (id %d).\n", user.Username, user.ID)
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	username, password, err := readCredentials()
	if err != nil {
		return err
	}
	if err := a.api.Register(cmd.Context(), username, password); err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}
	fmt.Printf("Account %s created. Run \"forumcli login\" to sign in.\n", username)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.store.Clear(); err != nil {
		return err
	}
	fmt.Println("Logged out.")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	sess := a.store.Get()
	if sess == nil {
		fmt.Println("Not logged in.")
		return nil
	}
	fmt.Printf("%s (id %d)\n", sess.User.Username, sess.User.ID)
	return nil
}
