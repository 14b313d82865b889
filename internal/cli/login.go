package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/yildizm/TalentTrack/internal/api"
	"github.com/yildizm/TalentTrack/internal/common"
	"github.com/yildizm/TalentTrack/internal/emoji"
	"github.com/yildizm/TalentTrack/internal/forms"
	"github.com/yildizm/TalentTrack/internal/ops"
)

func newLoginCommand() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and save the session",
		Long: `Sign in to the recruiting backend with your email and password.

The returned token is saved locally so later commands reuse it until
it expires. Omitted credentials are prompted for interactively.`,
		Example: `  # Prompt for credentials
  talenttrack login

  # Non-interactive
  talenttrack login --email recruiter@example.com --password-stdin < secret.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd, email, password)
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (prefer the prompt)")
	cmd.Flags().Bool("password-stdin", false, "read the password from stdin")

	return cmd
}

func runLogin(cmd *cobra.Command, email, password string) error {
	ws, err := newWorkspace()
	if err != nil {
		return err
	}
	defer ws.finish()

	if email == "" {
		fmt.Print("Email: ")
		if _, err := fmt.Scanln(&email); err != nil {
			return fmt.Errorf("failed to read email: %w", err)
		}
	}

	if fromStdin, _ := cmd.Flags().GetBool("password-stdin"); fromStdin {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		password = strings.TrimRight(string(data), "\r\n")
	}

	if password == "" {
		fmt.Print("Password: ")
		raw, err := term.ReadPassword(os.Stdin.Fd())
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		password = string(raw)
	}

	form := forms.NewLoginForm()
	form.Email = email
	form.Password = password

	var (
		user     common.User
		loginErr error
	)
	if err := form.Submit(func(email, password string) {
		user, loginErr = ws.dispatcher.Login(cmd.Context(), api.LoginRequest{
			Email:    email,
			Password: password,
		})
	}); err != nil {
		return err
	}
	if loginErr != nil {
		return fmt.Errorf("%s", api.UserMessage(loginErr, ops.Fallback(ops.OpLogin)))
	}

	token := ws.store.Session().Token
	if err := ws.session.Save(user, token); err != nil {
		fmt.Fprintf(os.Stderr, "%s session not saved: %v\n", emoji.GetEmoji("warning"), err)
	}

	fmt.Printf("%s Signed in as %s <%s>\n", emoji.GetEmoji("success"), user.Name, user.Email)
	if isVerbose() {
		fmt.Printf("Session file: %s\n", ws.session.Path())
	}
	return nil
}

func newLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := newWorkspace()
			if err != nil {
				return err
			}
			if err := ws.session.Clear(); err != nil {
				return fmt.Errorf("failed to clear session: %w", err)
			}
			ws.store.Logout()
			fmt.Printf("%s Signed out\n", emoji.GetEmoji("door"))
			return nil
		},
	}
}
