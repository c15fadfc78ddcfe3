package main

import (
	"context"
	"fmt"
	"os"

	"github.com/botdesk/botdesk/internal/domain/user"
)

// runProfile dispatches profile subcommands.
func runProfile(args []string) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "--help" {
		printProfileHelp()
		return nil
	}

	switch args[0] {
	case "update":
		return runProfileUpdate(args[1:])
	default:
		printProfileHelp()
		return fmt.Errorf("unknown profile command: %s", args[0])
	}
}

func printProfileHelp() {
	fmt.Fprintf(os.Stderr, `Usage: botdesk profile <command> [options]

Commands:
  update   Change the authenticated account's username, email, or password
  help     Show this help message

Examples:
  botdesk profile update --email admin@example.com
  botdesk profile update --password
`)
}

func runProfileUpdate(args []string) error {
	fs := newFlagSet("update")
	username := fs.String("username", "", "new username")
	email := fs.String("email", "", "new email address")
	changePassword := fs.Bool("password", false, "prompt for a new password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" && *email == "" && !*changePassword {
		return fmt.Errorf("nothing to update; pass --username, --email, or --password")
	}

	req := user.ProfileUpdateRequest{
		Username: *username,
		Email:    *email,
	}
	if *changePassword {
		pass, err := promptPassword("New password: ")
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		confirm, err := promptPassword("Confirm password: ")
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		if pass != confirm {
			return fmt.Errorf("passwords do not match")
		}
		req.Password = pass
	}

	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)
	if err := a.requireSession(ctx); err != nil {
		return err
	}

	u, err := a.session.UpdateProfile(ctx, req)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Profile updated for %s (%s)\n", u.Username, u.Email)
	return nil
}
