package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"syscall"

	"golang.org/x/term"

	"github.com/botdesk/botdesk/internal/domain/user"
	"github.com/botdesk/botdesk/internal/session"
)

func newFlagSet(name string) *flag.FlagSet {
	return flag.NewFlagSet(name, flag.ContinueOnError)
}

func runLogin(args []string) error {
	fs := newFlagSet("login")
	username := fs.String("username", "", "account username (required)")
	password := fs.String("password", "", "password (prompted if not provided)") //nolint:gosec // CLI flag
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *username == "" {
		return fmt.Errorf("--username is required")
	}

	pass := *password
	if pass == "" {
		var err error
		pass, err = promptPassword("Password: ")
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
	}

	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	u, err := a.session.Login(ctx, *username, pass)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Signed in as %s (%s)\n", u.Username, u.Role)
	return nil
}

func runLogout(args []string) error {
	fs := newFlagSet("logout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	a.session.Logout()
	fmt.Fprintln(os.Stderr, "Signed out.")
	return nil
}

func runSignup(args []string) error {
	fs := newFlagSet("signup")
	username := fs.String("username", "", "account username (required)")
	email := fs.String("email", "", "account email (required)")
	password := fs.String("password", "", "password (prompted if not provided)") //nolint:gosec // CLI flag
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *username == "" {
		return fmt.Errorf("--username is required")
	}
	if *email == "" {
		return fmt.Errorf("--email is required")
	}

	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	// The backend only accepts one self-served admin account.
	exists, err := a.session.AdminExists(ctx)
	if err != nil {
		return fmt.Errorf("check admin: %w", err)
	}
	if exists {
		return fmt.Errorf("an admin account already exists; ask for an invite instead")
	}

	pass := *password
	if pass == "" {
		pass, err = promptPassword("Password: ")
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
	}

	u, err := a.session.Signup(ctx, user.SignupRequest{
		Username: *username,
		Email:    *email,
		Password: pass,
	})
	if err != nil {
		return fmt.Errorf("signup: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Account created and signed in as %s\n", u.Username)
	return nil
}

func runWhoami(args []string) error {
	fs := newFlagSet("whoami")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	if err := a.session.Init(ctx); err != nil || a.session.State() != session.StateAuthenticated {
		fmt.Println("Not signed in.")
		return nil
	}

	u := a.session.User()
	fmt.Printf("Username: %s\nEmail:    %s\nRole:     %s\nStatus:   %s\n",
		u.Username, u.Email, u.Role, u.Status)
	return nil
}

// promptPassword reads a password from the terminal without echoing.
func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(int(syscall.Stdin)) //nolint:unconvert // int conversion needed on some platforms
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
