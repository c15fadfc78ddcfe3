package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/botdesk/botdesk/internal/api"
	"github.com/botdesk/botdesk/internal/domain/integration"
)

// runIntegration dispatches integration subcommands. The first argument is
// always the provider name.
func runIntegration(args []string) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "--help" {
		printIntegrationHelp()
		return nil
	}

	provider := integration.Provider(args[0])
	if !provider.Valid() {
		printIntegrationHelp()
		return fmt.Errorf("unknown provider: %s", args[0])
	}
	args = args[1:]
	if len(args) == 0 {
		printIntegrationHelp()
		return fmt.Errorf("missing integration command")
	}

	switch args[0] {
	case "get":
		return runIntegrationGet(provider, args[1:])
	case "set":
		return runIntegrationSet(provider, args[1:])
	case "delete":
		return runIntegrationDelete(provider, args[1:])
	case "auth-url":
		return runIntegrationAuthURL(provider, args[1:])
	case "test":
		return runIntegrationTest(provider, args[1:])
	default:
		printIntegrationHelp()
		return fmt.Errorf("unknown integration command: %s", args[0])
	}
}

func printIntegrationHelp() {
	fmt.Fprintf(os.Stderr, `Usage: botdesk integration <provider> <command> [options]

Providers: google, hubspot, salesforce, odoo, airtable

Commands:
  get        Show the integration configuration
  set        Save integration settings
  delete     Disconnect the integration
  auth-url   Print the OAuth consent URL (OAuth providers only)
  test       Verify stored credentials (key-based providers only)
  help       Show this help message

Examples:
  botdesk integration google auth-url --business b1
  botdesk integration airtable set --business b1 --settings '{"api_key":"key123"}'
  botdesk integration airtable test --business b1
`)
}

func runIntegrationGet(provider integration.Provider, args []string) error {
	fs := newFlagSet("get")
	businessID := fs.String("business", "", "business ID (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *businessID == "" {
		return fmt.Errorf("--business is required")
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

	cfg, err := a.console.Integrations.Config(ctx, provider, *businessID)
	if err != nil {
		if api.IsKind(err, api.KindNotFound) {
			fmt.Printf("%s is not connected.\n", provider)
			return nil
		}
		return fmt.Errorf("get integration: %w", err)
	}

	state := "disconnected"
	if cfg.Connected {
		state = "connected"
	}
	fmt.Printf("Provider: %s\nState:    %s\n", provider, state)
	if len(cfg.Settings) > 0 {
		out, _ := json.MarshalIndent(cfg.Settings, "", "  ")
		fmt.Printf("Settings: %s\n", out)
	}
	return nil
}

func runIntegrationSet(provider integration.Provider, args []string) error {
	fs := newFlagSet("set")
	businessID := fs.String("business", "", "business ID (required)")
	settings := fs.String("settings", "", "provider settings as a JSON object (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *businessID == "" {
		return fmt.Errorf("--business is required")
	}
	if *settings == "" {
		return fmt.Errorf("--settings is required")
	}

	var req integration.ConfigRequest
	if err := json.Unmarshal([]byte(*settings), &req.Settings); err != nil {
		return fmt.Errorf("parse settings: %w", err)
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

	if _, err := a.console.Integrations.SetConfig(ctx, provider, *businessID, req); err != nil {
		return fmt.Errorf("set integration: %w", err)
	}
	fmt.Fprintf(os.Stderr, "%s settings saved for business %s.\n", provider, *businessID)
	return nil
}

func runIntegrationDelete(provider integration.Provider, args []string) error {
	fs := newFlagSet("delete")
	businessID := fs.String("business", "", "business ID (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *businessID == "" {
		return fmt.Errorf("--business is required")
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

	if err := a.console.Integrations.DeleteConfig(ctx, provider, *businessID); err != nil {
		return fmt.Errorf("delete integration: %w", err)
	}
	fmt.Fprintf(os.Stderr, "%s disconnected for business %s.\n", provider, *businessID)
	return nil
}

func runIntegrationAuthURL(provider integration.Provider, args []string) error {
	fs := newFlagSet("auth-url")
	businessID := fs.String("business", "", "business ID (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *businessID == "" {
		return fmt.Errorf("--business is required")
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

	url, err := a.console.Integrations.AuthURL(ctx, provider, *businessID)
	if err != nil {
		return fmt.Errorf("auth url: %w", err)
	}
	fmt.Println(url)
	return nil
}

func runIntegrationTest(provider integration.Provider, args []string) error {
	fs := newFlagSet("test")
	businessID := fs.String("business", "", "business ID (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *businessID == "" {
		return fmt.Errorf("--business is required")
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

	res, err := a.console.Integrations.Test(ctx, provider, *businessID)
	if err != nil {
		return fmt.Errorf("test integration: %w", err)
	}
	if !res.OK {
		return fmt.Errorf("credentials rejected: %s", res.Message)
	}
	fmt.Fprintf(os.Stderr, "%s credentials OK.\n", provider)
	return nil
}
