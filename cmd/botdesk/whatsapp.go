package main

import (
	"context"
	"fmt"
	"os"

	"github.com/botdesk/botdesk/internal/api"
	"github.com/botdesk/botdesk/internal/domain/business"
)

// runWhatsApp dispatches whatsapp config subcommands.
func runWhatsApp(args []string) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "--help" {
		printWhatsAppHelp()
		return nil
	}

	switch args[0] {
	case "get":
		return runWhatsAppGet(args[1:])
	case "set":
		return runWhatsAppSet(args[1:])
	case "delete":
		return runWhatsAppDelete(args[1:])
	default:
		printWhatsAppHelp()
		return fmt.Errorf("unknown whatsapp command: %s", args[0])
	}
}

func printWhatsAppHelp() {
	fmt.Fprintf(os.Stderr, `Usage: botdesk whatsapp <command> [options]

Commands:
  get      Show a business's WhatsApp configuration
  set      Create or replace the WhatsApp configuration
  delete   Remove the WhatsApp configuration
  help     Show this help message

Examples:
  botdesk whatsapp get --business b1
  botdesk whatsapp set --business b1 --phone-number-id 123 --access-token tok
`)
}

func runWhatsAppGet(args []string) error {
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

	cfg, err := a.console.WhatsApp.Get(ctx, *businessID)
	if err != nil {
		if api.IsKind(err, api.KindNotFound) {
			fmt.Println("No WhatsApp configuration set.")
			return nil
		}
		return fmt.Errorf("get whatsapp config: %w", err)
	}

	fmt.Printf("Phone number ID: %s\nVerify token:    %s\nWebhook URL:     %s\n",
		cfg.PhoneNumberID, cfg.VerifyToken, cfg.WebhookURL)
	return nil
}

func runWhatsAppSet(args []string) error {
	fs := newFlagSet("set")
	businessID := fs.String("business", "", "business ID (required)")
	phoneNumberID := fs.String("phone-number-id", "", "WhatsApp phone number ID (required)")
	accessToken := fs.String("access-token", "", "WhatsApp Business API access token (required)")
	verifyToken := fs.String("verify-token", "", "webhook verify token")
	webhookURL := fs.String("webhook-url", "", "webhook callback URL")
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

	req := business.WhatsAppConfigRequest{
		PhoneNumberID: *phoneNumberID,
		AccessToken:   *accessToken,
		VerifyToken:   *verifyToken,
		WebhookURL:    *webhookURL,
	}

	// Replace when a config already exists, create otherwise.
	_, err = a.console.WhatsApp.Get(ctx, *businessID)
	switch {
	case err == nil:
		_, err = a.console.WhatsApp.Update(ctx, *businessID, req)
	case api.IsKind(err, api.KindNotFound):
		_, err = a.console.WhatsApp.Create(ctx, *businessID, req)
	}
	if err != nil {
		return fmt.Errorf("set whatsapp config: %w", err)
	}

	fmt.Fprintf(os.Stderr, "WhatsApp configuration saved for business %s.\n", *businessID)
	return nil
}

func runWhatsAppDelete(args []string) error {
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

	if err := a.console.WhatsApp.Delete(ctx, *businessID); err != nil {
		return fmt.Errorf("delete whatsapp config: %w", err)
	}
	fmt.Fprintf(os.Stderr, "WhatsApp configuration removed for business %s.\n", *businessID)
	return nil
}
