package main

import (
	"context"
	"fmt"
	"os"

	"github.com/botdesk/botdesk/internal/api"
	"github.com/botdesk/botdesk/internal/domain/business"
)

// runTone dispatches bot tone subcommands.
func runTone(args []string) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "--help" {
		printToneHelp()
		return nil
	}

	switch args[0] {
	case "get":
		return runToneGet(args[1:])
	case "set":
		return runToneSet(args[1:])
	case "delete":
		return runToneDelete(args[1:])
	default:
		printToneHelp()
		return fmt.Errorf("unknown tone command: %s", args[0])
	}
}

func printToneHelp() {
	fmt.Fprintf(os.Stderr, `Usage: botdesk tone <command> [options]

Commands:
  get      Show a business's bot tone
  set      Create or replace the bot tone
  delete   Remove the bot tone
  help     Show this help message

Examples:
  botdesk tone get --business b1
  botdesk tone set --business b1 --name friendly --instructions "Be warm and brief."
`)
}

func runToneGet(args []string) error {
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

	tone, err := a.console.Tones.Get(ctx, *businessID)
	if err != nil {
		if api.IsKind(err, api.KindNotFound) {
			fmt.Println("No tone set; the bot uses the backend default.")
			return nil
		}
		return fmt.Errorf("get tone: %w", err)
	}

	fmt.Printf("Name:        %s\nDescription: %s\n\n%s\n",
		tone.Name, tone.Description, tone.ToneInstructions)
	return nil
}

func runToneSet(args []string) error {
	fs := newFlagSet("set")
	businessID := fs.String("business", "", "business ID (required)")
	name := fs.String("name", "", "tone name (required)")
	description := fs.String("description", "", "tone description")
	instructions := fs.String("instructions", "", "tone instructions for the bot (required)")
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

	req := business.ToneRequest{
		Name:             *name,
		Description:      *description,
		ToneInstructions: *instructions,
	}

	_, err = a.console.Tones.Get(ctx, *businessID)
	switch {
	case err == nil:
		_, err = a.console.Tones.Update(ctx, *businessID, req)
	case api.IsKind(err, api.KindNotFound):
		_, err = a.console.Tones.Create(ctx, *businessID, req)
	}
	if err != nil {
		return fmt.Errorf("set tone: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Tone saved for business %s.\n", *businessID)
	return nil
}

func runToneDelete(args []string) error {
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

	if err := a.console.Tones.Delete(ctx, *businessID); err != nil {
		return fmt.Errorf("delete tone: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Tone removed for business %s.\n", *businessID)
	return nil
}
