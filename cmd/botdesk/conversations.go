package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
)

// runConversations dispatches conversation subcommands.
func runConversations(args []string) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "--help" {
		printConversationsHelp()
		return nil
	}

	switch args[0] {
	case "list":
		return runConversationsList(args[1:])
	case "messages":
		return runConversationMessages(args[1:])
	case "archive":
		return runConversationArchive(args[1:])
	case "delete":
		return runConversationDelete(args[1:])
	default:
		printConversationsHelp()
		return fmt.Errorf("unknown conversations command: %s", args[0])
	}
}

func printConversationsHelp() {
	fmt.Fprintf(os.Stderr, `Usage: botdesk conversations <command> [options]

Commands:
  list       List a business's conversations
  messages   Show the message history of a conversation
  archive    Archive a conversation
  delete     Delete a conversation
  help       Show this help message

Examples:
  botdesk conversations list --business b1
  botdesk conversations messages --business b1 --id c1 --page 2
`)
}

func runConversationsList(args []string) error {
	fs := newFlagSet("list")
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

	list, err := a.console.Conversations.List(ctx, *businessID)
	if err != nil {
		return fmt.Errorf("list conversations: %w", err)
	}
	if len(list) == 0 {
		fmt.Println("No conversations found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tCONTACT\tNAME\tSTATUS\tLAST_MESSAGE")
	for i := range list {
		last := ""
		if !list[i].LastMessageAt.IsZero() {
			last = list[i].LastMessageAt.Format("2006-01-02 15:04")
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			list[i].ID, list[i].Contact, list[i].ContactName, list[i].Status, last)
	}
	return w.Flush()
}

func runConversationMessages(args []string) error {
	fs := newFlagSet("messages")
	businessID := fs.String("business", "", "business ID (required)")
	id := fs.String("id", "", "conversation ID (required)")
	page := fs.Int("page", 1, "page number")
	limit := fs.Int("limit", 50, "messages per page")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *businessID == "" {
		return fmt.Errorf("--business is required")
	}
	if *id == "" {
		return fmt.Errorf("--id is required")
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

	pg, err := a.console.Conversations.Messages(ctx, *id, *page, *limit)
	if err != nil {
		return fmt.Errorf("list messages: %w", err)
	}

	for i := range pg.Messages {
		m := &pg.Messages[i]
		marker := "<-"
		if m.Direction == "outbound" {
			marker = "->"
		}
		fmt.Printf("%s [%s] %s\n", marker, m.Timestamp.Format("2006-01-02 15:04"), m.Body)
	}
	fmt.Fprintf(os.Stderr, "Page %d (%d messages total)\n", pg.Page, pg.Total)
	return nil
}

func runConversationArchive(args []string) error {
	fs := newFlagSet("archive")
	businessID := fs.String("business", "", "business ID (required)")
	id := fs.String("id", "", "conversation ID (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *businessID == "" {
		return fmt.Errorf("--business is required")
	}
	if *id == "" {
		return fmt.Errorf("--id is required")
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

	if err := a.console.Conversations.Archive(ctx, *businessID, *id); err != nil {
		return fmt.Errorf("archive conversation: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Conversation %s archived.\n", *id)
	return nil
}

func runConversationDelete(args []string) error {
	fs := newFlagSet("delete")
	businessID := fs.String("business", "", "business ID (required)")
	id := fs.String("id", "", "conversation ID (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *businessID == "" {
		return fmt.Errorf("--business is required")
	}
	if *id == "" {
		return fmt.Errorf("--id is required")
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

	if err := a.console.Conversations.Delete(ctx, *businessID, *id); err != nil {
		return fmt.Errorf("delete conversation: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Conversation %s deleted.\n", *id)
	return nil
}
