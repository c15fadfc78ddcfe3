package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/botdesk/botdesk/internal/domain/business"
)

// runBusiness dispatches business subcommands.
func runBusiness(args []string) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "--help" {
		printBusinessHelp()
		return nil
	}

	switch args[0] {
	case "list":
		return runBusinessList(args[1:])
	case "get":
		return runBusinessGet(args[1:])
	case "create":
		return runBusinessCreate(args[1:])
	case "update":
		return runBusinessUpdate(args[1:])
	case "delete":
		return runBusinessDelete(args[1:])
	case "bulk-delete":
		return runBusinessBulkDelete(args[1:])
	case "set-status":
		return runBusinessSetStatus(args[1:])
	default:
		printBusinessHelp()
		return fmt.Errorf("unknown business command: %s", args[0])
	}
}

func printBusinessHelp() {
	fmt.Fprintf(os.Stderr, `Usage: botdesk business <command> [options]

Commands:
  list          List all businesses
  get           Show one business
  create        Create a business
  update        Update a business
  delete        Delete a business
  bulk-delete   Delete several businesses at once
  set-status    Activate or deactivate several businesses at once
  help          Show this help message

Examples:
  botdesk business list
  botdesk business create --name "Acme Tacos" --description "Food truck"
  botdesk business set-status --ids b1,b2 --status inactive
`)
}

func runBusinessList(args []string) error {
	fs := newFlagSet("list")
	if err := fs.Parse(args); err != nil {
		return err
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

	list, err := a.console.Businesses.List(ctx)
	if err != nil {
		return fmt.Errorf("list businesses: %w", err)
	}
	if len(list) == 0 {
		fmt.Println("No businesses found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tSTATUS\tCREATED")
	for i := range list {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			list[i].ID, list[i].Name, list[i].Status, list[i].CreatedAt.Format("2006-01-02"))
	}
	return w.Flush()
}

func runBusinessGet(args []string) error {
	fs := newFlagSet("get")
	id := fs.String("id", "", "business ID (required)")
	if err := fs.Parse(args); err != nil {
		return err
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

	b, err := a.console.Businesses.Get(ctx, *id)
	if err != nil {
		return fmt.Errorf("get business: %w", err)
	}

	fmt.Printf("ID:          %s\nName:        %s\nDescription: %s\nStatus:      %s\nCreated:     %s\nUpdated:     %s\n",
		b.ID, b.Name, b.Description, b.Status, b.CreatedAt.Format("2006-01-02 15:04"), b.UpdatedAt.Format("2006-01-02 15:04"))
	return nil
}

func runBusinessCreate(args []string) error {
	fs := newFlagSet("create")
	name := fs.String("name", "", "business name (required)")
	description := fs.String("description", "", "business description")
	if err := fs.Parse(args); err != nil {
		return err
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

	b, err := a.console.Businesses.Create(ctx, business.CreateRequest{
		Name:        *name,
		Description: *description,
	})
	if err != nil {
		return fmt.Errorf("create business: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Business created: %s (id=%s)\n", b.Name, b.ID)
	return nil
}

func runBusinessUpdate(args []string) error {
	fs := newFlagSet("update")
	id := fs.String("id", "", "business ID (required)")
	name := fs.String("name", "", "new name")
	description := fs.String("description", "", "new description")
	status := fs.String("status", "", "new status (active|inactive)")
	if err := fs.Parse(args); err != nil {
		return err
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

	req := business.UpdateRequest{
		Name:        *name,
		Description: *description,
		Status:      business.Status(*status),
	}

	b, err := a.console.Businesses.Update(ctx, *id, req)
	if err != nil {
		return fmt.Errorf("update business: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Business updated: %s (status=%s)\n", b.Name, b.Status)
	return nil
}

func runBusinessDelete(args []string) error {
	fs := newFlagSet("delete")
	id := fs.String("id", "", "business ID (required)")
	if err := fs.Parse(args); err != nil {
		return err
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

	if err := a.console.Businesses.Delete(ctx, *id); err != nil {
		return fmt.Errorf("delete business: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Business %s deleted.\n", *id)
	return nil
}

func runBusinessBulkDelete(args []string) error {
	fs := newFlagSet("bulk-delete")
	ids := fs.String("ids", "", "comma-separated business IDs (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	idList := splitIDs(*ids)
	if len(idList) == 0 {
		return fmt.Errorf("--ids is required")
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

	if err := a.console.Businesses.BulkDelete(ctx, idList); err != nil {
		return fmt.Errorf("bulk delete: %w", err)
	}
	fmt.Fprintf(os.Stderr, "%d businesses deleted.\n", len(idList))
	return nil
}

func runBusinessSetStatus(args []string) error {
	fs := newFlagSet("set-status")
	ids := fs.String("ids", "", "comma-separated business IDs (required)")
	status := fs.String("status", "", "target status: active or inactive (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	idList := splitIDs(*ids)
	if len(idList) == 0 {
		return fmt.Errorf("--ids is required")
	}
	if *status == "" {
		return fmt.Errorf("--status is required")
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

	if err := a.console.Businesses.BulkSetStatus(ctx, idList, business.Status(*status)); err != nil {
		return fmt.Errorf("set status: %w", err)
	}
	fmt.Fprintf(os.Stderr, "%d businesses set to %s.\n", len(idList), *status)
	return nil
}

func splitIDs(s string) []string {
	var out []string
	for _, id := range strings.Split(s, ",") {
		if id = strings.TrimSpace(id); id != "" {
			out = append(out, id)
		}
	}
	return out
}
