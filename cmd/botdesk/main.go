// Command botdesk is the admin CLI for the BotDesk WhatsApp bot backend.
// It authenticates against the backend, manages businesses and their bot
// configuration, and can serve a local HTTP gateway for the browser UI.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/botdesk/botdesk/internal/api"
	"github.com/botdesk/botdesk/internal/cache"
	"github.com/botdesk/botdesk/internal/config"
	"github.com/botdesk/botdesk/internal/console"
	"github.com/botdesk/botdesk/internal/logger"
	"github.com/botdesk/botdesk/internal/resilience"
	"github.com/botdesk/botdesk/internal/session"
	"github.com/botdesk/botdesk/internal/telemetry"
	"github.com/botdesk/botdesk/internal/token"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "--help" {
		printHelp()
		return nil
	}

	switch args[0] {
	case "login":
		return runLogin(args[1:])
	case "logout":
		return runLogout(args[1:])
	case "signup":
		return runSignup(args[1:])
	case "whoami":
		return runWhoami(args[1:])
	case "profile":
		return runProfile(args[1:])
	case "business":
		return runBusiness(args[1:])
	case "whatsapp":
		return runWhatsApp(args[1:])
	case "tone":
		return runTone(args[1:])
	case "conversations":
		return runConversations(args[1:])
	case "integration":
		return runIntegration(args[1:])
	case "health":
		return runHealth(args[1:])
	case "serve":
		return runServe(args[1:])
	default:
		printHelp()
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func printHelp() {
	fmt.Fprintf(os.Stderr, `Usage: botdesk <command> [options]

Commands:
  login           Sign in and store credentials
  logout          Discard stored credentials
  signup          Create the first admin account
  whoami          Show the authenticated user
  profile         Update the authenticated account (update)
  business        Manage businesses (list, get, create, update, delete, bulk-delete, set-status)
  whatsapp        Manage a business's WhatsApp configuration (get, set, delete)
  tone            Manage a business's bot tone (get, set, delete)
  conversations   Inspect conversations (list, messages, archive, delete)
  integration     Manage third-party integrations (get, set, delete, auth-url, test)
  health          Check backend reachability
  serve           Run the local HTTP gateway for the browser UI
  help            Show this help message

Examples:
  botdesk login --username admin
  botdesk business list
  botdesk business create --name "Acme Tacos" --description "Food truck"
  botdesk whatsapp set --business b1 --phone-number-id 123 --access-token tok
  botdesk integration google auth-url --business b1
  botdesk serve --addr 127.0.0.1:8090
`)
}

// app bundles everything a subcommand needs.
type app struct {
	cfg     *config.Config
	log     *slog.Logger
	session *session.Manager
	console *console.Console

	logCloser     logger.Closer
	store         *cache.Ristretto
	shutdownTrace telemetry.ShutdownFunc
}

// newApp loads configuration, restores the stored session and wires the
// clients. Subcommands that only touch local state (logout) use newApp too;
// the wiring makes no network calls by itself.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	log, logCloser := logger.New(cfg.Logging)
	slog.SetDefault(log)

	credPath := cfg.Credentials
	if credPath == "" {
		credPath, err = token.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("resolve credentials path: %w", err)
		}
	}
	tokens, err := token.NewFileStore(credPath)
	if err != nil {
		return nil, fmt.Errorf("open credentials: %w", err)
	}

	shutdownTrace, err := telemetry.InitTracer(ctx, cfg.Telemetry, cfg.Logging.Service)
	if err != nil {
		return nil, fmt.Errorf("telemetry: %w", err)
	}

	client := api.New(cfg.API, tokens, log)

	store, err := cache.NewRistretto(cfg.Cache.MaxSizeMB << 20)
	if err != nil {
		return nil, fmt.Errorf("cache: %w", err)
	}

	breaker := resilience.NewBreaker(cfg.Breaker.MaxFailures, cfg.Breaker.Timeout)

	return &app{
		cfg:           cfg,
		log:           log,
		session:       session.NewManager(client, tokens, log),
		console:       console.New(client, store, cfg.Cache.TTL, breaker, log),
		logCloser:     logCloser,
		store:         store,
		shutdownTrace: shutdownTrace,
	}, nil
}

// requireSession restores and validates the stored session; commands that
// talk to protected endpoints call this before doing anything.
func (a *app) requireSession(ctx context.Context) error {
	if err := a.session.Init(ctx); err != nil {
		return err
	}
	if a.session.State() != session.StateAuthenticated {
		return fmt.Errorf("not signed in; run 'botdesk login' first")
	}
	return nil
}

func (a *app) close(ctx context.Context) {
	a.store.Close()
	if err := a.shutdownTrace(ctx); err != nil {
		a.log.Warn("trace shutdown failed", "error", err)
	}
	a.logCloser.Close()
}

func runHealth(args []string) error {
	fs := newFlagSet("health")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	if !a.console.Health.Check(ctx) {
		return fmt.Errorf("backend unreachable at %s", a.cfg.API.BaseURL)
	}
	fmt.Printf("Backend OK (%s)\n", a.cfg.API.BaseURL)
	return nil
}
