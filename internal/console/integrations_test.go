package console_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/botdesk/botdesk/internal/domain/integration"
)

func TestIntegrationConfigRoundTrip(t *testing.T) {
	var configCalls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/odoo/config/b1" && r.Method == http.MethodGet:
			configCalls.Add(1)
			_, _ = w.Write([]byte(`{"success":true,"data":{"business_id":"b1","provider":"odoo","connected":true}}`))
		case r.URL.Path == "/odoo/config/b1" && r.Method == http.MethodPost:
			_, _ = w.Write([]byte(`{"success":true,"data":{"business_id":"b1","provider":"odoo","connected":true}}`))
		default:
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	c := newConsole(t, srv.URL)
	ctx := context.Background()

	cfg, err := c.Integrations.Config(ctx, integration.ProviderOdoo, "b1")
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Connected {
		t.Error("expected connected config")
	}

	// Second read is cached.
	if _, err := c.Integrations.Config(ctx, integration.ProviderOdoo, "b1"); err != nil {
		t.Fatal(err)
	}
	if got := configCalls.Load(); got != 1 {
		t.Errorf("expected cached config read, backend saw %d", got)
	}

	// A write invalidates; the next read goes to the backend.
	if _, err := c.Integrations.SetConfig(ctx, integration.ProviderOdoo, "b1", integration.ConfigRequest{
		Settings: map[string]string{"api_key": "k"},
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Integrations.Config(ctx, integration.ProviderOdoo, "b1"); err != nil {
		t.Fatal(err)
	}
	if got := configCalls.Load(); got != 2 {
		t.Errorf("expected invalidated config re-read, backend saw %d", got)
	}
}

func TestAuthURLOnlyForOAuthProviders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/hubspot/auth/b1" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"success":true,"data":{"url":"https://app.hubspot.com/oauth/authorize?x=1"}}`))
	}))
	defer srv.Close()

	c := newConsole(t, srv.URL)
	ctx := context.Background()

	url, err := c.Integrations.AuthURL(ctx, integration.ProviderHubSpot, "b1")
	if err != nil {
		t.Fatal(err)
	}
	if url == "" {
		t.Error("expected auth URL")
	}

	if _, err := c.Integrations.AuthURL(ctx, integration.ProviderOdoo, "b1"); err == nil {
		t.Error("expected error: odoo is not an OAuth provider")
	}
}

func TestConnectionTestOnlyForKeyProviders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/airtable/test/b1" || r.Method != http.MethodPost {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"success":true,"data":{"ok":true,"message":"connected"}}`))
	}))
	defer srv.Close()

	c := newConsole(t, srv.URL)
	ctx := context.Background()

	res, err := c.Integrations.Test(ctx, integration.ProviderAirtable, "b1")
	if err != nil {
		t.Fatal(err)
	}
	if !res.OK {
		t.Error("expected ok result")
	}

	if _, err := c.Integrations.Test(ctx, integration.ProviderGoogle, "b1"); err == nil {
		t.Error("expected error: google has no connection test")
	}
}

func TestUnknownProviderRejected(t *testing.T) {
	c := newConsole(t, "http://127.0.0.1:1")
	if _, err := c.Integrations.Config(context.Background(), "slack", "b1"); err == nil {
		t.Error("expected unknown provider error")
	}
}
