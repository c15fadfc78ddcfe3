package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/botdesk/botdesk/internal/logger"
)

func TestInterceptorsRunInRegistrationOrder(t *testing.T) {
	var order []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	c, _ := newTestClient(srv.URL, 0)
	c.Use(func(*http.Request) error {
		order = append(order, "first")
		return nil
	})
	c.Use(func(*http.Request) error {
		order = append(order, "second")
		return nil
	})
	c.UseResponse(func(*http.Response) error {
		order = append(order, "response")
		return nil
	})

	if _, err := c.Do(context.Background(), http.MethodGet, "/", nil); err != nil {
		t.Fatal(err)
	}

	want := []string{"first", "second", "response"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, order)
		}
	}
}

func TestRequestInterceptorErrorAbortsWithoutAttempt(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	c, _ := newTestClient(srv.URL, 0)
	c.Use(func(*http.Request) error {
		return errors.New("rejected")
	})

	if _, err := c.Do(context.Background(), http.MethodGet, "/", nil); err == nil {
		t.Fatal("expected error")
	}
	if calls != 0 {
		t.Errorf("expected no backend call, got %d", calls)
	}
}

func TestRequestIDPropagatedFromContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Request-ID"); got != "req-42" {
			t.Errorf("expected req-42, got %q", got)
		}
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	c, _ := newTestClient(srv.URL, 0)
	ctx := logger.WithRequestID(context.Background(), "req-42")
	if _, err := c.Do(ctx, http.MethodGet, "/", nil); err != nil {
		t.Fatal(err)
	}
}

func TestRequestIDMintedWhenAbsent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Request-ID"); got == "" {
			t.Error("expected a generated request ID")
		}
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	c, _ := newTestClient(srv.URL, 0)
	if _, err := c.Do(context.Background(), http.MethodGet, "/", nil); err != nil {
		t.Fatal(err)
	}
}
