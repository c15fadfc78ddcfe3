package console_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestConversationListAndArchive(t *testing.T) {
	var listCalls atomic.Int32
	archived := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/businesses/b1/conversations":
			listCalls.Add(1)
			if archived {
				_, _ = w.Write([]byte(`{"success":true,"data":[{"id":"c1","business_id":"b1","contact":"+15551234","status":"archived"}]}`))
				return
			}
			_, _ = w.Write([]byte(`{"success":true,"data":[{"id":"c1","business_id":"b1","contact":"+15551234","status":"active"}]}`))
		case r.URL.Path == "/conversations/c1" && r.Method == http.MethodPatch:
			archived = true
			_, _ = w.Write([]byte(`{"success":true}`))
		default:
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	c := newConsole(t, srv.URL)
	ctx := context.Background()

	list, err := c.Conversations.List(ctx, "b1")
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Status != "active" {
		t.Fatalf("unexpected list %+v", list)
	}

	// Cached second read.
	if _, err := c.Conversations.List(ctx, "b1"); err != nil {
		t.Fatal(err)
	}
	if got := listCalls.Load(); got != 1 {
		t.Errorf("expected cached list, backend saw %d", got)
	}

	// Archiving invalidates the list; the re-read sees the new status.
	if err := c.Conversations.Archive(ctx, "b1", "c1"); err != nil {
		t.Fatal(err)
	}
	list, err = c.Conversations.List(ctx, "b1")
	if err != nil {
		t.Fatal(err)
	}
	if list[0].Status != "archived" {
		t.Errorf("expected archived status after invalidation, got %s", list[0].Status)
	}
}

func TestMessagesPagination(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/conversations/c1/messages" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("page") != "2" || r.URL.Query().Get("limit") != "25" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"success":true,"data":{"messages":[{"id":"m1","direction":"inbound","body":"hola"}],"page":2,"limit":25,"total":51}}`))
	}))
	defer srv.Close()

	c := newConsole(t, srv.URL)
	pg, err := c.Conversations.Messages(context.Background(), "c1", 2, 25)
	if err != nil {
		t.Fatal(err)
	}
	if pg.Total != 51 || len(pg.Messages) != 1 {
		t.Errorf("unexpected page %+v", pg)
	}
	if pg.Messages[0].Direction != "inbound" {
		t.Errorf("unexpected direction %s", pg.Messages[0].Direction)
	}
}
