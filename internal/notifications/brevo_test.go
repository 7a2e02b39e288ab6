package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"folio-backend/internal/contact"
)

func testMessage() contact.Message {
	return contact.Message{
		ID:        "abc123",
		Name:      "Ada <script>",
		Email:     "ada@example.com",
		Subject:   "Rebrand",
		Message:   "Line one\nLine two",
		Project:   "neighbourhood-bakery",
		CreatedAt: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestNewBrevoClientDisabledWithoutSettings(t *testing.T) {
	if c := NewBrevoClient("", "from@example.com", "", "owner@example.com", ""); c != nil {
		t.Fatalf("expected nil client without api key")
	}
	if c := NewBrevoClient("key", "from@example.com", "", "", ""); c != nil {
		t.Fatalf("expected nil client without owner email")
	}
}

func TestNilClientRefusesToSend(t *testing.T) {
	var c *BrevoClient
	if _, err := c.SendContactNotification(context.Background(), testMessage()); err == nil {
		t.Fatalf("expected error from disabled client")
	}
}

func TestContactNotificationHTMLEscapes(t *testing.T) {
	html, err := buildContactNotificationHTML("Folio", testMessage())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Fatalf("expected name to be escaped: %s", html)
	}
	if !strings.Contains(html, "Line one<br>Line two") {
		t.Fatalf("expected line breaks: %s", html)
	}
	if !strings.Contains(html, `href="/work/neighbourhood-bakery"`) {
		t.Fatalf("expected project link: %s", html)
	}
}

func TestSendContactNotification(t *testing.T) {
	var got brevoMail
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("api-key") != "key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"messageId":"<id@brevo>"}`))
	}))
	defer srv.Close()

	c := NewBrevoClient("key", "site@example.com", "Folio", "owner@example.com", "Folio")
	c.endpoint = srv.URL

	id, err := c.SendContactNotification(context.Background(), testMessage())
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if id != "<id@brevo>" {
		t.Fatalf("unexpected message id %q", id)
	}
	if len(got.To) != 1 || got.To[0].Email != "owner@example.com" {
		t.Fatalf("expected owner recipient, got %+v", got.To)
	}
	if got.ReplyTo == nil || got.ReplyTo.Email != "ada@example.com" {
		t.Fatalf("expected reply-to visitor, got %+v", got.ReplyTo)
	}
	if got.Sender.Email != "site@example.com" || got.Sender.Name != "Folio" {
		t.Fatalf("unexpected sender %+v", got.Sender)
	}
	if got.Subject != "[Folio] Rebrand" {
		t.Fatalf("unexpected subject %q", got.Subject)
	}
}

func TestSendContactNotificationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":"invalid_parameter"}`))
	}))
	defer srv.Close()

	c := NewBrevoClient("key", "site@example.com", "Folio", "owner@example.com", "Folio")
	c.endpoint = srv.URL

	_, err := c.SendContactNotification(context.Background(), testMessage())
	if !errors.Is(err, ErrRejected) || !strings.Contains(err.Error(), "status 400") {
		t.Fatalf("expected rejection with status, got %v", err)
	}
}
