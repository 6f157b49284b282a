package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rpupo63/agency-site-backend/models"
)

func sampleMessage() models.ContactMessage {
	return models.ContactMessage{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Subject:   "New site",
		Message:   "We need a <b>new</b> site.",
	}
}

func TestEmailNotifierPostsToResend(t *testing.T) {
	var got ResendEmailRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/emails" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer re_test" {
			t.Errorf("authorization = %q", r.Header.Get("Authorization"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"email_123"}`))
	}))
	defer srv.Close()

	n := NewEmailNotifier(NewResendClient("re_test", "Agency <hello@agency.test>", srv.URL), []string{"team@agency.test"})
	if err := n.NotifyContactMessage(context.Background(), sampleMessage()); err != nil {
		t.Fatalf("notify: %v", err)
	}

	if got.From != "Agency <hello@agency.test>" || len(got.To) != 1 || got.To[0] != "team@agency.test" {
		t.Fatalf("unexpected envelope: %+v", got)
	}
	if got.ReplyTo != "ada@example.com" {
		t.Errorf("reply_to = %q", got.ReplyTo)
	}
	if strings.Contains(got.Html, "<b>new</b>") {
		t.Errorf("message html was not escaped: %s", got.Html)
	}
}

func TestResendClientReportsAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"Invalid from address"}`))
	}))
	defer srv.Close()

	client := NewResendClient("re_test", "bad", srv.URL)
	_, err := client.SendEmail(context.Background(), ResendEmailRequest{To: []string{"x@y.z"}, Subject: "s"})
	if err == nil || !strings.Contains(err.Error(), "Invalid from address") {
		t.Fatalf("expected API error, got %v", err)
	}

	if _, err := client.SendEmail(context.Background(), ResendEmailRequest{}); err == nil {
		t.Fatal("expected error without recipients")
	}
}
