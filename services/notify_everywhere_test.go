package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rpupo63/agency-site-backend/models"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

type stubNotifier struct {
	name  string
	err   error
	calls int
}

func (s *stubNotifier) Name() string { return s.name }

func (s *stubNotifier) NotifyContactMessage(ctx context.Context, msg models.ContactMessage) error {
	s.calls++
	return s.err
}

func TestNotifyEverywhereTriesEveryChannel(t *testing.T) {
	failing := &stubNotifier{name: "email", err: errors.New("smtp down")}
	working := &stubNotifier{name: "sms"}
	n := NewNotifyEverywhere(failing, working)

	err := n.NotifyContactMessage(context.Background(), sampleMessage())
	if err == nil || !strings.Contains(err.Error(), "email: smtp down") {
		t.Fatalf("expected email failure, got %v", err)
	}
	if failing.calls != 1 || working.calls != 1 {
		t.Fatalf("calls = %d, %d", failing.calls, working.calls)
	}
	if !n.Enabled() || NewNotifyEverywhere().Enabled() {
		t.Fatal("Enabled should reflect configured channels")
	}
}

type fakeSMS struct {
	sent []openapi.CreateMessageParams
}

func (f *fakeSMS) CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error) {
	f.sent = append(f.sent, *params)
	sid := "SM123"
	return &openapi.ApiV2010Message{Sid: &sid}, nil
}

func TestSMSNotifierTextsEveryRecipient(t *testing.T) {
	fake := &fakeSMS{}
	n := NewSMSNotifier(fake, "+15550000000", []string{"+15551111111", "+15552222222"})
	if err := n.NotifyContactMessage(context.Background(), sampleMessage()); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if len(fake.sent) != 2 {
		t.Fatalf("sent %d messages", len(fake.sent))
	}
	first := fake.sent[0]
	if *first.To != "+15551111111" || *first.From != "+15550000000" {
		t.Fatalf("unexpected params: to=%s from=%s", *first.To, *first.From)
	}
	if !strings.Contains(*first.Body, "Ada Lovelace") {
		t.Fatalf("body = %q", *first.Body)
	}
}
