package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/rpupo63/agency-site-backend/errs"
)

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	if !errs.IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	var apiErr *errs.ApiErr
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *errs.ApiErr, got %T", err)
	}
	out := map[string]string{}
	for _, fe := range apiErr.Errors {
		out[fe.Field] = fe.Message
	}
	return out
}

func TestValidateContactMessage(t *testing.T) {
	valid := ContactMessageInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Subject:   "Hello",
		Message:   "I would like a new website.",
	}
	if err := Validate(&valid); err != nil {
		t.Fatalf("valid message rejected: %v", err)
	}

	short := valid
	short.Message = "too short"
	fields := fieldErrors(t, Validate(&short))
	if fields["message"] != "message must be at least 10 characters" {
		t.Fatalf("unexpected message error: %q", fields["message"])
	}
	if len(fields) != 1 {
		t.Fatalf("expected only message to fail, got %v", fields)
	}

	badEmail := valid
	badEmail.Email = "not-an-email"
	if _, ok := fieldErrors(t, Validate(&badEmail))["email"]; !ok {
		t.Fatal("expected email to be reported")
	}
}

func TestValidateReportsEveryMissingField(t *testing.T) {
	fields := fieldErrors(t, Validate(&ContactMessageInput{FirstName: "   "}))
	for _, name := range []string{"firstName", "lastName", "email", "subject", "message"} {
		if _, ok := fields[name]; !ok {
			t.Errorf("expected %s in %v", name, fields)
		}
	}
}

func TestValidateSocialProjectRequiresMetrics(t *testing.T) {
	var in SocialProjectInput
	payload := `{"platform":"Instagram","title":"t","description":"d","icon":"instagram","image":"/i.png","reach":"1M","engagement":"5%"}`
	if err := json.Unmarshal([]byte(payload), &in); err != nil {
		t.Fatalf("decode: %v", err)
	}
	fields := fieldErrors(t, Validate(&in))
	if fields["metrics"] != "metrics is required" {
		t.Fatalf("expected metrics to be required, got %v", fields)
	}
}

func TestValidateRejectsUndecodableEncodedField(t *testing.T) {
	var in WebsiteProjectInput
	payload := `{"title":"t","description":"d","image":"i","demoUrl":"u","githubUrl":"g","tags":"[not json"}`
	if err := json.Unmarshal([]byte(payload), &in); err != nil {
		t.Fatalf("decode should not fail the payload: %v", err)
	}
	fields := fieldErrors(t, Validate(&in))
	if _, ok := fields["tags"]; !ok {
		t.Fatalf("expected tags error, got %v", fields)
	}
}

func TestValidatePatchRejectsEmptyStrings(t *testing.T) {
	empty := ""
	fields := fieldErrors(t, Validate(&VideoProjectPatch{Title: &empty}))
	if _, ok := fields["title"]; !ok {
		t.Fatalf("expected title error, got %v", fields)
	}
	if err := Validate(&VideoProjectPatch{}); err != nil {
		t.Fatalf("empty patch should be valid: %v", err)
	}
}
