package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rpupo63/agency-site-backend/models"
	"github.com/rs/zerolog/log"
)

const DefaultResendAPIURL = "https://api.resend.com"

// ResendEmailRequest represents the request payload for Resend API
type ResendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Html    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

// ResendEmailResponse represents the response from Resend API
type ResendEmailResponse struct {
	ID string `json:"id"`
}

// ResendErrorResponse represents an error response from Resend API
type ResendErrorResponse struct {
	Message string `json:"message"`
}

// ResendClient sends e-mail through the Resend HTTP API.
type ResendClient struct {
	apiKey     string
	from       string
	baseURL    string
	httpClient *http.Client
}

func NewResendClient(apiKey, from, baseURL string) *ResendClient {
	if baseURL == "" {
		baseURL = DefaultResendAPIURL
	}
	return &ResendClient{
		apiKey:     apiKey,
		from:       from,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// SendEmail sends an HTML email to the recipients and returns the Resend message id.
func (c *ResendClient) SendEmail(ctx context.Context, req ResendEmailRequest) (string, error) {
	if len(req.To) == 0 {
		return "", fmt.Errorf("at least one recipient is required")
	}
	if req.From == "" {
		req.From = c.from
	}

	jsonPayload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal email payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewBuffer(jsonPayload))
	if err != nil {
		return "", fmt.Errorf("failed to create Resend API request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to send request to Resend API: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read Resend API response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ResendErrorResponse
		if err := json.Unmarshal(bodyBytes, &errorResp); err == nil && errorResp.Message != "" {
			return "", fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, errorResp.Message)
		}
		return "", fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var emailResponse ResendEmailResponse
	if err := json.Unmarshal(bodyBytes, &emailResponse); err != nil {
		log.Warn().Err(err).Msg("Failed to parse Resend email response, but email was sent")
		return "", nil
	}
	return emailResponse.ID, nil
}

// EmailNotifier mails contact messages to the agency inbox.
type EmailNotifier struct {
	client     *ResendClient
	recipients []string
}

func NewEmailNotifier(client *ResendClient, recipients []string) *EmailNotifier {
	return &EmailNotifier{client: client, recipients: recipients}
}

func (n *EmailNotifier) Name() string {
	return "email"
}

func (n *EmailNotifier) NotifyContactMessage(ctx context.Context, msg models.ContactMessage) error {
	id, err := n.client.SendEmail(ctx, ResendEmailRequest{
		To:      n.recipients,
		Subject: "New contact message: " + msg.Subject,
		Html:    contactEmailHTML(msg),
		Text:    contactSummary(msg) + "\n\n" + msg.Message,
		ReplyTo: msg.Email,
	})
	if err != nil {
		return err
	}
	log.Debug().Str("emailId", id).Msg("Contact notification e-mail accepted by Resend")
	return nil
}

func contactEmailHTML(msg models.ContactMessage) string {
	var b strings.Builder
	b.WriteString("<h2>New contact message</h2>")
	fmt.Fprintf(&b, "<p><strong>From:</strong> %s %s &lt;%s&gt;</p>",
		html.EscapeString(msg.FirstName), html.EscapeString(msg.LastName), html.EscapeString(msg.Email))
	fmt.Fprintf(&b, "<p><strong>Subject:</strong> %s</p>", html.EscapeString(msg.Subject))
	fmt.Fprintf(&b, "<p>%s</p>", strings.ReplaceAll(html.EscapeString(msg.Message), "\n", "<br>"))
	return b.String()
}
