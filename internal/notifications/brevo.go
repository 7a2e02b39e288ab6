package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"folio-backend/internal/contact"
)

const brevoEndpoint = "https://api.brevo.com/v3/smtp/email"

// ErrRejected wraps non-2xx answers from Brevo.
var ErrRejected = errors.New("brevo rejected message")

// BrevoClient forwards contact form messages to the site owner through
// Brevo's transactional email API.
type BrevoClient struct {
	apiKey   string
	from     brevoAddress
	owner    brevoAddress
	siteName string
	endpoint string
	http     *http.Client
}

// NewBrevoClient returns nil when the key, sender or owner address is
// missing. Callers treat a nil client as "mail disabled".
func NewBrevoClient(apiKey, senderEmail, senderName, ownerEmail, siteName string) *BrevoClient {
	apiKey, senderEmail, ownerEmail = strings.TrimSpace(apiKey), strings.TrimSpace(senderEmail), strings.TrimSpace(ownerEmail)
	if apiKey == "" || senderEmail == "" || ownerEmail == "" {
		return nil
	}
	if strings.TrimSpace(senderName) == "" {
		senderName = senderEmail
	}
	return &BrevoClient{
		apiKey:   apiKey,
		from:     brevoAddress{Email: senderEmail, Name: senderName},
		owner:    brevoAddress{Email: ownerEmail},
		siteName: siteName,
		endpoint: brevoEndpoint,
		http:     &http.Client{Timeout: 8 * time.Second},
	}
}

// SendContactNotification mails msg to the owner with Reply-To set to the
// visitor, and returns Brevo's message id.
func (c *BrevoClient) SendContactNotification(ctx context.Context, msg contact.Message) (string, error) {
	if c == nil {
		return "", errors.New("brevo: mail disabled")
	}
	body, err := buildContactNotificationHTML(c.siteName, msg)
	if err != nil {
		return "", err
	}
	return c.post(ctx, brevoMail{
		Sender:  c.from,
		To:      []brevoAddress{c.owner},
		ReplyTo: &brevoAddress{Email: msg.Email, Name: msg.Name},
		Subject: contactSubject(c.siteName, msg),
		HTML:    body,
		Tags:    []string{"contact"},
	})
}

func (c *BrevoClient) post(ctx context.Context, mail brevoMail) (string, error) {
	raw, err := json.Marshal(mail)
	if err != nil {
		return "", fmt.Errorf("brevo: encode: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("brevo: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("brevo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, bytes.TrimSpace(detail))
	}

	var out struct {
		MessageID string `json:"messageId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("brevo: decode response: %w", err)
	}
	if out.MessageID == "" {
		return "", errors.New("brevo: response without messageId")
	}
	return out.MessageID, nil
}

type brevoMail struct {
	Sender  brevoAddress   `json:"sender"`
	To      []brevoAddress `json:"to"`
	ReplyTo *brevoAddress  `json:"replyTo,omitempty"`
	Subject string         `json:"subject"`
	HTML    string         `json:"htmlContent"`
	Tags    []string       `json:"tags,omitempty"`
}

type brevoAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}
