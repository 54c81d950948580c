package emailjs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const sendPath = "/api/v1.0/email/send"

// Logger is the logging interface used by the client.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client sends templated transactional mail through the EmailJS REST API.
// Credentials are per-tenant and passed into every call.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient creates an EmailJS client.
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Send delivers one templated message. templateParams carry recipient and
// message fields as defined by the tenant's template.
func (c *Client) Send(ctx context.Context, creds Credentials, templateParams map[string]string) error {
	if !creds.Valid() {
		return ErrNotConfigured
	}

	payload := sendRequest{
		ServiceID:      creds.ServiceID,
		TemplateID:     creds.TemplateID,
		UserID:         creds.PublicKey,
		TemplateParams: templateParams,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: marshal payload: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+sendPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return fmt.Errorf("%w: status %d: %s", ErrSendRejected, resp.StatusCode, string(detail))
	}

	c.log.Info("emailjs: sent template %s via service %s", creds.TemplateID, creds.ServiceID)
	return nil
}
