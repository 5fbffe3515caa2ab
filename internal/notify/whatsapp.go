package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"time"
)

var nonDigits = regexp.MustCompile(`\D`)

// WhatsAppSender posts messages through the graph API. One attempt, caller
// supplies a context deadline.
type WhatsAppSender struct {
	BaseURL     string
	PhoneNumber string // business phone number id
	AccessToken string
	HTTP        *http.Client
}

func (s *WhatsAppSender) client() *http.Client {
	if s.HTTP != nil {
		return s.HTTP
	}
	return &http.Client{Timeout: 8 * time.Second}
}

// FormatPhone normalizes a local Nigerian number to international form.
func FormatPhone(phone string) string {
	cleaned := nonDigits.ReplaceAllString(phone, "")
	if len(cleaned) > 0 && cleaned[0] == '0' {
		return "234" + cleaned[1:]
	}
	if len(cleaned) < 3 || cleaned[:3] != "234" {
		return "234" + cleaned
	}
	return cleaned
}

type waText struct {
	Body string `json:"body"`
}

type waMessage struct {
	MessagingProduct string `json:"messaging_product"`
	To               string `json:"to"`
	Type             string `json:"type"`
	Text             waText `json:"text"`
}

func (s *WhatsAppSender) SendText(ctx context.Context, phone, body string) error {
	msg := waMessage{
		MessagingProduct: "whatsapp",
		To:               FormatPhone(phone),
		Type:             "text",
		Text:             waText{Body: body},
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/%s/messages", s.BaseURL, s.PhoneNumber)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("whatsapp send: status %d", resp.StatusCode)
	}
	return nil
}
