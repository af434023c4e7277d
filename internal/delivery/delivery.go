// Package delivery sends the personalized ebook email. The production sender
// uses the Resend API; the mock sender logs instead so local runs need no
// credentials.
package delivery

import (
	"context"
	"fmt"
	"log"
	"sync"
)

// Message is a single outbound email.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// Sender delivers a message to a recipient.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Mock records messages instead of sending them.
type Mock struct {
	mu   sync.Mutex
	sent []Message
}

// NewMock returns a sender that records instead of delivering.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Send(_ context.Context, msg Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	log.Printf("[DELIVERY] mock send to %s: %s", msg.To, msg.Subject)
	return nil
}

// Sent returns the recorded messages.
func (m *Mock) Sent() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Message, len(m.sent))
	copy(out, m.sent)
	return out
}

// ComposeEbookEmail renders the delivery message for a finalized lead.
func ComposeEbookEmail(to, firstName, companyName, introHook, cta string) Message {
	greeting := "Hi there"
	if firstName != "" {
		greeting = "Hi " + firstName
	}
	subject := "Your personalized AI readiness guide"
	if companyName != "" {
		subject = fmt.Sprintf("Your AI readiness guide for %s", companyName)
	}
	html := fmt.Sprintf(
		"<p>%s,</p><p>%s</p><p>%s</p>",
		greeting, introHook, cta,
	)
	return Message{To: to, Subject: subject, HTML: html}
}
