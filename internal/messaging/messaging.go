package messaging

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/sudo-init-do/hirewise/internal/alerts"
	"github.com/sudo-init-do/hirewise/internal/store"
)

// Message is one direct message between two accounts, identified by email.
type Message struct {
	ID       string    `json:"id"`
	Sender   string    `json:"sender"`
	Receiver string    `json:"receiver"`
	Content  string    `json:"content"`
	Created  time.Time `json:"created"`
}

type Service struct {
	store    store.Store
	notifier alerts.Notifier
	now      func() time.Time
	newID    func() string
}

func NewService(st store.Store, notifier alerts.Notifier) *Service {
	if notifier == nil {
		notifier = alerts.LogNotifier{}
	}
	return &Service{
		store:    st,
		notifier: notifier,
		now:      time.Now,
		newID:    func() string { return uuid.NewString()[:8] },
	}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) WithIDGenerator(gen func() string) *Service {
	s.newID = gen
	return s
}

// Send appends a message and pings the receiver. The receiver must hold an
// account.
func (s *Service) Send(ctx context.Context, sender, receiver, content string) (Message, error) {
	if content == "" {
		return Message{}, fmt.Errorf("messaging: content is required")
	}

	msg := Message{
		ID:       s.newID(),
		Sender:   sender,
		Receiver: receiver,
		Content:  content,
		Created:  s.now(),
	}
	err := s.store.Update(ctx, func(tx store.Tx) error {
		var receiverDoc map[string]any
		if err := tx.Get(store.Users, receiver, &receiverDoc); err != nil {
			return err
		}
		return tx.Put(store.Messages, msg.ID, msg)
	})
	if err != nil {
		return Message{}, err
	}

	body := fmt.Sprintf("You have a new message from %s.", sender)
	if err := s.notifier.Notify(ctx, receiver, alerts.SubjectNewMessage, body); err != nil {
		log.Printf("messaging: notify new message: %v", err)
	}
	return msg, nil
}

// Inbox lists every message the account sent or received, in insertion order.
func (s *Service) Inbox(ctx context.Context, email string) ([]Message, error) {
	msgs, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Message, 0)
	for _, m := range msgs {
		if m.Sender == email || m.Receiver == email {
			out = append(out, m)
		}
	}
	return out, nil
}

// Thread lists the conversation between two accounts, in insertion order.
func (s *Service) Thread(ctx context.Context, a, b string) ([]Message, error) {
	msgs, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Message, 0)
	for _, m := range msgs {
		if (m.Sender == a && m.Receiver == b) || (m.Sender == b && m.Receiver == a) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *Service) all(ctx context.Context) ([]Message, error) {
	var msgs []Message
	if err := s.store.List(ctx, store.Messages, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}
