// internal/adapters/out/push/fcm_sender.go
package push

import (
	"context"
	"errors"
	"log"

	"firebase.google.com/go/v4/messaging"

	"homeplate/internal/application/polling"
)

// FCMSender fans notification intents out to a device token through
// Firebase Cloud Messaging. It is the concrete delivery side of the intent
// stream; when no messaging client or token is configured, intents are
// logged only.
type FCMSender struct {
	Client      *messaging.Client
	DeviceToken string
}

func NewFCMSender(client *messaging.Client, deviceToken string) *FCMSender {
	return &FCMSender{Client: client, DeviceToken: deviceToken}
}

// Deliver sends one intent. Delivery is best-effort: the engine already
// decided the intent is warranted, a transport failure only logs.
func (s *FCMSender) Deliver(ctx context.Context, n polling.Notification) error {
	if s == nil || s.Client == nil || s.DeviceToken == "" {
		return errors.New("push: fcm sender not configured")
	}

	msg := &messaging.Message{
		Token: s.DeviceToken,
		Notification: &messaging.Notification{
			Title: n.Title,
			Body:  n.Body,
		},
		Data: map[string]string{
			"kind":      string(n.Kind),
			"subjectId": n.SubjectID,
		},
	}

	id, err := s.Client.Send(ctx, msg)
	if err != nil {
		return err
	}
	log.Printf("[push] delivered %s (%s)", n.Kind, id)
	return nil
}

// Pump consumes an intent channel until ctx is done, delivering each intent
// when configured and logging it otherwise.
func (s *FCMSender) Pump(ctx context.Context, intents <-chan polling.Notification) {
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-intents:
			if !ok {
				return
			}
			if s == nil || s.Client == nil || s.DeviceToken == "" {
				log.Printf("[push] %s: %s / %s", n.Kind, n.Title, n.Body)
				continue
			}
			if err := s.Deliver(ctx, n); err != nil {
				log.Printf("[push] delivery failed: %v", err)
			}
		}
	}
}
