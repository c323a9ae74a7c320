package service

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"memberfund-backend/internal/config"
	"memberfund-backend/internal/logger"
)

// Topic naming: approvers share one topic, each member subscribes to a
// per-member one. Clients subscribe on login.
const (
	approverTopic     = "payout-approvers"
	memberTopicPrefix = "member-"
)

type pushService struct {
	client  *messaging.Client
	enabled bool
}

// NewPushService builds an FCM-backed push sender. When push is disabled
// in configuration it returns a sender whose methods are no-ops, so
// callers never need to branch.
func NewPushService(ctx context.Context, cfg config.PushConfig) (PushService, error) {
	if !cfg.Enabled {
		return &pushService{enabled: false}, nil
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(cfg.CredentialsFile))
	if err != nil {
		return nil, fmt.Errorf("initializing firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("initializing fcm client: %w", err)
	}

	return &pushService{client: client, enabled: true}, nil
}

func (s *pushService) sendToTopic(ctx context.Context, topic, title, body string, data map[string]string) error {
	if !s.enabled {
		logger.Debug("Push disabled, skipping send", "topic", topic, "title", title)
		return nil
	}

	msg := &messaging.Message{
		Topic: topic,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	logger.ExternalServiceCall("fcm", "Send", "topic", topic, "title", title)
	_, err := s.client.Send(ctx, msg)
	logger.ExternalServiceResult("fcm", "Send", err)
	if err != nil {
		return fmt.Errorf("sending push to topic %s: %w", topic, err)
	}
	return nil
}

func (s *pushService) SendToApprovers(ctx context.Context, title, body string, data map[string]string) error {
	return s.sendToTopic(ctx, approverTopic, title, body, data)
}

func (s *pushService) SendToMember(ctx context.Context, memberID int32, title, body string, data map[string]string) error {
	return s.sendToTopic(ctx, fmt.Sprintf("%s%d", memberTopicPrefix, memberID), title, body, data)
}
