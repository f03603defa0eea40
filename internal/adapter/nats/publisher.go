package nats

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/42roma/monitor/internal/config"
	"github.com/42roma/monitor/internal/entity"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const (
	AnnouncementCreatedSubject = "announcement.created"
	AnnouncementUpdatedSubject = "announcement.updated"
)

// Publisher broadcasts announcement lifecycle events so the signage screens
// can refresh without polling the dashboard.
type Publisher struct {
	nc     *nats.Conn
	logger *zap.Logger
}

// eventPayload is the wire form of a lifecycle event.
type eventPayload struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Color     string  `json:"color"`
	Link      *string `json:"link"`
	CreatedBy string  `json:"created_by"`
}

func NewNATSPublisher(cfg *config.NATSConfig, logger *zap.Logger) (*Publisher, error) {
	opts := []nats.Option{
		nats.Timeout(cfg.ConnectTimeout),
		nats.ErrorHandler(func(nc *nats.Conn, sub *nats.Subscription, err error) {
			logger.Error("NATS error", zap.String("subject", sub.Subject), zap.Error(err))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			logger.Warn("NATS disconnected", zap.Error(err))
		}),
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	logger.Info("Successfully connected to NATS", zap.String("url", nc.ConnectedUrl()))

	return &Publisher{nc: nc, logger: logger}, nil
}

func (p *Publisher) PublishAnnouncementCreated(ctx context.Context, announcement *entity.Announcement) error {
	return p.publish(AnnouncementCreatedSubject, announcement)
}

func (p *Publisher) PublishAnnouncementUpdated(ctx context.Context, announcement *entity.Announcement) error {
	return p.publish(AnnouncementUpdatedSubject, announcement)
}

func (p *Publisher) publish(subject string, announcement *entity.Announcement) error {
	payload := eventPayload{
		ID:        announcement.ID,
		Title:     announcement.Title,
		StartDate: announcement.StartDate,
		EndDate:   announcement.EndDate,
		Color:     announcement.Color,
		Link:      announcement.Link,
		CreatedBy: announcement.CreatedBy,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error("Failed to marshal announcement for NATS publishing",
			zap.Error(err),
			zap.String("announcement_id", announcement.ID),
			zap.String("subject", subject),
		)
		return fmt.Errorf("failed to marshal announcement for %s: %w", subject, err)
	}

	if err := p.nc.Publish(subject, data); err != nil {
		p.logger.Error("Failed to publish NATS message",
			zap.String("subject", subject),
			zap.Error(err),
			zap.String("announcement_id", announcement.ID),
		)
		return fmt.Errorf("failed to publish NATS message for %s: %w", subject, err)
	}
	p.logger.Info("Published NATS message",
		zap.String("subject", subject),
		zap.String("announcement_id", announcement.ID),
	)
	return nil
}

func (p *Publisher) Close() {
	if p.nc != nil && !p.nc.IsClosed() {
		if err := p.nc.Drain(); err != nil {
			p.logger.Error("Error draining NATS connection", zap.Error(err))
		}
		p.nc.Close()
		p.logger.Info("NATS publisher connection closed")
	}
}
