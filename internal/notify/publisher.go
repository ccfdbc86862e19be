// Package notify publishes scan lifecycle events to a Redis stream.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	infralogger "github.com/jonesrussell/north-cloud/link-checker/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/link-checker/internal/domain"
)

// StreamName is the Redis stream consumers read scan events from.
const StreamName = "link-checker:events"

// EventType identifies a scan event.
type EventType string

// EventScanCompleted is emitted when a scan finishes with broken links.
const EventScanCompleted EventType = "scan.completed"

// ScanEvent is the JSON payload stored under the "event" field.
type ScanEvent struct {
	EventID   uuid.UUID `json:"event_id"`
	EventType EventType `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
	ScanID    int64     `json:"scan_id"`
	ScanType  string    `json:"scan_type"`
	Total     int       `json:"total"`
	Checked   int       `json:"checked"`
	Broken    int       `json:"broken"`
	Warnings  int       `json:"warnings"`
}

// Publisher publishes scan events to Redis Streams.
type Publisher struct {
	client *redis.Client
	log    infralogger.Logger
	now    func() time.Time
}

// NewPublisher creates a new event publisher.
// Returns nil if client is nil.
func NewPublisher(client *redis.Client, log infralogger.Logger) *Publisher {
	if client == nil {
		return nil
	}
	return &Publisher{client: client, log: log, now: time.Now}
}

// PublishScanCompleted announces a finished scan.
func (p *Publisher) PublishScanCompleted(ctx context.Context, scan *domain.Scan) error {
	if p == nil || p.client == nil {
		return nil
	}

	event := ScanEvent{
		EventID:   uuid.New(),
		EventType: EventScanCompleted,
		Timestamp: p.now().UTC(),
		ScanID:    scan.ID,
		ScanType:  scan.Type,
		Total:     scan.TotalLinks,
		Checked:   scan.CheckedLinks,
		Broken:    scan.BrokenLinks,
		Warnings:  scan.WarningLinks,
	}

	return p.publish(ctx, event)
}

func (p *Publisher) publish(ctx context.Context, event ScanEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	result := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamName,
		Values: map[string]any{
			"event": string(payload),
		},
	})

	if publishErr := result.Err(); publishErr != nil {
		return fmt.Errorf("publish to stream: %w", publishErr)
	}

	if p.log != nil {
		p.log.Info("Published scan event",
			infralogger.String("event_type", string(event.EventType)),
			infralogger.Int64("scan_id", event.ScanID),
			infralogger.String("stream_id", result.Val()),
		)
	}

	return nil
}
