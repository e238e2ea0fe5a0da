package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/sse"
	"github.com/google/uuid"
)

// Config holds notification service configuration
type Config struct {
	WorkerCount int // default: 2
	QueueSize   int // default: 1000
}

type service struct {
	hub    *sse.Hub
	config Config

	queue    chan notification.Event
	wg       sync.WaitGroup
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewNotificationService creates a new notification service with background workers
func NewNotificationService(hub *sse.Hub, cfg Config) notification.Service {
	// Set defaults
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 1000
	}

	s := &service{
		hub:    hub,
		config: cfg,
		queue:  make(chan notification.Event, cfg.QueueSize),
		stopCh: make(chan struct{}),
	}

	// Start background workers
	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	slog.Info("notification service started", "workers", cfg.WorkerCount, "queue_size", cfg.QueueSize)

	return s
}

// worker delivers queued events until stopped, then drains what is left.
func (s *service) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case ev := <-s.queue:
			s.publish(ev)
		case <-s.stopCh:
			for {
				select {
				case ev := <-s.queue:
					s.publish(ev)
				default:
					slog.Debug("notification worker stopped", "worker", id)
					return
				}
			}
		}
	}
}

func (s *service) publish(ev notification.Event) {
	room := sse.AdminRoom
	if ev.Audience == notification.AudienceUser {
		room = sse.UserRoom(ev.UserID)
	}

	s.hub.Publish(room, sse.Event{
		Event: ev.Name(),
		Data:  ev.Payload(),
	})
}

// Notify enqueues events without blocking. A full queue drops the event.
func (s *service) Notify(ctx context.Context, events ...notification.Event) {
	for _, ev := range events {
		if ev.ID == "" {
			ev.ID = uuid.NewString()
		}
		if ev.Timestamp.IsZero() {
			ev.Timestamp = time.Now()
		}

		select {
		case <-s.stopCh:
			slog.WarnContext(ctx, "notification service stopped, dropping event",
				"event", ev.Name(), "user_id", ev.UserID)
			continue
		default:
		}

		select {
		case s.queue <- ev:
		default:
			slog.WarnContext(ctx, "notification queue full, dropping event",
				"event", ev.Name(), "user_id", ev.UserID, "queue_size", s.config.QueueSize)
		}
	}
}

// Subscribe joins the user's room, and the admin room for admins.
func (s *service) Subscribe(ctx context.Context, userID string, isAdmin bool) (<-chan notification.SSEEvent, func()) {
	rooms := []string{sse.UserRoom(userID)}
	if isAdmin {
		rooms = append(rooms, sse.AdminRoom)
	}
	ch, cleanup := s.hub.Subscribe(rooms...)

	out := make(chan notification.SSEEvent, 10)

	go func() {
		defer close(out)
		for {
			select {
			case event, ok := <-ch:
				if !ok {
					return
				}
				payload, ok := event.Data.(notification.EventPayload)
				if !ok {
					continue
				}
				select {
				case out <- notification.SSEEvent{Event: event.Event, Data: payload}:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, cleanup
}

// Stop gracefully stops the notification service
func (s *service) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
		s.wg.Wait()
		slog.Info("notification service stopped")
	})
}
