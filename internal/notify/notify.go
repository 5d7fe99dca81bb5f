// Package notify keeps the stack of transient toast messages shown to the
// guest.
package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/salmankhalil12/Restaurant-Site/internal/domain"
	"github.com/salmankhalil12/Restaurant-Site/pkg/logger"
)

// DefaultTTL is how long a toast stays visible.
const DefaultTTL = 3 * time.Second

// Notifier shows a message to the guest. It is fire and forget.
type Notifier interface {
	Notify(ctx context.Context, title, message string, kind domain.ToastKind)
}

// Feed stacks toasts and drops each one after the TTL.
type Feed struct {
	mu     sync.Mutex
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time
	toasts []domain.Toast
	timers map[string]*time.Timer
	closed bool
}

// NewFeed creates a feed. A non-positive ttl selects DefaultTTL.
func NewFeed(ttl time.Duration, l *slog.Logger) *Feed {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if l == nil {
		l = slog.Default()
	}
	return &Feed{
		ttl:    ttl,
		logger: l,
		now:    time.Now,
		timers: make(map[string]*time.Timer),
	}
}

// Notify pushes a toast. Unknown kinds are shown as success. After Close the
// toast is only logged.
func (f *Feed) Notify(ctx context.Context, title, message string, kind domain.ToastKind) {
	if !kind.IsValid() {
		kind = domain.ToastSuccess
	}

	now := f.now()
	toast := domain.Toast{
		ID:        uuid.NewString(),
		Title:     title,
		Message:   message,
		Kind:      kind,
		CreatedAt: now,
		ExpiresAt: now.Add(f.ttl),
	}

	logger.WithContext(ctx, f.logger).InfoContext(ctx, "toast",
		slog.String("toast_id", toast.ID),
		slog.String("kind", string(kind)),
		slog.String("title", title),
		slog.String("message", message),
	)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.toasts = append(f.toasts, toast)
	f.timers[toast.ID] = time.AfterFunc(f.ttl, func() { f.dismiss(toast.ID) })
}

// Active returns undismissed toasts, oldest first.
func (f *Feed) Active() []domain.Toast {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Toast(nil), f.toasts...)
}

// Close stops all pending timers and clears the feed.
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, t := range f.timers {
		t.Stop()
		delete(f.timers, id)
	}
	f.toasts = nil
	f.closed = true
}

func (f *Feed) dismiss(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.timers, id)
	for i := range f.toasts {
		if f.toasts[i].ID == id {
			f.toasts = append(f.toasts[:i], f.toasts[i+1:]...)
			return
		}
	}
}
