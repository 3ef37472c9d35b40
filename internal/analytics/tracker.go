package analytics

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Cyclone1070/portfolio/internal/config"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductionEnvironment is the only environment in which events are sent.
const ProductionEnvironment = "production"

// Hit is one event ready for delivery.
type Hit struct {
	ClientID string
	Name     Event
	Params   map[string]any
	Time     time.Time
}

// Sink delivers hits somewhere: a collector, a metric, a log.
type Sink interface {
	Send(ctx context.Context, hit Hit) error
}

// core is shared by every client view of a Tracker.
type core struct {
	mu      sync.RWMutex
	closed  bool
	queue   chan Hit
	sinks   []Sink
	timeout time.Duration
	logger  *zap.Logger
	wg      sync.WaitGroup
	dropped atomic.Int64
}

// Tracker queues events for asynchronous delivery. A disabled Tracker drops
// everything without starting a goroutine. The zero value and a nil *Tracker
// are both disabled.
type Tracker struct {
	core     *core
	clientID string
}

// Enabled reports whether the configuration allows tracking: the feature
// flag is on, the environment is production and a measurement ID is set.
func Enabled(cfg *config.Config) bool {
	return cfg.Features.Analytics &&
		cfg.Analytics.Environment == ProductionEnvironment &&
		strings.TrimSpace(cfg.Analytics.MeasurementID) != ""
}

// NewTracker builds a Tracker delivering to sinks. When the configuration
// does not enable tracking the returned Tracker is inert.
func NewTracker(cfg *config.Config, logger *zap.Logger, sinks ...Sink) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("analytics")

	if !Enabled(cfg) {
		logger.Debug("analytics disabled",
			zap.Bool("feature", cfg.Features.Analytics),
			zap.String("environment", cfg.Analytics.Environment))
		return &Tracker{}
	}

	c := &core{
		queue:   make(chan Hit, cfg.Analytics.QueueSize),
		sinks:   sinks,
		timeout: time.Duration(cfg.Analytics.TimeoutMs) * time.Millisecond,
		logger:  logger,
	}
	c.wg.Add(1)
	go c.run()

	return &Tracker{core: c, clientID: uuid.NewString()}
}

// ForClient returns a view of the Tracker that reports as clientID while
// sharing the queue and sinks. Each SSH session gets its own client.
func (t *Tracker) ForClient(clientID string) *Tracker {
	if t == nil || t.core == nil {
		return &Tracker{}
	}
	return &Tracker{core: t.core, clientID: clientID}
}

// Enabled reports whether Track delivers anything.
func (t *Tracker) Enabled() bool {
	return t != nil && t.core != nil
}

// Dropped is the number of events discarded because the queue was full.
func (t *Tracker) Dropped() int64 {
	if !t.Enabled() {
		return 0
	}
	return t.core.dropped.Load()
}

// Track enqueues an event. It never blocks and never panics.
func (t *Tracker) Track(event Event, payload any) {
	if !t.Enabled() {
		return
	}
	c := t.core
	defer func() {
		if r := recover(); r != nil {
			c.logger.Warn("analytics tracking failed", zap.Any("panic", r))
		}
	}()

	params, err := Params(payload)
	if err != nil {
		c.logger.Warn("analytics payload rejected", zap.String("event", string(event)), zap.Error(err))
		return
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return
	}
	select {
	case c.queue <- Hit{ClientID: t.clientID, Name: event, Params: params, Time: time.Now()}:
	default:
		c.dropped.Add(1)
		c.logger.Debug("analytics queue full, dropping event", zap.String("event", string(event)))
	}
}

// Close stops accepting events and waits for queued ones to be delivered.
// Safe to call more than once.
func (t *Tracker) Close() {
	if !t.Enabled() {
		return
	}
	c := t.core
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.queue)
	c.mu.Unlock()

	c.wg.Wait()
}

func (c *core) run() {
	defer c.wg.Done()
	for hit := range c.queue {
		for _, sink := range c.sinks {
			c.deliver(sink, hit)
		}
	}
}

func (c *core) deliver(sink Sink, hit Hit) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Warn("analytics sink panicked", zap.Any("panic", r))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	if err := sink.Send(ctx, hit); err != nil {
		c.logger.Debug("analytics delivery failed",
			zap.String("event", string(hit.Name)),
			zap.String("sink", fmt.Sprintf("%T", sink)),
			zap.Error(err))
	}
}

// TrackPageView reports a navigation to path.
func (t *Tracker) TrackPageView(title, location, path string) {
	t.Track(EventPageView, PageView{Title: title, Location: location, Path: path})
}

// TrackLinkClick reports activation of a named link.
func (t *Tracker) TrackLinkClick(name, url string, external bool) {
	t.Track(EventLinkClick, LinkClick{Name: strings.ToLower(name), URL: url, External: external})
}

// TrackProjectInteraction reports an action on a project card.
func (t *Tracker) TrackProjectInteraction(project, action, url string) {
	t.Track(EventProjectClick, ProjectClick{Project: slug(project), Action: action, URL: url})
}

// TrackCopy reports a clipboard write.
func (t *Tracker) TrackCopy(copyType string, success bool, contentLength int) {
	t.Track(EventCopyAction, CopyAction{
		CopyType:      strings.ToLower(copyType),
		Success:       success,
		ContentLength: contentLength,
	})
}

// TrackKeyboardShortcut reports a dispatched chord.
func (t *Tracker) TrackKeyboardShortcut(shortcut, action string) {
	t.Track(EventKeyboardShortcut, KeyboardShortcut{
		Shortcut: strings.ToLower(shortcut),
		Action:   strings.ToLower(action),
	})
}

// TrackContextMenu reports the menu opening when action is empty, otherwise
// the chosen action.
func (t *Tracker) TrackContextMenu(action string) {
	if action == "" {
		t.Track(EventContextMenuOpen, nil)
		return
	}
	t.Track(EventContextMenuAction, ContextMenuAction{Action: strings.ToLower(action)})
}

// TrackProfileInteraction reports an interaction with the profile section.
func (t *Tracker) TrackProfileInteraction(kind string) {
	t.Track(EventProfileInteraction, ProfileInteraction{Type: strings.ToLower(kind)})
}
