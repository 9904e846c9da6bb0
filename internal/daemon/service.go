// Package daemon provides the long-running background wealth monitor service.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/theirongolddev/wealthpath/internal/model"
	"github.com/theirongolddev/wealthpath/internal/pipeline"
	"github.com/theirongolddev/wealthpath/internal/tracker"
)

// Store is the persistence the daemon reads from and writes through.
type Store interface {
	pipeline.Source
	Goal(ctx context.Context, id string) (model.Goal, error)
	AddGoal(ctx context.Context, in model.GoalInput) (model.Goal, error)
	UpdateGoal(ctx context.Context, id string, patch model.GoalPatch) (model.Goal, error)
	DeleteGoal(ctx context.Context, id string) error
	Project(ctx context.Context, id string) (model.Project, error)
	AddProject(ctx context.Context, in model.ProjectInput) (model.Project, error)
	UpdateProject(ctx context.Context, id string, patch model.ProjectPatch) (model.Project, error)
	DeleteProject(ctx context.Context, id string) error
	Milestone(ctx context.Context, id string) (model.Milestone, error)
	AddMilestone(ctx context.Context, in model.MilestoneInput) (model.Milestone, error)
	UpdateMilestone(ctx context.Context, id string, patch model.MilestonePatch) (model.Milestone, error)
	DeleteMilestone(ctx context.Context, id string) error
	SetMetrics(ctx context.Context, m model.Metrics) (model.Metrics, error)
	Subscribe(fn func(model.ChangeEvent)) (cancel func())
}

// Config controls the daemon runtime behavior.
type Config struct {
	Addr         string
	Interval     time.Duration
	EventsBuffer int
	StoreDriver  string
	Settings     pipeline.Settings
	// Defaults stand in for metrics that were never saved.
	Defaults model.Metrics
}

// Snapshot is a compact wealth state for status/event payloads.
type Snapshot struct {
	At             time.Time              `json:"at"`
	NetWorth       float64                `json:"net_worth"`
	MonthlyGrowth  float64                `json:"monthly_growth"`
	TargetValue    float64                `json:"target_value"`
	JourneyPercent float64                `json:"journey_percent"`
	Horizon        model.Horizon          `json:"horizon"`
	ETA            *time.Time             `json:"eta,omitempty"`
	Goals          int                    `json:"goals"`
	StatusCounts   map[tracker.Status]int `json:"status_counts"`
	PortfolioValue float64                `json:"portfolio_value"`
	Projects       int                    `json:"projects"`
}

// Delta captures snapshot deltas between polls.
type Delta struct {
	NetWorth       float64                `json:"net_worth"`
	MonthlyGrowth  float64                `json:"monthly_growth"`
	TargetValue    float64                `json:"target_value"`
	Goals          int                    `json:"goals"`
	StatusCounts   map[tracker.Status]int `json:"status_counts,omitempty"`
	PortfolioValue float64                `json:"portfolio_value"`
	Projects       int                    `json:"projects"`
}

func (d Delta) isZero() bool {
	return d.NetWorth == 0 &&
		d.MonthlyGrowth == 0 &&
		d.TargetValue == 0 &&
		d.Goals == 0 &&
		len(d.StatusCounts) == 0 &&
		d.PortfolioValue == 0 &&
		d.Projects == 0
}

// Event types.
const (
	EventSnapshot = "snapshot"
	EventDelta    = "wealth_delta"
	EventChange   = "change"
)

// Event is emitted whenever the wealth snapshot updates or the store changes.
type Event struct {
	ID        int64              `json:"id"`
	Type      string             `json:"type"`
	Timestamp time.Time          `json:"timestamp"`
	Snapshot  Snapshot           `json:"snapshot"`
	Delta     *Delta             `json:"delta,omitempty"`
	Change    *model.ChangeEvent `json:"change,omitempty"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	LastPollAt      time.Time `json:"last_poll_at"`
	PollIntervalSec int       `json:"poll_interval_sec"`
	PollCount       int64     `json:"poll_count"`
	StoreDriver     string    `json:"store_driver"`
	Summary         Snapshot  `json:"summary"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg   Config
	store Store
	now   func() time.Time
	kick  chan struct{}

	mu          sync.RWMutex
	startedAt   time.Time
	lastPollAt  time.Time
	pollCount   int64
	lastError   string
	hasSnapshot bool
	snapshot    Snapshot
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a new daemon service over st with the provided config.
func New(cfg Config, st Store) *Service {
	if cfg.Interval < 2*time.Second {
		cfg.Interval = 15 * time.Second
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8797"
	}
	if len(cfg.Settings.Multipliers) == 0 {
		cfg.Settings = pipeline.DefaultSettings(time.Now())
	}

	return &Service{
		cfg:       cfg,
		store:     st,
		now:       time.Now,
		kick:      make(chan struct{}, 1),
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Run starts HTTP endpoints and polling until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	slog.Info("daemon listening", "addr", s.cfg.Addr, "interval", s.cfg.Interval)

	unsubscribe := s.store.Subscribe(s.onChange)
	defer unsubscribe()

	// Seed initial snapshot so status is useful immediately.
	s.pollOnce(ctx)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case <-ticker.C:
			s.pollOnce(ctx)
		case <-s.kick:
			s.pollOnce(ctx)
		case err := <-errCh:
			return fmt.Errorf("daemon http server: %w", err)
		}
	}
}

// onChange forwards a store mutation to subscribers and schedules a re-poll.
func (s *Service) onChange(ch model.ChangeEvent) {
	s.mu.Lock()
	s.publishLocked(Event{
		Type:      EventChange,
		Timestamp: ch.At,
		Snapshot:  s.snapshot,
		Change:    &ch,
	})
	s.mu.Unlock()

	select {
	case s.kick <- struct{}{}:
	default:
	}
}

func (s *Service) pollOnce(ctx context.Context) {
	now := s.now()
	ov, err := pipeline.Load(ctx, s.store, s.cfg.Defaults, s.cfg.Settings, now)
	if err != nil {
		s.mu.Lock()
		s.lastError = err.Error()
		s.lastPollAt = now
		s.pollCount++
		s.mu.Unlock()
		slog.Warn("daemon poll failed", "err", err)
		return
	}

	snap := snapshotFromOverview(ov)

	var (
		ev      Event
		publish bool
	)

	s.mu.Lock()
	prev := s.snapshot
	prevExists := s.hasSnapshot

	s.hasSnapshot = true
	s.snapshot = snap
	s.lastPollAt = now
	s.pollCount++
	s.lastError = ""

	if !prevExists {
		ev = s.publishLocked(Event{
			Type:      EventSnapshot,
			Timestamp: now,
			Snapshot:  snap,
		})
		publish = true
	} else if delta := diffSnapshots(prev, snap); !delta.isZero() {
		ev = s.publishLocked(Event{
			Type:      EventDelta,
			Timestamp: now,
			Snapshot:  snap,
			Delta:     &delta,
		})
		publish = true
	}
	s.mu.Unlock()

	if publish {
		slog.Debug("daemon snapshot updated", "event", ev.Type, "id", ev.ID, "net_worth", snap.NetWorth, "goals", snap.Goals)
	}
}

func snapshotFromOverview(ov pipeline.Overview) Snapshot {
	return Snapshot{
		At:             ov.At,
		NetWorth:       ov.Metrics.NetWorth,
		MonthlyGrowth:  ov.Metrics.MonthlyGrowth,
		TargetValue:    ov.Metrics.TargetValue,
		JourneyPercent: ov.JourneyPercent,
		Horizon:        ov.Horizon,
		ETA:            ov.ETA,
		Goals:          len(ov.Goals),
		StatusCounts:   ov.StatusCounts,
		PortfolioValue: ov.Portfolio.TotalValue,
		Projects:       ov.Portfolio.Projects,
	}
}

func diffSnapshots(prev, curr Snapshot) Delta {
	d := Delta{
		NetWorth:      curr.NetWorth - prev.NetWorth,
		MonthlyGrowth: curr.MonthlyGrowth - prev.MonthlyGrowth,
		TargetValue:   curr.TargetValue - prev.TargetValue,
		Goals:         curr.Goals - prev.Goals,

		PortfolioValue: curr.PortfolioValue - prev.PortfolioValue,
		Projects:       curr.Projects - prev.Projects,
	}
	for _, st := range tracker.Statuses {
		if n := curr.StatusCounts[st] - prev.StatusCounts[st]; n != 0 {
			if d.StatusCounts == nil {
				d.StatusCounts = make(map[tracker.Status]int)
			}
			d.StatusCounts[st] = n
		}
	}
	return d
}

// publishLocked numbers ev, appends it to the ring buffer and fans it out.
// s.mu must be held so IDs reach the buffer in order.
func (s *Service) publishLocked(ev Event) Event {
	s.nextEventID++
	ev.ID = s.nextEventID
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	return ev
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		LastPollAt:      s.lastPollAt,
		PollIntervalSec: int(s.cfg.Interval.Seconds()),
		PollCount:       s.pollCount,
		StoreDriver:     s.cfg.StoreDriver,
		Summary:         s.snapshot,
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

func (s *Service) currentEvent() Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Event{
		Type:      EventSnapshot,
		Timestamp: s.now(),
		Snapshot:  s.snapshot,
	}
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
