// Package poller runs the live-score loop: fetch the day's scoreboards,
// reconcile them against locally tracked matches, and report each newly
// scored goal exactly once.
package poller

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/golazobot/golazo/internal/models"
	"github.com/jonboulle/clockwork"
)

// Fetcher is the slice of the upstream API the poller needs.
type Fetcher interface {
	Ping(ctx context.Context) error
	Scoreboard(ctx context.Context, league string, day time.Time) ([]models.MatchWithScore, error)
}

// MatchProvider returns the currently tracked matches with their local scores.
type MatchProvider func() []models.Match

// GoalFunc is invoked once per side whose score increased, with the new
// absolute goal count for that side.
type GoalFunc func(matchID string, side models.Side, newTotal int)

type Poller struct {
	fetcher  Fetcher
	leagues  []string
	interval time.Duration
	matches  MatchProvider
	clock    clockwork.Clock

	mu         sync.Mutex
	sched      gocron.Scheduler
	running    bool
	onGoal     GoalFunc
	prevTotals map[string]int

	snapMu    sync.RWMutex
	snapshots []models.MatchWithScore
	updatedAt time.Time
}

func New(fetcher Fetcher, leagues []string, interval time.Duration, matches MatchProvider) *Poller {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Poller{
		fetcher:    fetcher,
		leagues:    leagues,
		interval:   interval,
		matches:    matches,
		clock:      clockwork.NewRealClock(),
		prevTotals: make(map[string]int),
	}
}

// OnGoal sets the goal callback. Must be set before Start for goals to be
// reported; a nil callback turns reporting off.
func (p *Poller) OnGoal(fn GoalFunc) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onGoal = fn
}

// Start begins polling: one immediate cycle, then one per interval. Calling
// Start while running is a no-op. The previous-totals table is reset on
// every (re)start. Cycles are serialized; a tick that fires while the
// previous cycle is still in flight is skipped.
func (p *Poller) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return nil
	}

	sched, err := gocron.NewScheduler(gocron.WithClock(p.clock))
	if err != nil {
		return fmt.Errorf("creating poll scheduler: %w", err)
	}

	_, err = sched.NewJob(
		gocron.DurationJob(p.interval),
		// gocron matches task parameters positionally, so the context the
		// cycle runs under has to be bound here.
		gocron.NewTask(func() { p.runCycle(context.Background()) }),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("creating poll job: %w", err)
	}

	p.prevTotals = make(map[string]int)
	p.sched = sched
	p.running = true
	sched.Start()

	slog.Info("Live score polling started", "interval", p.interval, "leagues", p.leagues)
	return nil
}

// Stop cancels the recurring schedule. Safe to call when not running. An
// in-flight cycle is not interrupted; only future ticks are prevented.
func (p *Poller) Stop() error {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return nil
	}

	sched := p.sched
	p.sched = nil
	p.running = false
	p.mu.Unlock()

	// Shutdown waits for an in-flight cycle, and that cycle takes p.mu for
	// its diff bookkeeping, so the lock must be released first.
	if err := sched.Shutdown(); err != nil {
		return fmt.Errorf("stopping poll scheduler: %w", err)
	}

	slog.Info("Live score polling stopped")
	return nil
}

func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// Snapshots returns the live snapshots published by the most recent cycle
// and the time that cycle completed.
func (p *Poller) Snapshots() ([]models.MatchWithScore, time.Time) {
	p.snapMu.RLock()
	defer p.snapMu.RUnlock()
	return p.snapshots, p.updatedAt
}

// runCycle is one fetch -> normalize -> diff -> publish pass. Nothing it
// does may escape the poller's boundary, so it recovers its own panics.
func (p *Poller) runCycle(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Poll cycle panicked", "panic", r)
		}
	}()

	if err := p.fetcher.Ping(ctx); err != nil {
		slog.Debug("Skipping poll cycle, upstream unreachable", "error", err)
		return
	}

	tracked := make(map[string]models.Match)
	for _, match := range p.matches() {
		tracked[match.ID] = match
	}

	fetched := p.fetchLeagues(ctx)

	var (
		snapshots []models.MatchWithScore
		flagged   []models.MatchWithScore
	)

	p.mu.Lock()
	onGoal := p.onGoal
	for _, snapshot := range fetched {
		local, ok := tracked[snapshot.MatchID]
		if !ok {
			continue
		}
		snapshots = append(snapshots, snapshot)

		total := snapshot.TotalGoals()
		previous, seen := p.prevTotals[snapshot.MatchID]
		if seen && total > previous && total > local.TotalGoals() {
			flagged = append(flagged, snapshot)
		}
		// Bookkeeping happens for every processed match, flagged or not.
		p.prevTotals[snapshot.MatchID] = total
	}
	p.mu.Unlock()

	p.snapMu.Lock()
	p.snapshots = snapshots
	p.updatedAt = p.clock.Now()
	p.snapMu.Unlock()

	if onGoal == nil {
		return
	}
	for _, snapshot := range flagged {
		local := tracked[snapshot.MatchID]
		if snapshot.HomeScore > local.HomeGoals {
			onGoal(snapshot.MatchID, models.SideHome, snapshot.HomeScore)
		}
		if snapshot.AwayScore > local.AwayGoals {
			onGoal(snapshot.MatchID, models.SideAway, snapshot.AwayScore)
		}
	}
}

// fetchLeagues queries every configured league concurrently. A failed league
// is logged and skipped without affecting the others.
func (p *Poller) fetchLeagues(ctx context.Context) []models.MatchWithScore {
	day := p.clock.Now()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		fetched []models.MatchWithScore
	)

	for _, league := range p.leagues {
		wg.Add(1)
		go func(league string) {
			defer wg.Done()

			matches, err := p.fetcher.Scoreboard(ctx, league, day)
			if err != nil {
				slog.Error("Error fetching scoreboard", "league", league, "error", err)
				return
			}

			mu.Lock()
			fetched = append(fetched, matches...)
			mu.Unlock()
		}(league)
	}
	wg.Wait()

	return fetched
}
