package reminder

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"

	"contestd/internal/models"
	"contestd/internal/normalize"
	"contestd/internal/notify"
	"contestd/internal/providers"
	"contestd/internal/reminder/interfaces"
	"contestd/internal/services"
	"contestd/internal/sources"
	"contestd/internal/structures"
)

// Scheduler drives the poll-diff-notify cycle. One goroutine owns the
// loop; registry and subscription mutation happen only there, after the
// fetch fan-out has joined. Ticks never overlap: a tick that overruns
// the interval delays the next one.
type Scheduler struct {
	config      *structures.Config
	logger      providers.Logger
	metrics     providers.MetricsProviderInterface
	registry    services.ContestRegistryInterface
	subs        services.SubscriptionStoreInterface
	srcs        []sources.Source
	sink        notify.Sink
	fileManager *FileManager
	archive     *Archive
	clock       clockwork.Clock

	running atomic.Bool
	cancel  context.CancelFunc
	done    chan struct{}
	opsMu   sync.Mutex
}

func NewScheduler(
	config *structures.Config,
	logger providers.Logger,
	metrics providers.MetricsProviderInterface,
	registry services.ContestRegistryInterface,
	subs services.SubscriptionStoreInterface,
	srcs []sources.Source,
	sink notify.Sink,
	fileManager *FileManager,
	archive *Archive,
	clock clockwork.Clock,
) interfaces.SchedulerInterface {
	return &Scheduler{
		config:      config,
		logger:      logger,
		metrics:     metrics,
		registry:    registry,
		subs:        subs,
		srcs:        srcs,
		sink:        sink,
		fileManager: fileManager,
		archive:     archive,
		clock:       clock,
	}
}

func (s *Scheduler) Init() {
	if !s.running.CompareAndSwap(false, true) {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	go s.run(ctx)
}

func (s *Scheduler) Stop() {
	if !s.running.CompareAndSwap(true, false) {
		return
	}
	s.cancel()
	<-s.done
}

func (s *Scheduler) run(ctx context.Context) {
	defer close(s.done)

	tick := s.clock.NewTicker(s.config.Poller.Interval)
	defer tick.Stop()
	save := s.clock.NewTicker(s.config.Persistence.SaveInterval)
	defer save.Stop()

	// First tick right away so a fresh start does not wait a full
	// interval before anyone hears about anything.
	s.RunTick(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.subs.Wakeup():
			// Idle between ticks; safe to apply opt-in/opt-out now.
			if n := s.subs.ApplyPending(); n > 0 {
				s.logger.Infof(providers.TypeTick, "Applied %d subscription commands", n)
			}
		case <-save.Chan():
			if err := s.Persist(); err != nil {
				s.logger.Errorf(providers.TypeApp, "Periodic persist failed: %s", err)
			}
		case <-tick.Chan():
			s.RunTick(ctx)
		}
	}
}

// RunTick executes one full cycle: apply queued subscription commands,
// fetch and normalize concurrently, then merge, re-arm, prune,
// evaluate, notify and persist strictly sequentially.
func (s *Scheduler) RunTick(ctx context.Context) {
	started := s.clock.Now()

	if n := s.subs.ApplyPending(); n > 0 {
		s.logger.Infof(providers.TypeTick, "Applied %d subscription commands", n)
	}

	batches := s.fetchAll(ctx)
	if ctx.Err() != nil {
		// Shutdown mid-tick: no partial state is evaluated or persisted.
		s.logger.Infof(providers.TypeTick, "Tick aborted by shutdown")
		return
	}

	now := s.clock.Now()

	var rescheduled []models.ContestKey
	for _, batch := range batches {
		diff := s.registry.Merge(batch.platform, batch.contests, now)
		rescheduled = append(rescheduled, diff.Rescheduled...)
		s.logger.Infof(providers.TypeTick, "%s: %d added, %d rescheduled, %d missing, %d unchanged",
			batch.platform, len(diff.Added), len(diff.Rescheduled), len(diff.Cancelled), len(diff.Unchanged))
	}

	// A contest moved while still in the future is announced again;
	// one that already started keeps its notified marks.
	for _, key := range rescheduled {
		entry, ok := s.registry.Get(key)
		if ok && entry.Contest.StartTime.After(now) {
			s.subs.ForgetContest(key)
			s.logger.Infof(providers.TypeTick, "Re-armed notifications for rescheduled %s", key)
		}
	}

	for _, entry := range s.registry.Prune(now, s.config.Poller.PruneGrace, s.config.Poller.CancelMissThreshold) {
		key := entry.Key()
		s.subs.ForgetContest(key)
		if s.archive != nil && entry.Contest.Status(now) == models.StatusEnded {
			s.archive.Add(entry.Contest)
		}
		s.logger.Infof(providers.TypeTick, "Pruned %s", key)
	}

	s.notifyDue(ctx, now)

	s.metrics.SetContestsTracked(s.registry.Count())
	s.metrics.SetGroupsEnabled(s.subs.CountEnabled())
	s.metrics.IncTicksTotal()
	s.metrics.ObserveTickDuration(s.clock.Now().Sub(started))

	if err := s.Persist(); err != nil {
		// The in-memory marks still hold for this run; losing them to a
		// restart trades a duplicate for a miss, which is the intended
		// direction.
		s.logger.Errorf(providers.TypeApp, "PERSISTENCE FAILURE, state not durable: %s", err)
	}
}

type fetchBatch struct {
	platform models.Platform
	contests []models.Contest
}

// fetchAll fans out to every source concurrently with a per-source
// timeout. A failed or timed-out source yields no batch and no error:
// the tick proceeds on whatever arrived.
func (s *Scheduler) fetchAll(ctx context.Context) []fetchBatch {
	slots := make([]*fetchBatch, len(s.srcs))

	var g errgroup.Group
	for i, src := range s.srcs {
		i, src := i, src
		g.Go(func() error {
			fctx, cancel := context.WithTimeout(ctx, s.config.Poller.SourceTimeout)
			defer cancel()

			raws, err := src.Fetch(fctx)
			if err != nil {
				s.metrics.IncSourceFailures(string(src.Platform()))
				s.logger.Warnf(providers.TypeTick, "Source %s skipped: %s", src.Platform(), err)
				return nil
			}

			contests, dropped := normalize.Batch(src.Platform(), raws)
			for _, derr := range dropped {
				s.logger.Warnf(providers.TypeTick, "Dropped record: %s", derr)
			}
			slots[i] = &fetchBatch{platform: src.Platform(), contests: contests}
			return nil
		})
	}
	_ = g.Wait()

	batches := make([]fetchBatch, 0, len(slots))
	for _, b := range slots {
		if b != nil {
			batches = append(batches, *b)
		}
	}
	return batches
}

// notifyDue emits reminders for contests starting within the lead-time
// window, in ascending start order, at most once per (group, contest).
// Marking happens before delivery: a crash in between loses a reminder
// instead of duplicating it.
func (s *Scheduler) notifyDue(ctx context.Context, now time.Time) {
	upcoming := s.registry.Upcoming(now, s.config.Poller.LeadTime)
	if len(upcoming) == 0 {
		return
	}
	groups := s.subs.EnabledGroups()

	for i := range upcoming {
		contest := &upcoming[i].Contest
		key := contest.Key()
		payload := notify.NewPayload(contest, now)

		for _, group := range groups {
			if s.subs.HasBeenNotified(group, key) {
				continue
			}
			s.subs.MarkNotified(group, key)
			s.metrics.IncNotificationsTotal()
			if err := s.sink.Deliver(ctx, group, payload); err != nil {
				s.logger.Warnf(providers.TypeNotify, "Deliver %s to group %s failed: %s", key, group, err)
			}
		}
	}
}

func (s *Scheduler) Restore() error {
	return s.fileManager.LoadFromFile(s.config.Persistence.FilePath)
}

func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	start := s.clock.Now()
	if err := s.fileManager.SaveToFile(s.config.Persistence.FilePath); err != nil {
		return err
	}
	if s.archive != nil {
		if err := s.archive.Flush(); err != nil {
			return err
		}
	}
	s.metrics.ObservePersistenceDuration(s.clock.Now().Sub(start))
	return nil
}
