// Package session owns the running farm sessions: it caches them, serializes
// access per farm, drives them with the clock and persists them.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/Farmstead_Go/internal/concurrency"
	"github.com/osse101/Farmstead_Go/internal/domain"
	"github.com/osse101/Farmstead_Go/internal/event"
	"github.com/osse101/Farmstead_Go/internal/farm"
	"github.com/osse101/Farmstead_Go/internal/logger"
	"github.com/osse101/Farmstead_Go/internal/metrics"
	"github.com/osse101/Farmstead_Go/internal/repository"
	"github.com/osse101/Farmstead_Go/internal/worker"
)

// Enqueuer accepts background jobs without blocking
type Enqueuer interface {
	TryEnqueue(job worker.Job) bool
}

// Config tunes the session cache
type Config struct {
	CacheSize         int
	IdleTTL           time.Duration
	DefaultDifficulty domain.Difficulty
}

// Outcome is returned by every player action
type Outcome struct {
	Result   *farm.ActionResult `json:"result"`
	Snapshot *domain.FarmState  `json:"snapshot"`
}

// AdvanceOutcome is returned by a manual clock advance
type AdvanceOutcome struct {
	Report   farm.TickReport   `json:"report"`
	Snapshot *domain.FarmState `json:"snapshot"`
}

type session struct {
	state   *domain.FarmState
	deleted atomic.Bool
	evicted atomic.Bool

	// ticks a cancelled pass never applied; guarded by the farm lock
	owed int
}

// Service manages farm sessions
type Service struct {
	engine *farm.Engine
	repo   repository.Farm
	bus    event.Bus
	locks  *concurrency.LockManager
	jobs   Enqueuer

	cache   *expirable.LRU[string, *session]
	pending sync.Map // id -> *session evicted but not yet persisted
	wg      sync.WaitGroup

	defaultDifficulty domain.Difficulty
	now               func() time.Time
}

// NewService creates a session service. bus and jobs may be nil.
func NewService(engine *farm.Engine, repo repository.Farm, bus event.Bus, jobs Enqueuer, cfg Config) *Service {
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = DefaultCacheSize
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = DefaultIdleTTL
	}
	if !cfg.DefaultDifficulty.Valid() {
		cfg.DefaultDifficulty = domain.DifficultyNormal
	}

	s := &Service{
		engine:            engine,
		repo:              repo,
		bus:               bus,
		locks:             concurrency.NewLockManager(),
		jobs:              jobs,
		defaultDifficulty: cfg.DefaultDifficulty,
		now:               time.Now,
	}
	s.cache = expirable.NewLRU[string, *session](cfg.CacheSize, s.onEvict, cfg.IdleTTL)
	return s
}

// Create starts a new session and stores it immediately
func (s *Service) Create(ctx context.Context, difficulty domain.Difficulty) (*domain.FarmState, error) {
	if difficulty == "" {
		difficulty = s.defaultDifficulty
	}
	if !difficulty.Valid() {
		return nil, fmt.Errorf("%w: "+ErrMsgDifficultyFmt, domain.ErrInvalidInput, difficulty)
	}

	id := uuid.NewString()
	state := farm.NewState(id, difficulty, s.now().UTC())
	if err := s.repo.SaveFarm(ctx, state); err != nil {
		metrics.RecordSave(err)
		return nil, err
	}
	metrics.RecordSave(nil)

	s.cache.Add(id, &session{state: state})
	s.updateActiveGauge()

	logger.FromContext(logger.WithFarmID(ctx, id)).Info(LogMsgSessionCreated, "difficulty", difficulty)
	s.publish(ctx, event.NewFarmCreatedEvent(id, difficulty))
	return state.Clone(), nil
}

// Snapshot returns a deep copy of the session state
func (s *Service) Snapshot(ctx context.Context, id string) (*domain.FarmState, error) {
	var snap *domain.FarmState
	err := s.withSession(ctx, id, true, func(sess *session) error {
		snap = sess.state.Clone()
		return nil
	})
	return snap, err
}

// Till tills an untilled or depleted plot
func (s *Service) Till(ctx context.Context, id string, plot int) (*Outcome, error) {
	return s.act(ctx, id, farm.ActionTill, func(st *domain.FarmState) (*farm.ActionResult, error) {
		return s.engine.Till(st, plot)
	})
}

// Water wets a tilled dry plot
func (s *Service) Water(ctx context.Context, id string, plot int) (*Outcome, error) {
	return s.act(ctx, id, farm.ActionWater, func(st *domain.FarmState) (*farm.ActionResult, error) {
		return s.engine.Water(st, plot)
	})
}

// Plant buys a seed and plants it
func (s *Service) Plant(ctx context.Context, id string, plot int, crop domain.CropID) (*Outcome, error) {
	return s.act(ctx, id, farm.ActionPlant, func(st *domain.FarmState) (*farm.ActionResult, error) {
		return s.engine.Plant(st, plot, crop)
	})
}

// Harvest collects a ripe crop
func (s *Service) Harvest(ctx context.Context, id string, plot int) (*Outcome, error) {
	return s.act(ctx, id, farm.ActionHarvest, func(st *domain.FarmState) (*farm.ActionResult, error) {
		return s.engine.Harvest(st, plot)
	})
}

// BuyAnimal places a new animal in an empty barn slot
func (s *Service) BuyAnimal(ctx context.Context, id string, slot int, animal domain.AnimalID) (*Outcome, error) {
	return s.act(ctx, id, farm.ActionBuyAnimal, func(st *domain.FarmState) (*farm.ActionResult, error) {
		return s.engine.BuyAnimal(st, slot, animal)
	})
}

// Feed feeds a hungry animal from inventory
func (s *Service) Feed(ctx context.Context, id string, slot int) (*Outcome, error) {
	return s.act(ctx, id, farm.ActionFeed, func(st *domain.FarmState) (*farm.ActionResult, error) {
		return s.engine.Feed(st, slot)
	})
}

// Collect takes a finished product from a barn slot
func (s *Service) Collect(ctx context.Context, id string, slot int) (*Outcome, error) {
	return s.act(ctx, id, farm.ActionCollect, func(st *domain.FarmState) (*farm.ActionResult, error) {
		return s.engine.Collect(st, slot)
	})
}

// Sell sells a quantity of one good
func (s *Service) Sell(ctx context.Context, id string, good domain.GoodID, quantity int) (*Outcome, error) {
	return s.act(ctx, id, farm.ActionSell, func(st *domain.FarmState) (*farm.ActionResult, error) {
		return s.engine.Sell(st, good, quantity)
	})
}

// SmartSell sells everything above the feed reserve
func (s *Service) SmartSell(ctx context.Context, id string) (*Outcome, error) {
	return s.act(ctx, id, farm.ActionSmartSell, func(st *domain.FarmState) (*farm.ActionResult, error) {
		return s.engine.SmartSellSurplus(st)
	})
}

// BuyUpgrade purchases the next level of an upgrade
func (s *Service) BuyUpgrade(ctx context.Context, id string, key domain.UpgradeKey) (*Outcome, error) {
	return s.act(ctx, id, farm.ActionBuyUpgrade, func(st *domain.FarmState) (*farm.ActionResult, error) {
		return s.engine.BuyUpgrade(st, key)
	})
}

// Advance applies ticks to one session immediately
func (s *Service) Advance(ctx context.Context, id string, ticks int) (*AdvanceOutcome, error) {
	if ticks < 1 || ticks > MaxAdvanceTicks {
		return nil, fmt.Errorf("%w: "+ErrMsgAdvanceRangeFmt, domain.ErrInvalidInput, MaxAdvanceTicks, ticks)
	}

	out := &AdvanceOutcome{}
	err := s.withSession(ctx, id, true, func(sess *session) error {
		out.Report = s.engine.Tick(sess.state, ticks, sess.state.Difficulty)
		out.Snapshot = sess.state.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishTick(ctx, id, out.Report, out.Snapshot.TickCount)
	return out, nil
}

// TickAll advances every cached session. It implements worker.Ticker.
// Player activity, not ticking, keeps a session alive in the cache.
func (s *Service) TickAll(ctx context.Context, ticks int) error {
	if ticks <= 0 {
		return nil
	}
	start := time.Now()
	defer func() {
		metrics.TickDuration.Observe(time.Since(start).Seconds())
		s.updateActiveGauge()
	}()

	sessions := s.cache.Values()
	for i, sess := range sessions {
		if err := ctx.Err(); err != nil {
			s.credit(sessions[i:], ticks)
			logger.FromContext(ctx).Warn(LogMsgTickAllCancelled, "error", err, "skipped", len(sessions)-i)
			return err
		}

		mu := s.locks.GetLock(sess.state.ID)
		mu.Lock()
		if sess.deleted.Load() || sess.evicted.Load() {
			mu.Unlock()
			continue
		}
		id := sess.state.ID
		n := ticks + sess.owed
		sess.owed = 0
		report := s.engine.Tick(sess.state, n, sess.state.Difficulty)
		tickCount := sess.state.TickCount
		mu.Unlock()

		s.publishTick(ctx, id, report, tickCount)
	}
	return nil
}

// credit owes ticks to sessions a cancelled pass did not reach, so the next
// pass brings them level with the ones it did
func (s *Service) credit(sessions []*session, ticks int) {
	for _, sess := range sessions {
		_ = s.locks.WithLock(sess.state.ID, func() error {
			sess.owed += ticks
			return nil
		})
	}
}

// SaveAll persists every cached session and every evicted one still waiting
// to be written. It implements worker.Saver.
func (s *Service) SaveAll(ctx context.Context) error {
	var errs []error
	for _, sess := range s.cache.Values() {
		if err := s.save(ctx, sess); err != nil {
			errs = append(errs, err)
		}
	}
	s.pending.Range(func(key, value any) bool {
		sess := value.(*session)
		if err := s.save(ctx, sess); err != nil {
			errs = append(errs, err)
			return true
		}
		if sess.evicted.Load() {
			s.pending.CompareAndDelete(key, sess)
		}
		return true
	})
	return errors.Join(errs...)
}

// Delete removes a session from memory and storage
func (s *Service) Delete(ctx context.Context, id string) error {
	mu := s.locks.GetLock(id)
	mu.Lock()

	found := false
	if sess, ok := s.cache.Peek(id); ok {
		sess.deleted.Store(true)
		found = true
	}
	if v, ok := s.pending.LoadAndDelete(id); ok {
		v.(*session).deleted.Store(true)
		found = true
	}

	err := s.repo.DeleteFarm(ctx, id)
	mu.Unlock()

	// Remove runs the eviction callback, which must not run under the farm lock
	s.cache.Remove(id)
	s.locks.Forget(id)
	s.updateActiveGauge()

	if err != nil && !(found && errors.Is(err, domain.ErrNotFound)) {
		return err
	}
	logger.FromContext(logger.WithFarmID(ctx, id)).Info(LogMsgSessionDeleted)
	return nil
}

// Shutdown waits for eviction saves in flight and then saves everything still in memory
func (s *Service) Shutdown(ctx context.Context) error {
	logger.FromContext(ctx).Info(LogMsgShutdownSaving, "active", s.cache.Len())

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	return s.SaveAll(ctx)
}

// ActiveCount returns the number of cached sessions
func (s *Service) ActiveCount() int {
	return s.cache.Len()
}

// Engine returns the simulation engine sessions run on
func (s *Service) Engine() *farm.Engine {
	return s.engine
}

// act runs one player action under the session lock and publishes its events
func (s *Service) act(ctx context.Context, id string, action farm.Action, fn func(*domain.FarmState) (*farm.ActionResult, error)) (*Outcome, error) {
	out := &Outcome{}
	err := s.withSession(ctx, id, true, func(sess *session) error {
		res, err := fn(sess.state)
		if err != nil {
			return err
		}
		sess.state.UpdatedAt = s.now().UTC()
		out.Result = res
		out.Snapshot = sess.state.Clone()
		return nil
	})

	coins := 0
	if out.Result != nil {
		coins = out.Result.CoinsDelta
	}
	metrics.RecordAction(string(action), coins, err)
	if err != nil {
		return nil, err
	}

	for _, evt := range actionEvents(id, out.Result) {
		s.publish(ctx, evt)
	}
	return out, nil
}

// withSession resolves id and runs fn holding the farm lock. touch marks the
// session as used, which refreshes its idle timer.
func (s *Service) withSession(ctx context.Context, id string, touch bool, fn func(*session) error) error {
	sess, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	mu := s.locks.GetLock(id)
	mu.Lock()
	defer mu.Unlock()

	if sess.deleted.Load() {
		return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	if err := fn(sess); err != nil {
		return err
	}
	if touch {
		sess.evicted.Store(false)
		s.cache.Add(id, sess)
		s.pending.CompareAndDelete(id, sess)
	}
	return nil
}

// get returns the cached session, reviving or loading it on a miss
func (s *Service) get(ctx context.Context, id string) (*session, error) {
	if sess, ok := s.cache.Get(id); ok {
		return sess, nil
	}

	mu := s.locks.GetLock(id)
	mu.Lock()
	defer mu.Unlock()

	// another caller may have loaded it while we waited
	if sess, ok := s.cache.Get(id); ok {
		return sess, nil
	}

	log := logger.FromContext(logger.WithFarmID(ctx, id))
	if v, ok := s.pending.Load(id); ok {
		sess := v.(*session)
		sess.evicted.Store(false)
		s.cache.Add(id, sess)
		s.pending.CompareAndDelete(id, sess)
		s.updateActiveGauge()
		log.Debug(LogMsgSessionRevived)
		return sess, nil
	}

	state, err := s.repo.LoadFarm(ctx, id)
	if err != nil {
		return nil, err
	}
	if !state.Difficulty.Valid() {
		state.Difficulty = s.defaultDifficulty
	}
	sess := &session{state: state}
	s.cache.Add(id, sess)
	s.updateActiveGauge()
	log.Info(LogMsgSessionLoaded, "tick_count", state.TickCount)
	return sess, nil
}

// save writes a consistent copy of one session
func (s *Service) save(ctx context.Context, sess *session) error {
	var state *domain.FarmState
	_ = s.locks.WithLock(sess.state.ID, func() error {
		if !sess.deleted.Load() {
			state = sess.state.Clone()
		}
		return nil
	})
	if state == nil {
		return nil
	}

	err := s.repo.SaveFarm(ctx, state)
	metrics.RecordSave(err)
	if err != nil {
		logger.FromContext(logger.WithFarmID(ctx, state.ID)).Error(LogMsgSessionSaveFail, "error", err)
	}
	return err
}

// onEvict runs under the cache lock, so it only flags the session and hands
// persistence to a background job.
func (s *Service) onEvict(id string, sess *session) {
	if sess.deleted.Load() {
		return
	}
	sess.evicted.Store(true)
	s.pending.Store(id, sess)
	metrics.SessionsEvicted.Inc()

	job := &persistJob{service: s, id: id, sess: sess}
	if s.jobs != nil && s.jobs.TryEnqueue(job) {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		_ = job.Process(context.Background())
	}()
}

func (s *Service) publish(ctx context.Context, evt event.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "type", evt.Type, "error", err)
	}
}

func (s *Service) publishTick(ctx context.Context, id string, report farm.TickReport, tickCount int64) {
	for _, evt := range tickEvents(id, report, tickCount) {
		s.publish(ctx, evt)
	}
}

func (s *Service) updateActiveGauge() {
	metrics.ActiveSessions.Set(float64(s.cache.Len()))
}
