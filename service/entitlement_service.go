package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"fincalc/domain"
	"fincalc/repository"
)

// Persisted keys.
const (
	KeyTrialStartDate  = "trial_start_date"
	KeyIsPro           = "is_pro"
	KeyDailyUsageCount = "daily_ai_usage_count"
	KeyDailyUsageDate  = "daily_ai_usage_date"
	KeyThemePreference = "theme_preference"
)

const (
	TrialDays       = 7
	FreeDailyLimit  = 3
	TrialDailyLimit = 10

	dateLayout = "2006-01-02"
	day        = 24 * time.Hour
)

var (
	ErrTrialAlreadyUsed = errors.New("trial already used")
	ErrTrialUnverified  = errors.New("trial state could not be read")
	ErrQuotaExceeded    = errors.New("daily AI quota exceeded")
)

// EntitlementService derives the subscription tier and the daily AI quota
// from a key-value store. Store failures are logged and the last value
// written in this process (or the default) is used instead.
type EntitlementService struct {
	store  *fallbackStore
	logger *slog.Logger
	now    func() time.Time

	// mu serializes read-modify-write cycles on the usage counter.
	mu sync.Mutex
}

type EntitlementOption func(*EntitlementService)

// WithClock replaces time.Now. Quota dates use the location of the
// returned time.
func WithClock(now func() time.Time) EntitlementOption {
	return func(s *EntitlementService) { s.now = now }
}

func NewEntitlementService(store repository.KeyValueStore, logger *slog.Logger, opts ...EntitlementOption) *EntitlementService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &EntitlementService{
		store:  newFallbackStore(store, logger),
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CheckStatus recomputes the tier and trial window and applies the daily
// reset before reporting the quota.
func (s *EntitlementService) CheckStatus(ctx context.Context) domain.EntitlementStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status(ctx)
}

// StartTrial records the trial start date. A trial can only be started once
// per install; later calls leave the stored date unchanged and return
// ErrTrialAlreadyUsed. When the stored date cannot be read nothing is
// written and ErrTrialUnverified is returned.
func (s *EntitlementService) StartTrial(ctx context.Context) (domain.EntitlementStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok, err := s.store.lookup(ctx, KeyTrialStartDate)
	if err != nil {
		return s.status(ctx), fmt.Errorf("%w: %w", ErrTrialUnverified, err)
	}
	if ok && v != "" {
		return s.status(ctx), ErrTrialAlreadyUsed
	}
	s.store.set(ctx, KeyTrialStartDate, s.now().Format(time.RFC3339))
	s.logger.Info("trial started")
	return s.status(ctx), nil
}

// UpgradeToPro marks the install as pro. There is no downgrade.
func (s *EntitlementService) UpgradeToPro(ctx context.Context) domain.EntitlementStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.set(ctx, KeyIsPro, "true")
	s.logger.Info("upgraded to pro")
	return s.status(ctx)
}

// CanUseAI reports whether required AI uses fit in today's quota.
func (s *EntitlementService) CanUseAI(ctx context.Context, required int) domain.UsageDecision {
	if required < 1 {
		required = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state(ctx)
	quota := s.refreshQuota(ctx, st.SubscriptionType)
	if quota.Unlimited {
		return domain.UsageDecision{Allowed: true, Remaining: -1}
	}

	remaining := max(0, quota.DailyLimit-quota.DailyCount)
	if remaining >= required {
		return domain.UsageDecision{Allowed: true, Remaining: remaining}
	}
	return domain.UsageDecision{
		Allowed:   false,
		Remaining: remaining,
		Reason:    denialReason(st.SubscriptionType, quota.DailyLimit),
	}
}

// RecordAIUse adds used to today's counter after the daily reset check and
// returns the updated quota.
func (s *EntitlementService) RecordAIUse(ctx context.Context, used int) domain.UsageQuota {
	if used < 1 {
		used = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	quota := s.refreshQuota(ctx, s.state(ctx).SubscriptionType)
	quota.DailyCount += used
	s.store.set(ctx, KeyDailyUsageCount, strconv.Itoa(quota.DailyCount))
	return quota
}

// Quota returns today's usage after the reset check.
func (s *EntitlementService) Quota(ctx context.Context) domain.UsageQuota {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshQuota(ctx, s.state(ctx).SubscriptionType)
}

func (s *EntitlementService) status(ctx context.Context) domain.EntitlementStatus {
	st := s.state(ctx)
	out := domain.EntitlementStatus{
		EntitlementState: st,
		Quota:            s.refreshQuota(ctx, st.SubscriptionType),
	}
	if st.IsTrialActive {
		out.DaysLeft = TrialDays - elapsedDays(*st.TrialStartDate, s.now())
	}
	return out
}

func (s *EntitlementService) state(ctx context.Context) domain.EntitlementState {
	var st domain.EntitlementState
	if v, ok := s.store.get(ctx, KeyIsPro); ok {
		st.IsPro = v == "true"
	}
	if v, ok := s.store.get(ctx, KeyTrialStartDate); ok && v != "" {
		start, err := time.Parse(time.RFC3339, v)
		if err != nil {
			s.logger.Warn("ignoring malformed trial start date", "key", KeyTrialStartDate, "value", v, "err", err)
		} else {
			st.TrialStartDate = &start
			st.IsTrialActive = elapsedDays(start, s.now()) < TrialDays
		}
	}

	switch {
	case st.IsPro:
		st.SubscriptionType = domain.SubscriptionPro
	case st.IsTrialActive:
		st.SubscriptionType = domain.SubscriptionTrial
	default:
		st.SubscriptionType = domain.SubscriptionFree
	}
	return st
}

// refreshQuota resets the counter when the stored usage date is not today.
// Running it again on the same day changes nothing.
func (s *EntitlementService) refreshQuota(ctx context.Context, tier domain.SubscriptionType) domain.UsageQuota {
	today := s.now().Format(dateLayout)
	limit, unlimited := dailyLimit(tier)
	quota := domain.UsageQuota{
		DailyLimit:    limit,
		Unlimited:     unlimited,
		LastResetDate: today,
	}

	if date, _ := s.store.get(ctx, KeyDailyUsageDate); date != today {
		s.store.set(ctx, KeyDailyUsageCount, "0")
		s.store.set(ctx, KeyDailyUsageDate, today)
		return quota
	}

	if v, ok := s.store.get(ctx, KeyDailyUsageCount); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.logger.Warn("ignoring malformed usage count", "key", KeyDailyUsageCount, "value", v)
			n = 0
		}
		quota.DailyCount = n
	}
	return quota
}

func dailyLimit(tier domain.SubscriptionType) (limit int, unlimited bool) {
	switch tier {
	case domain.SubscriptionPro:
		return 0, true
	case domain.SubscriptionTrial:
		return TrialDailyLimit, false
	default:
		return FreeDailyLimit, false
	}
}

func denialReason(tier domain.SubscriptionType, limit int) string {
	if tier == domain.SubscriptionTrial {
		return fmt.Sprintf("You've used all %d AI tips included in your trial today. Upgrade to Pro for unlimited tips.", limit)
	}
	return fmt.Sprintf("You've used your %d free AI tips for today. Start a trial or upgrade to Pro for more.", limit)
}

// elapsedDays counts whole days since start. A clock that moved backwards
// counts as day zero.
func elapsedDays(start, now time.Time) int {
	d := now.Sub(start)
	if d < 0 {
		return 0
	}
	return int(d / day)
}

// fallbackStore shadows every write in memory so reads can fall back to the
// last value written by this process when the backing store fails.
type fallbackStore struct {
	backing repository.KeyValueStore
	logger  *slog.Logger

	mu     sync.Mutex
	shadow map[string]string
}

func newFallbackStore(backing repository.KeyValueStore, logger *slog.Logger) *fallbackStore {
	return &fallbackStore{
		backing: backing,
		logger:  logger,
		shadow:  make(map[string]string),
	}
}

func (f *fallbackStore) get(ctx context.Context, key string) (string, bool) {
	if f.backing != nil {
		v, ok, err := f.backing.Get(ctx, key)
		if err == nil {
			return v, ok
		}
		f.logger.Warn("failed to read key, using in-memory value", "key", key, "err", err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.shadow[key]
	return v, ok
}

// lookup reads key without falling back on a store error. A value written
// by this process still counts even when the backing store is down.
func (f *fallbackStore) lookup(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	v, ok := f.shadow[key]
	f.mu.Unlock()
	if ok || f.backing == nil {
		return v, ok, nil
	}
	return f.backing.Get(ctx, key)
}

func (f *fallbackStore) set(ctx context.Context, key, value string) {
	f.mu.Lock()
	f.shadow[key] = value
	f.mu.Unlock()

	if f.backing == nil {
		return
	}
	if err := f.backing.Set(ctx, key, value); err != nil {
		f.logger.Warn("failed to persist key", "key", key, "err", err)
	}
}
