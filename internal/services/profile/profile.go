// Package profile содержит бизнес-логику профиля пользователя:
// чтение с кешем и сверку create-or-update с частичным обновлением полей.
package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/magabrotheeeer/profile-functions/internal/lib/optional"
	"github.com/magabrotheeeer/profile-functions/internal/lib/sl"
	"github.com/magabrotheeeer/profile-functions/internal/metrics"
	"github.com/magabrotheeeer/profile-functions/internal/models"
	"github.com/magabrotheeeer/profile-functions/internal/rabbitmq"
)

// Repository определяет операции хранилища профилей.
type Repository interface {
	// ProfileExists проверяет наличие строки; ноль строк: false без ошибки.
	ProfileExists(ctx context.Context, netlifyID string) (bool, error)
	// GetProfile возвращает профиль или models.ErrNotFound.
	GetProfile(ctx context.Context, netlifyID string) (*models.UserProfile, error)
	// InsertProfile вставляет строку; конфликт ключа: models.ErrAlreadyExists.
	InsertProfile(ctx context.Context, p models.UserProfile) (*models.UserProfile, error)
	// UpdateProfile применяет delta; ноль строк: models.ErrNotFound.
	UpdateProfile(ctx context.Context, netlifyID string, delta models.ProfileDelta) (*models.UserProfile, error)
}

// Cache описывает кеш профилей.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) (bool, error)
	Invalidate(ctx context.Context, key string) error
}

// Publisher отправляет события для ручной сверки.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, event any) error
}

// Observer собирает метрики сервиса.
type Observer interface {
	ObserveReconcile(outcome string)
	ObserveCache(hit bool)
}

// Service реализует чтение и сверку профиля.
type Service struct {
	repo    Repository
	cache   Cache
	events  Publisher
	metrics Observer
	log     *slog.Logger
	ttl     time.Duration
	now     func() time.Time
}

// NewService создаёт Service. ttl: время жизни профиля в кеше.
func NewService(repo Repository, cache Cache, events Publisher, metrics Observer, log *slog.Logger, ttl time.Duration) *Service {
	return &Service{
		repo:    repo,
		cache:   cache,
		events:  events,
		metrics: metrics,
		log:     log,
		ttl:     ttl,
		now: func() time.Time {
			return time.Now().UTC().Truncate(time.Microsecond)
		},
	}
}

func cacheKey(netlifyID string) string {
	return "profile:" + netlifyID
}

// Read возвращает профиль пользователя, сначала из кеша.
// Прочитанная из хранилища строка кладётся в кеш только если ключ свободен:
// запись, завершившаяся во время чтения, уже положила туда более новую строку.
func (s *Service) Read(ctx context.Context, netlifyID string) (*models.UserProfile, error) {
	const op = "services.profile.Read"
	log := s.log.With(sl.Op(op), slog.String("netlify_id", netlifyID))

	key := cacheKey(netlifyID)
	var cached models.UserProfile
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		log.Warn("failed to read profile from cache", sl.Err(err))
	} else if found {
		s.metrics.ObserveCache(true)
		return &cached, nil
	}
	s.metrics.ObserveCache(false)

	p, err := s.repo.GetProfile(ctx, netlifyID)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			log.Error("failed to fetch profile", sl.Err(err))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := s.cache.SetNX(ctx, key, p, s.ttl); err != nil {
		log.Warn("failed to cache profile", sl.Err(err))
	}
	return p, nil
}

// Reconcile создаёт профиль или обновляет существующий.
// created=true, если строка была вставлена.
//
// Проверка существования и запись не атомарны: при конфликте вставки
// (параллельная регистрация) запись повторяется один раз как обновление.
func (s *Service) Reconcile(ctx context.Context, identity models.Identity, fields models.ProfileFields) (*models.UserProfile, bool, error) {
	const op = "services.profile.Reconcile"
	log := s.log.With(sl.Op(op), slog.String("netlify_id", identity.ID))

	if err := ValidateFields(fields); err != nil {
		s.metrics.ObserveReconcile(metrics.OutcomeRejected)
		return nil, false, err
	}

	exists, err := s.repo.ProfileExists(ctx, identity.ID)
	if err != nil {
		log.Error("failed to check profile existence", sl.Err(err))
		s.metrics.ObserveReconcile(metrics.OutcomeFailed)
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	if exists {
		p, err := s.update(ctx, identity, fields)
		if err != nil {
			log.Error("failed to update profile", sl.Err(err))
			s.observeFailure(err)
			return nil, false, fmt.Errorf("%s: %w", op, err)
		}
		s.afterWrite(ctx, log, p)
		s.metrics.ObserveReconcile(metrics.OutcomeUpdated)
		log.Info("user profile updated")
		return p, false, nil
	}

	p, err := s.create(ctx, identity, fields)
	switch {
	case err == nil:
		s.afterWrite(ctx, log, p)
		s.metrics.ObserveReconcile(metrics.OutcomeCreated)
		log.Info("user profile created")
		return p, true, nil
	case errors.Is(err, models.ErrAlreadyExists):
		log.Warn("profile created concurrently, retrying as update")
	default:
		var vErr *models.ValidationError
		if !errors.As(err, &vErr) {
			log.Error("failed to insert profile", sl.Err(err))
		}
		s.observeFailure(err)
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	p, err = s.update(ctx, identity, fields)
	if err != nil {
		log.Error("retry after reconciliation race failed", sl.Err(err))
		s.metrics.ObserveReconcile(metrics.OutcomeRaceFailed)
		s.publish(ctx, log, rabbitmq.RoutingKeyRaceEscalated, rabbitmq.ReconciliationEvent{
			IdentityKey: identity.ID,
			Email:       identity.Email,
			Operation:   "set-user-data",
			Reason:      "update after insert conflict failed",
			OccurredAt:  s.now(),
		})
		return nil, false, fmt.Errorf("%s: %w: %w", op, models.ErrStoreWriteFailed,
			errors.Join(models.ErrReconciliationRace, err))
	}
	s.afterWrite(ctx, log, p)
	s.metrics.ObserveReconcile(metrics.OutcomeRaceRecovered)
	log.Info("user profile updated after reconciliation race")
	return p, false, nil
}

func (s *Service) create(ctx context.Context, identity models.Identity, fields models.ProfileFields) (*models.UserProfile, error) {
	plan, ok := fields.SubscriptionPlan.Get()
	plan = strings.TrimSpace(plan)
	if !ok || plan == "" {
		return nil, models.NewValidationError("subscription_plan", "subscription plan required for new registration")
	}
	username, ok := fields.Username.Get()
	username = strings.TrimSpace(username)
	if !ok || username == "" {
		return nil, models.NewValidationError("username", "Username is required and must be a non-empty string.")
	}

	now := s.now()
	p, err := s.repo.InsertProfile(ctx, models.UserProfile{
		NetlifyID:        identity.ID,
		Email:            identity.Email,
		Username:         username,
		Phone:            trimmedOrNil(fields.Phone),
		SubscriptionPlan: &plan,
		CreatedAt:        now,
		UpdatedAt:        now,
	})
	if errors.Is(err, models.ErrAlreadyExists) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrStoreWriteFailed, err)
	}
	return p, nil
}

func (s *Service) update(ctx context.Context, identity models.Identity, fields models.ProfileFields) (*models.UserProfile, error) {
	p, err := s.repo.UpdateProfile(ctx, identity.ID, buildDelta(identity.Email, fields, s.now()))
	if errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("%w: profile disappeared before update", models.ErrReconciliationRace)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrStoreWriteFailed, err)
	}
	return p, nil
}

// buildDelta включает поле в обновление только если ключ был в запросе.
// Пустая строка и null одинаково очищают phone и subscription_plan.
func buildDelta(email string, fields models.ProfileFields, now time.Time) models.ProfileDelta {
	delta := models.ProfileDelta{
		Email:     email,
		UpdatedAt: now,
	}
	if username, ok := fields.Username.Get(); ok {
		username = strings.TrimSpace(username)
		delta.Username = &username
	}
	delta.Phone = clearable(fields.Phone)
	delta.SubscriptionPlan = clearable(fields.SubscriptionPlan)
	return delta
}

func clearable(f optional.Field[string]) optional.Field[string] {
	if !f.IsSet() {
		return f
	}
	if p := trimmedOrNil(f); p != nil {
		return optional.Of(*p)
	}
	return optional.NullOf[string]()
}

func trimmedOrNil(f optional.Field[string]) *string {
	v, ok := f.Get()
	v = strings.TrimSpace(v)
	if !ok || v == "" {
		return nil
	}
	return &v
}

// afterWrite кладёт записанную строку в кеш поверх прежней.
// Если redis не принял значение, ключ удаляется, чтобы не остался старый профиль.
func (s *Service) afterWrite(ctx context.Context, log *slog.Logger, p *models.UserProfile) {
	key := cacheKey(p.NetlifyID)
	err := s.cache.Set(ctx, key, p, s.ttl)
	if err == nil {
		return
	}
	log.Warn("failed to cache written profile", sl.Err(err))
	if err := s.cache.Invalidate(ctx, key); err != nil {
		log.Warn("failed to invalidate cached profile", sl.Err(err))
	}
}

func (s *Service) observeFailure(err error) {
	var vErr *models.ValidationError
	if errors.As(err, &vErr) {
		s.metrics.ObserveReconcile(metrics.OutcomeRejected)
		return
	}
	s.metrics.ObserveReconcile(metrics.OutcomeFailed)
}

func (s *Service) publish(ctx context.Context, log *slog.Logger, routingKey string, event rabbitmq.ReconciliationEvent) {
	if err := s.events.Publish(ctx, routingKey, event); err != nil {
		log.Error("failed to publish reconciliation event", sl.Err(err))
	}
}
