// Package signup связывает форму регистрации с провайдером личностей и хранилищем профилей.
package signup

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/profile-functions/internal/identityprovider"
	"github.com/magabrotheeeer/profile-functions/internal/lib/sl"
	"github.com/magabrotheeeer/profile-functions/internal/metrics"
	"github.com/magabrotheeeer/profile-functions/internal/models"
	"github.com/magabrotheeeer/profile-functions/internal/rabbitmq"
)

// IdentityProvider создаёт пользователей и проверяет токен администратора.
type IdentityProvider interface {
	CreateUser(ctx context.Context, req identityprovider.CreateUserRequest) (*identityprovider.User, error)
	ListDeploys(ctx context.Context) (int, error)
}

// ProfileInserter сохраняет профиль нового пользователя.
type ProfileInserter interface {
	InsertProfile(ctx context.Context, p models.UserProfile) (*models.UserProfile, error)
}

// Publisher отправляет события для ручной сверки.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, event any) error
}

// Observer собирает метрики регистрации.
type Observer interface {
	ObserveSignup(outcome string)
}

// Service обрабатывает события отправки форм.
type Service struct {
	provider IdentityProvider
	profiles ProfileInserter
	events   Publisher
	metrics  Observer
	log      *slog.Logger
	validate *validator.Validate
	// missing: незаданные настройки провайдера; пока список не пуст, операции не выполняются.
	missing []string
	now     func() time.Time
}

// NewService создаёт Service.
func NewService(provider IdentityProvider, profiles ProfileInserter, events Publisher, metrics Observer,
	log *slog.Logger, missingConfig []string) *Service {
	return &Service{
		provider: provider,
		profiles: profiles,
		events:   events,
		metrics:  metrics,
		log:      log,
		validate: validator.New(),
		missing:  missingConfig,
		now: func() time.Time {
			return time.Now().UTC().Truncate(time.Microsecond)
		},
	}
}

// HandleSubmission создаёт пользователя у провайдера и его профиль.
// Формы с другим именем пропускаются без побочных эффектов.
//
// Если пользователь создан, а профиль не сохранён, возвращается
// *models.PartialSignupError с ключом личности. Пользователь у провайдера не удаляется.
func (s *Service) HandleSubmission(ctx context.Context, event models.SubmissionEvent) (*models.SignupResult, error) {
	const op = "services.signup.HandleSubmission"
	log := s.log.With(sl.Op(op), slog.String("form_name", event.Payload.FormName))

	if len(s.missing) > 0 {
		log.Error("identity provider is not configured", slog.Any("missing", s.missing))
		return nil, &models.ConfigError{Missing: s.missing}
	}

	if event.Payload.FormName != models.SignupFormName {
		s.metrics.ObserveSignup(metrics.SignupIgnored)
		log.Info("ignoring form submission")
		return &models.SignupResult{Ignored: true, FormName: event.Payload.FormName}, nil
	}

	data := event.Payload.Data
	if err := s.validateData(data); err != nil {
		s.metrics.ObserveSignup(metrics.SignupRejected)
		log.Info("signup data rejected", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	log.Info("processing signup", slog.String("data", data.String()))

	user, err := s.provider.CreateUser(ctx, identityprovider.CreateUserRequest{
		Email:        data.Email,
		Password:     data.Password,
		UserMetadata: identityprovider.UserMetadata{FullName: data.Name},
		EmailConfirm: true,
	})
	if err != nil {
		s.metrics.ObserveSignup(metrics.SignupProviderFailed)
		log.Error("identity provider user creation failed", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	log = log.With(slog.String("netlify_id", user.ID))

	now := s.now()
	name := strings.TrimSpace(data.Name)
	plan := strings.TrimSpace(data.SubscriptionPlan)
	profile, err := s.profiles.InsertProfile(ctx, models.UserProfile{
		NetlifyID:        user.ID,
		Email:            data.Email,
		Name:             &name,
		Username:         strings.TrimSpace(data.Username),
		Phone:            phoneOrNil(data.Phone),
		SubscriptionPlan: &plan,
		CreatedAt:        now,
		UpdatedAt:        now,
	})
	if err != nil {
		s.metrics.ObserveSignup(metrics.SignupPartialFailure)
		log.Error("profile insert failed after identity was created", sl.Err(err))
		if pubErr := s.events.Publish(ctx, rabbitmq.RoutingKeyPartialSignup, rabbitmq.ReconciliationEvent{
			IdentityKey: user.ID,
			Email:       data.Email,
			Operation:   "submission-created",
			Reason:      err.Error(),
			OccurredAt:  now,
		}); pubErr != nil {
			log.Error("failed to publish partial signup event", sl.Err(pubErr))
		}
		return nil, fmt.Errorf("%s: %w", op, &models.PartialSignupError{IdentityKey: user.ID, Err: err})
	}

	s.metrics.ObserveSignup(metrics.SignupCreated)
	log.Info("signup completed")
	return &models.SignupResult{FormName: event.Payload.FormName, Profile: profile}, nil
}

// CheckAdminToken проверяет токен администратора запросом только на чтение.
// Возвращает число найденных деплоев.
func (s *Service) CheckAdminToken(ctx context.Context) (int, error) {
	const op = "services.signup.CheckAdminToken"
	log := s.log.With(sl.Op(op))

	if len(s.missing) > 0 {
		log.Error("identity provider is not configured", slog.Any("missing", s.missing))
		return 0, &models.ConfigError{Missing: s.missing}
	}

	n, err := s.provider.ListDeploys(ctx)
	if err != nil {
		log.Error("admin token check failed", sl.Err(err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	log.Info("admin token accepted", slog.Int("deploys_found", n))
	return n, nil
}

// validateData проверяет теги структуры и то, что обязательные строки не состоят из пробелов.
func (s *Service) validateData(data models.SignupData) error {
	if err := s.validate.Struct(data); err != nil {
		return err
	}
	if strings.TrimSpace(data.Username) == "" {
		return models.NewValidationError("username", "Username is required and must be a non-empty string.")
	}
	if strings.TrimSpace(data.SubscriptionPlan) == "" {
		return models.NewValidationError("subscription_plan", "subscription plan required for new registration")
	}
	return nil
}

func phoneOrNil(phone string) *string {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil
	}
	return &phone
}
