package account

import (
	"context"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	errx "github.com/shopeasy/storefront/internal/core/error"
	"github.com/shopeasy/storefront/internal/storefront/collections"
	"github.com/shopeasy/storefront/internal/storefront/model"
	logx "github.com/shopeasy/storefront/pkg/logger"
)

const MinPasswordLen = 6

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Registration rejections, checked in this order.
var (
	ErrMissingFields     = errx.Validation("please fill in all fields")
	ErrTermsNotAccepted  = errx.Validation("please accept the terms & conditions and privacy policy")
	ErrInvalidEmail      = errx.Validation("please enter a valid email address")
	ErrPasswordTooShort  = errx.Validation("password must be at least 6 characters long")
	ErrPasswordsMismatch = errx.Validation("passwords do not match")

	ErrInvalidCredentials = errx.Validation("invalid email or password")
)

type Service struct {
	storage model.Storage
	latency time.Duration
	now     func() time.Time
}

// NewService returns an account service. latency delays registration to mimic
// a remote call; once started the delay always runs to completion.
func NewService(storage model.Storage, latency time.Duration) *Service {
	return &Service{storage: storage, latency: latency, now: time.Now}
}

// Validate applies the form checks and returns the first failure.
func Validate(in model.RegisterInput) error {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	password := strings.TrimSpace(in.Password)
	confirm := strings.TrimSpace(in.ConfirmPassword)

	switch {
	case name == "" || email == "" || password == "" || confirm == "":
		return ErrMissingFields
	case !in.TermsAccepted:
		return ErrTermsNotAccepted
	case !emailRegex.MatchString(email):
		return ErrInvalidEmail
	case utf8.RuneCountInString(password) < MinPasswordLen:
		return ErrPasswordTooShort
	case password != confirm:
		return ErrPasswordsMismatch
	}
	return nil
}

// Register validates the form, rejects an email already present in the users
// collection (exact match) and otherwise stores the user and logs them in.
func (s *Service) Register(ctx context.Context, in model.RegisterInput) (*model.User, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}
	if s.latency > 0 {
		time.Sleep(s.latency)
	}

	email := strings.TrimSpace(in.Email)
	users, err := collections.Load[model.User](ctx, s.storage, model.UsersKey)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Email == email {
			logx.Info().Str("email", email).Msg("registration rejected: email already registered")
			return nil, errx.DuplicateEmail(email)
		}
	}

	now := s.now().UTC()
	user := model.User{
		ID:           now.UnixMilli(),
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		Password:     strings.TrimSpace(in.Password),
		RegisteredAt: now,
	}
	if err := collections.Save(ctx, s.storage, model.UsersKey, append(users, user)); err != nil {
		return nil, err
	}
	if err := s.startSession(ctx, email, now); err != nil {
		return nil, err
	}

	logx.Info().Int64("userID", user.ID).Msg("account created")
	return &user, nil
}

// Login starts a session for a registered email and password.
func (s *Service) Login(ctx context.Context, email, password string) (*model.Session, error) {
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)
	users, err := collections.Load[model.User](ctx, s.storage, model.UsersKey)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Email == email && u.Password == password {
			now := s.now().UTC()
			if err := s.startSession(ctx, email, now); err != nil {
				return nil, err
			}
			return &model.Session{Email: email, IsLoggedIn: true, LoginTime: now}, nil
		}
	}
	return nil, ErrInvalidCredentials
}

// Logout removes the session record entirely.
func (s *Service) Logout(ctx context.Context) error {
	return collections.Delete(ctx, s.storage, model.SessionKey)
}

// Current returns the logged in session. Missing, corrupted or logged out
// records all report ok=false.
func (s *Service) Current(ctx context.Context) (model.Session, bool, error) {
	sess, ok, err := collections.LoadRecord[model.Session](ctx, s.storage, model.SessionKey)
	if err != nil || !ok || !sess.IsLoggedIn {
		return model.Session{}, false, err
	}
	return sess, true, nil
}

func (s *Service) startSession(ctx context.Context, email string, at time.Time) error {
	return collections.SaveRecord(ctx, s.storage, model.SessionKey, model.Session{
		Email:      email,
		IsLoggedIn: true,
		LoginTime:  at,
	})
}

// DisplayName is the part of the session email before the "@".
func DisplayName(sess model.Session) string {
	name, _, _ := strings.Cut(sess.Email, "@")
	return name
}
