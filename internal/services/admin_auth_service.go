package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dubem4521-dot/the-pork-chop-emporium/internal/model"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	pinRegex   = regexp.MustCompile(`^[0-9]{4}$`)
)

// PinStore is the durable challenge table, the only shared state in the flow.
type PinStore interface {
	DeleteByEmail(ctx context.Context, email string) error
	Create(ctx context.Context, email, pin string, expiresAt time.Time) error
	Consume(ctx context.Context, email, pin string, now time.Time) (bool, error)
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

// IdentityStore provisions accounts for verified emails.
type IdentityStore interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, email string) (*model.User, error)
}

// AdminAuthService runs the PIN login flow: issue a short-lived 4-digit code
// over email, verify it once, and hand back the account that owns the email.
// It proves control of the mailbox only; role membership is the caller's
// problem.
type AdminAuthService struct {
	Pins      PinStore
	Users     IdentityStore
	Mailer    Mailer
	Validator EmailValidator
	TTL       time.Duration

	Now func() time.Time // overridable in tests
}

func NewAdminAuthService(pins PinStore, users IdentityStore, mailer Mailer, validator EmailValidator, ttl time.Duration) *AdminAuthService {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &AdminAuthService{
		Pins:      pins,
		Users:     users,
		Mailer:    mailer,
		Validator: validator,
		TTL:       ttl,
		Now:       time.Now,
	}
}

// IssuePin replaces any outstanding challenge for the email with a fresh one
// and mails the code. The insert and the email send are sequential, not
// transactional: a delivery failure leaves the row committed, and the caller
// recovers by re-issuing, which deletes and replaces it.
func (s *AdminAuthService) IssuePin(ctx context.Context, email string) error {
	if email == "" || !emailRegex.MatchString(email) {
		return fmt.Errorf("%w: valid email is required", ErrInvalidInput)
	}
	if s.Validator != nil {
		if err := s.Validator.Validate(ctx, email); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	// best-effort: a stale row left behind here is superseded by the insert
	if err := s.Pins.DeleteByEmail(ctx, email); err != nil {
		logrus.WithError(err).WithField("email", email).Warn("could not clear previous pin")
	}

	pin, err := generatePin()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreWrite, err)
	}

	expiresAt := s.Now().Add(s.TTL)
	if err := s.Pins.Create(ctx, email, pin, expiresAt); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreWrite, err)
	}

	if err := s.Mailer.SendAdminPin(ctx, email, pin, s.TTL); err != nil {
		return fmt.Errorf("%w: %v", ErrEmailDelivery, err)
	}
	return nil
}

// VerifyPin consumes a challenge and returns the account for the email,
// creating it first if none exists. The consume is a single conditional
// delete, so the code works exactly once even under concurrent attempts.
func (s *AdminAuthService) VerifyPin(ctx context.Context, email, pin string) (*model.User, error) {
	if email == "" || pin == "" {
		return nil, fmt.Errorf("%w: email and PIN are required", ErrInvalidInput)
	}
	if !pinRegex.MatchString(pin) {
		return nil, fmt.Errorf("%w: PIN must be exactly 4 digits", ErrInvalidInput)
	}

	ok, err := s.Pins.Consume(ctx, email, pin, s.Now())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreRead, err)
	}
	if !ok {
		return nil, ErrAuthenticationFailed
	}

	user, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIdentityProvider, err)
	}
	if user == nil {
		user, err = s.Users.Create(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrIdentityProvider, err)
		}
		logrus.WithField("user_id", user.ID).Info("provisioned account on first verification")
	}
	return user, nil
}

// PurgeExpired drops challenges whose expiry has passed. Wired to the cron
// sweep in main.
func (s *AdminAuthService) PurgeExpired(ctx context.Context) {
	n, err := s.Pins.PurgeExpired(ctx, s.Now())
	if err != nil {
		logrus.WithError(err).Error("pin sweep failed")
		return
	}
	if n > 0 {
		logrus.WithField("purged", n).Info("swept expired pins")
	}
}

// generatePin draws uniformly from [1000, 9999], so the code always has four
// digits with a leading non-zero.
func generatePin() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n.Int64()+1000), nil
}
