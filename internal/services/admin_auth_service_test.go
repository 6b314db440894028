package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dubem4521-dot/the-pork-chop-emporium/internal/model"
)

// fakePinStore mirrors the semantics of the admin_pins table: rows survive
// expiry until swept, Consume is an atomic conditional delete.
type fakePinStore struct {
	rows    []pinRow
	creates int
	failing bool
}

type pinRow struct {
	email     string
	pin       string
	expiresAt time.Time
}

func (f *fakePinStore) DeleteByEmail(ctx context.Context, email string) error {
	kept := f.rows[:0]
	for _, r := range f.rows {
		if r.email != email {
			kept = append(kept, r)
		}
	}
	f.rows = kept
	return nil
}

func (f *fakePinStore) Create(ctx context.Context, email, pin string, expiresAt time.Time) error {
	if f.failing {
		return errors.New("connection refused")
	}
	f.creates++
	f.rows = append(f.rows, pinRow{email: email, pin: pin, expiresAt: expiresAt})
	return nil
}

func (f *fakePinStore) Consume(ctx context.Context, email, pin string, now time.Time) (bool, error) {
	if f.failing {
		return false, errors.New("connection refused")
	}
	for i, r := range f.rows {
		if r.email == email && r.pin == pin && r.expiresAt.After(now) {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePinStore) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	var purged int64
	kept := f.rows[:0]
	for _, r := range f.rows {
		if r.expiresAt.After(now) {
			kept = append(kept, r)
		} else {
			purged++
		}
	}
	f.rows = kept
	return purged, nil
}

type mockIdentityStore struct{ mock.Mock }

func (m *mockIdentityStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if u, _ := args.Get(0).(*model.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockIdentityStore) Create(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if u, _ := args.Get(0).(*model.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

// mockMailer records the last PIN it "delivered"
type mockMailer struct {
	mock.Mock
	lastPin string
}

func (m *mockMailer) SendAdminPin(ctx context.Context, toEmail, pin string, ttl time.Duration) error {
	m.lastPin = pin
	return m.Called(ctx, toEmail, pin, ttl).Error(0)
}

func (m *mockMailer) SendOrderConfirmation(ctx context.Context, toEmail string, order *model.Order, items []model.OrderItem) error {
	return m.Called(ctx, toEmail, order, items).Error(0)
}

func (m *mockMailer) SendAdminOrderAlert(ctx context.Context, toEmail, customerEmail string, order *model.Order, items []model.OrderItem) error {
	return m.Called(ctx, toEmail, customerEmail, order, items).Error(0)
}

func knownUser(email string) *model.User {
	return &model.User{ID: "11111111-2222-3333-4444-555555555555", Email: email}
}

func newAuthService(pins *fakePinStore, users *mockIdentityStore, mailer *mockMailer) *AdminAuthService {
	return NewAdminAuthService(pins, users, mailer, NewLocalValidator(), 10*time.Minute)
}

func TestIssueAndVerifyOnce(t *testing.T) {
	pins := &fakePinStore{}
	users := &mockIdentityStore{}
	mailer := &mockMailer{}
	mailer.On("SendAdminPin", mock.Anything, "a@x.com", mock.Anything, mock.Anything).Return(nil)
	users.On("FindByEmail", mock.Anything, "a@x.com").Return(knownUser("a@x.com"), nil)

	svc := newAuthService(pins, users, mailer)

	require.NoError(t, svc.IssuePin(context.Background(), "a@x.com"))
	require.Len(t, pins.rows, 1)
	require.Len(t, mailer.lastPin, 4)

	user, err := svc.VerifyPin(context.Background(), "a@x.com", mailer.lastPin)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email)
	assert.Empty(t, pins.rows, "challenge must be deleted on first use")

	// one-time use: the same code fails the second time
	_, err = svc.VerifyPin(context.Background(), "a@x.com", mailer.lastPin)
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestVerifyExpiredPin(t *testing.T) {
	pins := &fakePinStore{}
	users := &mockIdentityStore{}
	mailer := &mockMailer{}
	mailer.On("SendAdminPin", mock.Anything, "a@x.com", mock.Anything, mock.Anything).Return(nil)

	svc := newAuthService(pins, users, mailer)
	issuedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return issuedAt }

	require.NoError(t, svc.IssuePin(context.Background(), "a@x.com"))

	// just before expiry the code would still match; just after it must not,
	// even though the row physically remains
	svc.Now = func() time.Time { return issuedAt.Add(10*time.Minute + time.Second) }
	_, err := svc.VerifyPin(context.Background(), "a@x.com", mailer.lastPin)
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
	assert.Len(t, pins.rows, 1, "expired row is not deleted by a failed verify")
}

func TestReissueInvalidatesPriorCode(t *testing.T) {
	pins := &fakePinStore{}
	users := &mockIdentityStore{}
	mailer := &mockMailer{}
	mailer.On("SendAdminPin", mock.Anything, "a@x.com", mock.Anything, mock.Anything).Return(nil)
	users.On("FindByEmail", mock.Anything, "a@x.com").Return(knownUser("a@x.com"), nil)

	svc := newAuthService(pins, users, mailer)

	require.NoError(t, svc.IssuePin(context.Background(), "a@x.com"))
	first := mailer.lastPin
	require.NoError(t, svc.IssuePin(context.Background(), "a@x.com"))
	second := mailer.lastPin

	require.Len(t, pins.rows, 1, "at most one live challenge per email")

	if first != second {
		_, err := svc.VerifyPin(context.Background(), "a@x.com", first)
		assert.ErrorIs(t, err, ErrAuthenticationFailed)
	}

	_, err := svc.VerifyPin(context.Background(), "a@x.com", second)
	assert.NoError(t, err)
}

func TestVerifyMalformedPin(t *testing.T) {
	pins := &fakePinStore{failing: true} // any store access would error out
	svc := newAuthService(pins, &mockIdentityStore{}, &mockMailer{})

	for _, pin := range []string{"", "123", "12345", "12a4", "١٢٣٤"} {
		_, err := svc.VerifyPin(context.Background(), "a@x.com", pin)
		assert.ErrorIs(t, err, ErrInvalidInput, "pin %q", pin)
	}

	_, err := svc.VerifyPin(context.Background(), "", "1234")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestIssueInvalidEmail(t *testing.T) {
	svc := newAuthService(&fakePinStore{}, &mockIdentityStore{}, &mockMailer{})

	for _, email := range []string{"", "not-an-email", "a@b"} {
		err := svc.IssuePin(context.Background(), email)
		assert.ErrorIs(t, err, ErrInvalidInput, "email %q", email)
	}
}

func TestWrongCodeLeavesChallengeIntact(t *testing.T) {
	pins := &fakePinStore{}
	users := &mockIdentityStore{}
	mailer := &mockMailer{}
	mailer.On("SendAdminPin", mock.Anything, "a@x.com", mock.Anything, mock.Anything).Return(nil)
	users.On("FindByEmail", mock.Anything, "a@x.com").Return(knownUser("a@x.com"), nil)

	svc := newAuthService(pins, users, mailer)
	require.NoError(t, svc.IssuePin(context.Background(), "a@x.com"))

	// generated codes are always >= 1000, so 0000 can never match
	_, err := svc.VerifyPin(context.Background(), "a@x.com", "0000")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
	assert.Len(t, pins.rows, 1, "a failed guess must not consume the challenge")

	_, err = svc.VerifyPin(context.Background(), "a@x.com", mailer.lastPin)
	assert.NoError(t, err)
}

func TestIssueStoreWriteFailure(t *testing.T) {
	pins := &fakePinStore{failing: true}
	mailer := &mockMailer{}

	svc := newAuthService(pins, &mockIdentityStore{}, mailer)
	err := svc.IssuePin(context.Background(), "a@x.com")

	assert.ErrorIs(t, err, ErrStoreWrite)
	mailer.AssertNotCalled(t, "SendAdminPin", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestIssueEmailDeliveryFailure(t *testing.T) {
	pins := &fakePinStore{}
	mailer := &mockMailer{}
	mailer.On("SendAdminPin", mock.Anything, "a@x.com", mock.Anything, mock.Anything).
		Return(errors.New("provider down"))

	svc := newAuthService(pins, &mockIdentityStore{}, mailer)
	err := svc.IssuePin(context.Background(), "a@x.com")

	assert.ErrorIs(t, err, ErrEmailDelivery)
	// the row is already committed; recovery is a fresh issuance
	assert.Len(t, pins.rows, 1)
}

func TestVerifyProvisionsMissingAccount(t *testing.T) {
	pins := &fakePinStore{}
	users := &mockIdentityStore{}
	mailer := &mockMailer{}
	mailer.On("SendAdminPin", mock.Anything, "new@x.com", mock.Anything, mock.Anything).Return(nil)
	users.On("FindByEmail", mock.Anything, "new@x.com").Return(nil, nil)
	users.On("Create", mock.Anything, "new@x.com").Return(knownUser("new@x.com"), nil)

	svc := newAuthService(pins, users, mailer)
	require.NoError(t, svc.IssuePin(context.Background(), "new@x.com"))

	user, err := svc.VerifyPin(context.Background(), "new@x.com", mailer.lastPin)
	require.NoError(t, err)
	assert.Equal(t, "new@x.com", user.Email)
	users.AssertCalled(t, "Create", mock.Anything, "new@x.com")
}

func TestVerifyIdentityProviderFailure(t *testing.T) {
	pins := &fakePinStore{}
	users := &mockIdentityStore{}
	mailer := &mockMailer{}
	mailer.On("SendAdminPin", mock.Anything, "a@x.com", mock.Anything, mock.Anything).Return(nil)
	users.On("FindByEmail", mock.Anything, "a@x.com").Return(nil, errors.New("directory down"))

	svc := newAuthService(pins, users, mailer)
	require.NoError(t, svc.IssuePin(context.Background(), "a@x.com"))

	_, err := svc.VerifyPin(context.Background(), "a@x.com", mailer.lastPin)
	assert.ErrorIs(t, err, ErrIdentityProvider)
}

func TestPurgeExpired(t *testing.T) {
	pins := &fakePinStore{}
	mailer := &mockMailer{}
	mailer.On("SendAdminPin", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	svc := newAuthService(pins, &mockIdentityStore{}, mailer)
	issuedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return issuedAt }

	require.NoError(t, svc.IssuePin(context.Background(), "old@x.com"))

	svc.Now = func() time.Time { return issuedAt.Add(time.Hour) }
	require.NoError(t, svc.IssuePin(context.Background(), "fresh@x.com"))

	svc.PurgeExpired(context.Background())
	require.Len(t, pins.rows, 1)
	assert.Equal(t, "fresh@x.com", pins.rows[0].email)
}

func TestGeneratePinRange(t *testing.T) {
	for i := 0; i < 500; i++ {
		pin, err := generatePin()
		require.NoError(t, err)
		require.Len(t, pin, 4)
		assert.GreaterOrEqual(t, pin, "1000")
		assert.LessOrEqual(t, pin, "9999")
	}
}
