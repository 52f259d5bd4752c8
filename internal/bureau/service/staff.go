package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"github.com/applybureau/bureau/internal/bureau/domain"
	"github.com/applybureau/bureau/internal/bureau/store"
	"github.com/applybureau/bureau/pkg/cryptox"
	"github.com/applybureau/bureau/pkg/idx"
	"github.com/applybureau/bureau/pkg/jwtx"
	"github.com/applybureau/bureau/pkg/slogx"
)

// StaffService authenticates staff and manages their accounts. Accounts are
// created by operators from the command line, never over HTTP.
type StaffService struct {
	Store     store.Store
	Hasher    *cryptox.Hasher
	Sealer    *cryptox.Sealer // TOTP secrets are stored sealed
	Signer    jwtx.Signer
	Issuer    string
	AccessTTL time.Duration

	// TOTPIssuer labels the account in authenticator apps.
	TOTPIssuer string

	Now func() time.Time
}

type StaffInput struct {
	Email    string
	Name     string
	Role     domain.Role
	Password string
}

type StaffSession struct {
	Staff domain.Staff
	Session
}

type TOTPEnrollment struct {
	Secret string
	URL    string // otpauth:// URI for QR codes
}

var totpOpts = totp.ValidateOpts{
	Period:    30,
	Skew:      1,
	Digits:    otp.DigitsSix,
	Algorithm: otp.AlgorithmSHA1,
}

// Create adds a staff account.
func (s *StaffService) Create(ctx context.Context, in StaffInput) (domain.Staff, error) {
	var v ValidationError

	email, ok := normalizeEmail(in.Email)
	if !ok {
		v.add("email", "is not a valid email address")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		v.add("name", "is required")
	}
	if !in.Role.Valid() {
		v.add("role", "must be admin or staff")
	}
	validatePassword(&v, in.Password)
	if err := v.err(); err != nil {
		return domain.Staff{}, err
	}

	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return domain.Staff{}, dependency("hash password", err)
	}

	now := clock(s.Now)
	st := domain.Staff{
		ID:           idx.NewAt(now).String(),
		Email:        email,
		Name:         name,
		Role:         in.Role,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = s.Store.Staff().CreateStaff(ctx, st)
	if errors.Is(err, store.ErrAlreadyExists) {
		return domain.Staff{}, ErrStaffExists
	}
	if err != nil {
		return domain.Staff{}, dependency("create staff", err)
	}

	slogx.FromContext(ctx).Info("staff member created",
		slog.String("staff_id", st.ID),
		slog.String("role", string(st.Role)),
	)
	return st, nil
}

func (s *StaffService) List(ctx context.Context) ([]domain.Staff, error) {
	staff, err := s.Store.Staff().ListStaff(ctx)
	if err != nil {
		return nil, dependency("list staff", err)
	}
	return staff, nil
}

// Login checks the password and, when the account has MFA enabled, a TOTP
// code, then signs an access token carrying the role's scopes.
func (s *StaffService) Login(ctx context.Context, email, password, code string) (StaffSession, error) {
	log := slogx.FromContext(ctx)

	email, ok := normalizeEmail(email)
	if !ok || password == "" {
		return StaffSession{}, ErrInvalidCredentials
	}

	st, err := s.Store.Staff().GetStaffByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		log.Info("staff login failed: unknown email")
		return StaffSession{}, ErrInvalidCredentials
	}
	if err != nil {
		return StaffSession{}, dependency("get staff", err)
	}

	if err := s.Hasher.Verify(password, st.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrMismatch) {
			log.Error("stored password hash unreadable", slog.String("staff_id", st.ID), slog.Any("error", err))
		}
		log.Info("staff login failed: bad password", slog.String("staff_id", st.ID))
		return StaffSession{}, ErrInvalidCredentials
	}

	now := clock(s.Now)
	amr := []string{jwtx.AMRPassword}
	if st.MFAEnabled() {
		code = strings.TrimSpace(code)
		if code == "" {
			return StaffSession{}, ErrMFARequired
		}
		if !s.validCode(ctx, st, code, now) {
			log.Info("staff login failed: bad otp", slog.String("staff_id", st.ID))
			return StaffSession{}, ErrInvalidOTP
		}
		amr = append(amr, jwtx.AMROTP)
	}

	session, err := issueSession(s.Signer, s.Issuer, s.AccessTTL, st.ID, st.Email, st.Role, amr, now)
	if err != nil {
		return StaffSession{}, err
	}

	log.Info("staff logged in", slog.String("staff_id", st.ID), slog.Any("amr", amr))
	return StaffSession{Staff: st, Session: session}, nil
}

// EnrollTOTP generates a new pending secret. It becomes active once
// VerifyTOTP accepts a code for it.
func (s *StaffService) EnrollTOTP(ctx context.Context, staffID string) (TOTPEnrollment, error) {
	st, err := s.get(ctx, staffID)
	if err != nil {
		return TOTPEnrollment{}, err
	}
	if st.MFAEnabled() {
		return TOTPEnrollment{}, ErrMFAAlreadyEnabled
	}

	issuer := s.TOTPIssuer
	if issuer == "" {
		issuer = "Apply Bureau"
	}
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      issuer,
		AccountName: st.Email,
		Period:      totpOpts.Period,
		Digits:      totpOpts.Digits,
		Algorithm:   totpOpts.Algorithm,
	})
	if err != nil {
		return TOTPEnrollment{}, dependency("generate totp secret", err)
	}

	sealed, err := s.Sealer.Seal(key.Secret())
	if err != nil {
		return TOTPEnrollment{}, dependency("seal totp secret", err)
	}
	if err := s.Store.Staff().SetStaffMFASecret(ctx, st.ID, sealed); err != nil {
		return TOTPEnrollment{}, dependency("store totp secret", err)
	}

	slogx.FromContext(ctx).Info("totp enrollment started", slog.String("staff_id", st.ID))
	return TOTPEnrollment{Secret: key.Secret(), URL: key.URL()}, nil
}

// VerifyTOTP activates a pending enrollment.
func (s *StaffService) VerifyTOTP(ctx context.Context, staffID, code string) error {
	st, err := s.get(ctx, staffID)
	if err != nil {
		return err
	}
	if st.MFAEnabled() {
		return ErrMFAAlreadyEnabled
	}
	if st.MFASecret == nil || *st.MFASecret == "" {
		return ErrMFANotEnrolled
	}

	now := clock(s.Now)
	if !s.validCode(ctx, st, strings.TrimSpace(code), now) {
		return ErrInvalidOTP
	}

	if err := s.Store.Staff().EnableStaffMFA(ctx, st.ID, now); err != nil {
		return dependency("enable mfa", err)
	}

	slogx.FromContext(ctx).Info("totp enabled", slog.String("staff_id", st.ID))
	return nil
}

func (s *StaffService) get(ctx context.Context, id string) (domain.Staff, error) {
	st, err := s.Store.Staff().GetStaffByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Staff{}, ErrStaffNotFound
	}
	if err != nil {
		return domain.Staff{}, dependency("get staff", err)
	}
	return st, nil
}

func (s *StaffService) validCode(ctx context.Context, st domain.Staff, code string, now time.Time) bool {
	secret, err := s.Sealer.Open(*st.MFASecret)
	if err != nil {
		// Usually a rotated MFA_KEY. The account needs its MFA reset.
		slogx.FromContext(ctx).Error("stored totp secret unreadable", slog.String("staff_id", st.ID), slog.Any("error", err))
		return false
	}
	ok, err := totp.ValidateCustom(code, secret, now, totpOpts)
	return err == nil && ok
}
