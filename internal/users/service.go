package users

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ollanpharmacy/pharmacy-api/internal/redisx"
)

// Store is the persistence surface the service needs. Implemented by Repo;
// tests substitute an in-memory map.
type Store interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	MarkVerified(ctx context.Context, id string) error
	UpdatePassword(ctx context.Context, id, hash string) error
	UpdateProfile(ctx context.Context, id, name, email string) error
	UpdateRole(ctx context.Context, id string, role Role) error
}

// Mailer sends a plain text email. Implemented by notify.EmailSender.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type Service struct {
	Store  Store
	Codes  CodeStore
	Mailer Mailer
}

var (
	ErrInvalidCode       = errors.New("invalid or expired verification code")
	ErrAlreadyVerified   = errors.New("email already verified")
	ErrInvalidResetToken = errors.New("invalid or expired reset token")
	ErrInvalidRole       = errors.New("invalid role")
)

func newVerificationCode() string {
	return fmt.Sprintf("%06d", rand.IntN(1000000))
}

// Signup registers an unverified customer account and emails a verification
// code. A failed email is logged, not fatal: the code stays stored and the
// user can request a resend.
func (s *Service) Signup(ctx context.Context, name, email, phone, password string) (User, error) {
	if _, err := s.Store.GetByEmail(ctx, email); err == nil {
		return User{}, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}
	u := User{Name: name, Email: email, Phone: phone, Role: RoleCustomer, PasswordHash: string(hash)}
	if err := s.Store.Create(ctx, &u); err != nil {
		return User{}, err
	}

	code := newVerificationCode()
	key := fmt.Sprintf(redisx.KeyVerifyCode, email)
	if err := s.Codes.SetCode(ctx, key, code, redisx.TTLVerifyCode); err != nil {
		return User{}, err
	}
	if s.Mailer != nil {
		subject := "Ollan Pharmacy: Verify your email"
		body := fmt.Sprintf("Hi %s! Your verification code is %s. It expires in 15 minutes.", name, code)
		if err := s.Mailer.Send(ctx, email, subject, body); err != nil {
			log.Printf("verification email to %s failed: %v", email, err)
		}
	}
	return u, nil
}

func (s *Service) VerifyEmail(ctx context.Context, email, code string) error {
	key := fmt.Sprintf(redisx.KeyVerifyCode, email)
	stored, err := s.Codes.GetCode(ctx, key)
	if err != nil || stored == "" || stored != code {
		return ErrInvalidCode
	}
	u, err := s.Store.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if err := s.Store.MarkVerified(ctx, u.ID); err != nil {
		return err
	}
	_ = s.Codes.DelCode(ctx, key)
	return nil
}

// ResendVerification replaces the pending code with a fresh one. Unlike
// Signup, a failed email is the whole point of the call, so it propagates.
func (s *Service) ResendVerification(ctx context.Context, email string) error {
	u, err := s.Store.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if u.Verified {
		return ErrAlreadyVerified
	}

	code := newVerificationCode()
	key := fmt.Sprintf(redisx.KeyVerifyCode, email)
	if err := s.Codes.SetCode(ctx, key, code, redisx.TTLVerifyCode); err != nil {
		return err
	}
	subject := "Ollan Pharmacy: Verify your email"
	body := fmt.Sprintf("Hi %s! Your new verification code is %s. It expires in 15 minutes.", u.Name, code)
	return s.Mailer.Send(ctx, email, subject, body)
}

// ForgotPassword issues a reset token, valid for one hour, and emails it.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.Store.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	key := fmt.Sprintf(redisx.KeyResetToken, token)
	if err := s.Codes.SetCode(ctx, key, u.ID, redisx.TTLResetToken); err != nil {
		return err
	}
	subject := "Ollan Pharmacy: Password reset"
	body := fmt.Sprintf("Hi %s! Use this token to reset your password: %s. It expires in 1 hour.", u.Name, token)
	return s.Mailer.Send(ctx, email, subject, body)
}

// ResetPassword consumes a reset token and replaces the password hash.
func (s *Service) ResetPassword(ctx context.Context, token, password string) error {
	key := fmt.Sprintf(redisx.KeyResetToken, token)
	userID, err := s.Codes.GetCode(ctx, key)
	if err != nil {
		return err
	}
	if userID == "" {
		return ErrInvalidResetToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.Store.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return err
	}
	_ = s.Codes.DelCode(ctx, key)
	return nil
}

// UpdateProfile changes name and email; an empty field keeps the current
// value.
func (s *Service) UpdateProfile(ctx context.Context, id, name, email string) (User, error) {
	u, err := s.Store.GetByID(ctx, id)
	if err != nil {
		return User{}, err
	}
	if name == "" {
		name = u.Name
	}
	if email == "" {
		email = u.Email
	}
	if err := s.Store.UpdateProfile(ctx, id, name, email); err != nil {
		return User{}, err
	}
	u.Name, u.Email = name, email
	return u, nil
}

// UpdateUserRole is the admin path for promoting accounts, including riders.
func (s *Service) UpdateUserRole(ctx context.Context, id string, role Role) (User, error) {
	switch role {
	case RoleCustomer, RoleAdmin, RoleRider:
	default:
		return User{}, ErrInvalidRole
	}
	u, err := s.Store.GetByID(ctx, id)
	if err != nil {
		return User{}, err
	}
	if err := s.Store.UpdateRole(ctx, id, role); err != nil {
		return User{}, err
	}
	u.Role = role
	return u, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (User, error) {
	u, err := s.Store.GetByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return User{}, ErrBadCredential
	}
	if err != nil {
		return User{}, err
	}
	if !u.Verified {
		return User{}, ErrNotVerified
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return User{}, ErrBadCredential
	}
	return u, nil
}
