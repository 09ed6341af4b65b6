package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
	"wanderwise/internal/models/db_models"
	"wanderwise/internal/models/request_models"
	mem "wanderwise/pkg/memcache"
	"wanderwise/pkg/utils"
)

type memAccountRepo struct {
	byEmail map[string]*db_models.Account
}

func (r *memAccountRepo) InsertTx(_ context.Context, account *db_models.Account) error {
	if _, ok := r.byEmail[account.Email]; ok {
		return gorm.ErrDuplicatedKey
	}
	account.ID = uuid.New()
	r.byEmail[account.Email] = account
	return nil
}

func (r *memAccountRepo) FindById(_ context.Context, id string) (*db_models.Account, error) {
	for _, a := range r.byEmail {
		if a.ID.String() == id {
			return a, nil
		}
	}
	return nil, nil
}

func (r *memAccountRepo) FindByEmail(_ context.Context, email string) (*db_models.Account, error) {
	return r.byEmail[email], nil
}

func (r *memAccountRepo) UpdateName(ctx context.Context, id string, name string) error {
	a, _ := r.FindById(ctx, id)
	if a == nil {
		return gorm.ErrRecordNotFound
	}
	a.Name = name
	return nil
}

func (r *memAccountRepo) UpdatePasswordHash(_ context.Context, email string, hash string) error {
	a, ok := r.byEmail[email]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.PasswordHash = hash
	return nil
}

type recordingMailer struct {
	resetTo    string
	resetToken string
	notices    int
}

func (m *recordingMailer) SendMailToResetPassword(_ context.Context, to, token string) error {
	m.resetTo, m.resetToken = to, token
	return nil
}

func (m *recordingMailer) SendContactNotice(context.Context, string, string, string, string) error {
	m.notices++
	return nil
}

func newTestAccountService(t *testing.T) (AccountServiceInterface, *recordingMailer, *utils.JWTManager) {
	mailer := &recordingMailer{}
	jwt := utils.NewJWTManager("test-secret", time.Hour)
	svc := NewAccountService(
		&memAccountRepo{byEmail: map[string]*db_models.Account{}},
		jwt,
		mem.NewResetTokens(time.Minute),
		time.Minute,
		mailer,
		[]string{"Boss@Example.com"},
		zaptest.NewLogger(t),
	)
	return svc, mailer, jwt
}

func TestAccountRegisterLoginAndProfile(t *testing.T) {
	ctx := context.Background()
	svc, _, jwt := newTestAccountService(t)

	signUp := request_models.SignUpRequest{DisplayName: "Ana", Email: " Ana@Example.com ", Password: "secret1"}
	if err := svc.CreateAccount(ctx, signUp); err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	if err := svc.CreateAccount(ctx, signUp); !errors.Is(err, utils.ErrEmailAlreadyExists) {
		t.Errorf("duplicate err = %v", err)
	}

	if _, err := svc.Login(ctx, request_models.LoginRequest{Email: "ana@example.com", Password: "wrong!!"}); !errors.Is(err, utils.ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v", err)
	}
	if _, err := svc.Login(ctx, request_models.LoginRequest{Email: "nobody@example.com", Password: "secret1"}); !errors.Is(err, utils.ErrInvalidCredentials) {
		t.Errorf("unknown email err = %v", err)
	}

	login, err := svc.Login(ctx, request_models.LoginRequest{Email: "ANA@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	claims, err := jwt.ValidateToken(login.Token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Role != db_models.RoleUser {
		t.Errorf("role = %q", claims.Role)
	}

	me, err := svc.UpdateProfile(ctx, claims.UserID(), request_models.UpdateProfileRequest{DisplayName: "Ana Maria"})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if me.Name != "Ana Maria" || me.Email != "ana@example.com" {
		t.Errorf("profile = %+v", me)
	}

	if _, err := svc.GetAccount(ctx, uuid.NewString()); !errors.Is(err, utils.ErrAccountNotFound) {
		t.Errorf("GetAccount unknown err = %v", err)
	}
}

func TestAccountAdminEmailsGetAdminRole(t *testing.T) {
	ctx := context.Background()
	svc, _, jwt := newTestAccountService(t)

	if err := svc.CreateAccount(ctx, request_models.SignUpRequest{DisplayName: "Boss", Email: "boss@example.com", Password: "secret1"}); err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	login, err := svc.Login(ctx, request_models.LoginRequest{Email: "boss@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	claims, _ := jwt.ValidateToken(login.Token)
	if claims == nil || claims.Role != db_models.RoleAdmin {
		t.Errorf("claims = %+v, want admin", claims)
	}
}

func TestAccountPasswordReset(t *testing.T) {
	ctx := context.Background()
	svc, mailer, _ := newTestAccountService(t)

	if err := svc.CreateAccount(ctx, request_models.SignUpRequest{DisplayName: "Ana", Email: "ana@example.com", Password: "secret1"}); err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}

	if err := svc.ForgotPassword(ctx, "ghost@example.com"); err != nil {
		t.Errorf("unknown email err = %v", err)
	}
	if mailer.resetToken != "" {
		t.Fatal("mail sent for unknown email")
	}

	if err := svc.ForgotPassword(ctx, "ana@example.com"); err != nil {
		t.Fatalf("ForgotPassword: %v", err)
	}
	if mailer.resetTo != "ana@example.com" || mailer.resetToken == "" {
		t.Fatalf("mail = %+v", mailer)
	}

	reset := request_models.ResetPasswordRequest{Token: mailer.resetToken, NewPassword: "changed1"}
	if err := svc.ResetPassword(ctx, reset); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}
	if err := svc.ResetPassword(ctx, reset); !errors.Is(err, utils.ErrInvalidResetToken) {
		t.Errorf("reused token err = %v", err)
	}

	if _, err := svc.Login(ctx, request_models.LoginRequest{Email: "ana@example.com", Password: "changed1"}); err != nil {
		t.Errorf("login with new password: %v", err)
	}
	if _, err := svc.Login(ctx, request_models.LoginRequest{Email: "ana@example.com", Password: "secret1"}); err == nil {
		t.Error("old password still works")
	}
}
