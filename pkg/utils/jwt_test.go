package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestJWTManagerRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	id := uuid.New()

	token, err := m.CreateToken(id, "admin")
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID() != id.String() {
		t.Errorf("UserID = %q, want %q", claims.UserID(), id.String())
	}
	if claims.Role != "admin" {
		t.Errorf("Role = %q, want admin", claims.Role)
	}
}

func TestJWTManagerRejectsForeignAndExpiredTokens(t *testing.T) {
	id := uuid.New()

	other, err := NewJWTManager("other-secret", time.Hour).CreateToken(id, "user")
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}
	if _, err := NewJWTManager("test-secret", time.Hour).ValidateToken(other); err == nil {
		t.Error("token signed with another secret was accepted")
	}

	expired, err := NewJWTManager("test-secret", -time.Minute).CreateToken(id, "user")
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}
	if _, err := NewJWTManager("test-secret", time.Hour).ValidateToken(expired); err == nil {
		t.Error("expired token was accepted")
	}

	if _, err := NewJWTManager("test-secret", time.Hour).ValidateToken("not-a-token"); err == nil {
		t.Error("garbage token was accepted")
	}
}
