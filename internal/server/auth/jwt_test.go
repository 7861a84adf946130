package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

var testSecret = []byte("test-secret")

func TestGenerateAndVerifyToken(t *testing.T) {
	token, err := GenerateToken("acc-1", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	p, err := VerifyToken(token, testSecret)
	if err != nil {
		t.Fatalf("VerifyToken error: %v", err)
	}
	if p.AccountID != "acc-1" {
		t.Fatalf("expected account acc-1, got %q", p.AccountID)
	}
}

func TestVerifyToken_Expired(t *testing.T) {
	token, err := GenerateToken("acc-1", testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	if _, err := VerifyToken(token, testSecret); !errors.Is(err, common.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken("acc-1", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	if _, err := VerifyToken(token, []byte("other-secret")); !errors.Is(err, common.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestVerifyToken_Garbage(t *testing.T) {
	if _, err := VerifyToken("not-a-jwt", testSecret); !errors.Is(err, common.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestVerifyToken_MissingSubject(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString(testSecret)
	if err != nil {
		t.Fatalf("SignedString error: %v", err)
	}

	if _, err := VerifyToken(signed, testSecret); !errors.Is(err, common.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestVerifyToken_WrongSigningMethod(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "acc-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("SignedString error: %v", err)
	}

	if _, err := VerifyToken(signed, testSecret); !errors.Is(err, common.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
