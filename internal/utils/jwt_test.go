package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewAdminToken(t *testing.T) {
	const secret = "test-secret"
	tok, err := NewAdminToken(secret, "admin", 12)
	if err != nil {
		t.Fatalf("NewAdminToken: %v", err)
	}

	until := time.Until(tok.Exp)
	if until < 11*time.Hour || until > 13*time.Hour {
		t.Errorf("Exp %v away, want ~12h", until)
	}

	parsed, err := jwt.Parse(tok.Token, func(tk *jwt.Token) (interface{}, error) {
		if _, ok := tk.Method.(*jwt.SigningMethodHMAC); !ok {
			t.Fatalf("unexpected signing method %v", tk.Method)
		}
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("parse issued token: %v", err)
	}
	sub, err := parsed.Claims.GetSubject()
	if err != nil || sub != "admin" {
		t.Errorf("subject = %q (%v), want \"admin\"", sub, err)
	}
}

func TestNewAdminTokenRejectsWrongSecret(t *testing.T) {
	tok, err := NewAdminToken("right-secret", "admin", 1)
	if err != nil {
		t.Fatalf("NewAdminToken: %v", err)
	}
	_, err = jwt.Parse(tok.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte("wrong-secret"), nil
	})
	if err == nil {
		t.Fatal("token verified with the wrong secret")
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("admin", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !VerifyPassword(hash, "admin") {
		t.Error("correct password rejected")
	}
	if VerifyPassword(hash, "Admin") {
		t.Error("wrong password accepted")
	}
}
