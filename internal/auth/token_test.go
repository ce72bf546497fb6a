package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

func TestIssueValidateRoundTrip(t *testing.T) {
	a := NewAuthority("test-secret")

	token, err := a.Issue(42, 7, "filmfan")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if len(strings.Split(token, ".")) != 3 {
		t.Fatalf("expected compact three-segment token, got %q", token)
	}

	claims, authErr := a.Validate(token)
	if authErr != nil {
		t.Fatalf("Validate returned error: %v", authErr)
	}
	if got := claims.AccountID(); got != 42 {
		t.Errorf("AccountID = %d, want 42", got)
	}
	if claims.ProfileID != 7 {
		t.Errorf("ProfileID = %d, want 7", claims.ProfileID)
	}
	if claims.DisplayName != "filmfan" {
		t.Errorf("DisplayName = %q, want \"filmfan\"", claims.DisplayName)
	}
	lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if lifetime != 24*time.Hour {
		t.Errorf("token lifetime = %v, want 24h", lifetime)
	}
}

func TestValidateExpiredToken(t *testing.T) {
	a := NewAuthority("test-secret")

	// Sign an already-expired token with the same secret.
	claims := &Claims{
		ProfileID:   7,
		DisplayName: "filmfan",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-25 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}

	_, authErr := a.Validate(token)
	if authErr == nil {
		t.Fatal("expected error for expired token, got nil")
	}
	if authErr.Code != CodeExpired {
		t.Errorf("error code = %q, want %q", authErr.Code, CodeExpired)
	}
}

func TestValidateRejectsCorruptedSignature(t *testing.T) {
	a := NewAuthority("test-secret")

	token, err := a.Issue(1, 1, "someone")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	parts := strings.Split(token, ".")
	sig := []byte(parts[2])

	// Flip one bit at a time across the signature segment; every corruption
	// must come back as a signature failure, never as usable claims. The
	// final base64url character carries unused trailing bits, so stop short
	// of it.
	for i := 0; i < len(sig)-1; i++ {
		corrupted := make([]byte, len(sig))
		copy(corrupted, sig)
		corrupted[i] ^= 0x01

		// Skip flips that fall outside the base64url alphabet; those fail
		// at the decode stage, which is a malformed token, not this case.
		if !isBase64URL(corrupted[i]) {
			continue
		}
		if string(corrupted) == parts[2] {
			continue
		}

		bad := parts[0] + "." + parts[1] + "." + string(corrupted)
		claims, authErr := a.Validate(bad)
		if claims != nil {
			t.Fatalf("bit flip at %d produced claims instead of an error", i)
		}
		if authErr.Code != CodeBadSignature {
			t.Errorf("bit flip at %d: code = %q, want %q", i, authErr.Code, CodeBadSignature)
		}
	}
}

func isBase64URL(b byte) bool {
	return b >= 'A' && b <= 'Z' || b >= 'a' && b <= 'z' || b >= '0' && b <= '9' || b == '-' || b == '_'
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	issuer := NewAuthority("secret-one")
	verifier := NewAuthority("secret-two")

	token, err := issuer.Issue(1, 1, "someone")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	_, authErr := verifier.Validate(token)
	if authErr == nil {
		t.Fatal("expected error for token signed with a different secret")
	}
	if authErr.Code != CodeBadSignature {
		t.Errorf("error code = %q, want %q", authErr.Code, CodeBadSignature)
	}
}

func TestValidateMalformed(t *testing.T) {
	a := NewAuthority("test-secret")

	for _, tokenString := range []string{"", "not-a-token", "a.b", "a.b.c.d", "...."} {
		claims, authErr := a.Validate(tokenString)
		if claims != nil {
			t.Errorf("Validate(%q) returned claims for garbage input", tokenString)
			continue
		}
		if authErr.Code != CodeMalformed {
			t.Errorf("Validate(%q) code = %q, want %q", tokenString, authErr.Code, CodeMalformed)
		}
	}
}

func TestExtractBearer(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantOK  bool
	}{
		{"well formed", "Bearer abc.def.ghi", "abc.def.ghi", true},
		{"empty header", "", "", false},
		{"no prefix", "abc.def.ghi", "", false},
		{"lowercase prefix", "bearer abc.def.ghi", "", false},
		{"prefix only", "Bearer ", "", false},
		{"basic auth", "Basic dXNlcjpwYXNz", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractBearer(tt.header)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ExtractBearer(%q) = (%q, %v), want (%q, %v)", tt.header, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
