package helpers

import (
	"encoding/base64"
	"encoding/hex"
	"testing"
)

func TestGenerateToken(t *testing.T) {
	tok, err := GenerateToken()
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	raw, err := base64.RawURLEncoding.DecodeString(tok)
	if err != nil {
		t.Fatalf("token is not url-safe base64: %v", err)
	}
	if len(raw) != 32 {
		t.Errorf("token entropy = %d bytes, want 32", len(raw))
	}

	tok2, err := GenerateToken()
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if tok == tok2 {
		t.Error("two generated tokens are identical")
	}
}

func TestHashToken(t *testing.T) {
	digest := HashToken("some-token")
	b, err := hex.DecodeString(digest)
	if err != nil {
		t.Fatalf("digest is not hex: %v", err)
	}
	if len(b) != 32 {
		t.Errorf("digest = %d bytes, want 32 (sha-256)", len(b))
	}

	if HashToken("some-token") != digest {
		t.Error("hashing is not deterministic")
	}
	if HashToken("some-other-token") == digest {
		t.Error("different tokens share a digest")
	}
}

func TestTokenMatches(t *testing.T) {
	digest := HashToken("the-token")
	if !TokenMatches("the-token", digest) {
		t.Error("matching token rejected")
	}
	if TokenMatches("another-token", digest) {
		t.Error("non-matching token accepted")
	}
	if TokenMatches("the-token", "") {
		t.Error("empty digest accepted")
	}
}
