package common

import (
	"strings"
	"testing"
)

func TestMakeRandURLSafeString_LengthAndAlphabet(t *testing.T) {
	const n = 64
	s, err := MakeRandURLSafeString(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s) != n {
		t.Fatalf("expected length %d, got %d", n, len(s))
	}
	for _, r := range s {
		if !strings.ContainsRune(urlSafeAlphabet, r) {
			t.Fatalf("unexpected symbol %q", r)
		}
	}
}

func TestMakeRandURLSafeString_Unique(t *testing.T) {
	s1, err := MakeRandURLSafeString(64)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s2, err := MakeRandURLSafeString(64)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s1 == s2 {
		t.Fatalf("expected two different tokens, got equal values")
	}
}
