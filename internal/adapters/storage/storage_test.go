package storage

import (
	"strings"
	"testing"
)

func TestValidateContentType(t *testing.T) {
	for _, ct := range []string{"image/jpeg", "IMAGE/PNG", "image/webp; q=1"} {
		if err := ValidateContentType(ct); err != nil {
			t.Fatalf("expected %q to be allowed: %v", ct, err)
		}
	}
	for _, ct := range []string{"application/pdf", "image/svg+xml", ""} {
		if err := ValidateContentType(ct); err == nil {
			t.Fatalf("expected %q to be rejected", ct)
		}
	}
}

func TestValidateFileSize(t *testing.T) {
	s := &MinIOService{maxFileSize: 100}
	if err := s.ValidateFileSize(100); err != nil {
		t.Fatalf("limit must be inclusive: %v", err)
	}
	if err := s.ValidateFileSize(0); err == nil {
		t.Fatal("empty files must be rejected")
	}
	if err := s.ValidateFileSize(101); err == nil {
		t.Fatal("oversized files must be rejected")
	}
}

func TestObjectKeyStripsPathElements(t *testing.T) {
	key := ObjectKey("owner/listing", "../../etc/car photo.jpg")
	if !strings.HasPrefix(key, "owner/listing/car photo_") || !strings.HasSuffix(key, ".jpg") {
		t.Fatalf("unexpected key %q", key)
	}
	if strings.Contains(key, "..") {
		t.Fatalf("key must not escape its folder: %q", key)
	}
}
