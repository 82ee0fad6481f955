package icon

import (
	"bytes"
	"errors"
	"testing"
	"time"
)

func TestEntryCodec_RoundTrip(t *testing.T) {
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	entries := []Entry{
		{Kind: KindImage, Domain: "example.com", Image: []byte{1, 2, 3}, CreatedAt: created, SizeBytes: 3},
		{Kind: KindExternalURL, Domain: "example.com", URL: "https://example.com/favicon.ico", CreatedAt: created},
		{Kind: KindLetter, Domain: "example.com", Color: "#4285F4", CreatedAt: created},
	}

	for _, e := range entries {
		data, err := EncodeEntry(e)
		if err != nil {
			t.Fatalf("EncodeEntry(%v) failed: %v", e.Kind, err)
		}
		got, err := DecodeEntry(data)
		if err != nil {
			t.Fatalf("DecodeEntry(%v) failed: %v", e.Kind, err)
		}
		if got.Kind != e.Kind || got.Domain != e.Domain || got.URL != e.URL || got.Color != e.Color {
			t.Errorf("round trip mismatch: got %+v, want %+v", got, e)
		}
		if !bytes.Equal(got.Image, e.Image) {
			t.Errorf("image mismatch: got %v, want %v", got.Image, e.Image)
		}
		if !got.CreatedAt.Equal(e.CreatedAt) {
			t.Errorf("created_at mismatch: got %v, want %v", got.CreatedAt, e.CreatedAt)
		}
	}
}

func TestDecodeEntry_Corrupt(t *testing.T) {
	cases := map[string][]byte{
		"not json":        []byte("{{{"),
		"unknown kind":    []byte(`{"kind":"gif","domain":"a.com","created_at":1}`),
		"missing domain":  []byte(`{"kind":"letter","color":"#fff","created_at":1}`),
		"missing created": []byte(`{"kind":"letter","domain":"a.com","color":"#fff"}`),
		"image no bytes":  []byte(`{"kind":"image","domain":"a.com","created_at":1}`),
		"url no url":      []byte(`{"kind":"external_url","domain":"a.com","created_at":1}`),
		"letter no color": []byte(`{"kind":"letter","domain":"a.com","created_at":1}`),
	}
	for name, data := range cases {
		if _, err := DecodeEntry(data); !errors.Is(err, ErrCorruptEntry) {
			t.Errorf("%s: DecodeEntry = %v, want ErrCorruptEntry", name, err)
		}
	}
}

func TestKindString(t *testing.T) {
	if KindImage.String() != "image" || KindExternalURL.String() != "external_url" || KindLetter.String() != "letter" {
		t.Error("Kind.String returned unexpected values")
	}
	if Kind(99).String() != "unknown" {
		t.Error("unknown kind should stringify as unknown")
	}
}
