package blobcodec

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/aalvaropc/bangs/internal/domain"
)

func TestEncodeDecompressRoundTrip(t *testing.T) {
	cfg := domain.DefaultConfig()

	blob, err := Encode(cfg)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	raw, err := Decompress(blob)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}

	want, _ := json.Marshal(cfg)
	if !bytes.Equal(raw, want) {
		t.Fatalf("expected lossless round trip")
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	a, err := Encode(domain.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	b, err := Encode(domain.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("expected identical blobs for identical configs")
	}
}

func TestDecompressCorrupt(t *testing.T) {
	cases := map[string][]byte{
		"not base64": []byte("%%%"),
		"not xz":     []byte("aGVsbG8gd29ybGQ="),
	}
	for name, blob := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decompress(blob)
			if !domain.IsKind(err, domain.KindCorruptData) {
				t.Fatalf("expected corrupt data, got %v", err)
			}
		})
	}
}

func TestDecompressRejectsNonJSON(t *testing.T) {
	blob, err := Compress([]byte("not json"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Decompress(blob); !domain.IsKind(err, domain.KindCorruptData) {
		t.Fatalf("expected corrupt data, got %v", err)
	}
}
