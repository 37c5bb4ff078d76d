// Package blobcodec turns a Config into the compact string stored by backends
// and back: base64(xz(json)).
package blobcodec

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"github.com/ulikunitz/xz"

	"github.com/aalvaropc/bangs/internal/domain"
)

// Encode serializes and compresses cfg.
func Encode(cfg domain.Config) ([]byte, error) {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return nil, &domain.OpError{Op: "blobcodec.marshal", Kind: domain.KindExecution, Err: err}
	}
	return Compress(raw)
}

// Compress xz-compresses raw and base64-encodes the result.
func Compress(raw []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		return nil, &domain.OpError{Op: "blobcodec.compress", Kind: domain.KindExecution, Err: err}
	}
	if _, err := w.Write(raw); err != nil {
		return nil, &domain.OpError{Op: "blobcodec.compress", Kind: domain.KindExecution, Err: err}
	}
	if err := w.Close(); err != nil {
		return nil, &domain.OpError{Op: "blobcodec.compress", Kind: domain.KindExecution, Err: err}
	}

	out := make([]byte, base64.StdEncoding.EncodedLen(buf.Len()))
	base64.StdEncoding.Encode(out, buf.Bytes())
	return out, nil
}

// Decompress reverses Compress. Any failure is reported as KindCorruptData.
func Decompress(blob []byte) ([]byte, error) {
	packed := make([]byte, base64.StdEncoding.DecodedLen(len(blob)))
	n, err := base64.StdEncoding.Decode(packed, bytes.TrimSpace(blob))
	if err != nil {
		return nil, corrupt("blobcodec.base64", err)
	}

	r, err := xz.NewReader(bytes.NewReader(packed[:n]))
	if err != nil {
		return nil, corrupt("blobcodec.decompress", err)
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, corrupt("blobcodec.decompress", err)
	}
	if !json.Valid(raw) {
		return nil, corrupt("blobcodec.json", fmt.Errorf("payload is not valid json"))
	}
	return raw, nil
}

func corrupt(op string, err error) error {
	return &domain.OpError{
		Op:   op,
		Kind: domain.KindCorruptData,
		Err:  fmt.Errorf("%w: %v", domain.ErrCorruptData, err),
	}
}
