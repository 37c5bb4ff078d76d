package domain

import (
	"fmt"
	"strings"
)

// Backend identifies a storage area. The set is closed.
type Backend string

const (
	BackendSync  Backend = "sync"
	BackendLocal Backend = "local"
)

// Backends lists every supported backend.
var Backends = []Backend{BackendSync, BackendLocal}

const (
	syncQuotaBytes  = 100 * 1024
	localQuotaBytes = 5 * 1024 * 1024
)

// QuotaBytes is the largest blob the backend accepts.
func (b Backend) QuotaBytes() int {
	switch b {
	case BackendSync:
		return syncQuotaBytes
	case BackendLocal:
		return localQuotaBytes
	default:
		return 0
	}
}

// ParseBackend maps a user-provided name onto the closed set.
func ParseBackend(s string) (Backend, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(s))) {
	case BackendSync:
		return BackendSync, nil
	case BackendLocal:
		return BackendLocal, nil
	default:
		return "", &OpError{
			Op:   "backend.parse",
			Kind: KindInvalidConfig,
			Err:  fmt.Errorf("unsupported backend %q (expected sync|local): %w", s, ErrInvalidConfig),
		}
	}
}
