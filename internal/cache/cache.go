package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// Cache defines the interface for caching serialized diagnosis reports
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// ReportKey generates a cache key for a diagnosis request. Symptoms are
// canonical extracted symptoms, so the same complaint phrased differently
// still hits the same entry.
func ReportKey(symptoms []string, days int) string {
	payload := strings.Join(symptoms, "|") + fmt.Sprintf("|days=%d", days)
	hash := sha256.Sum256([]byte(payload))
	return "prognosia:v1:" + hex.EncodeToString(hash[:])
}
