package dataset

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/bytedance/sonic"
)

// Fingerprint hashes the loaded content. Two loads of unchanged pages give
// the same fingerprint, so it can tell whether the wiki changed between runs.
// The load ID is not part of the hash.
func (d *Dataset) Fingerprint() (string, error) {
	data, err := sonic.ConfigStd.Marshal(d.characters)
	if err != nil {
		return "", fmt.Errorf("marshal dataset: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// ShortFingerprint returns the first 8 characters of a fingerprint for display
func ShortFingerprint(fingerprint string) string {
	if len(fingerprint) < 8 {
		return fingerprint
	}
	return fingerprint[:8]
}
