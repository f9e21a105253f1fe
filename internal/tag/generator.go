// Package tag derives the opaque per-click identifiers embedded in
// tracking URLs.
package tag

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Generate produces a 64-character lowercase hex identifier from the
// publisher/campaign/user triple. Absent optional inputs are the empty
// string. A nanosecond timestamp and a random UUID guarantee that two
// calls with identical inputs still yield different tags.
func Generate(publisherID, campaignID, userID string) string {
	seed := fmt.Sprintf("%s|%s|%s|%d|%s",
		publisherID,
		campaignID,
		userID,
		time.Now().UnixNano(),
		uuid.NewString(),
	)
	sum := sha256.Sum256([]byte(seed))
	return hex.EncodeToString(sum[:])
}
