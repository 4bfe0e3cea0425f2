package utils

import (
	"fmt"
	"math/rand"
	"time"
)

// ==================== ORDER CODE ====================

// GenerateOrderCode returns a human readable order reference.
// Format: HUNT-YYYYMMDD-HHMMSS-NNNN
func GenerateOrderCode(now time.Time) string {
	datePart := now.Format("20060102")
	timePart := now.Format("150405")
	randomPart := fmt.Sprintf("%04d", rand.Intn(10000))

	return fmt.Sprintf("HUNT-%s-%s-%s", datePart, timePart, randomPart)
}
