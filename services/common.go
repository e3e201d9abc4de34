package services

import (
	"crypto/sha256"
	"fmt"
	"os"
)

func GetEnv(key, fallback string) string {
	value := os.Getenv(key)
	if len(value) == 0 {
		return fallback
	}
	return value
}

func StrPointer(str string) *string {
	if str == "" {
		return nil
	}
	return &str
}

// ImageDigest keys identical uploads to the same cached analysis.
func ImageDigest(imageBytes []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(imageBytes))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
