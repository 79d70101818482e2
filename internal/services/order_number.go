package services

import (
	"fmt"
	"math/rand"
	"regexp"
	"time"
)

var orderNumberPattern = regexp.MustCompile(`^ORD-\d{6}-\d{4}$`)

// OrderNumberFunc produces a human-facing order reference.
type OrderNumberFunc func(now time.Time) string

// NewOrderNumber formats "ORD-" + last six digits of the epoch millis + "-" + four random digits.
// Uniqueness is not guaranteed; the database constraint has the final word.
func NewOrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD-%06d-%04d", now.UnixMilli()%1_000_000, rand.Intn(10_000))
}

func IsOrderNumber(ref string) bool {
	return orderNumberPattern.MatchString(ref)
}
