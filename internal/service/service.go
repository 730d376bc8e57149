// Package service holds the application logic: identity resolution, the vocabulary
// ledger, the conversation log and the statistics engine.
package service

import (
	"fmt"
	"math"
	"strings"

	"lingotutor/internal/domain"
)

// unavailable marks a store failure so callers can match domain.ErrUnavailable
func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrUnavailable, err)
}

// round1 rounds to one decimal place
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// optional turns a blank string into nil
func optional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
