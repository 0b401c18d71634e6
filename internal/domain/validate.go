package domain

import (
	"math"
	"strings"
)

const (
	MinPhoneLength        = 10
	DefaultMaxPoints      = 100
	DefaultPointsPerVisit = 10
	DefaultVisitsLimit    = 10
	MaxVisitsLimit        = 100

	// MaxStoredPoints is the largest value a points column can hold.
	MaxStoredPoints = math.MaxInt32
)

// Policy holds the tunable bounds applied to incoming requests.
type Policy struct {
	MaxPointsPerVisit     int
	DefaultPointsPerVisit int
}

func DefaultPolicy() Policy {
	return Policy{
		MaxPointsPerVisit:     DefaultMaxPoints,
		DefaultPointsPerVisit: DefaultPointsPerVisit,
	}
}

// NormalizePhone trims surrounding whitespace. No other formatting is
// applied; phone numbers are matched exactly.
func NormalizePhone(phone string) string {
	return strings.TrimSpace(phone)
}

func ValidatePhone(phone string) error {
	if len(NormalizePhone(phone)) < MinPhoneLength {
		return invalid("phone_number", "must be at least %d characters", MinPhoneLength)
	}
	return nil
}

func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return invalid("name", "must not be empty")
	}
	return nil
}

func ValidateRole(role Role) error {
	switch role {
	case RoleCustomer, RoleBusiness:
		return nil
	}
	return invalid("role", "%q is not one of customer, business", role)
}

func ParseCategory(raw string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range Categories {
		if c == known {
			return c, nil
		}
	}
	return "", invalid("type", "%q is not a known business category", raw)
}

func (p Policy) ValidatePoints(points int) error {
	limit := min(p.MaxPointsPerVisit, MaxStoredPoints)
	if points < 1 || points > limit {
		return invalid("points", "must be between 1 and %d", limit)
	}
	return nil
}

func ValidatePointsRequired(points int) error {
	if points < 0 || points > MaxStoredPoints {
		return invalid("points_required", "must be between 0 and %d", MaxStoredPoints)
	}
	return nil
}

// ClampVisitsLimit maps a non-positive limit to the default and caps large
// ones.
func ClampVisitsLimit(limit int) int {
	if limit <= 0 {
		return DefaultVisitsLimit
	}
	if limit > MaxVisitsLimit {
		return MaxVisitsLimit
	}
	return limit
}
