package domain

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleBusiness Role = "business"
)

type Category string

const (
	CategorySalon      Category = "salon"
	CategoryBarbershop Category = "barbershop"
	CategoryRestaurant Category = "restaurant"
	CategoryCafe       Category = "cafe"
	CategorySpa        Category = "spa"
	CategoryOther      Category = "other"
)

var Categories = []Category{
	CategorySalon,
	CategoryBarbershop,
	CategoryRestaurant,
	CategoryCafe,
	CategorySpa,
	CategoryOther,
}

type Customer struct {
	ID          uuid.UUID `json:"id"`
	PhoneNumber string    `json:"phone_number"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"created_at"`
}

type Business struct {
	ID             uuid.UUID `json:"id"`
	OwnerPhone     string    `json:"owner_phone"`
	Name           string    `json:"name"`
	Category       Category  `json:"type"`
	PointsPerVisit int       `json:"points_per_visit"`
	CreatedAt      time.Time `json:"created_at"`
}

// Identity is the result of a phone lookup. Exactly one of Customer or
// Business is set, matching Role.
type Identity struct {
	Role     Role      `json:"role"`
	Customer *Customer `json:"customer,omitempty"`
	Business *Business `json:"business,omitempty"`
}

// Visit is one check-in. Visits are never updated or deleted.
type Visit struct {
	ID           uuid.UUID `json:"id"`
	CustomerID   uuid.UUID `json:"customer_id"`
	BusinessID   uuid.UUID `json:"business_id"`
	PointsEarned int       `json:"points_earned"`
	VisitDate    time.Time `json:"visit_date"`
}

type VisitWithCustomer struct {
	Visit
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
}

type VisitWithBusiness struct {
	Visit
	BusinessName     string   `json:"business_name"`
	BusinessCategory Category `json:"business_type"`
}

type CustomerBusiness struct {
	CustomerID        uuid.UUID `json:"customer_id"`
	BusinessID        uuid.UUID `json:"business_id"`
	TotalVisits       int       `json:"total_visits"`
	TotalPointsEarned int       `json:"total_points_earned"`
	LastVisitAt       time.Time `json:"last_visit_at"`
}

type Reward struct {
	ID             uuid.UUID `json:"id"`
	BusinessID     uuid.UUID `json:"business_id"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	PointsRequired int       `json:"points_required"`
	Active         bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

// RedeemableWith reports whether a customer holding available points can
// redeem r.
func (r Reward) RedeemableWith(available int) bool {
	return r.Active && available >= r.PointsRequired
}

type RewardWithBusiness struct {
	Reward
	BusinessName     string   `json:"business_name"`
	BusinessCategory Category `json:"business_type"`
}

type RewardEligibility struct {
	Reward
	Eligible     bool `json:"eligible"`
	PointsNeeded int  `json:"points_needed"`
}

type Redemption struct {
	ID          uuid.UUID `json:"id"`
	CustomerID  uuid.UUID `json:"customer_id"`
	RewardID    uuid.UUID `json:"reward_id"`
	BusinessID  uuid.UUID `json:"business_id"`
	PointsSpent int       `json:"points_spent"`
	RedeemedAt  time.Time `json:"redeemed_at"`
}

// PointsSummary is the zero value when the customer has no activity.
type PointsSummary struct {
	PhoneNumber         string `json:"phone_number"`
	Name                string `json:"name,omitempty"`
	AvailablePoints     int    `json:"available_points"`
	TotalPointsEarned   int    `json:"total_points_earned"`
	TotalPointsRedeemed int    `json:"total_points_redeemed"`
	TotalVisits         int    `json:"total_visits"`
}

type BusinessAnalytics struct {
	BusinessID        uuid.UUID `json:"business_id"`
	TotalCustomers    int       `json:"total_customers"`
	TotalVisits       int       `json:"total_visits"`
	AvgPointsPerVisit float64   `json:"avg_points_per_visit"`
	TotalRedemptions  int       `json:"total_redemptions"`
}

type CustomerDashboard struct {
	Points   PointsSummary       `json:"points"`
	Rewards  []RewardEligibility `json:"rewards"`
	Insights []string            `json:"insights"`
}
