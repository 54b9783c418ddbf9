package models

import "time"

// Planos e status de assinatura
const (
	PlanFree = "free"
	PlanPro  = "pro"

	SubscriptionActive    = "active"
	SubscriptionBlocked   = "blocked"
	SubscriptionCancelled = "cancelled"
)

type Company struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`

	// Slug é o identificador público da empresa — imutável depois de criado.
	Slug string `gorm:"size:100;uniqueIndex;not null" json:"slug"`

	BrandColor string `gorm:"size:7" json:"brand_color"`
	LogoURL    string `gorm:"size:255" json:"logo_url"`
	Phone      string `gorm:"size:20" json:"phone"`
	Address    string `gorm:"size:255" json:"address"`

	Plan               string     `gorm:"size:20;default:'free'" json:"plan"`
	SubscriptionStatus string     `gorm:"size:20;default:'active'" json:"subscription_status"`
	ExpiresAt          *time.Time `json:"expires_at"`

	MinAdvanceMinutes int `gorm:"default:0" json:"min_advance_minutes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SubscriptionOK informa se a empresa pode receber novos agendamentos.
func (c *Company) SubscriptionOK(now time.Time) bool {
	if c.SubscriptionStatus != SubscriptionActive {
		return false
	}
	if c.ExpiresAt != nil && c.ExpiresAt.Before(now) {
		return false
	}
	return true
}
