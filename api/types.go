package api

import (
	"encoding/json"
	"time"
)

const (
	RecommendationAccepted  = "accepted"
	RecommendationDismissed = "dismissed"

	DefaultReadinessHistoryLimit = 30
)

type BusinessInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type User struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name,omitempty"`
	AvatarURL string     `json:"avatar_url,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

type UserWithBusinesses struct {
	User
	Businesses []BusinessInfo `json:"businesses"`
}

type TokenResponse struct {
	User  UserWithBusinesses `json:"user"`
	Token string             `json:"token"`
}

type BusinessMembership struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

type UserProfile struct {
	ID         string               `json:"id"`
	Email      string               `json:"email"`
	Name       string               `json:"name,omitempty"`
	AvatarURL  string               `json:"avatar_url,omitempty"`
	Businesses []BusinessMembership `json:"businesses"`
}

// UserUpdate sends only the fields that are set.
type UserUpdate struct {
	Name      *string `json:"name,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

type BusinessCreate struct {
	Name            string      `json:"name"`
	LegalEntity     string      `json:"legal_entity,omitempty"`
	Industry        string      `json:"industry,omitempty"`
	RevenueEstimate json.Number `json:"revenue_estimate,omitempty"`
	// FoundedAt is a YYYY-MM-DD date.
	FoundedAt string `json:"founded_at,omitempty"`
}

type BusinessUpdate struct {
	Name            *string      `json:"name,omitempty"`
	LegalEntity     *string      `json:"legal_entity,omitempty"`
	Industry        *string      `json:"industry,omitempty"`
	RevenueEstimate *json.Number `json:"revenue_estimate,omitempty"`
	FoundedAt       *string      `json:"founded_at,omitempty"`
}

type Business struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	LegalEntity     string      `json:"legal_entity,omitempty"`
	Industry        string      `json:"industry,omitempty"`
	RevenueEstimate json.Number `json:"revenue_estimate,omitempty"`
	FoundedAt       string      `json:"founded_at,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
}

// Metrics is one reporting period. Decimal fields are empty when the backend
// has no value for them.
type Metrics struct {
	BusinessID             string      `json:"business_id"`
	PeriodStart            string      `json:"period_start"`
	PeriodEnd              string      `json:"period_end"`
	RevenueTotal           json.Number `json:"revenue_total,omitempty"`
	RevenueVolatility      json.Number `json:"revenue_volatility,omitempty"`
	ChargebackCount        int         `json:"chargeback_count"`
	ChargebackRatio        json.Number `json:"chargeback_ratio,omitempty"`
	RefundCount            int         `json:"refund_count"`
	RefundRatio            json.Number `json:"refund_ratio,omitempty"`
	PayoutReliability      json.Number `json:"payout_reliability,omitempty"`
	TransactionCount       int         `json:"transaction_count"`
	AverageTransactionSize json.Number `json:"average_transaction_size,omitempty"`
	MRR                    json.Number `json:"mrr,omitempty"`
}

type MetricsHistory struct {
	Metrics []Metrics `json:"metrics"`
}

type Readiness struct {
	BusinessID string         `json:"business_id"`
	Score      int            `json:"score"`
	Tier       string         `json:"tier"`
	Components map[string]any `json:"components,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

type ReadinessHistory struct {
	Scores []Readiness `json:"scores"`
}

type Recommendation struct {
	ID              string    `json:"id"`
	BusinessID      string    `json:"business_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	Priority        string    `json:"priority"`
	Category        string    `json:"category,omitempty"`
	Status          string    `json:"status"`
	EstimatedImpact string    `json:"estimated_impact,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type RecommendationList struct {
	Recommendations []Recommendation `json:"recommendations"`
}

type ChatResponse struct {
	ConversationID string `json:"conversation_id"`
	MessageID      string `json:"message_id"`
	Response       string `json:"response"`
	ToolCalls      []any  `json:"tool_calls"`
}

type ConversationMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type Conversation struct {
	ID         string                `json:"id"`
	BusinessID string                `json:"business_id"`
	Messages   []ConversationMessage `json:"messages"`
}

type StripeConnect struct {
	URL string `json:"url"`
}

type StripeStatus struct {
	Connected    bool       `json:"connected"`
	AccountID    string     `json:"account_id,omitempty"`
	LastSyncedAt *time.Time `json:"last_synced_at,omitempty"`
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type statusUpdateRequest struct {
	Status string `json:"status"`
}

type chatRequest struct {
	BusinessID     string  `json:"business_id"`
	Message        string  `json:"message"`
	ConversationID *string `json:"conversation_id"`
}
