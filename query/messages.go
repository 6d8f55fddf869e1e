package query

import (
	"strings"
	"time"
)

const (
	TypeCurrentUser      = "vaultra.query.auth.me"
	TypeProfile          = "vaultra.query.profile"
	TypeLatestMetrics    = "vaultra.query.metrics.latest"
	TypeMetricHistory    = "vaultra.query.metrics.history"
	TypeReadinessScore   = "vaultra.query.readiness.latest"
	TypeReadinessHistory = "vaultra.query.readiness.history"
	TypeRecommendations  = "vaultra.query.recommendations.list"
	TypeConversation     = "vaultra.query.agent.conversation"
	TypeStripeStatus     = "vaultra.query.stripe.status"

	dateLayout = "2006-01-02"
)

// Business scoped messages leave BusinessID empty to use the selected
// account.

type CurrentUserMessage struct{}

func (CurrentUserMessage) Type() string { return TypeCurrentUser }

func (CurrentUserMessage) Validate() error { return nil }

type ProfileMessage struct{}

func (ProfileMessage) Type() string { return TypeProfile }

func (ProfileMessage) Validate() error { return nil }

type LatestMetricsMessage struct {
	BusinessID string
}

func (LatestMetricsMessage) Type() string { return TypeLatestMetrics }

func (LatestMetricsMessage) Validate() error { return nil }

type MetricHistoryMessage struct {
	BusinessID string
	StartDate  string
	EndDate    string
}

func (MetricHistoryMessage) Type() string { return TypeMetricHistory }

func (m MetricHistoryMessage) Validate() error {
	start, err := parseDate("start_date", m.StartDate)
	if err != nil {
		return err
	}
	end, err := parseDate("end_date", m.EndDate)
	if err != nil {
		return err
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return queryValidationError("end_date", "end date must not be before start date")
	}
	return nil
}

type ReadinessScoreMessage struct {
	BusinessID string
}

func (ReadinessScoreMessage) Type() string { return TypeReadinessScore }

func (ReadinessScoreMessage) Validate() error { return nil }

type ReadinessHistoryMessage struct {
	BusinessID string
	Limit      int
}

func (ReadinessHistoryMessage) Type() string { return TypeReadinessHistory }

func (m ReadinessHistoryMessage) Validate() error {
	if m.Limit < 0 {
		return queryValidationError("limit", "limit must be >= 0")
	}
	return nil
}

type RecommendationsMessage struct {
	BusinessID string
	Status     string
	Priority   string
}

func (RecommendationsMessage) Type() string { return TypeRecommendations }

func (RecommendationsMessage) Validate() error { return nil }

type ConversationMessage struct {
	ConversationID string
}

func (ConversationMessage) Type() string { return TypeConversation }

func (m ConversationMessage) Validate() error {
	if strings.TrimSpace(m.ConversationID) == "" {
		return queryValidationError("conversation_id", "conversation id is required")
	}
	return nil
}

type StripeStatusMessage struct {
	BusinessID string
}

func (StripeStatusMessage) Type() string { return TypeStripeStatus }

func (StripeStatusMessage) Validate() error { return nil }

func parseDate(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, queryValidationError(field, "date must use YYYY-MM-DD")
	}
	return parsed, nil
}
