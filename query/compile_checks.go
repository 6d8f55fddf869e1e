package query

import (
	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-vaultra/api"
)

var (
	_ gocmd.Querier[CurrentUserMessage, api.UserWithBusinesses]     = (*CurrentUserQuery)(nil)
	_ gocmd.Querier[ProfileMessage, api.UserProfile]                = (*ProfileQuery)(nil)
	_ gocmd.Querier[LatestMetricsMessage, api.Metrics]              = (*LatestMetricsQuery)(nil)
	_ gocmd.Querier[MetricHistoryMessage, api.MetricsHistory]       = (*MetricHistoryQuery)(nil)
	_ gocmd.Querier[ReadinessScoreMessage, api.Readiness]           = (*ReadinessScoreQuery)(nil)
	_ gocmd.Querier[ReadinessHistoryMessage, api.ReadinessHistory]  = (*ReadinessHistoryQuery)(nil)
	_ gocmd.Querier[RecommendationsMessage, api.RecommendationList] = (*RecommendationsQuery)(nil)
	_ gocmd.Querier[ConversationMessage, api.Conversation]          = (*ConversationQuery)(nil)
	_ gocmd.Querier[StripeStatusMessage, api.StripeStatus]          = (*StripeStatusQuery)(nil)

	_ AccountReader        = (*api.Client)(nil)
	_ MetricsReader        = (*api.Client)(nil)
	_ RecommendationReader = (*api.Client)(nil)
	_ ConversationReader   = (*api.Client)(nil)
	_ StripeReader         = (*api.Client)(nil)
)
