package query

import (
	"context"

	"github.com/goliatone/go-vaultra/api"
)

type AccountReader interface {
	CurrentUser(ctx context.Context) (api.UserWithBusinesses, error)
	Profile(ctx context.Context) (api.UserProfile, error)
}

type MetricsReader interface {
	LatestMetrics(ctx context.Context, businessID string) (api.Metrics, error)
	MetricHistory(ctx context.Context, businessID, startDate, endDate string) (api.MetricsHistory, error)
	ReadinessScore(ctx context.Context, businessID string) (api.Readiness, error)
	ReadinessHistory(ctx context.Context, businessID string, limit int) (api.ReadinessHistory, error)
}

type RecommendationReader interface {
	Recommendations(ctx context.Context, businessID, status, priority string) (api.RecommendationList, error)
}

type ConversationReader interface {
	Conversation(ctx context.Context, id string) (api.Conversation, error)
}

type StripeReader interface {
	StripeStatus(ctx context.Context, businessID string) (api.StripeStatus, error)
}

type CurrentUserQuery struct {
	reader AccountReader
}

func NewCurrentUserQuery(reader AccountReader) *CurrentUserQuery {
	return &CurrentUserQuery{reader: reader}
}

func (q *CurrentUserQuery) Query(ctx context.Context, _ CurrentUserMessage) (api.UserWithBusinesses, error) {
	if q == nil || q.reader == nil {
		return api.UserWithBusinesses{}, queryDependencyError("query: account reader is required")
	}
	return q.reader.CurrentUser(ctx)
}

type ProfileQuery struct {
	reader AccountReader
}

func NewProfileQuery(reader AccountReader) *ProfileQuery {
	return &ProfileQuery{reader: reader}
}

func (q *ProfileQuery) Query(ctx context.Context, _ ProfileMessage) (api.UserProfile, error) {
	if q == nil || q.reader == nil {
		return api.UserProfile{}, queryDependencyError("query: account reader is required")
	}
	return q.reader.Profile(ctx)
}

type LatestMetricsQuery struct {
	reader MetricsReader
}

func NewLatestMetricsQuery(reader MetricsReader) *LatestMetricsQuery {
	return &LatestMetricsQuery{reader: reader}
}

func (q *LatestMetricsQuery) Query(ctx context.Context, msg LatestMetricsMessage) (api.Metrics, error) {
	if q == nil || q.reader == nil {
		return api.Metrics{}, queryDependencyError("query: metrics reader is required")
	}
	return q.reader.LatestMetrics(ctx, msg.BusinessID)
}

type MetricHistoryQuery struct {
	reader MetricsReader
}

func NewMetricHistoryQuery(reader MetricsReader) *MetricHistoryQuery {
	return &MetricHistoryQuery{reader: reader}
}

func (q *MetricHistoryQuery) Query(ctx context.Context, msg MetricHistoryMessage) (api.MetricsHistory, error) {
	if q == nil || q.reader == nil {
		return api.MetricsHistory{}, queryDependencyError("query: metrics reader is required")
	}
	return q.reader.MetricHistory(ctx, msg.BusinessID, msg.StartDate, msg.EndDate)
}

type ReadinessScoreQuery struct {
	reader MetricsReader
}

func NewReadinessScoreQuery(reader MetricsReader) *ReadinessScoreQuery {
	return &ReadinessScoreQuery{reader: reader}
}

func (q *ReadinessScoreQuery) Query(ctx context.Context, msg ReadinessScoreMessage) (api.Readiness, error) {
	if q == nil || q.reader == nil {
		return api.Readiness{}, queryDependencyError("query: metrics reader is required")
	}
	return q.reader.ReadinessScore(ctx, msg.BusinessID)
}

type ReadinessHistoryQuery struct {
	reader MetricsReader
}

func NewReadinessHistoryQuery(reader MetricsReader) *ReadinessHistoryQuery {
	return &ReadinessHistoryQuery{reader: reader}
}

func (q *ReadinessHistoryQuery) Query(ctx context.Context, msg ReadinessHistoryMessage) (api.ReadinessHistory, error) {
	if q == nil || q.reader == nil {
		return api.ReadinessHistory{}, queryDependencyError("query: metrics reader is required")
	}
	return q.reader.ReadinessHistory(ctx, msg.BusinessID, msg.Limit)
}

type RecommendationsQuery struct {
	reader RecommendationReader
}

func NewRecommendationsQuery(reader RecommendationReader) *RecommendationsQuery {
	return &RecommendationsQuery{reader: reader}
}

func (q *RecommendationsQuery) Query(ctx context.Context, msg RecommendationsMessage) (api.RecommendationList, error) {
	if q == nil || q.reader == nil {
		return api.RecommendationList{}, queryDependencyError("query: recommendation reader is required")
	}
	return q.reader.Recommendations(ctx, msg.BusinessID, msg.Status, msg.Priority)
}

type ConversationQuery struct {
	reader ConversationReader
}

func NewConversationQuery(reader ConversationReader) *ConversationQuery {
	return &ConversationQuery{reader: reader}
}

func (q *ConversationQuery) Query(ctx context.Context, msg ConversationMessage) (api.Conversation, error) {
	if q == nil || q.reader == nil {
		return api.Conversation{}, queryDependencyError("query: conversation reader is required")
	}
	return q.reader.Conversation(ctx, msg.ConversationID)
}

type StripeStatusQuery struct {
	reader StripeReader
}

func NewStripeStatusQuery(reader StripeReader) *StripeStatusQuery {
	return &StripeStatusQuery{reader: reader}
}

func (q *StripeStatusQuery) Query(ctx context.Context, msg StripeStatusMessage) (api.StripeStatus, error) {
	if q == nil || q.reader == nil {
		return api.StripeStatus{}, queryDependencyError("query: stripe reader is required")
	}
	return q.reader.StripeStatus(ctx, msg.BusinessID)
}
