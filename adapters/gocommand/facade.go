package gocommand

import (
	"fmt"

	"github.com/goliatone/go-command"
	commanddispatcher "github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"
	vaultra "github.com/goliatone/go-vaultra"
	"github.com/goliatone/go-vaultra/api"
	vaultracommand "github.com/goliatone/go-vaultra/command"
	vaultraquery "github.com/goliatone/go-vaultra/query"
)

// Subscriptions holds every dispatcher subscription created by RegisterFacade.
type Subscriptions []commanddispatcher.Subscription

func (s Subscriptions) Unsubscribe() {
	for _, sub := range s {
		if sub != nil {
			sub.Unsubscribe()
		}
	}
}

// RegisterFacade registers and subscribes every facade command and query so
// callers can reach the client through Dispatch and Query. On failure the
// subscriptions made so far are released.
func RegisterFacade(adapter *RegistryAdapter, facade *vaultra.Facade, runnerOpts ...runner.Option) (Subscriptions, error) {
	if facade == nil {
		return nil, fmt.Errorf("gocommand: facade is required")
	}
	commands := facade.Commands()
	queries := facade.Queries()

	var subs Subscriptions
	steps := []func() (commanddispatcher.Subscription, error){
		func() (commanddispatcher.Subscription, error) {
			return RegisterAndSubscribe[vaultracommand.SignupMessage](adapter, commands.Signup, runnerOpts...)
		},
		func() (commanddispatcher.Subscription, error) {
			return RegisterAndSubscribe[vaultracommand.LoginMessage](adapter, commands.Login, runnerOpts...)
		},
		func() (commanddispatcher.Subscription, error) {
			return RegisterAndSubscribe[vaultracommand.LogoutMessage](adapter, commands.Logout, runnerOpts...)
		},
		func() (commanddispatcher.Subscription, error) {
			return RegisterAndSubscribe[vaultracommand.UpdateProfileMessage](adapter, commands.UpdateProfile, runnerOpts...)
		},
		func() (commanddispatcher.Subscription, error) {
			return RegisterAndSubscribe[vaultracommand.CreateBusinessMessage](adapter, commands.CreateBusiness, runnerOpts...)
		},
		func() (commanddispatcher.Subscription, error) {
			return RegisterAndSubscribe[vaultracommand.UpdateBusinessMessage](adapter, commands.UpdateBusiness, runnerOpts...)
		},
		func() (commanddispatcher.Subscription, error) {
			return RegisterAndSubscribe[vaultracommand.SelectBusinessMessage](adapter, commands.SelectBusiness, runnerOpts...)
		},
		func() (commanddispatcher.Subscription, error) {
			return RegisterAndSubscribe[vaultracommand.UpdateRecommendationStatusMessage](adapter, commands.UpdateRecommendationStatus, runnerOpts...)
		},
		func() (commanddispatcher.Subscription, error) {
			return RegisterAndSubscribe[vaultracommand.ChatMessage](adapter, commands.Chat, runnerOpts...)
		},
		func() (commanddispatcher.Subscription, error) {
			return RegisterAndSubscribe[vaultracommand.ConnectStripeMessage](adapter, commands.ConnectStripe, runnerOpts...)
		},
		func() (commanddispatcher.Subscription, error) {
			return RegisterAndSubscribeQuery[vaultraquery.CurrentUserMessage, api.UserWithBusinesses](adapter, queries.CurrentUser, runnerOpts...)
		},
		func() (commanddispatcher.Subscription, error) {
			return RegisterAndSubscribeQuery[vaultraquery.ProfileMessage, api.UserProfile](adapter, queries.Profile, runnerOpts...)
		},
		func() (commanddispatcher.Subscription, error) {
			return RegisterAndSubscribeQuery[vaultraquery.LatestMetricsMessage, api.Metrics](adapter, queries.LatestMetrics, runnerOpts...)
		},
		func() (commanddispatcher.Subscription, error) {
			return RegisterAndSubscribeQuery[vaultraquery.MetricHistoryMessage, api.MetricsHistory](adapter, queries.MetricHistory, runnerOpts...)
		},
		func() (commanddispatcher.Subscription, error) {
			return RegisterAndSubscribeQuery[vaultraquery.ReadinessScoreMessage, api.Readiness](adapter, queries.ReadinessScore, runnerOpts...)
		},
		func() (commanddispatcher.Subscription, error) {
			return RegisterAndSubscribeQuery[vaultraquery.ReadinessHistoryMessage, api.ReadinessHistory](adapter, queries.ReadinessHistory, runnerOpts...)
		},
		func() (commanddispatcher.Subscription, error) {
			return RegisterAndSubscribeQuery[vaultraquery.RecommendationsMessage, api.RecommendationList](adapter, queries.Recommendations, runnerOpts...)
		},
		func() (commanddispatcher.Subscription, error) {
			return RegisterAndSubscribeQuery[vaultraquery.ConversationMessage, api.Conversation](adapter, queries.Conversation, runnerOpts...)
		},
		func() (commanddispatcher.Subscription, error) {
			return RegisterAndSubscribeQuery[vaultraquery.StripeStatusMessage, api.StripeStatus](adapter, queries.StripeStatus, runnerOpts...)
		},
	}
	for _, step := range steps {
		sub, err := step()
		if err != nil {
			subs.Unsubscribe()
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, nil
}

var (
	_ command.Commander[vaultracommand.LoginMessage]                               = (*vaultracommand.LoginCommand)(nil)
	_ command.Querier[vaultraquery.LatestMetricsMessage, api.Metrics]              = (*vaultraquery.LatestMetricsQuery)(nil)
	_ command.Querier[vaultraquery.RecommendationsMessage, api.RecommendationList] = (*vaultraquery.RecommendationsQuery)(nil)
)
