package vaultra

import (
	"fmt"

	vaultracommand "github.com/goliatone/go-vaultra/command"
	vaultraquery "github.com/goliatone/go-vaultra/query"
)

// CommandQueryService is satisfied by *api.Client.
type CommandQueryService interface {
	vaultracommand.MutatingService
	vaultraquery.AccountReader
	vaultraquery.MetricsReader
	vaultraquery.RecommendationReader
	vaultraquery.ConversationReader
	vaultraquery.StripeReader
}

type Commands struct {
	Signup                     *vaultracommand.SignupCommand
	Login                      *vaultracommand.LoginCommand
	Logout                     *vaultracommand.LogoutCommand
	UpdateProfile              *vaultracommand.UpdateProfileCommand
	CreateBusiness             *vaultracommand.CreateBusinessCommand
	UpdateBusiness             *vaultracommand.UpdateBusinessCommand
	SelectBusiness             *vaultracommand.SelectBusinessCommand
	UpdateRecommendationStatus *vaultracommand.UpdateRecommendationStatusCommand
	Chat                       *vaultracommand.ChatCommand
	ConnectStripe              *vaultracommand.ConnectStripeCommand
}

type Queries struct {
	CurrentUser      *vaultraquery.CurrentUserQuery
	Profile          *vaultraquery.ProfileQuery
	LatestMetrics    *vaultraquery.LatestMetricsQuery
	MetricHistory    *vaultraquery.MetricHistoryQuery
	ReadinessScore   *vaultraquery.ReadinessScoreQuery
	ReadinessHistory *vaultraquery.ReadinessHistoryQuery
	Recommendations  *vaultraquery.RecommendationsQuery
	Conversation     *vaultraquery.ConversationQuery
	StripeStatus     *vaultraquery.StripeStatusQuery
}

type Facade struct {
	service  CommandQueryService
	commands Commands
	queries  Queries
}

func NewFacade(service CommandQueryService) (*Facade, error) {
	if service == nil {
		return nil, fmt.Errorf("vaultra: command/query service is required")
	}

	facade := &Facade{service: service}
	facade.commands = Commands{
		Signup:                     vaultracommand.NewSignupCommand(service),
		Login:                      vaultracommand.NewLoginCommand(service),
		Logout:                     vaultracommand.NewLogoutCommand(service),
		UpdateProfile:              vaultracommand.NewUpdateProfileCommand(service),
		CreateBusiness:             vaultracommand.NewCreateBusinessCommand(service),
		UpdateBusiness:             vaultracommand.NewUpdateBusinessCommand(service),
		SelectBusiness:             vaultracommand.NewSelectBusinessCommand(service),
		UpdateRecommendationStatus: vaultracommand.NewUpdateRecommendationStatusCommand(service),
		Chat:                       vaultracommand.NewChatCommand(service),
		ConnectStripe:              vaultracommand.NewConnectStripeCommand(service),
	}
	facade.queries = Queries{
		CurrentUser:      vaultraquery.NewCurrentUserQuery(service),
		Profile:          vaultraquery.NewProfileQuery(service),
		LatestMetrics:    vaultraquery.NewLatestMetricsQuery(service),
		MetricHistory:    vaultraquery.NewMetricHistoryQuery(service),
		ReadinessScore:   vaultraquery.NewReadinessScoreQuery(service),
		ReadinessHistory: vaultraquery.NewReadinessHistoryQuery(service),
		Recommendations:  vaultraquery.NewRecommendationsQuery(service),
		Conversation:     vaultraquery.NewConversationQuery(service),
		StripeStatus:     vaultraquery.NewStripeStatusQuery(service),
	}

	return facade, nil
}

func (f *Facade) Commands() Commands {
	if f == nil {
		return Commands{}
	}
	return f.commands
}

func (f *Facade) Queries() Queries {
	if f == nil {
		return Queries{}
	}
	return f.queries
}

func (f *Facade) Service() CommandQueryService {
	if f == nil {
		return nil
	}
	return f.service
}
