package main

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/goliatone/go-vaultra/api"
	vaultracommand "github.com/goliatone/go-vaultra/command"
	vaultraquery "github.com/goliatone/go-vaultra/query"
)

type CLI struct {
	Globals

	Login           LoginCmd           `cmd:"" help:"Log in and store the session token."`
	Signup          SignupCmd          `cmd:"" help:"Create an account and store the session token."`
	Logout          LogoutCmd          `cmd:"" help:"Forget the stored session token."`
	Whoami          WhoamiCmd          `cmd:"" help:"Show the current user and their businesses."`
	Profile         ProfileCmd         `cmd:"" help:"Show or update the user profile."`
	Business        BusinessCmd        `cmd:"" help:"Create or update a business."`
	Use             UseCmd             `cmd:"" help:"Select the business used by scoped commands."`
	Metrics         MetricsCmd         `cmd:"" help:"Show the latest metrics or their history."`
	Readiness       ReadinessCmd       `cmd:"" help:"Show the readiness score or its history."`
	Recommendations RecommendationsCmd `cmd:"" help:"List recommendations."`
	RecommendStatus RecommendStatusCmd `cmd:"" name:"recommend-status" help:"Accept or dismiss a recommendation."`
	Chat            ChatCmd            `cmd:"" help:"Send a message to the assistant."`
	Conversation    ConversationCmd    `cmd:"" help:"Show a conversation."`
	Stripe          StripeCmd          `cmd:"" help:"Manage the Stripe integration."`
}

type LoginCmd struct {
	Email    string `required:"" help:"Account email."`
	Password string `required:"" env:"VAULTRA_PASSWORD" help:"Account password."`
}

func (c *LoginCmd) Run(ctx context.Context, app *App) error {
	msg := vaultracommand.LoginMessage{Email: c.Email, Password: c.Password}
	return execute[api.TokenResponse](ctx, app, msg, func(ctx context.Context) error {
		return app.facade.Commands().Login.Execute(ctx, msg)
	})
}

type SignupCmd struct {
	Email    string `required:"" help:"Account email."`
	Password string `required:"" env:"VAULTRA_PASSWORD" help:"Account password."`
	Name     string `help:"Display name."`
}

func (c *SignupCmd) Run(ctx context.Context, app *App) error {
	msg := vaultracommand.SignupMessage{Email: c.Email, Password: c.Password, Name: c.Name}
	return execute[api.TokenResponse](ctx, app, msg, func(ctx context.Context) error {
		return app.facade.Commands().Signup.Execute(ctx, msg)
	})
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx context.Context, app *App) error {
	return app.facade.Commands().Logout.Execute(ctx, vaultracommand.LogoutMessage{})
}

type WhoamiCmd struct{}

func (c *WhoamiCmd) Run(ctx context.Context, app *App) error {
	msg := vaultraquery.CurrentUserMessage{}
	return query(ctx, app, msg, func(ctx context.Context) (api.UserWithBusinesses, error) {
		return app.facade.Queries().CurrentUser.Query(ctx, msg)
	})
}

type ProfileCmd struct {
	Name      *string `help:"New display name."`
	AvatarURL *string `name:"avatar-url" help:"New avatar URL."`
}

func (c *ProfileCmd) Run(ctx context.Context, app *App) error {
	if c.Name == nil && c.AvatarURL == nil {
		msg := vaultraquery.ProfileMessage{}
		return query(ctx, app, msg, func(ctx context.Context) (api.UserProfile, error) {
			return app.facade.Queries().Profile.Query(ctx, msg)
		})
	}
	msg := vaultracommand.UpdateProfileMessage{Update: api.UserUpdate{Name: c.Name, AvatarURL: c.AvatarURL}}
	return execute[api.UserProfile](ctx, app, msg, func(ctx context.Context) error {
		return app.facade.Commands().UpdateProfile.Execute(ctx, msg)
	})
}

type BusinessCmd struct {
	Create BusinessCreateCmd `cmd:"" help:"Create a business."`
	Update BusinessUpdateCmd `cmd:"" help:"Update a business."`
}

type BusinessCreateCmd struct {
	Name            string `arg:"" help:"Business name."`
	LegalEntity     string `name:"legal-entity" help:"Legal entity type."`
	Industry        string `help:"Industry."`
	RevenueEstimate string `name:"revenue-estimate" help:"Estimated annual revenue."`
	FoundedAt       string `name:"founded-at" help:"Founding date (YYYY-MM-DD)."`
}

func (c *BusinessCreateCmd) Run(ctx context.Context, app *App) error {
	msg := vaultracommand.CreateBusinessMessage{Business: api.BusinessCreate{
		Name:            c.Name,
		LegalEntity:     c.LegalEntity,
		Industry:        c.Industry,
		RevenueEstimate: json.Number(strings.TrimSpace(c.RevenueEstimate)),
		FoundedAt:       c.FoundedAt,
	}}
	return execute[api.Business](ctx, app, msg, func(ctx context.Context) error {
		return app.facade.Commands().CreateBusiness.Execute(ctx, msg)
	})
}

type BusinessUpdateCmd struct {
	ID              string  `arg:"" help:"Business id."`
	Name            *string `help:"Business name."`
	LegalEntity     *string `name:"legal-entity" help:"Legal entity type."`
	Industry        *string `help:"Industry."`
	RevenueEstimate *string `name:"revenue-estimate" help:"Estimated annual revenue."`
	FoundedAt       *string `name:"founded-at" help:"Founding date (YYYY-MM-DD)."`
}

func (c *BusinessUpdateCmd) Run(ctx context.Context, app *App) error {
	update := api.BusinessUpdate{
		Name:        c.Name,
		LegalEntity: c.LegalEntity,
		Industry:    c.Industry,
		FoundedAt:   c.FoundedAt,
	}
	if c.RevenueEstimate != nil {
		revenue := json.Number(strings.TrimSpace(*c.RevenueEstimate))
		update.RevenueEstimate = &revenue
	}
	msg := vaultracommand.UpdateBusinessMessage{BusinessID: c.ID, Update: update}
	return execute[api.Business](ctx, app, msg, func(ctx context.Context) error {
		return app.facade.Commands().UpdateBusiness.Execute(ctx, msg)
	})
}

type UseCmd struct {
	BusinessID string `arg:"" name:"business-id" help:"Business id to select."`
}

func (c *UseCmd) Run(ctx context.Context, app *App) error {
	msg := vaultracommand.SelectBusinessMessage{BusinessID: c.BusinessID}
	if err := msg.Validate(); err != nil {
		return err
	}
	return app.facade.Commands().SelectBusiness.Execute(ctx, msg)
}

type MetricsCmd struct {
	Business string `help:"Business id; defaults to the selected business."`
	History  bool   `help:"Show the metrics history."`
	Start    string `help:"History start date (YYYY-MM-DD)."`
	End      string `help:"History end date (YYYY-MM-DD)."`
}

func (c *MetricsCmd) Run(ctx context.Context, app *App) error {
	if c.History {
		msg := vaultraquery.MetricHistoryMessage{BusinessID: c.Business, StartDate: c.Start, EndDate: c.End}
		return query(ctx, app, msg, func(ctx context.Context) (api.MetricsHistory, error) {
			return app.facade.Queries().MetricHistory.Query(ctx, msg)
		})
	}
	msg := vaultraquery.LatestMetricsMessage{BusinessID: c.Business}
	return query(ctx, app, msg, func(ctx context.Context) (api.Metrics, error) {
		return app.facade.Queries().LatestMetrics.Query(ctx, msg)
	})
}

type ReadinessCmd struct {
	Business string `help:"Business id; defaults to the selected business."`
	History  bool   `help:"Show the score history."`
	Limit    int    `help:"Number of history entries; 0 uses the default of 30."`
}

func (c *ReadinessCmd) Run(ctx context.Context, app *App) error {
	if c.History {
		msg := vaultraquery.ReadinessHistoryMessage{BusinessID: c.Business, Limit: c.Limit}
		return query(ctx, app, msg, func(ctx context.Context) (api.ReadinessHistory, error) {
			return app.facade.Queries().ReadinessHistory.Query(ctx, msg)
		})
	}
	msg := vaultraquery.ReadinessScoreMessage{BusinessID: c.Business}
	return query(ctx, app, msg, func(ctx context.Context) (api.Readiness, error) {
		return app.facade.Queries().ReadinessScore.Query(ctx, msg)
	})
}

type RecommendationsCmd struct {
	Business string `help:"Business id; defaults to the selected business."`
	Status   string `help:"Filter by status."`
	Priority string `help:"Filter by priority."`
}

func (c *RecommendationsCmd) Run(ctx context.Context, app *App) error {
	msg := vaultraquery.RecommendationsMessage{BusinessID: c.Business, Status: c.Status, Priority: c.Priority}
	return query(ctx, app, msg, func(ctx context.Context) (api.RecommendationList, error) {
		return app.facade.Queries().Recommendations.Query(ctx, msg)
	})
}

type RecommendStatusCmd struct {
	ID     string `arg:"" help:"Recommendation id."`
	Status string `arg:"" help:"New status: accepted or dismissed."`
}

func (c *RecommendStatusCmd) Run(ctx context.Context, app *App) error {
	msg := vaultracommand.UpdateRecommendationStatusMessage{RecommendationID: c.ID, Status: c.Status}
	return execute[api.Recommendation](ctx, app, msg, func(ctx context.Context) error {
		return app.facade.Commands().UpdateRecommendationStatus.Execute(ctx, msg)
	})
}

type ChatCmd struct {
	Message      string `arg:"" help:"Message to send."`
	Business     string `help:"Business id; defaults to the selected business."`
	Conversation string `help:"Continue an existing conversation."`
}

func (c *ChatCmd) Run(ctx context.Context, app *App) error {
	msg := vaultracommand.ChatMessage{BusinessID: c.Business, Message: c.Message, ConversationID: c.Conversation}
	return execute[api.ChatResponse](ctx, app, msg, func(ctx context.Context) error {
		return app.facade.Commands().Chat.Execute(ctx, msg)
	})
}

type ConversationCmd struct {
	ID string `arg:"" help:"Conversation id."`
}

func (c *ConversationCmd) Run(ctx context.Context, app *App) error {
	msg := vaultraquery.ConversationMessage{ConversationID: c.ID}
	return query(ctx, app, msg, func(ctx context.Context) (api.Conversation, error) {
		return app.facade.Queries().Conversation.Query(ctx, msg)
	})
}

type StripeCmd struct {
	Connect StripeConnectCmd `cmd:"" help:"Start Stripe onboarding."`
	Status  StripeStatusCmd  `cmd:"" help:"Show the Stripe connection status."`
}

type StripeConnectCmd struct {
	Business string `help:"Business id; defaults to the selected business."`
}

func (c *StripeConnectCmd) Run(ctx context.Context, app *App) error {
	msg := vaultracommand.ConnectStripeMessage{BusinessID: c.Business}
	return execute[api.StripeConnect](ctx, app, msg, func(ctx context.Context) error {
		return app.facade.Commands().ConnectStripe.Execute(ctx, msg)
	})
}

type StripeStatusCmd struct {
	Business string `help:"Business id; defaults to the selected business."`
}

func (c *StripeStatusCmd) Run(ctx context.Context, app *App) error {
	msg := vaultraquery.StripeStatusMessage{BusinessID: c.Business}
	return query(ctx, app, msg, func(ctx context.Context) (api.StripeStatus, error) {
		return app.facade.Queries().StripeStatus.Query(ctx, msg)
	})
}
