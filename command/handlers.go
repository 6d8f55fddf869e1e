package command

import (
	"context"

	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-vaultra/api"
)

// MutatingService is the write side of api.Client.
type MutatingService interface {
	Signup(ctx context.Context, email, password, name string) (api.TokenResponse, error)
	Login(ctx context.Context, email, password string) (api.TokenResponse, error)
	Logout() error
	UpdateProfile(ctx context.Context, in api.UserUpdate) (api.UserProfile, error)
	CreateBusiness(ctx context.Context, in api.BusinessCreate) (api.Business, error)
	UpdateBusiness(ctx context.Context, id string, in api.BusinessUpdate) (api.Business, error)
	SelectBusiness(id string) error
	UpdateRecommendationStatus(ctx context.Context, id, status string) (api.Recommendation, error)
	Chat(ctx context.Context, businessID, message, conversationID string) (api.ChatResponse, error)
	ConnectStripe(ctx context.Context, businessID string) (api.StripeConnect, error)
}

type SignupCommand struct {
	service MutatingService
}

func NewSignupCommand(service MutatingService) *SignupCommand {
	return &SignupCommand{service: service}
}

func (c *SignupCommand) Execute(ctx context.Context, msg SignupMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: signup service is required")
	}
	out, err := c.service.Signup(ctx, msg.Email, msg.Password, msg.Name)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type LoginCommand struct {
	service MutatingService
}

func NewLoginCommand(service MutatingService) *LoginCommand {
	return &LoginCommand{service: service}
}

func (c *LoginCommand) Execute(ctx context.Context, msg LoginMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: login service is required")
	}
	out, err := c.service.Login(ctx, msg.Email, msg.Password)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type LogoutCommand struct {
	service MutatingService
}

func NewLogoutCommand(service MutatingService) *LogoutCommand {
	return &LogoutCommand{service: service}
}

func (c *LogoutCommand) Execute(_ context.Context, _ LogoutMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: logout service is required")
	}
	return c.service.Logout()
}

type UpdateProfileCommand struct {
	service MutatingService
}

func NewUpdateProfileCommand(service MutatingService) *UpdateProfileCommand {
	return &UpdateProfileCommand{service: service}
}

func (c *UpdateProfileCommand) Execute(ctx context.Context, msg UpdateProfileMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: profile service is required")
	}
	out, err := c.service.UpdateProfile(ctx, msg.Update)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type CreateBusinessCommand struct {
	service MutatingService
}

func NewCreateBusinessCommand(service MutatingService) *CreateBusinessCommand {
	return &CreateBusinessCommand{service: service}
}

func (c *CreateBusinessCommand) Execute(ctx context.Context, msg CreateBusinessMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: business service is required")
	}
	out, err := c.service.CreateBusiness(ctx, msg.Business)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type UpdateBusinessCommand struct {
	service MutatingService
}

func NewUpdateBusinessCommand(service MutatingService) *UpdateBusinessCommand {
	return &UpdateBusinessCommand{service: service}
}

func (c *UpdateBusinessCommand) Execute(ctx context.Context, msg UpdateBusinessMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: business service is required")
	}
	out, err := c.service.UpdateBusiness(ctx, msg.BusinessID, msg.Update)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type SelectBusinessCommand struct {
	service MutatingService
}

func NewSelectBusinessCommand(service MutatingService) *SelectBusinessCommand {
	return &SelectBusinessCommand{service: service}
}

func (c *SelectBusinessCommand) Execute(_ context.Context, msg SelectBusinessMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: business service is required")
	}
	return c.service.SelectBusiness(msg.BusinessID)
}

type UpdateRecommendationStatusCommand struct {
	service MutatingService
}

func NewUpdateRecommendationStatusCommand(service MutatingService) *UpdateRecommendationStatusCommand {
	return &UpdateRecommendationStatusCommand{service: service}
}

func (c *UpdateRecommendationStatusCommand) Execute(ctx context.Context, msg UpdateRecommendationStatusMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: recommendation service is required")
	}
	out, err := c.service.UpdateRecommendationStatus(ctx, msg.RecommendationID, msg.Status)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type ChatCommand struct {
	service MutatingService
}

func NewChatCommand(service MutatingService) *ChatCommand {
	return &ChatCommand{service: service}
}

func (c *ChatCommand) Execute(ctx context.Context, msg ChatMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: agent service is required")
	}
	out, err := c.service.Chat(ctx, msg.BusinessID, msg.Message, msg.ConversationID)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type ConnectStripeCommand struct {
	service MutatingService
}

func NewConnectStripeCommand(service MutatingService) *ConnectStripeCommand {
	return &ConnectStripeCommand{service: service}
}

func (c *ConnectStripeCommand) Execute(ctx context.Context, msg ConnectStripeMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: stripe service is required")
	}
	out, err := c.service.ConnectStripe(ctx, msg.BusinessID)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

func storeResult[T any](ctx context.Context, value T) {
	collector := gocmd.ResultFromContext[T](ctx)
	if collector == nil {
		return
	}
	collector.Store(value)
}
