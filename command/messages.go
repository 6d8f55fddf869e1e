package command

import (
	"strings"

	"github.com/goliatone/go-vaultra/api"
)

const (
	TypeSignup                     = "vaultra.command.auth.signup"
	TypeLogin                      = "vaultra.command.auth.login"
	TypeLogout                     = "vaultra.command.auth.logout"
	TypeUpdateProfile              = "vaultra.command.profile.update"
	TypeCreateBusiness             = "vaultra.command.business.create"
	TypeUpdateBusiness             = "vaultra.command.business.update"
	TypeSelectBusiness             = "vaultra.command.business.select"
	TypeUpdateRecommendationStatus = "vaultra.command.recommendation.update_status"
	TypeChat                       = "vaultra.command.agent.chat"
	TypeConnectStripe              = "vaultra.command.stripe.connect"
)

type SignupMessage struct {
	Email    string
	Password string
	Name     string
}

func (SignupMessage) Type() string { return TypeSignup }

func (m SignupMessage) Validate() error {
	if err := validateCredentials(m.Email, m.Password); err != nil {
		return err
	}
	if strings.TrimSpace(m.Name) == "" {
		return commandValidationError("name", "name is required")
	}
	return nil
}

type LoginMessage struct {
	Email    string
	Password string
}

func (LoginMessage) Type() string { return TypeLogin }

func (m LoginMessage) Validate() error {
	return validateCredentials(m.Email, m.Password)
}

type LogoutMessage struct{}

func (LogoutMessage) Type() string { return TypeLogout }

func (LogoutMessage) Validate() error { return nil }

type UpdateProfileMessage struct {
	Update api.UserUpdate
}

func (UpdateProfileMessage) Type() string { return TypeUpdateProfile }

func (m UpdateProfileMessage) Validate() error {
	if m.Update.Name == nil && m.Update.AvatarURL == nil {
		return commandValidationError("update", "at least one profile field is required")
	}
	return nil
}

type CreateBusinessMessage struct {
	Business api.BusinessCreate
}

func (CreateBusinessMessage) Type() string { return TypeCreateBusiness }

func (m CreateBusinessMessage) Validate() error {
	if strings.TrimSpace(m.Business.Name) == "" {
		return commandValidationError("name", "business name is required")
	}
	return nil
}

type UpdateBusinessMessage struct {
	BusinessID string
	Update     api.BusinessUpdate
}

func (UpdateBusinessMessage) Type() string { return TypeUpdateBusiness }

func (m UpdateBusinessMessage) Validate() error {
	if strings.TrimSpace(m.BusinessID) == "" {
		return commandValidationError("business_id", "business id is required")
	}
	return nil
}

type SelectBusinessMessage struct {
	BusinessID string
}

func (SelectBusinessMessage) Type() string { return TypeSelectBusiness }

func (m SelectBusinessMessage) Validate() error {
	if strings.TrimSpace(m.BusinessID) == "" {
		return commandValidationError("business_id", "business id is required")
	}
	return nil
}

type UpdateRecommendationStatusMessage struct {
	RecommendationID string
	Status           string
}

func (UpdateRecommendationStatusMessage) Type() string { return TypeUpdateRecommendationStatus }

func (m UpdateRecommendationStatusMessage) Validate() error {
	if strings.TrimSpace(m.RecommendationID) == "" {
		return commandValidationError("recommendation_id", "recommendation id is required")
	}
	switch strings.TrimSpace(strings.ToLower(m.Status)) {
	case api.RecommendationAccepted, api.RecommendationDismissed:
		return nil
	default:
		return commandValidationError("status", "status must be accepted or dismissed")
	}
}

// ChatMessage resolves an empty BusinessID from the selected account.
type ChatMessage struct {
	BusinessID     string
	Message        string
	ConversationID string
}

func (ChatMessage) Type() string { return TypeChat }

func (m ChatMessage) Validate() error {
	if strings.TrimSpace(m.Message) == "" {
		return commandValidationError("message", "message is required")
	}
	return nil
}

type ConnectStripeMessage struct {
	BusinessID string
}

func (ConnectStripeMessage) Type() string { return TypeConnectStripe }

func (ConnectStripeMessage) Validate() error { return nil }

func validateCredentials(email, password string) error {
	if strings.TrimSpace(email) == "" {
		return commandValidationError("email", "email is required")
	}
	if !strings.Contains(email, "@") {
		return commandValidationError("email", "email is invalid")
	}
	if password == "" {
		return commandValidationError("password", "password is required")
	}
	return nil
}
