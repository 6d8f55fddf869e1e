package command

import (
	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-vaultra/api"
)

var (
	_ gocmd.Commander[SignupMessage]                     = (*SignupCommand)(nil)
	_ gocmd.Commander[LoginMessage]                      = (*LoginCommand)(nil)
	_ gocmd.Commander[LogoutMessage]                     = (*LogoutCommand)(nil)
	_ gocmd.Commander[UpdateProfileMessage]              = (*UpdateProfileCommand)(nil)
	_ gocmd.Commander[CreateBusinessMessage]             = (*CreateBusinessCommand)(nil)
	_ gocmd.Commander[UpdateBusinessMessage]             = (*UpdateBusinessCommand)(nil)
	_ gocmd.Commander[SelectBusinessMessage]             = (*SelectBusinessCommand)(nil)
	_ gocmd.Commander[UpdateRecommendationStatusMessage] = (*UpdateRecommendationStatusCommand)(nil)
	_ gocmd.Commander[ChatMessage]                       = (*ChatCommand)(nil)
	_ gocmd.Commander[ConnectStripeMessage]              = (*ConnectStripeCommand)(nil)

	_ MutatingService = (*api.Client)(nil)
)
