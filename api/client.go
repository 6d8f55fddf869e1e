package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/goliatone/go-vaultra/core"
)

// Client exposes the Vaultra endpoints. It is safe for concurrent use; two
// identical concurrent reads result in one network call.
type Client struct {
	requester   core.Requester
	credentials core.CredentialStore
	navigator   core.Navigator
}

type ClientOption func(*Client)

// WithNavigator hands the Stripe onboarding URL to n after ConnectStripe.
func WithNavigator(n core.Navigator) ClientOption {
	return func(c *Client) {
		if n != nil {
			c.navigator = n
		}
	}
}

func NewClient(requester core.Requester, credentials core.CredentialStore, opts ...ClientOption) (*Client, error) {
	if requester == nil {
		return nil, core.BadInputError("api: requester is required", nil)
	}
	if credentials == nil {
		return nil, core.BadInputError("api: credential store is required", nil)
	}
	client := &Client{requester: requester, credentials: credentials}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client, nil
}

// NewClientFromAccessLayer shares the access layer's credential store.
func NewClientFromAccessLayer(layer *core.AccessLayer, opts ...ClientOption) (*Client, error) {
	if layer == nil {
		return nil, core.BadInputError("api: access layer is required", nil)
	}
	return NewClient(layer, layer.Credentials(), opts...)
}

func (c *Client) Credentials() core.CredentialStore {
	return c.credentials
}

func (c *Client) Signup(ctx context.Context, email, password, name string) (TokenResponse, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return TokenResponse{}, core.BadInputError("api: email and password are required", nil)
	}
	out, err := core.RequestJSON[TokenResponse](ctx, c.requester, "/auth/signup", core.RequestOptions{
		Method: http.MethodPost,
		Body:   signupRequest{Email: strings.TrimSpace(email), Password: password, Name: name},
	})
	if err != nil {
		return TokenResponse{}, err
	}
	if err := c.credentials.SetCredential(out.Token); err != nil {
		return out, core.WrapFailure(err, "api: store credential", nil)
	}
	return out, nil
}

// Login stores the returned token. When no account is selected yet the
// first business of the user becomes the selected account.
func (c *Client) Login(ctx context.Context, email, password string) (TokenResponse, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return TokenResponse{}, core.BadInputError("api: email and password are required", nil)
	}
	out, err := core.RequestJSON[TokenResponse](ctx, c.requester, "/auth/login", core.RequestOptions{
		Method: http.MethodPost,
		Body:   loginRequest{Email: strings.TrimSpace(email), Password: password},
	})
	if err != nil {
		return TokenResponse{}, err
	}
	if err := c.credentials.SetCredential(out.Token); err != nil {
		return out, core.WrapFailure(err, "api: store credential", nil)
	}
	if _, selected := c.credentials.SelectedAccount(); !selected && len(out.User.Businesses) > 0 {
		if err := c.credentials.SetSelectedAccount(out.User.Businesses[0].ID); err != nil {
			return out, core.WrapFailure(err, "api: store selected account", nil)
		}
	}
	return out, nil
}

// Logout forgets the credential. The selected account is kept.
func (c *Client) Logout() error {
	if err := c.credentials.ClearCredential(); err != nil {
		return core.WrapFailure(err, "api: clear credential", nil)
	}
	return nil
}

func (c *Client) SelectBusiness(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return core.BadInputError("api: business id is required", nil)
	}
	if err := c.credentials.SetSelectedAccount(id); err != nil {
		return core.WrapFailure(err, "api: store selected account", map[string]any{"business_id": id})
	}
	return nil
}

func (c *Client) CurrentUser(ctx context.Context) (UserWithBusinesses, error) {
	return core.RequestJSON[UserWithBusinesses](ctx, c.requester, "/auth/me", core.RequestOptions{})
}

func (c *Client) Profile(ctx context.Context) (UserProfile, error) {
	return core.RequestJSON[UserProfile](ctx, c.requester, "/users/me", core.RequestOptions{})
}

func (c *Client) UpdateProfile(ctx context.Context, in UserUpdate) (UserProfile, error) {
	return core.RequestJSON[UserProfile](ctx, c.requester, "/users/me", core.RequestOptions{
		Method: http.MethodPatch,
		Body:   in,
	})
}

func (c *Client) CreateBusiness(ctx context.Context, in BusinessCreate) (Business, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Business{}, core.BadInputError("api: business name is required", nil)
	}
	return core.RequestJSON[Business](ctx, c.requester, "/users/businesses", core.RequestOptions{
		Method: http.MethodPost,
		Body:   in,
	})
}

func (c *Client) UpdateBusiness(ctx context.Context, id string, in BusinessUpdate) (Business, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Business{}, core.BadInputError("api: business id is required", nil)
	}
	return core.RequestJSON[Business](ctx, c.requester, "/users/businesses/"+url.PathEscape(id), core.RequestOptions{
		Method: http.MethodPatch,
		Body:   in,
	})
}

func (c *Client) LatestMetrics(ctx context.Context, businessID string) (Metrics, error) {
	bid, err := core.ResolveAccount(c.credentials, businessID)
	if err != nil {
		return Metrics{}, err
	}
	return core.RequestJSON[Metrics](ctx, c.requester, endpoint("/metrics", param("business_id", bid)), core.RequestOptions{})
}

// MetricHistory bounds the range with optional YYYY-MM-DD dates.
func (c *Client) MetricHistory(ctx context.Context, businessID, startDate, endDate string) (MetricsHistory, error) {
	bid, err := core.ResolveAccount(c.credentials, businessID)
	if err != nil {
		return MetricsHistory{}, err
	}
	path := endpoint("/metrics/history",
		param("business_id", bid),
		param("start_date", startDate),
		param("end_date", endDate),
	)
	return core.RequestJSON[MetricsHistory](ctx, c.requester, path, core.RequestOptions{})
}

func (c *Client) ReadinessScore(ctx context.Context, businessID string) (Readiness, error) {
	bid, err := core.ResolveAccount(c.credentials, businessID)
	if err != nil {
		return Readiness{}, err
	}
	return core.RequestJSON[Readiness](ctx, c.requester, endpoint("/readiness", param("business_id", bid)), core.RequestOptions{})
}

// ReadinessHistory uses DefaultReadinessHistoryLimit when limit is not
// positive.
func (c *Client) ReadinessHistory(ctx context.Context, businessID string, limit int) (ReadinessHistory, error) {
	bid, err := core.ResolveAccount(c.credentials, businessID)
	if err != nil {
		return ReadinessHistory{}, err
	}
	if limit <= 0 {
		limit = DefaultReadinessHistoryLimit
	}
	path := endpoint("/readiness/history",
		param("business_id", bid),
		param("limit", strconv.Itoa(limit)),
	)
	return core.RequestJSON[ReadinessHistory](ctx, c.requester, path, core.RequestOptions{})
}

func (c *Client) Recommendations(ctx context.Context, businessID, status, priority string) (RecommendationList, error) {
	bid, err := core.ResolveAccount(c.credentials, businessID)
	if err != nil {
		return RecommendationList{}, err
	}
	path := endpoint("/recommendations",
		param("business_id", bid),
		param("status", status),
		param("priority", priority),
	)
	return core.RequestJSON[RecommendationList](ctx, c.requester, path, core.RequestOptions{})
}

func (c *Client) UpdateRecommendationStatus(ctx context.Context, id, status string) (Recommendation, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Recommendation{}, core.BadInputError("api: recommendation id is required", nil)
	}
	status = strings.TrimSpace(strings.ToLower(status))
	if status != RecommendationAccepted && status != RecommendationDismissed {
		return Recommendation{}, core.BadInputError(
			"api: recommendation status must be accepted or dismissed",
			map[string]any{"status": status},
		)
	}
	return core.RequestJSON[Recommendation](ctx, c.requester, "/recommendations/"+url.PathEscape(id), core.RequestOptions{
		Method: http.MethodPatch,
		Body:   statusUpdateRequest{Status: status},
	})
}

// Chat sends message to the agent. An empty conversationID starts a new
// conversation.
func (c *Client) Chat(ctx context.Context, businessID, message, conversationID string) (ChatResponse, error) {
	bid, err := core.ResolveAccount(c.credentials, businessID)
	if err != nil {
		return ChatResponse{}, err
	}
	if strings.TrimSpace(message) == "" {
		return ChatResponse{}, core.BadInputError("api: chat message is required", nil)
	}
	body := chatRequest{BusinessID: bid, Message: message}
	if id := strings.TrimSpace(conversationID); id != "" {
		body.ConversationID = &id
	}
	return core.RequestJSON[ChatResponse](ctx, c.requester, "/agent/chat", core.RequestOptions{
		Method: http.MethodPost,
		Body:   body,
	})
}

func (c *Client) Conversation(ctx context.Context, id string) (Conversation, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Conversation{}, core.BadInputError("api: conversation id is required", nil)
	}
	return core.RequestJSON[Conversation](ctx, c.requester, "/agent/conversations/"+url.PathEscape(id), core.RequestOptions{})
}

// ConnectStripe asks the backend for the Stripe onboarding URL and passes it
// to the configured navigator, if any.
func (c *Client) ConnectStripe(ctx context.Context, businessID string) (StripeConnect, error) {
	bid, err := core.ResolveAccount(c.credentials, businessID)
	if err != nil {
		return StripeConnect{}, err
	}
	out, err := core.RequestJSON[StripeConnect](ctx, c.requester,
		endpoint("/integrations/stripe/connect", param("business_id", bid)),
		core.RequestOptions{},
	)
	if err != nil {
		return StripeConnect{}, err
	}
	if c.navigator != nil && strings.TrimSpace(out.URL) != "" {
		if err := c.navigator.Navigate(ctx, out.URL); err != nil {
			return out, core.WrapFailure(err, "api: open stripe onboarding", map[string]any{"url": out.URL})
		}
	}
	return out, nil
}

func (c *Client) StripeStatus(ctx context.Context, businessID string) (StripeStatus, error) {
	bid, err := core.ResolveAccount(c.credentials, businessID)
	if err != nil {
		return StripeStatus{}, err
	}
	return core.RequestJSON[StripeStatus](ctx, c.requester,
		endpoint("/integrations/stripe/status", param("business_id", bid)),
		core.RequestOptions{},
	)
}
