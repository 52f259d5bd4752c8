package bureausdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client calls the bureau API. Set AccessToken (or use WithToken) for staff
// and client routes.
type Client struct {
	BaseURL     string
	HTTPClient  *http.Client
	AccessToken string
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// WithToken returns a copy of c that authenticates with token.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.AccessToken = token
	return &cp
}

func (c *Client) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/livez", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/readyz", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitConsultation is the public intake form.
func (c *Client) SubmitConsultation(ctx context.Context, req ConsultationRequest) (*ConsultationCreatedResponse, error) {
	var out ConsultationCreatedResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/consultations", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListOptions filters ListConsultations. Zero values are omitted.
type ListOptions struct {
	Statuses []string
	Email    string
	Query    string
	Limit    int
	Offset   int
}

func (o ListOptions) values() url.Values {
	v := url.Values{}
	if len(o.Statuses) > 0 {
		v.Set("status", strings.Join(o.Statuses, ","))
	}
	if o.Email != "" {
		v.Set("email", o.Email)
	}
	if o.Query != "" {
		v.Set("q", o.Query)
	}
	if o.Limit != 0 {
		v.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Offset != 0 {
		v.Set("offset", strconv.Itoa(o.Offset))
	}
	return v
}

func (c *Client) ListConsultations(ctx context.Context, opts ListOptions) (*ConsultationList, error) {
	path := "/v1/consultations"
	if q := opts.values().Encode(); q != "" {
		path += "?" + q
	}

	var out ConsultationList
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetConsultation(ctx context.Context, id string) (*Consultation, error) {
	var out Consultation
	if err := c.doJSON(ctx, http.MethodGet, "/v1/consultations/"+url.PathEscape(id), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) TransitionConsultation(ctx context.Context, id string, req TransitionRequest) (*TransitionResponse, error) {
	var out TransitionResponse
	if err := c.doJSON(ctx, http.MethodPatch, "/v1/consultations/"+url.PathEscape(id), req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ConsultationStats(ctx context.Context) (*StatsResponse, error) {
	var out StatsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/v1/consultations/stats", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ValidateToken checks a registration token without consuming it.
func (c *Client) ValidateToken(ctx context.Context, token string) (*ValidateTokenResponse, error) {
	var out ValidateTokenResponse
	path := "/v1/consultations/validate-token/" + url.PathEscape(token)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register redeems a registration token and creates the client account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	var out RegisterResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/consultations/register", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SubmitContact(ctx context.Context, req ContactRequest) (*ContactResponse, error) {
	var out ContactResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/contact", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListContacts(ctx context.Context, limit, offset int) (*ContactList, error) {
	v := url.Values{}
	if limit != 0 {
		v.Set("limit", strconv.Itoa(limit))
	}
	if offset != 0 {
		v.Set("offset", strconv.Itoa(offset))
	}
	path := "/v1/contact"
	if q := v.Encode(); q != "" {
		path += "?" + q
	}

	var out ContactList
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login authenticates a staff member. Use WithToken with the returned
// access token for staff routes.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var out LoginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/auth/login", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ClientLogin(ctx context.Context, req ClientLoginRequest) (*ClientLoginResponse, error) {
	var out ClientLoginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/auth/client/login", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) EnrollTOTP(ctx context.Context) (*TOTPEnrollResponse, error) {
	var out TOTPEnrollResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/staff/mfa/totp/enroll", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) VerifyTOTP(ctx context.Context, code string) error {
	return c.doJSON(ctx, http.MethodPost, "/v1/staff/mfa/totp/verify", TOTPVerifyRequest{Code: code}, nil, http.StatusNoContent)
}

// Me returns the profile of the client session.
func (c *Client) Me(ctx context.Context) (*MeResponse, error) {
	var out MeResponse
	if err := c.doJSON(ctx, http.MethodGet, "/v1/me", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
