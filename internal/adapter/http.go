package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-sync-engine/internal/config"
	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/internal/utils"
	"github.com/MKhiriev/go-sync-engine/models"
)

// tokenExpirySkew is how long before "exp" a cached token is replaced.
const tokenExpirySkew = 30 * time.Second

type tokenResponse struct {
	Token string `json:"token"`
}

// httpTokenProvider logs in against the auth service and caches the issued
// JWT until shortly before it expires.
type httpTokenProvider struct {
	client      *utils.HTTPClient
	authURL     string
	credentials models.Credentials
	clientID    func() string
	now         func() time.Time

	mu    sync.Mutex
	token models.Token

	logger *logger.Logger
}

// NewTokenProvider builds the [TokenProvider] described by adapterCfg: a
// static provider when a token is configured, otherwise an HTTP login
// provider against AuthURL. clientID, when not nil, is sent along with the
// credentials so the issuer can bind the token to the device.
func NewTokenProvider(adapterCfg config.ClientAdapter, clientID func() string, logger *logger.Logger) (TokenProvider, error) {
	if token := strings.TrimSpace(adapterCfg.Token); token != "" {
		return NewStaticTokenProvider(token), nil
	}

	if adapterCfg.AuthURL == "" || adapterCfg.Login == "" {
		return nil, ErrNoCredentials
	}

	authURL, err := normalizeBaseURL(adapterCfg.AuthURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter auth url: %w", err)
	}

	client := utils.NewHTTPClient(adapterCfg.RequestTimeout)

	return &httpTokenProvider{
		client:  client,
		authURL: authURL,
		credentials: models.Credentials{
			Login:    adapterCfg.Login,
			Password: adapterCfg.Password,
		},
		clientID: clientID,
		now:      time.Now,
		logger:   logger.WithComponent("auth"),
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// GetToken implements [TokenProvider]. The cached token is reused while it
// stays valid for at least tokenExpirySkew.
func (p *httpTokenProvider) GetToken(ctx context.Context) (models.Token, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.token.ValidAt(p.now(), tokenExpirySkew) {
		return p.token, nil
	}

	token, err := p.login(ctx)
	if err != nil {
		p.logger.Err(err).Str("func", "*httpTokenProvider.GetToken").Msg("token acquisition failed")
		return models.Token{}, err
	}

	p.token = token
	p.logger.Debug().Time("expires_at", token.ExpiresAt).Msg("sync token acquired")

	return token, nil
}

func (p *httpTokenProvider) Invalidate() {
	p.mu.Lock()
	p.token = models.Token{}
	p.mu.Unlock()
}

// login POSTs the credentials to the auth URL. The token is read from the
// Authorization response header, or from a {"token": "..."} body.
func (p *httpTokenProvider) login(ctx context.Context) (models.Token, error) {
	creds := p.credentials
	if p.clientID != nil {
		creds.ClientID = p.clientID()
	}

	var body tokenResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(creds).
		SetResult(&body).
		Post(p.authURL)
	if err != nil {
		return models.Token{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Token{}, err
	}

	raw := body.Token
	if header := resp.Header().Get("Authorization"); header != "" {
		if raw, err = utils.ParseBearerToken(header); err != nil {
			return models.Token{}, fmt.Errorf("login parse bearer token: %w", err)
		}
	}
	if raw == "" {
		return models.Token{}, ErrEmptyToken
	}

	token, err := utils.ParseToken(raw)
	if err != nil {
		// opaque tokens are accepted and never cached past this connection
		return models.Token{SignedString: raw, ExpiresAt: p.now()}, nil
	}

	return token, nil
}

type staticTokenProvider struct {
	token models.Token
}

// NewStaticTokenProvider returns a [TokenProvider] that always hands out a
// pre-provisioned token.
func NewStaticTokenProvider(token string) TokenProvider {
	return &staticTokenProvider{token: models.Token{SignedString: token}}
}

func (p *staticTokenProvider) GetToken(context.Context) (models.Token, error) {
	if p.token.SignedString == "" {
		return models.Token{}, ErrNoCredentials
	}
	return p.token, nil
}

func (p *staticTokenProvider) Invalidate() {}
