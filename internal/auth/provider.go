// Package auth implements login against an OpenID Connect identity provider.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

const discoveryTimeout = 10 * time.Second

var (
	// ErrMissingEmail is returned when the identity token carries no email claim.
	ErrMissingEmail = errors.New("identity token has no email claim")
	// ErrProviderUnavailable marks failures to reach or configure the
	// provider, as opposed to the provider rejecting a login.
	ErrProviderUnavailable = errors.New("identity provider unavailable")
)

// Identity is the verified result of a completed login.
type Identity struct {
	Email      string
	Name       string
	GivenName  string
	FamilyName string

	AccessToken  string
	RefreshToken string
	IDToken      string
	Expiry       time.Time
}

// Provider is an OAuth2/OIDC identity provider.
type Provider interface {
	// AuthCodeURL returns the provider URL the browser is redirected to.
	AuthCodeURL(ctx context.Context, state string) (string, error)
	// Exchange trades an authorization code for a verified identity.
	Exchange(ctx context.Context, code string) (*Identity, error)
}

// OIDCConfig configures an OIDCProvider.
type OIDCConfig struct {
	ClientID     string
	ClientSecret string
	// MetaURL is the provider's discovery document URL, for example
	// https://accounts.google.com/.well-known/openid-configuration.
	MetaURL     string
	RedirectURL string
}

// OIDCProvider talks to a standard OpenID Connect provider. Discovery runs on
// first use so the server can start while the provider is unreachable.
type OIDCProvider struct {
	cfg OIDCConfig

	mu       sync.Mutex
	oauth    *oauth2.Config
	verifier *oidc.IDTokenVerifier
}

// ensure OIDCProvider implements the interface
var _ Provider = (*OIDCProvider)(nil)

// NewOIDCProvider creates a provider from cfg.
func NewOIDCProvider(cfg OIDCConfig) *OIDCProvider {
	return &OIDCProvider{cfg: cfg}
}

// issuer derives the issuer URL from the discovery document URL.
func (p *OIDCProvider) issuer() string {
	return strings.TrimSuffix(strings.TrimSuffix(p.cfg.MetaURL, "/.well-known/openid-configuration"), "/")
}

func (p *OIDCProvider) discover(ctx context.Context) (*oauth2.Config, *oidc.IDTokenVerifier, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.oauth != nil {
		return p.oauth, p.verifier, nil
	}
	if p.cfg.MetaURL == "" || p.cfg.ClientID == "" {
		return nil, nil, fmt.Errorf("%w: not configured", ErrProviderUnavailable)
	}

	// The remote key set keeps this context for later JWKS fetches, so it
	// must outlive the request that triggered discovery.
	discoveryCtx := oidc.ClientContext(context.WithoutCancel(ctx), &http.Client{Timeout: discoveryTimeout})
	provider, err := oidc.NewProvider(discoveryCtx, p.issuer())
	if err != nil {
		return nil, nil, fmt.Errorf("%w: oidc discovery: %w", ErrProviderUnavailable, err)
	}

	p.oauth = &oauth2.Config{
		ClientID:     p.cfg.ClientID,
		ClientSecret: p.cfg.ClientSecret,
		Endpoint:     provider.Endpoint(),
		RedirectURL:  p.cfg.RedirectURL,
		Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
	}
	p.verifier = provider.Verifier(&oidc.Config{ClientID: p.cfg.ClientID})
	return p.oauth, p.verifier, nil
}

// AuthCodeURL returns the authorization endpoint URL for state.
func (p *OIDCProvider) AuthCodeURL(ctx context.Context, state string) (string, error) {
	oauthCfg, _, err := p.discover(ctx)
	if err != nil {
		return "", err
	}
	return oauthCfg.AuthCodeURL(state), nil
}

type idClaims struct {
	Email      string `json:"email"`
	Name       string `json:"name"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
}

// Exchange redeems code at the token endpoint and verifies the ID token.
func (p *OIDCProvider) Exchange(ctx context.Context, code string) (*Identity, error) {
	oauthCfg, verifier, err := p.discover(ctx)
	if err != nil {
		return nil, err
	}

	token, err := oauthCfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("code exchange: %w", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, errors.New("token response has no id_token")
	}

	idToken, err := verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, fmt.Errorf("verifying id_token: %w", err)
	}

	var claims idClaims
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("decoding id_token claims: %w", err)
	}
	if claims.Email == "" {
		return nil, ErrMissingEmail
	}

	return &Identity{
		Email:        claims.Email,
		Name:         claims.Name,
		GivenName:    claims.GivenName,
		FamilyName:   claims.FamilyName,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		IDToken:      rawIDToken,
		Expiry:       token.Expiry,
	}, nil
}
