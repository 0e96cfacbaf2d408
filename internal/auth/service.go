package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/threef-labs/threef-cli/internal/constants"
	"github.com/threef-labs/threef-cli/internal/credentials"
	"github.com/threef-labs/threef-cli/internal/environments"
)

var httpClient = &http.Client{Timeout: 30 * time.Second}

var (
	ErrNotAuthenticated = errors.New("you are not logged in, try running threef login")
	ErrNoRefreshToken   = errors.New("no refresh token available")
)

// APIError is an error response from the identity provider.
type APIError struct {
	Status      int
	Code        string `json:"error"`
	Description string `json:"error_description"`
	Msg         string `json:"msg"`
}

func (e *APIError) Error() string {
	msg := e.Description
	if msg == "" {
		msg = e.Msg
	}
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	return fmt.Sprintf("auth response (%d): %s", e.Status, msg)
}

// User is the identity provider's view of the signed-in account.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Service talks to the hosted identity provider.
type Service struct {
	environmentSet *environments.EnvironmentSet
}

func NewService(environmentSet *environments.EnvironmentSet) *Service {
	return &Service{environmentSet: environmentSet}
}

func (s *Service) buildURL(path string, query url.Values) string {
	u := strings.TrimRight(s.environmentSet.AuthBase, "/") + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	ExpiresAt    int64  `json:"expires_at"`
	TokenType    string `json:"token_type"`
	User         *User  `json:"user"`
}

func (tr *tokenResponse) toTokenSet() *credentials.SessionTokenSet {
	set := &credentials.SessionTokenSet{
		AccessToken:  tr.AccessToken,
		RefreshToken: tr.RefreshToken,
		ExpiresIn:    tr.ExpiresIn,
		ExpiresAt:    tr.ExpiresAt,
		TokenType:    tr.TokenType,
	}
	if set.ExpiresAt == 0 && tr.ExpiresIn > 0 {
		set.ExpiresAt = time.Now().Add(time.Duration(tr.ExpiresIn) * time.Second).Unix()
	}
	if tr.User != nil {
		set.User = &credentials.SessionUser{ID: tr.User.ID, Email: tr.User.Email}
	}
	return set
}

func (s *Service) do(ctx context.Context, method, endpoint, bearer string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", constants.UserAgent)
	if s.environmentSet.AnonKey != "" {
		req.Header.Set("apikey", s.environmentSet.AnonKey)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("auth request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrNotAuthenticated
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		return apiErr
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode auth response: %w", err)
	}
	return nil
}

// SignUp registers a new account. When the provider requires e-mail
// confirmation the returned token set is nil.
func (s *Service) SignUp(ctx context.Context, email, password string) (*credentials.SessionTokenSet, error) {
	var tr tokenResponse
	payload := map[string]string{"email": email, "password": password}
	if err := s.do(ctx, http.MethodPost, s.buildURL(constants.AuthSignUpPath, nil), "", payload, &tr); err != nil {
		return nil, err
	}
	if tr.AccessToken == "" {
		return nil, nil
	}
	return tr.toTokenSet(), nil
}

func (s *Service) SignInWithPassword(ctx context.Context, email, password string) (*credentials.SessionTokenSet, error) {
	var tr tokenResponse
	q := url.Values{"grant_type": {"password"}}
	payload := map[string]string{"email": email, "password": password}
	if err := s.do(ctx, http.MethodPost, s.buildURL(constants.AuthTokenPath, q), "", payload, &tr); err != nil {
		if errors.Is(err, ErrNotAuthenticated) {
			return nil, errors.New("invalid login credentials")
		}
		return nil, err
	}
	return tr.toTokenSet(), nil
}

// ExchangeCode completes a browser sign-in started with AuthorizeURL.
func (s *Service) ExchangeCode(ctx context.Context, code, verifier string) (*credentials.SessionTokenSet, error) {
	var tr tokenResponse
	q := url.Values{"grant_type": {"pkce"}}
	payload := map[string]string{"auth_code": code, "code_verifier": verifier}
	if err := s.do(ctx, http.MethodPost, s.buildURL(constants.AuthTokenPath, q), "", payload, &tr); err != nil {
		return nil, err
	}
	return tr.toTokenSet(), nil
}

func (s *Service) RefreshToken(ctx context.Context, old *credentials.SessionTokenSet) (*credentials.SessionTokenSet, error) {
	if old == nil || old.RefreshToken == "" {
		return nil, ErrNoRefreshToken
	}

	var tr tokenResponse
	q := url.Values{"grant_type": {"refresh_token"}}
	payload := map[string]string{"refresh_token": old.RefreshToken}
	if err := s.do(ctx, http.MethodPost, s.buildURL(constants.AuthTokenPath, q), "", payload, &tr); err != nil {
		if errors.Is(err, ErrNotAuthenticated) {
			return nil, errors.New("auth response: unauthorized (401) - you have been logged out. " +
				"Please login using `threef login` and retry your command")
		}
		return nil, err
	}

	set := tr.toTokenSet()
	if set.RefreshToken == "" {
		set.RefreshToken = old.RefreshToken
	}
	if set.User == nil {
		set.User = old.User
	}
	return set, nil
}

func (s *Service) SignOut(ctx context.Context, accessToken string) error {
	return s.do(ctx, http.MethodPost, s.buildURL(constants.AuthLogoutPath, nil), accessToken, nil, nil)
}

func (s *Service) GetUser(ctx context.Context, accessToken string) (*User, error) {
	if accessToken == "" {
		return nil, ErrNotAuthenticated
	}
	var u User
	if err := s.do(ctx, http.MethodGet, s.buildURL(constants.AuthUserPath, nil), accessToken, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// AuthorizeURL is the browser entry point for a third-party provider sign-in.
func (s *Service) AuthorizeURL(provider, redirectTo, codeChallenge string) string {
	q := url.Values{}
	q.Set("provider", provider)
	q.Set("redirect_to", redirectTo)
	q.Set("code_challenge", codeChallenge)
	q.Set("code_challenge_method", "s256")
	return s.buildURL(constants.AuthAuthorizePath, q)
}
