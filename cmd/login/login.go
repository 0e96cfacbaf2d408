package login

import (
	"bufio"
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/exec"
	rt "runtime"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/threef-labs/threef-cli/internal/auth"
	"github.com/threef-labs/threef-cli/internal/constants"
	"github.com/threef-labs/threef-cli/internal/credentials"
	"github.com/threef-labs/threef-cli/internal/runtime"
	"github.com/threef-labs/threef-cli/internal/ui"
	"github.com/threef-labs/threef-cli/internal/validation"
)

const callbackTimeout = 5 * time.Minute

type Inputs struct {
	Email         string `validate:"omitempty,email" cli:"--email"`
	Provider      string `validate:"omitempty,oneof=google" cli:"--provider"`
	PasswordStdin bool
}

func New(runtimeCtx *runtime.Context) *cobra.Command {
	var inputs Inputs

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to your 3F account",
		Long: "Signs in with your e-mail and password, or through the browser with --provider google, " +
			"and stores the session locally.",
		Example: "  threef login --email you@example.com\n" +
			"  echo \"$PASSWORD\" | threef login --email you@example.com --password-stdin\n" +
			"  threef login --provider google",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h := newHandler(runtimeCtx, cmd.InOrStdin())
			if err := h.validateInputs(inputs); err != nil {
				return err
			}
			return h.execute(cmd.Context(), inputs)
		},
	}

	cmd.Flags().StringVar(&inputs.Email, "email", "", "E-mail address of your account")
	cmd.Flags().StringVar(&inputs.Provider, "provider", "", "Sign in through the browser with a third-party provider (google)")
	cmd.Flags().BoolVar(&inputs.PasswordStdin, "password-stdin", false, "Read the password from stdin")
	cmd.MarkFlagsMutuallyExclusive("provider", "email")
	cmd.MarkFlagsMutuallyExclusive("provider", "password-stdin")

	return cmd
}

type handler struct {
	log       *zerolog.Logger
	identity  *auth.Identity
	service   *auth.Service
	stdin     io.Reader
	openURL   func(string) error
	listen    func() (net.Listener, error)
	lastState string
}

func newHandler(ctx *runtime.Context, stdin io.Reader) *handler {
	if stdin == nil {
		stdin = os.Stdin
	}
	return &handler{
		log:      ctx.Logger,
		identity: ctx.Identity,
		service:  ctx.AuthService,
		stdin:    stdin,
		openURL:  func(u string) error { return openBrowser(u, rt.GOOS) },
		listen:   func() (net.Listener, error) { return net.Listen("tcp", constants.AuthListenAddr) },
	}
}

func (h *handler) validateInputs(inputs Inputs) error {
	v, err := validation.NewValidator()
	if err != nil {
		return fmt.Errorf("failed to initialize validator: %w", err)
	}
	if err := v.Struct(inputs); err != nil {
		return v.ParseValidationErrors(err)
	}
	return nil
}

func (h *handler) execute(ctx context.Context, inputs Inputs) error {
	if h.identity == nil || h.service == nil {
		return errors.New("identity provider is not configured")
	}

	var (
		tokens *credentials.SessionTokenSet
		err    error
	)
	if inputs.Provider != "" {
		tokens, err = h.browserLogin(ctx, inputs.Provider)
	} else {
		tokens, err = h.passwordLogin(ctx, inputs)
	}
	if err != nil {
		return err
	}

	if tokens.User == nil {
		user, err := h.service.GetUser(ctx, tokens.AccessToken)
		if err != nil {
			return fmt.Errorf("failed to fetch account: %w", err)
		}
		tokens.User = &credentials.SessionUser{ID: user.ID, Email: user.Email}
	}

	if err := h.identity.SignIn(tokens); err != nil {
		return err
	}

	ui.Line()
	ui.Success("Login completed successfully")
	ui.Dim("Signed in as " + tokens.User.Email)
	ui.Line()
	ui.Print("To create your organization profile, run:")
	ui.Command("  threef onboard")
	return nil
}

func (h *handler) passwordLogin(ctx context.Context, inputs Inputs) (*credentials.SessionTokenSet, error) {
	email := strings.TrimSpace(inputs.Email)
	if email == "" {
		if inputs.PasswordStdin {
			return nil, errors.New("--email is required with --password-stdin")
		}
		var err error
		if email, err = ui.Input("E-mail", ui.WithPlaceholder("you@example.com")); err != nil {
			return nil, err
		}
		email = strings.TrimSpace(email)
	}

	password, err := h.readPassword(inputs.PasswordStdin)
	if err != nil {
		return nil, err
	}
	if password == "" {
		return nil, errors.New("password is required")
	}

	return ui.WithSpinnerResult("Signing in...", func() (*credentials.SessionTokenSet, error) {
		return h.service.SignInWithPassword(ctx, email, password)
	})
}

func (h *handler) readPassword(fromStdin bool) (string, error) {
	if !fromStdin {
		return ui.Password("Password")
	}
	line, err := bufio.NewReader(h.stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password from stdin: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (h *handler) browserLogin(ctx context.Context, provider string) (*credentials.SessionTokenSet, error) {
	verifier, challenge, err := generatePKCE()
	if err != nil {
		return nil, err
	}
	h.lastState = randomState()

	code, err := h.startAuthFlow(ctx, provider, challenge)
	if err != nil {
		return nil, err
	}

	tokens, err := h.service.ExchangeCode(ctx, code, verifier)
	if err != nil {
		h.log.Error().Err(err).Msg("code exchange failed")
		return nil, err
	}
	return tokens, nil
}

func (h *handler) startAuthFlow(ctx context.Context, provider, challenge string) (string, error) {
	codeCh := make(chan string, 1)

	listener, err := h.listen()
	if err != nil {
		return "", fmt.Errorf("failed to listen on %s: %w", constants.AuthListenAddr, err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", h.callbackHandler(codeCh))
	server := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	defer func() {
		if err := server.Shutdown(context.Background()); err != nil {
			h.log.Warn().Err(err).Msg("error shutting down login callback server")
		}
	}()

	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			h.log.Error().Err(err).Msg("server error")
		}
	}()

	redirect := constants.AuthRedirectURI + "?state=" + h.lastState
	authURL := h.service.AuthorizeURL(provider, redirect, challenge)
	ui.Dim("Opening browser to " + authURL)
	if err := h.openURL(authURL); err != nil {
		h.log.Warn().Err(err).Msg("could not open browser, please navigate manually")
	}

	select {
	case code := <-codeCh:
		return code, nil
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(callbackTimeout):
		return "", fmt.Errorf("timeout waiting for authorization code")
	}
}

func (h *handler) callbackHandler(codeCh chan string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if st := r.URL.Query().Get("state"); st == "" || h.lastState == "" || st != h.lastState {
			h.log.Error().Msg("invalid state in response")
			servePage(w, errorPage, http.StatusBadRequest)
			return
		}
		if desc := r.URL.Query().Get("error_description"); desc != "" {
			h.log.Error().Str("error", desc).Msg("provider rejected sign in")
			servePage(w, errorPage, http.StatusBadRequest)
			return
		}
		code := r.URL.Query().Get("code")
		if code == "" {
			h.log.Error().Msg("no code in response")
			servePage(w, errorPage, http.StatusBadRequest)
			return
		}

		servePage(w, successPage, http.StatusOK)
		select {
		case codeCh <- code:
		default:
		}
	}
}

func servePage(w http.ResponseWriter, p page, status int) {
	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(status)
	_, _ = fmt.Fprintf(w, pageTemplate, p.title, p.body)
}

func openBrowser(urlStr string, goos string) error {
	switch goos {
	case "darwin":
		return exec.Command("open", urlStr).Start()
	case "linux":
		return exec.Command("xdg-open", urlStr).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", urlStr).Start()
	default:
		return fmt.Errorf("unsupported OS: %s", goos)
	}
}

func generatePKCE() (verifier, challenge string, err error) {
	b := make([]byte, 32)
	if _, err = rand.Read(b); err != nil {
		return "", "", err
	}
	verifier = base64.RawURLEncoding.EncodeToString(b)
	sum := sha256.Sum256([]byte(verifier))
	challenge = base64.RawURLEncoding.EncodeToString(sum[:])
	return verifier, challenge, nil
}

func randomState() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
