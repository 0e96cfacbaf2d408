package signup

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/threef-labs/threef-cli/internal/auth"
	"github.com/threef-labs/threef-cli/internal/credentials"
	"github.com/threef-labs/threef-cli/internal/runtime"
	"github.com/threef-labs/threef-cli/internal/ui"
	"github.com/threef-labs/threef-cli/internal/validation"
)

const minPasswordLength = 6

type Inputs struct {
	Email         string `validate:"required,email" cli:"--email"`
	Password      string `validate:"required,min=6" cli:"password"`
	PasswordStdin bool
}

func New(runtimeCtx *runtime.Context) *cobra.Command {
	var inputs Inputs

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a 3F account",
		Long:  "Registers a new account with your e-mail and password and signs you in.",
		Example: "  threef signup --email you@example.com\n" +
			"  echo \"$PASSWORD\" | threef signup --email you@example.com --password-stdin",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h := newHandler(runtimeCtx, cmd.InOrStdin())
			return h.execute(cmd.Context(), inputs)
		},
	}

	cmd.Flags().StringVar(&inputs.Email, "email", "", "E-mail address for the new account")
	cmd.Flags().BoolVar(&inputs.PasswordStdin, "password-stdin", false, "Read the password from stdin")

	return cmd
}

type handler struct {
	log       *zerolog.Logger
	identity  *auth.Identity
	service   *auth.Service
	stdin     io.Reader
	validator *validation.Validator
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
	}
}

func (h *handler) collect(inputs Inputs) (Inputs, error) {
	inputs.Email = strings.TrimSpace(inputs.Email)
	if inputs.PasswordStdin {
		line, err := bufio.NewReader(h.stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return inputs, fmt.Errorf("failed to read password from stdin: %w", err)
		}
		inputs.Password = strings.TrimRight(line, "\r\n")
		return inputs, nil
	}

	if inputs.Email == "" {
		email, err := ui.Input("E-mail", ui.WithPlaceholder("you@example.com"))
		if err != nil {
			return inputs, err
		}
		inputs.Email = strings.TrimSpace(email)
	}
	password, err := ui.Password("Password", ui.WithInputDescription(fmt.Sprintf("At least %d characters", minPasswordLength)))
	if err != nil {
		return inputs, err
	}
	confirm, err := ui.Password("Confirm password")
	if err != nil {
		return inputs, err
	}
	if password != confirm {
		return inputs, errors.New("passwords do not match")
	}
	inputs.Password = password
	return inputs, nil
}

func (h *handler) validateInputs(inputs Inputs) error {
	if h.validator == nil {
		v, err := validation.NewValidator()
		if err != nil {
			return fmt.Errorf("failed to initialize validator: %w", err)
		}
		h.validator = v
	}
	if err := h.validator.Struct(inputs); err != nil {
		return h.validator.ParseValidationErrors(err)
	}
	return nil
}

func (h *handler) execute(ctx context.Context, inputs Inputs) error {
	if h.identity == nil || h.service == nil {
		return errors.New("identity provider is not configured")
	}

	inputs, err := h.collect(inputs)
	if err != nil {
		return err
	}
	if err := h.validateInputs(inputs); err != nil {
		return err
	}

	tokens, err := ui.WithSpinnerResult("Creating your account...", func() (*credentials.SessionTokenSet, error) {
		return h.service.SignUp(ctx, inputs.Email, inputs.Password)
	})
	if err != nil {
		return fmt.Errorf("sign up failed: %w", err)
	}

	if tokens == nil {
		h.log.Debug().Str("email", inputs.Email).Msg("Sign up needs e-mail confirmation")
		ui.Success("Account created")
		ui.Dim("Check " + inputs.Email + " to confirm your address, then run threef login")
		return nil
	}

	if tokens.User == nil {
		tokens.User = &credentials.SessionUser{Email: inputs.Email}
		if user, err := h.service.GetUser(ctx, tokens.AccessToken); err == nil {
			tokens.User.ID = user.ID
		}
	}
	if err := h.identity.SignIn(tokens); err != nil {
		return err
	}

	ui.Success("Account created and signed in as " + inputs.Email)
	ui.Print("Next, create your organization profile:")
	ui.Command("  threef onboard")
	return nil
}
