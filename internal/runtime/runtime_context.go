package runtime

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/threef-labs/threef-cli/cmd/client"
	"github.com/threef-labs/threef-cli/internal/auth"
	"github.com/threef-labs/threef-cli/internal/authvalidation"
	"github.com/threef-labs/threef-cli/internal/credentials"
	"github.com/threef-labs/threef-cli/internal/environments"
	"github.com/threef-labs/threef-cli/internal/session"
	"github.com/threef-labs/threef-cli/internal/settings"
	"github.com/threef-labs/threef-cli/internal/ui"
)

type Context struct {
	Logger         *zerolog.Logger
	Viper          *viper.Viper
	ClientFactory  client.Factory
	Settings       *settings.Settings
	Credentials    *credentials.Credentials
	EnvironmentSet *environments.EnvironmentSet
	AuthService    *auth.Service
	Identity       *auth.Identity
	Broker         *session.Broker
	Notifier       ui.Notifier
	User           *auth.User
}

func NewContext(logger *zerolog.Logger, viper *viper.Viper) *Context {
	ctx := &Context{
		Logger:   logger,
		Viper:    viper,
		Broker:   session.NewBroker(),
		Notifier: ui.NewConsole(nil),
	}
	ctx.ClientFactory = client.NewFactory(logger, viper, ctx.clientDeps)
	return ctx
}

func (ctx *Context) clientDeps() client.Deps {
	return client.Deps{
		Identity:       ctx.Identity,
		EnvironmentSet: ctx.EnvironmentSet,
		Settings:       ctx.Settings,
	}
}

// SetLogger swaps the logger and rebuilds the client factory around it.
func (ctx *Context) SetLogger(logger *zerolog.Logger) {
	ctx.Logger = logger
	ctx.ClientFactory = client.NewFactory(logger, ctx.Viper, ctx.clientDeps)
}

func (ctx *Context) AttachSettings() error {
	var err error

	ctx.Settings, err = settings.New(ctx.Logger, ctx.Viper)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	return nil
}

func (ctx *Context) AttachEnvironmentSet() error {
	var err error

	ctx.EnvironmentSet, err = environments.New()
	if err != nil {
		return fmt.Errorf("failed to load environment details: %w", err)
	}

	return nil
}

// AttachCredentials loads the stored session and builds the identity on top
// of it. It needs the environment set. Unless skipValidation is set the
// session must exist and be accepted by the identity provider.
func (ctx *Context) AttachCredentials(validationCtx context.Context, skipValidation bool) error {
	if ctx.EnvironmentSet == nil {
		return fmt.Errorf("failed to load environment")
	}

	var err error
	ctx.Credentials, err = credentials.New(ctx.Logger)
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	ctx.AuthService = auth.NewService(ctx.EnvironmentSet)
	ctx.Identity = auth.NewIdentity(ctx.Credentials, ctx.AuthService, ctx.Broker, ctx.Logger)

	if skipValidation {
		return nil
	}

	validator := authvalidation.NewValidator(ctx.Identity, ctx.AuthService, ctx.Logger)
	ctx.User, err = validator.ValidateCredentials(validationCtx)
	if err != nil {
		return fmt.Errorf("authentication validation failed: %w", err)
	}
	return nil
}
