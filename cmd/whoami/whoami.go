package whoami

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/threef-labs/threef-cli/cmd/client"
	"github.com/threef-labs/threef-cli/internal/auth"
	"github.com/threef-labs/threef-cli/internal/environments"
	"github.com/threef-labs/threef-cli/internal/profile"
	"github.com/threef-labs/threef-cli/internal/runtime"
	"github.com/threef-labs/threef-cli/internal/ui"
)

func New(runtimeCtx *runtime.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show your current account details",
		Long:  "Shows the signed-in account and the organization profile attached to it.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h := NewHandler(runtimeCtx, cmd.OutOrStdout())
			return h.Execute(cmd.Context())
		},
	}
	return cmd
}

type Handler struct {
	log            *zerolog.Logger
	identity       *auth.Identity
	clientFactory  client.Factory
	environmentSet *environments.EnvironmentSet
	out            io.Writer
}

func NewHandler(ctx *runtime.Context, out io.Writer) *Handler {
	if out == nil {
		out = os.Stdout
	}
	return &Handler{
		log:            ctx.Logger,
		identity:       ctx.Identity,
		clientFactory:  ctx.ClientFactory,
		environmentSet: ctx.EnvironmentSet,
		out:            out,
	}
}

func (h *Handler) Execute(ctx context.Context) error {
	if h.identity == nil {
		return auth.ErrNotAuthenticated
	}
	user, err := h.identity.CurrentUser(ctx)
	if err != nil {
		return err
	}

	services, err := h.clientFactory.NewProfileServices(ctx, false)
	if err != nil {
		return err
	}

	info, err := ui.WithSpinnerResult("Fetching account details...", func() (*profile.Info, error) {
		return services.Info.Mine(ctx)
	})
	if err != nil && !errors.Is(err, profile.ErrNoProfile) {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	details := fmt.Sprintf("Email:        %s\nUser ID:      %s", user.Email, user.ID)
	if info != nil {
		details += fmt.Sprintf("\nOrganization: %s\nPublic page:  %s", info.Brand, profile.PublicURL(h.environmentSet.UIURL, *info))
	} else {
		details += "\nOrganization: none yet, run threef onboard to create one"
	}

	fmt.Fprintln(h.out)
	fmt.Fprintln(h.out, ui.RenderTitle("Account Details"))
	fmt.Fprintln(h.out, ui.BoxStyle.Render(details))
	return nil
}
