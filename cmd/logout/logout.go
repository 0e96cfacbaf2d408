package logout

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/threef-labs/threef-cli/internal/auth"
	"github.com/threef-labs/threef-cli/internal/runtime"
	"github.com/threef-labs/threef-cli/internal/ui"
)

func New(runtimeCtx *runtime.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Revoke your session and remove local credentials",
		Long:  "Signs out of the identity provider and deletes the stored session.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h := newHandler(runtimeCtx)
			return h.execute(cmd.Context())
		},
	}
	return cmd
}

type handler struct {
	log      *zerolog.Logger
	identity *auth.Identity
}

func newHandler(ctx *runtime.Context) *handler {
	return &handler{
		log:      ctx.Logger,
		identity: ctx.Identity,
	}
}

func (h *handler) execute(ctx context.Context) error {
	if h.identity == nil || !h.identity.Credentials().LoggedIn() {
		h.log.Info().Msg("user not logged in")
		return nil
	}

	if err := h.identity.SignOut(ctx); err != nil {
		return err
	}

	ui.Success("Logged out successfully")
	return nil
}
