package tier

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/threef-labs/threef-cli/internal/profile"
	"github.com/threef-labs/threef-cli/internal/runtime"
)

func newCreateCmd(runtimeContext *runtime.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Create a support tier",
		Example: "  threef tier create --name Gold --reward \"Name in the credits\" --amount 25",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, _ := inputFromFlags(cmd, profile.TierInput{})
			return newHandler(runtimeContext, cmd.OutOrStdout()).create(cmd.Context(), in)
		},
	}
	addInputFlags(cmd)
	return cmd
}

func (h *handler) create(ctx context.Context, in profile.TierInput) error {
	tiers, err := h.services(ctx)
	if err != nil {
		return err
	}
	if in.Name == "" {
		if err := h.prompt(&in); err != nil {
			return err
		}
	}

	tier, err := tiers.Create(ctx, in)
	if err != nil {
		return fmt.Errorf("failed to create tier: %w", err)
	}
	h.log.Debug().Str("id", tier.ID).Msg("Tier created")
	h.notifier.Success(fmt.Sprintf("Tier %s created", tier.Name))
	return nil
}
