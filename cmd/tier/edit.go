package tier

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/threef-labs/threef-cli/cmd/utils"
	"github.com/threef-labs/threef-cli/internal/profile"
	"github.com/threef-labs/threef-cli/internal/runtime"
)

func newEditCmd(runtimeContext *runtime.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "edit <id>",
		Short:   "Edit a support tier",
		Long:    "Edits one of your tiers. Flags that are set replace the stored values; without flags you are prompted.",
		Example: "  threef tier edit 3f2a --amount 30",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h := newHandler(runtimeContext, cmd.OutOrStdout())
			return h.edit(cmd.Context(), args[0], func(base profile.TierInput) (profile.TierInput, bool) {
				return inputFromFlags(cmd, base)
			})
		},
	}
	addInputFlags(cmd)
	return cmd
}

func (h *handler) edit(ctx context.Context, idPrefix string, overlay func(profile.TierInput) (profile.TierInput, bool)) error {
	tiers, err := h.services(ctx)
	if err != nil {
		return err
	}
	current, err := h.resolve(ctx, tiers, idPrefix)
	if err != nil {
		return err
	}

	in, changed := overlay(profile.TierInput{
		Name:              current.Name,
		RewardDescription: current.RewardDescription,
		Amount:            amountInput(current.Amount),
	})
	if !changed {
		if err := h.prompt(&in); err != nil {
			return err
		}
	}

	if err := tiers.Update(ctx, current.ID, in); err != nil {
		return fmt.Errorf("failed to update tier: %w", err)
	}
	h.notifier.Success(fmt.Sprintf("Tier %s updated", in.Name))
	return nil
}

func amountInput(amount *float64) string {
	if amount == nil {
		return ""
	}
	return utils.FormatAmount(amount)
}
