package tier

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/threef-labs/threef-cli/internal/runtime"
	"github.com/threef-labs/threef-cli/internal/settings"
	"github.com/threef-labs/threef-cli/internal/ui"
)

func newDeleteCmd(runtimeContext *runtime.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a support tier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return newHandler(runtimeContext, cmd.OutOrStdout()).delete(cmd.Context(), args[0])
		},
	}
	settings.AddSkipConfirmation(cmd)
	settings.AddNonInteractive(cmd)
	return cmd
}

func (h *handler) delete(ctx context.Context, idPrefix string) error {
	tiers, err := h.services(ctx)
	if err != nil {
		return err
	}
	current, err := h.resolve(ctx, tiers, idPrefix)
	if err != nil {
		return err
	}

	if !h.clientFactory.GetSkipConfirmation() {
		if h.clientFactory.GetNonInteractive() {
			return fmt.Errorf("refusing to delete tier %s without confirmation, pass --yes", current.Name)
		}
		ok, err := ui.Confirm(fmt.Sprintf("Delete tier %s?", current.Name), ui.WithLabels("Delete", "Cancel"))
		if err != nil {
			return err
		}
		if !ok {
			ui.Dim("Nothing deleted")
			return nil
		}
	}

	if err := tiers.Delete(ctx, current.ID); err != nil {
		return fmt.Errorf("failed to delete tier: %w", err)
	}
	h.notifier.Success(fmt.Sprintf("Tier %s deleted", current.Name))
	return nil
}
