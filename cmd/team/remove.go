package team

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/threef-labs/threef-cli/internal/runtime"
	"github.com/threef-labs/threef-cli/internal/settings"
	"github.com/threef-labs/threef-cli/internal/ui"
)

func newRemoveCmd(runtimeContext *runtime.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"delete", "rm"},
		Short:   "Remove a team member",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return newHandler(runtimeContext, cmd.OutOrStdout()).remove(cmd.Context(), args[0])
		},
	}
	settings.AddSkipConfirmation(cmd)
	settings.AddNonInteractive(cmd)
	return cmd
}

func (h *handler) remove(ctx context.Context, idPrefix string) error {
	team, err := h.team(ctx)
	if err != nil {
		return err
	}
	member, err := h.resolve(ctx, team, idPrefix)
	if err != nil {
		return err
	}

	if !h.clientFactory.GetSkipConfirmation() {
		if h.clientFactory.GetNonInteractive() {
			return fmt.Errorf("refusing to remove %s without confirmation, pass --yes", member.Name)
		}
		ok, err := ui.Confirm(fmt.Sprintf("Remove %s from the team?", member.Name), ui.WithLabels("Remove", "Cancel"))
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}

	if err := team.Delete(ctx, member.ID); err != nil {
		return fmt.Errorf("failed to remove team member: %w", err)
	}
	h.notifier.Success(fmt.Sprintf("%s removed from the team", member.Name))
	return nil
}
