package team

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/threef-labs/threef-cli/internal/profile"
	"github.com/threef-labs/threef-cli/internal/runtime"
)

func newEditCmd(runtimeContext *runtime.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a team member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return newHandler(runtimeContext, cmd.OutOrStdout()).edit(cmd.Context(), args[0], func(base profile.TeamMemberInput) (profile.TeamMemberInput, bool) {
				return inputFromFlags(cmd, base)
			})
		},
	}
	addInputFlags(cmd)
	return cmd
}

func (h *handler) edit(ctx context.Context, idPrefix string, overlay func(profile.TeamMemberInput) (profile.TeamMemberInput, bool)) error {
	team, err := h.team(ctx)
	if err != nil {
		return err
	}
	current, err := h.resolve(ctx, team, idPrefix)
	if err != nil {
		return err
	}

	in, changed := overlay(profile.TeamMemberInput{
		Name:        current.Name,
		Role:        current.Role,
		Description: current.Description,
	})
	if !changed {
		if err := h.prompt(&in); err != nil {
			return err
		}
	}

	if err := team.Update(ctx, current.ID, in); err != nil {
		return fmt.Errorf("failed to update team member: %w", err)
	}
	h.notifier.Success(fmt.Sprintf("%s updated", in.Name))
	return nil
}
