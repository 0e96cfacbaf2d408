package team

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/threef-labs/threef-cli/internal/profile"
	"github.com/threef-labs/threef-cli/internal/runtime"
)

func newAddCmd(runtimeContext *runtime.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "add",
		Aliases: []string{"create"},
		Short:   "Add a team member",
		Example: "  threef team add --name \"Ada Obi\" --role CTO",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, _ := inputFromFlags(cmd, profile.TeamMemberInput{})
			return newHandler(runtimeContext, cmd.OutOrStdout()).add(cmd.Context(), in)
		},
	}
	addInputFlags(cmd)
	return cmd
}

func (h *handler) add(ctx context.Context, in profile.TeamMemberInput) error {
	team, err := h.team(ctx)
	if err != nil {
		return err
	}
	if in.Name == "" || in.Role == "" {
		if err := h.prompt(&in); err != nil {
			return err
		}
	}

	member, err := team.Create(ctx, in)
	if err != nil {
		return fmt.Errorf("failed to add team member: %w", err)
	}
	h.notifier.Success(fmt.Sprintf("%s added to the team", member.Name))
	return nil
}
