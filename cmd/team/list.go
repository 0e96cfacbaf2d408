package team

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/threef-labs/threef-cli/cmd/utils"
	"github.com/threef-labs/threef-cli/internal/profile"
	"github.com/threef-labs/threef-cli/internal/runtime"
	"github.com/threef-labs/threef-cli/internal/ui"
)

func newListCmd(runtimeContext *runtime.Context) *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List team members",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString(utils.OutputFlagName)
			if err := utils.ValidateFormat(format); err != nil {
				return err
			}
			return newHandler(runtimeContext, cmd.OutOrStdout()).list(cmd.Context(), userID, format)
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "User id of the creator, defaults to you")
	utils.AddOutputFlag(cmd)
	return cmd
}

func (h *handler) list(ctx context.Context, userID, format string) error {
	team, err := h.team(ctx)
	if err != nil {
		return err
	}

	var members []profile.TeamMember
	if userID == "" {
		members, err = team.Mine(ctx)
	} else {
		members, err = team.List(ctx, userID)
	}
	if err != nil {
		return fmt.Errorf("failed to list team members: %w", err)
	}

	if len(members) == 0 && format == utils.TableOutputFormat {
		fmt.Fprintln(h.out, "No team members yet. Add one with: threef team add")
		return nil
	}
	return utils.Write(h.out, format, members, func() string {
		rows := make([][]string, len(members))
		for i, m := range members {
			rows[i] = []string{utils.ShortID(m.ID), m.Name, m.Role, ui.Truncate(m.Description, 48)}
		}
		return ui.Table([]string{"ID", "Name", "Role", "About"}, rows)
	})
}
