package tier

import (
	"context"
	"fmt"
	"strconv"

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
		Short: "List support tiers",
		Long:  "Lists your support tiers, or those of another creator with --user.",
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
	tiers, err := h.services(ctx)
	if err != nil {
		return err
	}

	var rows []profile.Tier
	if userID == "" {
		rows, err = tiers.Mine(ctx)
	} else {
		rows, err = tiers.List(ctx, userID)
	}
	if err != nil {
		return fmt.Errorf("failed to list tiers: %w", err)
	}

	if len(rows) == 0 && format == utils.TableOutputFormat {
		fmt.Fprintln(h.out, "No tiers yet. Create one with: threef tier create")
		return nil
	}
	return utils.Write(h.out, format, rows, func() string { return tierTable(rows) })
}

func tierTable(tiers []profile.Tier) string {
	rows := make([][]string, len(tiers))
	for i, t := range tiers {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			utils.ShortID(t.ID),
			t.Name,
			utils.FormatAmount(t.Amount),
			ui.Truncate(t.RewardDescription, 48),
		}
	}
	return ui.Table([]string{"#", "ID", "Name", "Amount", "Reward"}, rows, 1)
}
