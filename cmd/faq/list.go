package faq

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
		Short: "List questions and answers",
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
	faqs, err := h.faqs(ctx)
	if err != nil {
		return err
	}

	var rows []profile.FAQ
	if userID == "" {
		rows, err = faqs.Mine(ctx)
	} else {
		rows, err = faqs.List(ctx, userID)
	}
	if err != nil {
		return fmt.Errorf("failed to list questions: %w", err)
	}

	if len(rows) == 0 && format == utils.TableOutputFormat {
		fmt.Fprintln(h.out, "No questions yet. Add one with: threef faq create")
		return nil
	}
	return utils.Write(h.out, format, rows, func() string {
		table := make([][]string, len(rows))
		for i, f := range rows {
			table[i] = []string{strconv.Itoa(i + 1), utils.ShortID(f.ID), ui.Truncate(f.Question, 40), ui.Truncate(f.Answer, 60)}
		}
		return ui.Table([]string{"#", "ID", "Question", "Answer"}, table, 1)
	})
}
