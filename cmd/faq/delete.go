package faq

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
		Short: "Delete a question and answer",
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
	faqs, err := h.faqs(ctx)
	if err != nil {
		return err
	}
	current, err := h.resolve(ctx, faqs, idPrefix)
	if err != nil {
		return err
	}

	if !h.clientFactory.GetSkipConfirmation() {
		if h.clientFactory.GetNonInteractive() {
			return fmt.Errorf("refusing to delete %q without confirmation, pass --yes", ui.Truncate(current.Question, 40))
		}
		ok, err := ui.Confirm("Delete this question?", ui.WithDescription(current.Question), ui.WithLabels("Delete", "Cancel"))
		if err != nil {
			return err
		}
		if !ok {
			ui.Dim("Nothing deleted")
			return nil
		}
	}

	if err := faqs.Delete(ctx, current.ID); err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	h.notifier.Success("Question deleted")
	return nil
}
