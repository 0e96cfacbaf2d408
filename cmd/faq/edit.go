package faq

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
		Short: "Edit a question and answer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return newHandler(runtimeContext, cmd.OutOrStdout()).edit(cmd.Context(), args[0], func(base profile.FAQInput) (profile.FAQInput, bool) {
				return inputFromFlags(cmd, base)
			})
		},
	}
	addInputFlags(cmd)
	return cmd
}

func (h *handler) edit(ctx context.Context, idPrefix string, overlay func(profile.FAQInput) (profile.FAQInput, bool)) error {
	faqs, err := h.faqs(ctx)
	if err != nil {
		return err
	}
	current, err := h.resolve(ctx, faqs, idPrefix)
	if err != nil {
		return err
	}

	in, changed := overlay(profile.FAQInput{Question: current.Question, Answer: current.Answer})
	if !changed {
		if err := h.prompt(&in); err != nil {
			return err
		}
	}

	if err := faqs.Update(ctx, current.ID, in); err != nil {
		return fmt.Errorf("failed to update question: %w", err)
	}
	h.notifier.Success("Question updated")
	return nil
}
