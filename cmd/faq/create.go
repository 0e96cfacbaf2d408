package faq

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/threef-labs/threef-cli/internal/profile"
	"github.com/threef-labs/threef-cli/internal/runtime"
)

func newCreateCmd(runtimeContext *runtime.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Add a question and answer",
		Example: "  threef faq create -q \"When do rewards ship?\" -a \"Within a month.\"",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, _ := inputFromFlags(cmd, profile.FAQInput{})
			return newHandler(runtimeContext, cmd.OutOrStdout()).create(cmd.Context(), in)
		},
	}
	addInputFlags(cmd)
	return cmd
}

func (h *handler) create(ctx context.Context, in profile.FAQInput) error {
	faqs, err := h.faqs(ctx)
	if err != nil {
		return err
	}
	if in.Question == "" || in.Answer == "" {
		if err := h.prompt(&in); err != nil {
			return err
		}
	}

	faq, err := faqs.Create(ctx, in)
	if err != nil {
		return fmt.Errorf("failed to add question: %w", err)
	}
	h.log.Debug().Str("id", faq.ID).Msg("FAQ created")
	h.notifier.Success("Question added")
	return nil
}
