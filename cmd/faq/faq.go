package faq

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/threef-labs/threef-cli/cmd/client"
	"github.com/threef-labs/threef-cli/cmd/utils"
	"github.com/threef-labs/threef-cli/internal/profile"
	"github.com/threef-labs/threef-cli/internal/runtime"
	"github.com/threef-labs/threef-cli/internal/settings"
	"github.com/threef-labs/threef-cli/internal/ui"
)

func New(runtimeContext *runtime.Context) *cobra.Command {
	faqCmd := &cobra.Command{
		Use:     "faq",
		Aliases: []string{"faqs"},
		Short:   "Manage the frequently asked questions on your profile",
	}

	faqCmd.AddCommand(newListCmd(runtimeContext))
	faqCmd.AddCommand(newCreateCmd(runtimeContext))
	faqCmd.AddCommand(newEditCmd(runtimeContext))
	faqCmd.AddCommand(newDeleteCmd(runtimeContext))

	return faqCmd
}

type handler struct {
	log           *zerolog.Logger
	clientFactory client.Factory
	notifier      ui.Notifier
	out           io.Writer
}

func newHandler(ctx *runtime.Context, out io.Writer) *handler {
	return &handler{
		log:           ctx.Logger,
		clientFactory: ctx.ClientFactory,
		notifier:      ctx.Notifier,
		out:           out,
	}
}

func (h *handler) faqs(ctx context.Context) (*profile.FAQService, error) {
	s, err := h.clientFactory.NewProfileServices(ctx, false)
	if err != nil {
		return nil, err
	}
	return s.FAQs, nil
}

func (h *handler) resolve(ctx context.Context, faqs *profile.FAQService, prefix string) (*profile.FAQ, error) {
	mine, err := faqs.Mine(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(mine))
	for i, f := range mine {
		ids[i] = f.ID
	}
	id, err := utils.ResolveID(prefix, ids)
	if err != nil {
		return nil, fmt.Errorf("faq: %w", err)
	}
	for i := range mine {
		if mine[i].ID == id {
			return &mine[i], nil
		}
	}
	return nil, profile.ErrNotFound
}

// prompt asks for the question on one line and the answer in a text area.
func (h *handler) prompt(in *profile.FAQInput) error {
	if h.clientFactory.GetNonInteractive() {
		return nil
	}
	question, err := ui.Input("Question", ui.WithInitialValue(in.Question), ui.WithPlaceholder("When do rewards ship?"))
	if err != nil {
		return err
	}
	answer, err := ui.Text("Answer", ui.WithInitialValue(in.Answer))
	if err != nil {
		return err
	}
	in.Question, in.Answer = question, answer
	return nil
}

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("question", "q", "", "The question")
	cmd.Flags().StringP("answer", "a", "", "The answer")
	settings.AddNonInteractive(cmd)
}

func inputFromFlags(cmd *cobra.Command, base profile.FAQInput) (profile.FAQInput, bool) {
	changed := false
	if cmd.Flags().Changed("question") {
		base.Question, _ = cmd.Flags().GetString("question")
		changed = true
	}
	if cmd.Flags().Changed("answer") {
		base.Answer, _ = cmd.Flags().GetString("answer")
		changed = true
	}
	return base, changed
}
