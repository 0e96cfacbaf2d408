package about

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/threef-labs/threef-cli/cmd/client"
	"github.com/threef-labs/threef-cli/internal/profile"
	"github.com/threef-labs/threef-cli/internal/runtime"
	"github.com/threef-labs/threef-cli/internal/settings"
	"github.com/threef-labs/threef-cli/internal/ui"
)

const maxAboutLength = 5000

func New(runtimeContext *runtime.Context) *cobra.Command {
	aboutCmd := &cobra.Command{
		Use:   "about",
		Short: "Show or change the about text of your profile",
	}

	var userID string
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the about text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return newHandler(runtimeContext, cmd.OutOrStdout()).show(cmd.Context(), userID)
		},
	}
	showCmd.Flags().StringVar(&userID, "user", "", "User id of the creator, defaults to you")

	setCmd := &cobra.Command{
		Use:     "set",
		Short:   "Replace the about text",
		Long:    "Replaces the about text with --text, or opens an editor prefilled with the current text.",
		Example: "  threef about set --text \"We make affordable solar kits.\"",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h := newHandler(runtimeContext, cmd.OutOrStdout())
			if cmd.Flags().Changed("text") {
				text, _ := cmd.Flags().GetString("text")
				return h.set(cmd.Context(), &text)
			}
			return h.set(cmd.Context(), nil)
		},
	}
	setCmd.Flags().String("text", "", "New about text")
	settings.AddNonInteractive(setCmd)

	aboutCmd.AddCommand(showCmd, setCmd)
	return aboutCmd
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

func (h *handler) service(ctx context.Context) (*profile.AboutService, error) {
	s, err := h.clientFactory.NewProfileServices(ctx, false)
	if err != nil {
		return nil, err
	}
	return s.About, nil
}

func (h *handler) show(ctx context.Context, userID string) error {
	about, err := h.service(ctx)
	if err != nil {
		return err
	}

	var text string
	if userID == "" {
		text, err = about.Mine(ctx)
	} else {
		text, err = about.Get(ctx, userID)
	}
	if err != nil {
		return fmt.Errorf("failed to load about text: %w", err)
	}

	if text == "" {
		fmt.Fprintln(h.out, "No about text yet. Write one with: threef about set")
		return nil
	}
	fmt.Fprintln(h.out, text)
	return nil
}

// set saves text, or prompts for it when text is nil.
func (h *handler) set(ctx context.Context, text *string) error {
	about, err := h.service(ctx)
	if err != nil {
		return err
	}

	if text == nil {
		if h.clientFactory.GetNonInteractive() {
			return errors.New("--text is required with --non-interactive")
		}
		current, err := about.Mine(ctx)
		if err != nil {
			return err
		}
		value, err := ui.Text("About", ui.WithInitialValue(current), ui.WithInputDescription("Tell backers who you are and what you are building"))
		if err != nil {
			return err
		}
		text = &value
	}

	if n := len([]rune(*text)); n > maxAboutLength {
		return fmt.Errorf("about text is %d characters long, the limit is %d", n, maxAboutLength)
	}
	if err := about.Save(ctx, *text); err != nil {
		return fmt.Errorf("failed to save about text: %w", err)
	}
	h.notifier.Success("About text saved")
	return nil
}
