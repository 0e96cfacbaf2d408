package tier

import (
	"context"
	"fmt"
	"io"
	"os"

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
	tierCmd := &cobra.Command{
		Use:   "tier",
		Short: "Manage the support tiers of your profile",
		Long:  `List, create, edit and delete the support tiers backers can choose from.`,
	}

	tierCmd.AddCommand(newListCmd(runtimeContext))
	tierCmd.AddCommand(newCreateCmd(runtimeContext))
	tierCmd.AddCommand(newEditCmd(runtimeContext))
	tierCmd.AddCommand(newDeleteCmd(runtimeContext))

	return tierCmd
}

type handler struct {
	log           *zerolog.Logger
	clientFactory client.Factory
	notifier      ui.Notifier
	out           io.Writer
}

func newHandler(ctx *runtime.Context, out io.Writer) *handler {
	if out == nil {
		out = os.Stdout
	}
	return &handler{
		log:           ctx.Logger,
		clientFactory: ctx.ClientFactory,
		notifier:      ctx.Notifier,
		out:           out,
	}
}

func (h *handler) services(ctx context.Context) (*profile.TierService, error) {
	s, err := h.clientFactory.NewProfileServices(ctx, false)
	if err != nil {
		return nil, err
	}
	return s.Tiers, nil
}

// resolve expands an id prefix against the signed-in user's tiers.
func (h *handler) resolve(ctx context.Context, tiers *profile.TierService, prefix string) (*profile.Tier, error) {
	mine, err := tiers.Mine(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(mine))
	for i, t := range mine {
		ids[i] = t.ID
	}
	id, err := utils.ResolveID(prefix, ids)
	if err != nil {
		return nil, fmt.Errorf("tier: %w", err)
	}
	for i := range mine {
		if mine[i].ID == id {
			return &mine[i], nil
		}
	}
	return nil, profile.ErrNotFound
}

func (h *handler) prompt(in *profile.TierInput) error {
	if h.clientFactory.GetNonInteractive() {
		return nil
	}
	return ui.InputForm([]ui.InputField{
		{Title: "Name", Value: &in.Name, Placeholder: "Gold"},
		{Title: "Reward", Value: &in.RewardDescription, Description: "What backers of this tier receive"},
		{Title: "Amount", Value: &in.Amount, Description: "Leave empty for any amount", Placeholder: "25"},
	})
}

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "Tier name")
	cmd.Flags().String("reward", "", "Description of the reward")
	cmd.Flags().String("amount", "", "Suggested amount, empty for any amount")
	settings.AddNonInteractive(cmd)
}

// inputFromFlags overlays the flags that were set on base.
func inputFromFlags(cmd *cobra.Command, base profile.TierInput) (profile.TierInput, bool) {
	changed := false
	for flag, target := range map[string]*string{
		"name":   &base.Name,
		"reward": &base.RewardDescription,
		"amount": &base.Amount,
	} {
		if cmd.Flags().Changed(flag) {
			*target, _ = cmd.Flags().GetString(flag)
			changed = true
		}
	}
	return base, changed
}
