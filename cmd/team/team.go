package team

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
	teamCmd := &cobra.Command{
		Use:   "team",
		Short: "Manage the team members shown on your profile",
	}

	teamCmd.AddCommand(newListCmd(runtimeContext))
	teamCmd.AddCommand(newAddCmd(runtimeContext))
	teamCmd.AddCommand(newEditCmd(runtimeContext))
	teamCmd.AddCommand(newRemoveCmd(runtimeContext))

	return teamCmd
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

func (h *handler) team(ctx context.Context) (*profile.TeamService, error) {
	s, err := h.clientFactory.NewProfileServices(ctx, false)
	if err != nil {
		return nil, err
	}
	return s.Team, nil
}

func (h *handler) resolve(ctx context.Context, team *profile.TeamService, prefix string) (*profile.TeamMember, error) {
	members, err := team.Mine(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(members))
	for i, m := range members {
		ids[i] = m.ID
	}
	id, err := utils.ResolveID(prefix, ids)
	if err != nil {
		return nil, fmt.Errorf("team member: %w", err)
	}
	for i := range members {
		if members[i].ID == id {
			return &members[i], nil
		}
	}
	return nil, profile.ErrNotFound
}

func (h *handler) prompt(in *profile.TeamMemberInput) error {
	if h.clientFactory.GetNonInteractive() {
		return nil
	}
	return ui.InputForm([]ui.InputField{
		{Title: "Name", Value: &in.Name},
		{Title: "Role", Value: &in.Role, Placeholder: "Co-founder"},
		{Title: "Description", Value: &in.Description, Description: "Optional"},
	})
}

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "Full name")
	cmd.Flags().String("role", "", "Role in the team")
	cmd.Flags().String("description", "", "Short bio")
	settings.AddNonInteractive(cmd)
}

func inputFromFlags(cmd *cobra.Command, base profile.TeamMemberInput) (profile.TeamMemberInput, bool) {
	changed := false
	for flag, target := range map[string]*string{
		"name":        &base.Name,
		"role":        &base.Role,
		"description": &base.Description,
	} {
		if cmd.Flags().Changed(flag) {
			*target, _ = cmd.Flags().GetString(flag)
			changed = true
		}
	}
	return base, changed
}
