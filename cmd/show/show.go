package show

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/threef-labs/threef-cli/cmd/client"
	"github.com/threef-labs/threef-cli/cmd/utils"
	"github.com/threef-labs/threef-cli/internal/environments"
	"github.com/threef-labs/threef-cli/internal/profile"
	"github.com/threef-labs/threef-cli/internal/runtime"
	"github.com/threef-labs/threef-cli/internal/ui"
)

func New(runtimeContext *runtime.Context) *cobra.Command {
	showCmd := &cobra.Command{
		Use:   "show <user-id|slug>",
		Short: "Show the public page of a creator",
		Long:  "Shows a creator's profile, about text, tiers, questions and team. Accepts a user id or the page slug listed by explore.",
		Example: `  threef show acme-labs
  threef show 0b9f7c1e-3f4a-4c52-9d1e-7a51b2c0e001 -o yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString(utils.OutputFlagName)
			if err := utils.ValidateFormat(format); err != nil {
				return err
			}
			return newHandler(runtimeContext, cmd.OutOrStdout()).execute(cmd.Context(), args[0], format)
		},
	}
	utils.AddOutputFlag(showCmd)
	return showCmd
}

type handler struct {
	log            *zerolog.Logger
	clientFactory  client.Factory
	environmentSet *environments.EnvironmentSet
	out            io.Writer
}

func newHandler(ctx *runtime.Context, out io.Writer) *handler {
	return &handler{
		log:            ctx.Logger,
		clientFactory:  ctx.ClientFactory,
		environmentSet: ctx.EnvironmentSet,
		out:            out,
	}
}

func (h *handler) execute(ctx context.Context, ref, format string) error {
	services, err := h.clientFactory.NewProfileServices(ctx, false)
	if err != nil {
		return err
	}

	card, err := ui.WithSpinnerResult("Loading profile...", func() (*profile.Card, error) {
		return h.load(ctx, services, ref)
	})
	if err != nil {
		return err
	}
	return utils.Write(h.out, format, card, func() string { return h.render(card) })
}

// load treats ref as a user id first and falls back to matching brand slugs.
func (h *handler) load(ctx context.Context, services *profile.Services, ref string) (*profile.Card, error) {
	card, err := services.PublicCard(ctx, ref)
	if err == nil || !errors.Is(err, profile.ErrNotFound) {
		return card, err
	}

	all, listErr := services.Info.All(ctx)
	if listErr != nil {
		return nil, listErr
	}
	for _, info := range all {
		if profile.Slug(info.Brand) == strings.ToLower(ref) {
			h.log.Debug().Str("slug", ref).Str("user_id", info.UserID).Msg("Resolved slug")
			return services.PublicCard(ctx, info.UserID)
		}
	}
	return nil, fmt.Errorf("no profile found for %q", ref)
}

func (h *handler) render(card *profile.Card) string {
	base := ""
	if h.environmentSet != nil {
		base = h.environmentSet.UIURL
	}
	info := card.Info

	var b strings.Builder
	b.WriteString(ui.RenderTitle(info.Brand) + "\n")

	details := []string{
		fmt.Sprintf("Country:     %s", info.Country),
		fmt.Sprintf("Category:    %s / %s", info.Category, info.Subcategory),
		fmt.Sprintf("Page:        %s", profile.PublicURL(base, info)),
	}
	if len(info.Tags) > 0 {
		details = append(details, fmt.Sprintf("Tags:        %s", strings.Join(info.Tags, ", ")))
	}
	if card.ProfileImageURL != "" {
		details = append(details, fmt.Sprintf("Image:       %s", card.ProfileImageURL))
	}
	if info.CoverImageURL != "" {
		details = append(details, fmt.Sprintf("Cover:       %s", info.CoverImageURL))
	}
	b.WriteString(ui.BoxStyle.Render(strings.Join(details, "\n")) + "\n")

	if info.Details != "" {
		b.WriteString("\n" + ui.RenderBold("Details") + "\n" + info.Details + "\n")
	}
	if card.About != "" {
		b.WriteString("\n" + ui.RenderBold("About") + "\n" + card.About + "\n")
	}
	if len(info.Socials) > 0 {
		b.WriteString("\n" + ui.RenderBold("Links") + "\n")
		for _, s := range info.Socials {
			label := s.Platform
			if label == "" {
				label = "Link"
			}
			b.WriteString(fmt.Sprintf("  %s  %s\n", label, ui.RenderURL(s.URL)))
		}
	}

	if len(card.Tiers) > 0 {
		rows := make([][]string, len(card.Tiers))
		for i, t := range card.Tiers {
			rows[i] = []string{t.Name, utils.FormatAmount(t.Amount), ui.Truncate(t.RewardDescription, 48)}
		}
		b.WriteString("\n" + ui.RenderBold("Support tiers") + "\n" + ui.Table([]string{"Tier", "Amount", "Reward"}, rows) + "\n")
	}
	if len(card.FAQs) > 0 {
		b.WriteString("\n" + ui.RenderBold("Questions") + "\n")
		for _, f := range card.FAQs {
			b.WriteString(fmt.Sprintf("  Q: %s\n  A: %s\n", f.Question, f.Answer))
		}
	}
	if len(card.Team) > 0 {
		rows := make([][]string, len(card.Team))
		for i, m := range card.Team {
			rows[i] = []string{m.Name, m.Role}
		}
		b.WriteString("\n" + ui.RenderBold("Team") + "\n" + ui.Table([]string{"Name", "Role"}, rows) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
