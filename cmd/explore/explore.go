package explore

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/threef-labs/threef-cli/cmd/client"
	"github.com/threef-labs/threef-cli/cmd/utils"
	"github.com/threef-labs/threef-cli/internal/constants"
	"github.com/threef-labs/threef-cli/internal/environments"
	"github.com/threef-labs/threef-cli/internal/profile"
	"github.com/threef-labs/threef-cli/internal/runtime"
	"github.com/threef-labs/threef-cli/internal/settings"
	"github.com/threef-labs/threef-cli/internal/ui"
)

type Inputs struct {
	Filter profile.Filter
	Format string
}

func New(runtimeContext *runtime.Context) *cobra.Command {
	var in Inputs

	exploreCmd := &cobra.Command{
		Use:   "explore",
		Short: "Browse the creators on 3F",
		Long:  "Lists public creator profiles. No sign in is needed.",
		Example: `  threef explore --category Tech
  threef explore --search solar --country Kenya --sort brand
  threef explore -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Format, _ = cmd.Flags().GetString(utils.OutputFlagName)
			h := NewHandler(runtimeContext, cmd.OutOrStdout())
			if err := h.ValidateInputs(&in); err != nil {
				return err
			}
			return h.Execute(cmd.Context(), in)
		},
	}

	exploreCmd.Flags().StringVarP(&in.Filter.Search, "search", "s", "", "Match brand or details")
	exploreCmd.Flags().StringVar(&in.Filter.Category, "category", "", "Only this category")
	exploreCmd.Flags().StringVar(&in.Filter.Subcategory, "subcategory", "", "Only this subcategory")
	exploreCmd.Flags().StringVar(&in.Filter.Country, "country", "", "Only this country")
	exploreCmd.Flags().StringVar(&in.Filter.Sort, "sort", "", fmt.Sprintf("Sort order: %s or %s (default from settings)", constants.SortNewest, constants.SortBrand))
	exploreCmd.Flags().IntVarP(&in.Filter.Limit, "limit", "n", 0, "Maximum number of profiles (default from settings)")
	utils.AddOutputFlag(exploreCmd)

	return exploreCmd
}

type handler struct {
	log            *zerolog.Logger
	clientFactory  client.Factory
	settings       *settings.Settings
	environmentSet *environments.EnvironmentSet
	out            io.Writer
}

func NewHandler(ctx *runtime.Context, out io.Writer) *handler {
	return &handler{
		log:            ctx.Logger,
		clientFactory:  ctx.ClientFactory,
		settings:       ctx.Settings,
		environmentSet: ctx.EnvironmentSet,
		out:            out,
	}
}

// ValidateInputs fills unset sort and limit from settings and checks them.
func (h *handler) ValidateInputs(in *Inputs) error {
	if err := utils.ValidateFormat(in.Format); err != nil {
		return err
	}
	if in.Filter.Sort == "" && h.settings != nil {
		in.Filter.Sort = h.settings.Explore.Sort
	}
	if in.Filter.Limit == 0 && h.settings != nil {
		in.Filter.Limit = h.settings.Explore.Limit
	}
	in.Filter.Sort = strings.ToLower(in.Filter.Sort)
	switch in.Filter.Sort {
	case "", constants.SortNewest, constants.SortBrand:
	default:
		return fmt.Errorf("--sort must be %s or %s", constants.SortNewest, constants.SortBrand)
	}
	if in.Filter.Limit < 0 {
		return fmt.Errorf("--limit must be positive")
	}
	return nil
}

func (h *handler) Execute(ctx context.Context, in Inputs) error {
	services, err := h.clientFactory.NewProfileServices(ctx, false)
	if err != nil {
		return err
	}

	profiles, err := ui.WithSpinnerResult("Loading profiles...", func() ([]profile.Info, error) {
		return services.Explore.Explore(ctx, in.Filter)
	})
	if err != nil {
		return fmt.Errorf("failed to load profiles: %w", err)
	}
	h.log.Debug().Int("count", len(profiles)).Msg("Profiles loaded")

	if len(profiles) == 0 && in.Format == utils.TableOutputFormat {
		fmt.Fprintln(h.out, "No profiles match these filters.")
		return nil
	}
	return utils.Write(h.out, in.Format, profiles, func() string { return h.table(profiles) })
}

func (h *handler) table(profiles []profile.Info) string {
	base := ""
	if h.environmentSet != nil {
		base = h.environmentSet.UIURL
	}
	rows := make([][]string, len(profiles))
	for i, p := range profiles {
		category := p.Category
		if p.Subcategory != "" {
			category += " / " + p.Subcategory
		}
		rows[i] = []string{
			strconv.Itoa(i + 1),
			ui.Truncate(p.Brand, 32),
			p.Country,
			category,
			profile.PublicURL(base, p),
		}
	}
	return ui.Table([]string{"#", "Brand", "Country", "Category", "Page"}, rows, 1)
}
