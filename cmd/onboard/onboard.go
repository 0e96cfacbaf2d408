package onboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/threef-labs/threef-cli/cmd/client"
	"github.com/threef-labs/threef-cli/internal/auth"
	"github.com/threef-labs/threef-cli/internal/environments"
	"github.com/threef-labs/threef-cli/internal/profile"
	"github.com/threef-labs/threef-cli/internal/runtime"
	"github.com/threef-labs/threef-cli/internal/session"
	"github.com/threef-labs/threef-cli/internal/settings"
	"github.com/threef-labs/threef-cli/internal/ui"
	"github.com/threef-labs/threef-cli/internal/validation"
	"github.com/threef-labs/threef-cli/internal/wizard"
)

var errCancelled = errors.New("onboarding cancelled")

type Inputs struct {
	AnswersFile string `validate:"omitempty,answers_file" cli:"--answers"`
}

func New(runtimeContext *runtime.Context) *cobra.Command {
	var onboardCmd = &cobra.Command{
		Use:   "onboard",
		Short: "Create your organization profile (recommended starting point)",
		Long: `Walks you through creating the public profile of your organization:
basic info, details and social links. Answers can be read from a YAML or
TOML file with --answers, which also allows running without a terminal.`,
		Example: "  threef onboard\n  threef onboard --answers acme.yaml --non-interactive",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h := newHandler(runtimeContext)

			inputs, err := h.ResolveInputs(runtimeContext.Viper)
			if err != nil {
				return err
			}
			if err := h.ValidateInputs(inputs); err != nil {
				return err
			}
			return h.Execute(cmd.Context(), inputs)
		},
	}

	onboardCmd.Flags().StringP("answers", "a", "", "Path to a YAML or TOML file with the onboarding answers")
	settings.AddNonInteractive(onboardCmd)
	settings.AddSkipConfirmation(onboardCmd)

	return onboardCmd
}

type handler struct {
	log            *zerolog.Logger
	clientFactory  client.Factory
	identity       *auth.Identity
	environmentSet *environments.EnvironmentSet
	settings       *settings.Settings
	notifier       ui.Notifier
	renderer       renderer
	validated      bool
}

func newHandler(ctx *runtime.Context) *handler {
	return &handler{
		log:            ctx.Logger,
		clientFactory:  ctx.ClientFactory,
		identity:       ctx.Identity,
		environmentSet: ctx.EnvironmentSet,
		settings:       ctx.Settings,
		notifier:       ctx.Notifier,
	}
}

func (h *handler) ResolveInputs(v *viper.Viper) (Inputs, error) {
	return Inputs{
		AnswersFile: v.GetString("answers"),
	}, nil
}

func (h *handler) ValidateInputs(inputs Inputs) error {
	validator, err := validation.NewValidator()
	if err != nil {
		return fmt.Errorf("failed to create validator: %w", err)
	}
	if err := validator.Struct(inputs); err != nil {
		return validator.ParseValidationErrors(err)
	}
	if inputs.AnswersFile == "" && h.clientFactory.GetNonInteractive() {
		return errors.New("--answers is required with --non-interactive")
	}

	h.validated = true
	return nil
}

func (h *handler) Execute(ctx context.Context, inputs Inputs) error {
	if !h.validated {
		return fmt.Errorf("handler inputs not validated")
	}
	if h.identity == nil {
		return auth.ErrNotAuthenticated
	}
	if _, err := h.identity.CurrentUser(ctx); err != nil {
		return err
	}

	services, err := h.clientFactory.NewProfileServices(ctx, false)
	if err != nil {
		return err
	}

	r, err := h.pickRenderer(inputs)
	if err != nil {
		return err
	}

	if proceed, err := h.confirmReplace(ctx, services, r); err != nil || !proceed {
		return err
	}

	unsubscribe := h.identity.Subscribe(h.onSessionChange)
	defer unsubscribe()

	var created *profile.Info
	submit := func(ctx context.Context, s wizard.Submission) error {
		info, err := services.Info.Create(ctx, s)
		if err != nil {
			return err
		}
		created = info
		return nil
	}

	ctrl, err := wizard.New(wizard.DefaultSteps(), wizard.NewFormState(), wizard.WithLogger(h.log))
	if err != nil {
		return err
	}
	if err := h.run(ctx, ctrl, r, submit); err != nil {
		return err
	}

	h.notifier.Success("Organization profile created")
	if created != nil {
		ui.Line()
		ui.Title("Congratulations, " + created.Brand + " is live")
		ui.URL(profile.PublicURL(h.environmentSet.UIURL, *created))
		ui.Line()
		ui.Print("Next steps:")
		ui.Command("  threef image upload --kind cover <file>")
		ui.Command("  threef tier create")
		ui.Command("  threef about set")
	}
	return nil
}

func (h *handler) pickRenderer(inputs Inputs) (renderer, error) {
	if h.renderer != nil {
		return h.renderer, nil
	}
	if inputs.AnswersFile != "" {
		answers, err := LoadAnswers(inputs.AnswersFile)
		if err != nil {
			return nil, err
		}
		return &answersRenderer{answers: answers}, nil
	}
	country := ""
	if h.settings != nil {
		country = h.settings.Onboard.Country
	}
	return &formRenderer{defaultCountry: country}, nil
}

// confirmReplace warns when the user already has a profile. The newest
// profile is the one shown publicly.
func (h *handler) confirmReplace(ctx context.Context, services *profile.Services, r renderer) (bool, error) {
	existing, err := services.Info.Mine(ctx)
	if errors.Is(err, profile.ErrNoProfile) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check for an existing profile: %w", err)
	}

	ui.Warning(fmt.Sprintf("You already have a profile for %s, a new one will replace it on your public page", existing.Brand))
	if h.clientFactory.GetSkipConfirmation() || !r.Interactive() {
		return true, nil
	}
	ok, err := ui.Confirm("Create a new profile?")
	if err != nil {
		return false, err
	}
	if !ok {
		ui.Dim("Nothing changed")
	}
	return ok, nil
}

func (h *handler) onSessionChange(ev session.Event) {
	h.log.Debug().Str("event", ev.Kind.String()).Msg("Session changed during onboarding")
	if ev.Kind == session.SignedOut {
		h.notifier.Error("You were signed out, sign in again before submitting")
	}
}

// run drives the controller until the terminal step. Every step is shown
// through the one switch below.
func (h *handler) run(ctx context.Context, ctrl *wizard.Controller, r renderer, submit wizard.SubmitFunc) error {
	var errs wizard.FieldErrors
	for {
		step := ctrl.Current()
		ui.Step(fmt.Sprintf("Step %d of %d: %s", ctrl.Index()+1, ctrl.Total(), step.Title))

		switch step.ID {
		case wizard.StepBasicInfo:
			nav, err := r.BasicInfo(ctrl.Form(), errs)
			if err != nil {
				return err
			}
			errs = nil
			if nav == navBack {
				ctrl.Retreat()
				continue
			}
			if err := ctrl.Advance(); err != nil {
				if errs, err = h.rejected(err, r); err != nil {
					return err
				}
			}

		case wizard.StepDetails:
			nav, err := r.Details(ctrl.Form(), errs)
			if err != nil {
				return err
			}
			errs = nil
			if nav == navBack {
				ctrl.Retreat()
				continue
			}
			err = ui.WithSpinner("Creating your profile...", func() error {
				return ctrl.Submit(ctx, submit)
			})
			var submitErr *wizard.SubmitError
			switch {
			case err == nil:
			case errors.As(err, &submitErr):
				h.notifier.Error("Failed to save your profile: " + submitErr.Err.Error())
				retry, promptErr := r.ConfirmRetry(submitErr.Err)
				if promptErr != nil {
					return promptErr
				}
				if !retry {
					return submitErr
				}
			default:
				if errs, err = h.rejected(err, r); err != nil {
					return err
				}
			}

		case wizard.StepComplete:
			return nil

		default:
			return fmt.Errorf("unknown onboarding step %s", step.ID)
		}
	}
}

// rejected turns a validation failure into errors to show on the next
// render. Without a prompt to correct them they end the run.
func (h *handler) rejected(err error, r renderer) (wizard.FieldErrors, error) {
	var fe wizard.FieldErrors
	if !errors.As(err, &fe) {
		return nil, err
	}
	if !r.Interactive() {
		return nil, fe
	}
	return fe, nil
}
