package image

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/threef-labs/threef-cli/cmd/client"
	"github.com/threef-labs/threef-cli/internal/profile"
	"github.com/threef-labs/threef-cli/internal/runtime"
	"github.com/threef-labs/threef-cli/internal/ui"
)

func New(runtimeContext *runtime.Context) *cobra.Command {
	imageCmd := &cobra.Command{
		Use:   "image",
		Short: "Upload the profile and cover images of your page",
	}

	var kind string
	uploadCmd := &cobra.Command{
		Use:   "upload <path>",
		Short: "Upload an image",
		Long: `Uploads a .jpg, .jpeg or .png image of at most 5MB.

Profile images appear next to your brand; cover images span the top of your
public page and require a completed profile.`,
		Example: "  threef image upload ./logo.png\n  threef image upload ./banner.jpg --kind cover",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := profile.ParseImageKind(kind)
			if err != nil {
				return err
			}
			return newHandler(runtimeContext, cmd.OutOrStdout()).upload(cmd.Context(), k, args[0])
		},
	}
	uploadCmd.Flags().StringVarP(&kind, "kind", "k", string(profile.ImageProfile), "Image kind: profile or cover")

	imageCmd.AddCommand(uploadCmd)
	return imageCmd
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

func (h *handler) upload(ctx context.Context, kind profile.ImageKind, path string) error {
	services, err := h.clientFactory.NewProfileServices(ctx, true)
	if err != nil {
		return err
	}

	var url string
	err = ui.RunWithProgress(fmt.Sprintf("Uploading %s image...", kind), func(report func(float64)) error {
		var uploadErr error
		url, uploadErr = services.Images.Upload(ctx, kind, path, report)
		return uploadErr
	})
	if err != nil {
		h.notifier.Error(fmt.Sprintf("Could not upload the %s image", kind))
		return fmt.Errorf("upload failed: %w", err)
	}

	if kind == profile.ImageCover {
		h.notifier.Success("Cover image updated")
	} else {
		h.notifier.Success("Profile image updated")
	}
	fmt.Fprintln(h.out, url)
	return nil
}
