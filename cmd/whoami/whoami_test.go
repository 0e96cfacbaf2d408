package whoami_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threef-labs/threef-cli/cmd/whoami"
	"github.com/threef-labs/threef-cli/internal/auth"
	"github.com/threef-labs/threef-cli/internal/testutil/cmdtest"
	"github.com/threef-labs/threef-cli/internal/wizard"
)

func TestHandlerExecute(t *testing.T) {
	t.Run("signed in with a profile", func(t *testing.T) {
		env := cmdtest.New(t, "user-1")
		_, err := env.Services(t).Info.Create(context.Background(), wizard.Submission{
			Brand: "Acme Labs", Country: "Nigeria", Category: "Tech", Subcategory: "Software", Details: "d",
		})
		require.NoError(t, err)

		out := &bytes.Buffer{}
		require.NoError(t, whoami.NewHandler(env.Ctx, out).Execute(context.Background()))

		assert.Contains(t, out.String(), "user-1@example.com")
		assert.Contains(t, out.String(), "Acme Labs")
		assert.Contains(t, out.String(), cmdtest.UIURL+"/o/acme-labs")
	})

	t.Run("signed in without a profile", func(t *testing.T) {
		env := cmdtest.New(t, "user-2")

		out := &bytes.Buffer{}
		require.NoError(t, whoami.NewHandler(env.Ctx, out).Execute(context.Background()))

		assert.Contains(t, out.String(), "user-2")
		assert.Contains(t, out.String(), "threef onboard")
	})

	t.Run("signed out", func(t *testing.T) {
		env := cmdtest.New(t, "")

		err := whoami.NewHandler(env.Ctx, &bytes.Buffer{}).Execute(context.Background())
		assert.ErrorIs(t, err, auth.ErrNotAuthenticated)
	})
}
