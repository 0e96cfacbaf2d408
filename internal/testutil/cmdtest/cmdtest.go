// Package cmdtest builds runtime contexts for command tests: an in-memory
// row store behind a fake client factory and a signed-in identity.
package cmdtest

import (
	"context"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/threef-labs/threef-cli/cmd/client"
	"github.com/threef-labs/threef-cli/internal/auth"
	"github.com/threef-labs/threef-cli/internal/client/objectstore"
	"github.com/threef-labs/threef-cli/internal/client/rowstore"
	"github.com/threef-labs/threef-cli/internal/client/rowstore/rowstoretest"
	"github.com/threef-labs/threef-cli/internal/credentials"
	"github.com/threef-labs/threef-cli/internal/environments"
	"github.com/threef-labs/threef-cli/internal/profile"
	"github.com/threef-labs/threef-cli/internal/runtime"
	"github.com/threef-labs/threef-cli/internal/testutil"
	"github.com/threef-labs/threef-cli/internal/ui"
)

const (
	AuthBase  = "http://auth.mock/auth/v1"
	UIURL     = "https://3f.example.com"
	CDNPrefix = "https://cdn.example.com/"
)

var _ client.Factory = (*Factory)(nil)

// Factory serves every client from fixed fakes.
type Factory struct {
	Store            rowstore.Store
	Uploader         profile.Uploader
	Identity         profile.Identity
	SkipConfirmation bool
	NonInteractive   bool
}

func (f *Factory) NewRowStore() rowstore.Store { return f.Store }

func (f *Factory) NewUploader(context.Context) (profile.Uploader, error) {
	if f.Uploader == nil {
		return nil, client.ErrStorageNotConfigured
	}
	return f.Uploader, nil
}

func (f *Factory) NewProfileServices(ctx context.Context, withUploads bool) (*profile.Services, error) {
	var uploader profile.Uploader
	if withUploads {
		var err error
		if uploader, err = f.NewUploader(ctx); err != nil {
			return nil, err
		}
	}
	return profile.New(f.Store, f.Identity, uploader, testutil.NewTestLogger())
}

func (f *Factory) GetSkipConfirmation() bool { return f.SkipConfirmation }

func (f *Factory) GetNonInteractive() bool { return f.NonInteractive }

// Uploader records uploaded objects and answers with a CDN URL.
type Uploader struct {
	Objects []objectstore.Object
	Err     error
}

func (u *Uploader) Upload(_ context.Context, obj objectstore.Object, onProgress objectstore.ProgressFunc) (string, error) {
	if u.Err != nil {
		return "", u.Err
	}
	u.Objects = append(u.Objects, obj)
	if onProgress != nil {
		onProgress(1)
	}
	return CDNPrefix + obj.Bucket + "/" + obj.Key, nil
}

// Env is a runtime context together with the fakes behind it.
type Env struct {
	Ctx      *runtime.Context
	Store    *rowstoretest.Memory
	Uploader *Uploader
	Notifier *ui.Recorder
	Factory  *Factory
}

// New returns an environment signed in as userID, or signed out when
// userID is empty. HOME points at a temporary directory.
func New(t *testing.T, userID string) *Env {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	log := testutil.NewTestLogger()
	v := viper.New()
	ctx := runtime.NewContext(log, v)

	set, err := testutil.NewTestSettings(v, log)
	require.NoError(t, err)
	ctx.Settings = set
	ctx.EnvironmentSet = &environments.EnvironmentSet{
		AuthBase: AuthBase,
		UIURL:    UIURL,
		AnonKey:  "anon",
	}

	creds := &credentials.Credentials{AuthType: credentials.AuthTypeBearer}
	if userID != "" {
		creds.Tokens = &credentials.SessionTokenSet{
			AccessToken:  "access-" + userID,
			RefreshToken: "refresh-" + userID,
			ExpiresAt:    time.Now().Add(time.Hour).Unix(),
			TokenType:    "bearer",
			User:         &credentials.SessionUser{ID: userID, Email: userID + "@example.com"},
		}
	}
	ctx.Credentials = creds
	ctx.AuthService = auth.NewService(ctx.EnvironmentSet)
	ctx.Identity = auth.NewIdentity(creds, ctx.AuthService, ctx.Broker, log)
	if userID != "" {
		ctx.User = &auth.User{ID: userID, Email: userID + "@example.com"}
	}

	store := rowstoretest.NewMemory()
	store.AddConstraint(profile.AboutUserConstraint, "user_id")
	store.AddConstraint(profile.ProfilesPKey, "id")

	up := &Uploader{}
	rec := &ui.Recorder{}
	factory := &Factory{Store: store, Uploader: up, Identity: ctx.Identity}
	ctx.ClientFactory = factory
	ctx.Notifier = rec

	return &Env{Ctx: ctx, Store: store, Uploader: up, Notifier: rec, Factory: factory}
}

// Services returns profile services over the environment's store.
func (e *Env) Services(t *testing.T) *profile.Services {
	t.Helper()
	s, err := e.Factory.NewProfileServices(context.Background(), true)
	require.NoError(t, err)
	return s
}
