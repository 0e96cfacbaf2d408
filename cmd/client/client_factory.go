package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/threef-labs/threef-cli/internal/auth"
	"github.com/threef-labs/threef-cli/internal/client/graphqlclient"
	"github.com/threef-labs/threef-cli/internal/client/objectstore"
	"github.com/threef-labs/threef-cli/internal/client/rowstore"
	"github.com/threef-labs/threef-cli/internal/credentials"
	"github.com/threef-labs/threef-cli/internal/environments"
	"github.com/threef-labs/threef-cli/internal/profile"
	"github.com/threef-labs/threef-cli/internal/settings"
)

var ErrStorageNotConfigured = errors.New("object storage credentials are missing, set " +
	settings.StorageAccessKeyEnvVar + " and " + settings.StorageSecretKeyEnvVar)

// Factory builds the backend clients a command needs.
type Factory interface {
	NewRowStore() rowstore.Store
	NewUploader(ctx context.Context) (profile.Uploader, error)
	NewProfileServices(ctx context.Context, withUploads bool) (*profile.Services, error)
	GetSkipConfirmation() bool
	GetNonInteractive() bool
}

// Deps are the runtime pieces the factory builds clients from.
type Deps struct {
	Identity       *auth.Identity
	EnvironmentSet *environments.EnvironmentSet
	Settings       *settings.Settings
}

type factoryImpl struct {
	logger *zerolog.Logger
	viper  *viper.Viper
	deps   func() Deps
}

// NewFactory returns a factory that reads deps lazily, so it can be built
// before settings and credentials are attached.
func NewFactory(logger *zerolog.Logger, viper *viper.Viper, deps func() Deps) Factory {
	return &factoryImpl{
		logger: logger,
		viper:  viper,
		deps:   deps,
	}
}

func (f *factoryImpl) NewRowStore() rowstore.Store {
	d := f.deps()
	var (
		refresher graphqlclient.Refresher
		creds     *credentials.Credentials
	)
	if d.Identity != nil {
		refresher = d.Identity
		creds = d.Identity.Credentials()
	}
	gql := graphqlclient.New(creds, d.EnvironmentSet, refresher, f.logger)
	return rowstore.New(gql, f.logger)
}

func (f *factoryImpl) NewUploader(ctx context.Context) (profile.Uploader, error) {
	d := f.deps()
	if d.Settings == nil || !d.Settings.Storage.Configured() {
		return nil, ErrStorageNotConfigured
	}
	f.logger.Debug().
		Str("endpoint", d.EnvironmentSet.StorageEndpoint).
		Str("region", d.EnvironmentSet.StorageRegion).
		Msg("Selected object storage")

	c, err := objectstore.NewClient(ctx, objectstore.Options{
		Endpoint:  d.EnvironmentSet.StorageEndpoint,
		Region:    d.EnvironmentSet.StorageRegion,
		AccessKey: d.Settings.Storage.AccessKey,
		SecretKey: d.Settings.Storage.SecretKey,
		PublicURL: d.EnvironmentSet.StoragePublicURL,
	}, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create object storage client: %w", err)
	}
	return c, nil
}

func (f *factoryImpl) NewProfileServices(ctx context.Context, withUploads bool) (*profile.Services, error) {
	var uploader profile.Uploader
	if withUploads {
		var err error
		if uploader, err = f.NewUploader(ctx); err != nil {
			return nil, err
		}
	}
	var identity profile.Identity
	if id := f.deps().Identity; id != nil {
		identity = id
	}
	return profile.New(f.NewRowStore(), identity, uploader, f.logger)
}

func (f *factoryImpl) GetSkipConfirmation() bool {
	return f.viper.GetBool(settings.Flags.SkipConfirmation.Name)
}

func (f *factoryImpl) GetNonInteractive() bool {
	return f.viper.GetBool(settings.Flags.NonInteractive.Name)
}
