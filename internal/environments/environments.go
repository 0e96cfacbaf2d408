package environments

import (
	"embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

const (
	EnvVarEnv = "THREEF_ENV"

	EnvVarUIURL            = "THREEF_UI_URL"
	EnvVarAuthBase         = "THREEF_AUTH_URL"
	EnvVarAnonKey          = "THREEF_ANON_KEY"
	EnvVarGraphQLURL       = "THREEF_GRAPHQL_URL"
	EnvVarStorageEndpoint  = "THREEF_STORAGE_ENDPOINT"
	EnvVarStorageRegion    = "THREEF_STORAGE_REGION"
	EnvVarStoragePublicURL = "THREEF_STORAGE_PUBLIC_URL"
	EnvVarMinClientVersion = "THREEF_MIN_CLIENT_VERSION"

	DefaultEnv = "PRODUCTION"
)

//go:embed environments.yaml
var envFileContent embed.FS

// EnvironmentSet is the set of backend endpoints one CLI invocation talks to.
type EnvironmentSet struct {
	UIURL            string `yaml:"THREEF_UI_URL"`
	AuthBase         string `yaml:"THREEF_AUTH_URL"`
	AnonKey          string `yaml:"THREEF_ANON_KEY"`
	GraphQLURL       string `yaml:"THREEF_GRAPHQL_URL"`
	StorageEndpoint  string `yaml:"THREEF_STORAGE_ENDPOINT"`
	StorageRegion    string `yaml:"THREEF_STORAGE_REGION"`
	StoragePublicURL string `yaml:"THREEF_STORAGE_PUBLIC_URL"`
	MinClientVersion string `yaml:"THREEF_MIN_CLIENT_VERSION"`
}

type fileFormat struct {
	Envs map[string]EnvironmentSet `yaml:"ENVIRONMENTS"`
}

func loadEmbeddedEnvironmentFile() (*fileFormat, error) {
	data, err := envFileContent.ReadFile("environments.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded environments file: %w", err)
	}
	return parseEnvironmentFile(data)
}

func parseEnvironmentFile(data []byte) (*fileFormat, error) {
	var ff fileFormat
	if err := yaml.Unmarshal(data, &ff); err != nil {
		return nil, fmt.Errorf("unmarshalling environments file: %w", err)
	}
	return &ff, nil
}

func NewEnvironmentSet(ff *fileFormat, envName string) *EnvironmentSet {
	set, ok := ff.Envs[envName]
	if !ok {
		set = ff.Envs[DefaultEnv]
	}

	overrides := []struct {
		envVar string
		target *string
	}{
		{EnvVarUIURL, &set.UIURL},
		{EnvVarAuthBase, &set.AuthBase},
		{EnvVarAnonKey, &set.AnonKey},
		{EnvVarGraphQLURL, &set.GraphQLURL},
		{EnvVarStorageEndpoint, &set.StorageEndpoint},
		{EnvVarStorageRegion, &set.StorageRegion},
		{EnvVarStoragePublicURL, &set.StoragePublicURL},
		{EnvVarMinClientVersion, &set.MinClientVersion},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.envVar); v != "" {
			*o.target = v
		}
	}

	return &set
}

func New() (*EnvironmentSet, error) {
	ff, err := loadEmbeddedEnvironmentFile()
	if err != nil {
		return nil, err
	}
	envName := os.Getenv(EnvVarEnv)
	if envName == "" {
		envName = DefaultEnv
	}
	return NewEnvironmentSet(ff, envName), nil
}
