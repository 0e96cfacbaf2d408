package constants

import (
	"time"
)

const (
	// Storage buckets
	ProfileImageBucket = "profile-images"
	CoverImageBucket   = "cover-images"

	// Limits
	MaxImageSize     = 5 * 1024 * 1024
	MaxBrandLength   = 80
	MaxDetailsLength = 5000
	MaxTagCount      = 10
	MaxURLLength     = 200

	// Timeouts
	DefaultServiceTimeout = 30 * time.Second
	DefaultUploadTimeout  = 2 * time.Minute

	DefaultEnvFileName      = ".env"
	DefaultSettingsFileName = "threef.yaml"

	DefaultExploreLimit = 50

	// Identity provider endpoints (relative to the auth base URL)
	AuthSignUpPath    = "/signup"
	AuthTokenPath     = "/token"
	AuthLogoutPath    = "/logout"
	AuthUserPath      = "/user"
	AuthAuthorizePath = "/authorize"

	AuthRedirectURI = "http://localhost:53682/callback"
	AuthListenAddr  = "localhost:53682"

	DefaultOAuthProvider = "google"

	UserAgent = "threef-cli"

	// Sort orders for explore
	SortNewest = "newest"
	SortBrand  = "brand"
)
