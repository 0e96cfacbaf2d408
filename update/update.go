package update

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/rs/zerolog"
)

const (
	githubAPIURL  = "https://api.github.com/repos/threef-labs/threef-cli/releases/latest"
	repoURL       = "https://github.com/threef-labs/threef-cli/releases"
	timeout       = 2 * time.Second
	cacheDuration = 24 * time.Hour
	cacheFileName = "update.json"
	cacheDirName  = ".threef"

	DevelopmentVersion = "development"
	ForceCheckEnvVar   = "THREEF_FORCE_UPDATE_CHECK"
)

var ErrClientTooOld = errors.New("this version of threef is no longer supported")

type githubRelease struct {
	TagName string `json:"tag_name"`
}

type cacheState struct {
	LatestVersion string    `json:"latest_version"`
	LastCheck     time.Time `json:"last_check"`
}

// checker holds what a single update check depends on.
type checker struct {
	apiURL    string
	cachePath string
	out       io.Writer
	now       func() time.Time
	log       *zerolog.Logger
}

func getCachePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, cacheDirName, cacheFileName), nil
}

func (c *checker) loadCache() *cacheState {
	data, err := os.ReadFile(c.cachePath)
	if err != nil {
		if !os.IsNotExist(err) {
			c.log.Debug().Err(err).Msg("Failed to read update cache")
		}
		return &cacheState{}
	}

	var state cacheState
	if err := json.Unmarshal(data, &state); err != nil {
		c.log.Debug().Msgf("Cache file corrupted, ignoring: %v", err)
		return &cacheState{}
	}
	return &state
}

func (c *checker) saveCache(state cacheState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(c.cachePath), 0750); err != nil {
		return err
	}
	return os.WriteFile(c.cachePath, data, 0640)
}

func (c *checker) fetchLatestVersion() (string, error) {
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequest(http.MethodGet, c.apiURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "threef-cli-update-check")
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch latest release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("github API returned non-200 status: %s", resp.Status)
	}

	var release githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", fmt.Errorf("failed to decode GitHub API response: %w", err)
	}
	if release.TagName == "" {
		return "", errors.New("github API response contained no tag_name")
	}
	return release.TagName, nil
}

// ParseVersion accepts both "v1.2.3" and "version v1.2.3".
func ParseVersion(v string) (*semver.Version, error) {
	cleaned := strings.TrimSpace(strings.Replace(v, "version", "", 1))
	return semver.NewVersion(cleaned)
}

// CheckForUpdates prints a notice to stderr when a newer release exists.
// Failures are only logged at debug level.
func CheckForUpdates(currentVersion string, logger *zerolog.Logger) {
	path, err := getCachePath()
	if err != nil {
		logger.Debug().Msgf("Failed to get cache path: %v", err)
		return
	}
	c := &checker{
		apiURL:    githubAPIURL,
		cachePath: path,
		out:       os.Stderr,
		now:       time.Now,
		log:       logger,
	}
	c.run(currentVersion, os.Getenv(ForceCheckEnvVar) == "1")
}

func (c *checker) run(currentVersion string, force bool) {
	if currentVersion == DevelopmentVersion && !force {
		c.log.Debug().Msgf("Current version is 'development', skipping update check. (Set %s=1 to override)", ForceCheckEnvVar)
		return
	}

	current, err := ParseVersion(currentVersion)
	if err != nil {
		c.log.Debug().Msgf("Failed to parse current version '%s': %v", currentVersion, err)
		return
	}

	cache := c.loadCache()
	now := c.now()
	latest := cache.LatestVersion

	if force || now.Sub(cache.LastCheck) > cacheDuration {
		fetched, fetchErr := c.fetchLatestVersion()
		if fetchErr != nil {
			c.log.Debug().Msgf("Failed to fetch latest version: %v", fetchErr)
		} else {
			latest = fetched
			if err := c.saveCache(cacheState{LatestVersion: fetched, LastCheck: now}); err != nil {
				c.log.Debug().Msgf("Failed to save cache: %v", err)
			}
		}
	}

	if latest == "" {
		return
	}

	latestSemVer, err := semver.NewVersion(latest)
	if err != nil {
		c.log.Debug().Msgf("Failed to parse latest tag '%s': %v", latest, err)
		return
	}

	if latestSemVer.GreaterThan(current) {
		fmt.Fprintf(c.out,
			"\n⚠️  Update available! You’re running %s, but %s is the latest.\n"+
				"Visit %s to upgrade.\n\n",
			current.String(),
			latestSemVer.String(),
			repoURL,
		)
	}
}

// CheckMinimumVersion fails when the backend requires a newer client than
// currentVersion. Development builds and an empty minimum always pass.
func CheckMinimumVersion(currentVersion, minimum string) error {
	if minimum == "" || currentVersion == DevelopmentVersion {
		return nil
	}
	current, err := ParseVersion(currentVersion)
	if err != nil {
		return nil
	}
	constraint, err := semver.NewConstraint(">= " + minimum)
	if err != nil {
		return fmt.Errorf("invalid minimum client version %q: %w", minimum, err)
	}
	if !constraint.Check(current) {
		return fmt.Errorf("%w: running %s, at least %s is required, see %s", ErrClientTooOld, current, minimum, repoURL)
	}
	return nil
}
