package version

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/coreos/go-semver/semver"
	"github.com/pterm/pterm"
)

// Defaults, overridden by ldflags or build info
var Version = "0.0.0-dev"
var Commit = ""
var BuildTime = ""

// ReleasesURL is the GitHub API endpoint describing the latest release.
var ReleasesURL = "https://api.github.com/repos/diillson/aws-external-assets-go/releases/latest"

// populateFromBuildInfo fills Version, Commit and BuildTime from the VCS stamps embedded by
// the Go toolchain, unless ldflags already set them.
func populateFromBuildInfo() {
	if Version != "" && Version != "0.0.0-dev" {
		return
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok || bi == nil {
		return
	}

	settings := make(map[string]string, len(bi.Settings))
	for _, s := range bi.Settings {
		settings[s.Key] = s.Value
	}

	if rev := settings["vcs.revision"]; Commit == "" && len(rev) >= 7 {
		Commit = rev[:7]
	}
	if t := settings["vcs.time"]; BuildTime == "" && t != "" {
		if ts, err := time.Parse(time.RFC3339, t); err == nil {
			BuildTime = ts.UTC().Format("2006-01-02T15:04:05Z")
		}
	}

	// go install ...@vX.Y.Z stamps the module version instead of VCS info
	if v := strings.TrimPrefix(bi.Main.Version, "v"); v != "" && v != "(devel)" {
		Version = v
		if strings.EqualFold(settings["vcs.modified"], "true") {
			Version += "-dirty"
		}
	}
}

func init() {
	populateFromBuildInfo()
}

// NewerVersion reports whether latest is a higher semantic version than current.
func NewerVersion(current, latest string) (bool, error) {
	curr, err := semver.NewVersion(strings.TrimPrefix(current, "v"))
	if err != nil {
		return false, fmt.Errorf("invalid version %s: %w", current, err)
	}
	next, err := semver.NewVersion(strings.TrimPrefix(latest, "v"))
	if err != nil {
		return false, fmt.Errorf("invalid version %s: %w", latest, err)
	}
	return curr.LessThan(*next), nil
}

// CheckLatestVersion warns when a newer release is published. Dev builds are not checked and
// every failure is silent.
func CheckLatestVersion(ctx context.Context, currentVersion string) {
	if strings.HasSuffix(currentVersion, "-dev") {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ReleasesURL, nil)
	if err != nil {
		return
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return
	}

	newer, err := NewerVersion(currentVersion, release.TagName)
	if err != nil || !newer {
		return
	}
	pterm.Warning.Println(fmt.Sprintf("A new version of aws-external-assets is available: %s", strings.TrimPrefix(release.TagName, "v")))
	pterm.Info.Println("Please update using: go install github.com/diillson/aws-external-assets-go/cmd/aws-external-assets@latest")
}

// FormatVersion returns the version with commit and build time.
// e.g. "1.2.3 (commit: abc1234, built at: 2025-10-23T10:20:30Z)"
func FormatVersion() string {
	ver := Version
	if ver == "" {
		ver = "0.0.0-dev"
	}

	switch {
	case Commit == "" && BuildTime == "":
		return fmt.Sprintf("%s (development)", ver)
	case Commit == "":
		return fmt.Sprintf("%s (built at: %s)", ver, BuildTime)
	case BuildTime == "":
		return fmt.Sprintf("%s (commit: %s)", ver, Commit)
	}
	return fmt.Sprintf("%s (commit: %s, built at: %s)", ver, Commit, BuildTime)
}
