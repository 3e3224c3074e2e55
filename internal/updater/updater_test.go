package updater

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"
)

func newTestRelease(version string) Release {
	assetName := fmt.Sprintf("brewprobe_%s_%s_%s.tar.gz", version, runtime.GOOS, runtime.GOARCH)
	return Release{
		TagName: version,
		Assets: []Asset{
			{Name: assetName, BrowserDownloadURL: "ASSET_URL"},
			{Name: "checksums.txt", BrowserDownloadURL: "CHECKSUM_URL"},
		},
	}
}

func TestCheck_UpdateAvailable(t *testing.T) {
	release := newTestRelease("1.2.0")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(release)
	}))
	defer server.Close()

	u := &Updater{
		CurrentVersion: "1.0.0",
		HTTPClient:     server.Client(),
		APIURL:         server.URL,
	}

	result, err := u.Check()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.UpdateNeeded {
		t.Error("expected update needed")
	}
	if result.LatestVersion != "1.2.0" {
		t.Errorf("expected latest version 1.2.0, got %s", result.LatestVersion)
	}
}

func TestCheck_AlreadyUpToDate(t *testing.T) {
	release := newTestRelease("1.0.0")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(release)
	}))
	defer server.Close()

	u := &Updater{
		CurrentVersion: "1.0.0",
		HTTPClient:     server.Client(),
		APIURL:         server.URL,
	}

	result, err := u.Check()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.UpdateNeeded {
		t.Error("expected no update needed")
	}
}

func TestCheck_VPrefixHandling(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		release := newTestRelease("1.0.0")
		release.TagName = "v1.0.0"
		_ = json.NewEncoder(w).Encode(release)
	}))
	defer server.Close()

	u := &Updater{
		CurrentVersion: "v1.0.0",
		HTTPClient:     server.Client(),
		APIURL:         server.URL,
	}

	result, err := u.Check()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.UpdateNeeded {
		t.Error("expected no update needed when only the v prefix differs")
	}
}

func TestCheck_NoAssetForPlatform(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		release := Release{
			TagName: "1.2.0",
			Assets: []Asset{
				{Name: "brewprobe_1.2.0_plan9_mips.tar.gz", BrowserDownloadURL: "ASSET_URL"},
			},
		}
		_ = json.NewEncoder(w).Encode(release)
	}))
	defer server.Close()

	u := &Updater{
		CurrentVersion: "1.0.0",
		HTTPClient:     server.Client(),
		APIURL:         server.URL,
	}

	if _, err := u.Check(); err == nil {
		t.Error("expected error when no asset matches the platform")
	}
}

func TestCheck_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	u := &Updater{
		CurrentVersion: "1.0.0",
		HTTPClient:     server.Client(),
		APIURL:         server.URL,
	}

	if _, err := u.Check(); err == nil {
		t.Error("expected error for non-200 API response")
	}
}
