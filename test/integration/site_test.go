//go:build integration

package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/educlopez/smoothui-sub003/internal/docs"
	"github.com/educlopez/smoothui-sub003/internal/githubstars"
	"github.com/educlopez/smoothui-sub003/internal/manifest"
	"github.com/educlopez/smoothui-sub003/internal/redirects"
	"github.com/educlopez/smoothui-sub003/internal/registry"
	"github.com/educlopez/smoothui-sub003/internal/server"
	"github.com/educlopez/smoothui-sub003/internal/sitemap"
)

// TestFullFlowBuildAndServe tests the complete flow:
// definitions -> registry -> check -> write -> sitemap -> redirects -> serve.
func TestFullFlowBuildAndServe(t *testing.T) {
	env := setupSite(t)

	// Step 1: Load and build the registry.
	defs, err := manifest.Load(env.Definitions)
	if err != nil {
		t.Fatalf("manifest.Load: %v", err)
	}
	reg, err := registry.Build(defs.Items, registry.DirReader(env.Root))
	if err != nil {
		t.Fatalf("registry.Build: %v", err)
	}
	if got := reg.Names(); strings.Join(got, ",") != "smooth-theme,magnetic-button,animated-tabs" {
		t.Errorf("items = %v, want definition order", got)
	}

	// Step 2: Link integrity.
	if report := registry.Check(reg); report.HasErrors() {
		t.Fatalf("registry.Check: %+v", report.Issues)
	}

	// Step 3: Install order follows dependencies.
	root, err := registry.BuildTree(reg, "animated-tabs")
	if err != nil {
		t.Fatalf("BuildTree: %v", err)
	}
	var order []string
	for _, item := range registry.FlattenTree(root) {
		order = append(order, item.Name)
	}
	if strings.Join(order, ",") != "smooth-theme,magnetic-button,animated-tabs" {
		t.Errorf("install order = %v", order)
	}
	var tree bytes.Buffer
	registry.PrintTree(&tree, root, "", true)
	if !strings.Contains(tree.String(), "smooth-theme (deduped)") {
		t.Errorf("second smooth-theme visit should be deduped:\n%s", tree.String())
	}

	// Step 4: Write and reload.
	outDir := filepath.Join(env.PublicDir, "r")
	if _, err := registry.Write(reg, outDir); err != nil {
		t.Fatalf("registry.Write: %v", err)
	}
	for _, name := range []string{"registry.json", "smooth-theme.json", "magnetic-button.json", "animated-tabs.json"} {
		assertFileExists(t, filepath.Join(outDir, name))
	}
	assertFileContains(t, filepath.Join(outDir, "magnetic-button.json"), `"target": "components/smoothui/ui/MagneticButton.tsx"`)
	assertFileContains(t, filepath.Join(outDir, "animated-tabs.json"), `"type": "registry:hook"`)

	reloaded, err := registry.Load(filepath.Join(outDir, "registry.json"))
	if err != nil {
		t.Fatalf("registry.Load: %v", err)
	}
	if len(reloaded.Items) != 3 || reloaded.Items[1].Files[0].Content != reg.Items[1].Files[0].Content {
		t.Error("reloaded registry differs from the built one")
	}

	// Step 5: Sitemap from descriptors.
	descriptors, err := docs.Load(env.Descriptors)
	if err != nil {
		t.Fatalf("docs.Load: %v", err)
	}
	if findings := docs.Validate(descriptors); docs.HasErrors(findings) {
		t.Fatalf("docs.Validate: %+v", findings)
	}
	entries := sitemap.Emit(descriptors, "https://smoothui.dev", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	if len(entries) != len(descriptors)+2 {
		t.Fatalf("got %d sitemap entries, want %d", len(entries), len(descriptors)+2)
	}
	sitemapPath := filepath.Join(env.PublicDir, "sitemap.xml")
	var xmlBuf bytes.Buffer
	if err := sitemap.WriteXML(&xmlBuf, entries); err != nil {
		t.Fatalf("WriteXML: %v", err)
	}
	writeFile(t, sitemapPath, xmlBuf.String())
	assertFileContains(t, sitemapPath, "<loc>https://smoothui.dev/doc/animated-tabs</loc>")

	// Step 6: Redirects agree whichever source they come from.
	fromDescriptors := redirects.Rules(redirects.FromDescriptors(descriptors))
	scanned, err := redirects.ExtractSlugs(env.Descriptors)
	if err != nil {
		t.Fatalf("ExtractSlugs: %v", err)
	}
	if got, want := redirects.Rules(scanned), fromDescriptors; len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("scanned rules %v != descriptor rules %v", got, want)
	}

	// Step 7: Serve the build with a fake GitHub upstream.
	github := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/educlopez/smoothui" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"stargazers_count": 842}`))
	}))
	defer github.Close()

	client := githubstars.New("educlopez/smoothui", githubstars.WithAPIBase(github.URL))
	site := httptest.NewServer(server.NewServer(client,
		server.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		server.WithRedirects(fromDescriptors),
		server.WithStatic(env.PublicDir),
	))
	defer site.Close()

	httpClient := &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
	}

	resp := get(t, httpClient, site.URL+githubstars.Path)
	var stars githubstars.Response
	if err := json.NewDecoder(resp.Body).Decode(&stars); err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || stars.Stars != 842 {
		t.Errorf("stars = %d (status %d), want 842", stars.Stars, resp.StatusCode)
	}

	resp = get(t, httpClient, site.URL+"/doc/magnetic-button")
	resp.Body.Close()
	if resp.StatusCode != http.StatusPermanentRedirect || resp.Header.Get("Location") != "/doc/components/magnetic-button" {
		t.Errorf("redirect = %d %q", resp.StatusCode, resp.Header.Get("Location"))
	}

	resp = get(t, httpClient, site.URL+"/r/animated-tabs.json")
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "useTabs") {
		t.Errorf("static item document: %d\n%s", resp.StatusCode, body)
	}
}

// TestFailedBuildKeepsPreviousOutput verifies an unreadable source leaves the
// published registry untouched.
func TestFailedBuildKeepsPreviousOutput(t *testing.T) {
	env := setupSite(t)
	outDir := filepath.Join(env.PublicDir, "r")

	defs, err := manifest.Load(env.Definitions)
	if err != nil {
		t.Fatal(err)
	}
	reg, err := registry.Build(defs.Items, registry.DirReader(env.Root))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := registry.Write(reg, outDir); err != nil {
		t.Fatal(err)
	}
	before, err := os.ReadFile(filepath.Join(outDir, "registry.json"))
	if err != nil {
		t.Fatal(err)
	}

	if err := os.Remove(filepath.Join(env.Root, "components/animated-tabs/use-tabs.ts")); err != nil {
		t.Fatal(err)
	}
	if _, err := registry.Build(defs.Items, registry.DirReader(env.Root)); err == nil {
		t.Fatal("expected build to fail")
	}

	after, err := os.ReadFile(filepath.Join(outDir, "registry.json"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(before, after) {
		t.Error("published registry changed after a failed build")
	}
}

// TestStarsUpstreamDown verifies the endpoint degrades to the failure body.
func TestStarsUpstreamDown(t *testing.T) {
	github := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer github.Close()

	site := httptest.NewServer(server.NewServer(
		githubstars.New("educlopez/smoothui", githubstars.WithAPIBase(github.URL)),
		server.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	))
	defer site.Close()

	resp := get(t, http.DefaultClient, site.URL+githubstars.Path)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", resp.StatusCode)
	}
	if strings.TrimSpace(string(body)) != `{"stars":0,"error":"Failed to fetch stars"}` {
		t.Errorf("body = %s", body)
	}
}

func get(t *testing.T, c *http.Client, url string) *http.Response {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := c.Do(req)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	return resp
}
