// Package solc provides the compiler registry and invoker backed by solc binaries.
package solc

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/opencontainers/go-digest"
	"go.trai.ch/soldeps/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	// DefaultBaseURL hosts the official static solc builds.
	DefaultBaseURL = "https://binaries.soliditylang.org"

	binaryPrefix = "solc-v"
	dirPerm      = 0o750
	execPerm     = 0o755
)

// releaseList is the list.json document published per platform.
type releaseList struct {
	Builds []struct {
		Path        string `json:"path"`
		Version     string `json:"version"`
		LongVersion string `json:"longVersion"`
		SHA256      string `json:"sha256"`
	} `json:"builds"`
	Releases map[string]string `json:"releases"`
}

type build struct {
	path   string
	digest digest.Digest
}

// Registry lists and installs solc builds.
// Binaries live directly under the compilers folder as solc-v<version>.
type Registry struct {
	httpClient *http.Client
	baseURL    string
	platform   string

	mu     sync.Mutex
	builds map[string]build
}

// NewRegistry creates a Registry for the host platform.
func NewRegistry() *Registry {
	return NewRegistryWithClient(&http.Client{Timeout: 5 * time.Minute}, DefaultBaseURL, hostPlatform())
}

// NewRegistryWithClient creates a Registry against a custom release server.
func NewRegistryWithClient(client *http.Client, baseURL, platform string) *Registry {
	return &Registry{
		httpClient: client,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		platform:   platform,
	}
}

func hostPlatform() string {
	switch runtime.GOOS {
	case "darwin":
		return "macosx-amd64"
	case "windows":
		return "windows-amd64"
	default:
		return "linux-amd64"
	}
}

// Installed returns the versions with a binary under dir. A missing dir holds none.
func (r *Registry) Installed(_ context.Context, dir string) ([]domain.CompilerVersion, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read compilers folder"), "dir", dir)
	}

	var out []domain.CompilerVersion
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), ".exe")
		if e.IsDir() || !strings.HasPrefix(name, binaryPrefix) {
			continue
		}
		v, err := domain.ParseCompilerVersion(strings.TrimPrefix(name, binaryPrefix))
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return domain.SortVersions(out), nil
}

// Installable returns every release published for the platform.
func (r *Registry) Installable(ctx context.Context) ([]domain.CompilerVersion, error) {
	builds, err := r.releases(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.CompilerVersion, 0, len(builds))
	for raw := range builds {
		if v, err := domain.ParseCompilerVersion(raw); err == nil {
			out = append(out, v)
		}
	}
	return domain.SortVersions(out), nil
}

// Ensure downloads v into dir unless it is already there.
// The download is verified against the published sha256 before it is made executable.
func (r *Registry) Ensure(ctx context.Context, dir string, v domain.CompilerVersion) error {
	target := binaryPath(dir, v)
	if _, err := os.Stat(target); err == nil {
		return nil
	}

	builds, err := r.releases(ctx)
	if err != nil {
		return err
	}
	b, ok := builds[v.String()]
	if !ok {
		return zerr.With(domain.ErrCompilerNotInstallable, "version", v.String())
	}

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create compilers folder"), "dir", dir)
	}
	tmp, err := os.CreateTemp(dir, ".download-*")
	if err != nil {
		return zerr.Wrap(err, "failed to create download file")
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := r.download(ctx, r.baseURL+"/"+r.platform+"/"+b.path, tmp, b.digest); err != nil {
		_ = tmp.Close()
		return zerr.With(err, "version", v.String())
	}
	if err := tmp.Close(); err != nil {
		return zerr.Wrap(err, "failed to write compiler")
	}
	if err := os.Chmod(tmp.Name(), execPerm); err != nil {
		return zerr.Wrap(err, "failed to make compiler executable")
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return zerr.Wrap(err, "failed to install compiler")
	}
	return nil
}

// Binary returns the path of the installed binary for v.
func (r *Registry) Binary(dir string, v domain.CompilerVersion) (string, error) {
	p := binaryPath(dir, v)
	info, err := os.Stat(p)
	if err != nil || info.IsDir() {
		return "", zerr.With(zerr.With(domain.ErrCompilerNotInstalled, "version", v.String()), "dir", dir)
	}
	return p, nil
}

func binaryPath(dir string, v domain.CompilerVersion) string {
	name := binaryPrefix + v.String()
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	return filepath.Join(dir, name)
}

// releases fetches list.json once per Registry.
func (r *Registry) releases(ctx context.Context) (map[string]build, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.builds != nil {
		return r.builds, nil
	}

	url := r.baseURL + "/" + r.platform + "/list.json"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create release list request")
	}
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to fetch release list"), "url", url)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, zerr.With(zerr.With(zerr.New("unexpected release list status"), "status", resp.StatusCode), "url", url)
	}

	var list releaseList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse release list"), "url", url)
	}

	builds := make(map[string]build, len(list.Releases))
	for _, b := range list.Builds {
		if list.Releases[b.Version] != b.Path {
			continue
		}
		d, err := digest.Parse("sha256:" + strings.TrimPrefix(b.SHA256, "0x"))
		if err != nil {
			continue
		}
		builds[b.Version] = build{path: b.Path, digest: d}
	}
	r.builds = builds
	return builds, nil
}

func (r *Registry) download(ctx context.Context, url string, w io.Writer, want digest.Digest) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return zerr.Wrap(err, "failed to create download request")
	}
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to download compiler"), "url", url)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return zerr.With(zerr.With(zerr.New("unexpected download status"), "status", resp.StatusCode), "url", url)
	}

	verifier := want.Verifier()
	if _, err := io.Copy(io.MultiWriter(w, verifier), resp.Body); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to download compiler"), "url", url)
	}
	if !verifier.Verified() {
		return zerr.With(domain.ErrChecksumMismatch, "expected", want.String())
	}
	return nil
}
