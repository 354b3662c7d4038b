package hdl

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/socforge/socforge/logging"
	"github.com/socforge/socforge/logging/colors"
	"github.com/socforge/socforge/utils"
)

// Fetcher retrieves the byte content of a remote source file. Implementations own transport concerns such as
// timeouts and retries; the acquirer only performs a single fetch per missing file.
type Fetcher interface {
	Fetch(url string) (io.ReadCloser, error)
}

// HTTPFetcher fetches sources with a plain HTTP(S) GET.
type HTTPFetcher struct {
	// Client optionally overrides the HTTP client used for fetching. If nil, http.DefaultClient is used.
	Client *http.Client
}

// Fetch performs a GET against the given URL and returns the response body. Any response status other than 200 OK is
// treated as a transport failure.
func (f *HTTPFetcher) Fetch(url string) (io.ReadCloser, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Get(url)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected response status '%s' while fetching '%s'", resp.Status, url)
	}
	return resp.Body, nil
}

// AcquisitionError describes a failure to fetch a single manifest source. Acquisition is idempotent, so the caller
// may retry the enclosing operation once the underlying transport issue is fixed; files already fetched will not be
// fetched again.
type AcquisitionError struct {
	// Name is the manifest file name whose fetch failed.
	Name string

	// Err is the underlying transport or filesystem error.
	Err error
}

func (e *AcquisitionError) Error() string {
	return fmt.Sprintf("could not acquire HDL source '%s': %v", e.Name, e.Err)
}

func (e *AcquisitionError) Unwrap() error {
	return e.Err
}

// Acquirer ensures the sources named by a manifest exist in a local directory.
type Acquirer struct {
	fetcher Fetcher
	logger  *logging.Logger
}

// NewAcquirer creates an Acquirer using the provided fetcher. If fetcher is nil, an HTTPFetcher with default settings
// is used.
func NewAcquirer(fetcher Fetcher) *Acquirer {
	if fetcher == nil {
		fetcher = &HTTPFetcher{}
	}
	return &Acquirer{
		fetcher: fetcher,
		logger:  logging.GlobalLogger.NewSubLogger("module", "hdl"),
	}
}

// Ensure guarantees every file named by the manifest exists under localDir. Files already present are skipped without
// any integrity re-check; existence alone is the cache key. Missing files are fetched from the manifest's remote
// location, in manifest order. The first failure aborts the operation; the partially populated directory is left in
// place, so a retried Ensure call only fetches what is still missing.
func (a *Acquirer) Ensure(manifest *SourceManifest, localDir string) error {
	for _, name := range manifest.Files {
		localPath := filepath.Join(localDir, name)
		if utils.FileExists(localPath) {
			continue
		}

		if err := a.fetchFile(manifest.RemoteURL(name), localDir, name); err != nil {
			return &AcquisitionError{Name: name, Err: err}
		}
		a.logger.Info("Fetched HDL source ", colors.Bold, name, colors.Reset)
	}
	return nil
}

// fetchFile downloads a single source into localDir, creating the directory if needed. A partially written file is
// removed on failure so a later Ensure call does not mistake it for a complete source.
func (a *Acquirer) fetchFile(url string, localDir string, name string) error {
	body, err := a.fetcher.Fetch(url)
	if err != nil {
		return err
	}
	defer body.Close()

	file, err := utils.CreateFile(localDir, name)
	if err != nil {
		return err
	}

	if _, err = io.Copy(file, body); err != nil {
		file.Close()
		os.Remove(file.Name())
		return err
	}
	return file.Close()
}
