package cache

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"asciiglobe/internal/debug"
	"asciiglobe/internal/geo"
)

// Manager handles downloading and caching Natural Earth data
type Manager struct {
	cacheDir string

	Files    []DataFile   // datasets to keep cached
	Client   *http.Client // client used for downloads
	Progress io.Writer    // receives human readable progress lines
}

// DataFile represents a Natural Earth dataset to download
type DataFile struct {
	Name     string // Friendly name
	URL      string // Download URL
	Base     string // Base filename (without extension)
	Optional bool   // If true, failure to download won't stop the app
}

// NaturalEarthFiles are the low (1:110m) and high (1:50m) detail country
// and land datasets
var NaturalEarthFiles = []DataFile{
	{
		Name: "Countries (low detail)",
		URL:  "https://naciscdn.org/naturalearth/110m/cultural/ne_110m_admin_0_countries.zip",
		Base: geo.LowCountriesBase,
	},
	{
		Name:     "Countries (high detail)",
		URL:      "https://naciscdn.org/naturalearth/50m/cultural/ne_50m_admin_0_countries.zip",
		Base:     geo.HighCountriesBase,
		Optional: true, // low detail is used at every zoom without it
	},
	{
		Name:     "Land (low detail)",
		URL:      "https://naciscdn.org/naturalearth/110m/physical/ne_110m_land.zip",
		Base:     geo.LowLandBase,
		Optional: true,
	},
	{
		Name:     "Land (high detail)",
		URL:      "https://naciscdn.org/naturalearth/50m/physical/ne_50m_land.zip",
		Base:     geo.HighLandBase,
		Optional: true,
	},
}

// NewManager creates a new cache manager
// If cacheDir is empty, uses ~/.asciiglobe/data
func NewManager(cacheDir string) (*Manager, error) {
	if cacheDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		cacheDir = filepath.Join(home, ".asciiglobe", "data")
	}

	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	return &Manager{
		cacheDir: cacheDir,
		Files:    NaturalEarthFiles,
		Client:   &http.Client{Timeout: 2 * time.Minute},
		Progress: os.Stdout,
	}, nil
}

// EnsureData ensures all required Natural Earth data is available
// Downloads missing files automatically
// Optional files that fail to download will be skipped with a warning
func (m *Manager) EnsureData(ctx context.Context) error {
	for _, file := range m.Files {
		if err := m.ensureFile(ctx, file); err != nil {
			if file.Optional && ctx.Err() == nil {
				fmt.Fprintf(m.Progress, "Warning: Skipping %s (optional): %v\n", file.Name, err)
				continue
			}
			return fmt.Errorf("failed to ensure %s: %w", file.Name, err)
		}
	}
	return nil
}

// ensureFile checks if a data file exists, downloads if needed
func (m *Manager) ensureFile(ctx context.Context, file DataFile) error {
	shpPath := m.GetDataPath(file.Base)
	if _, err := os.Stat(shpPath); err == nil {
		return nil
	}

	fmt.Fprintf(m.Progress, "Downloading %s...\n", file.Name)
	debug.Log("download_started", "file", file.Base, "url", file.URL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.URL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; asciiglobe/1.0)")

	resp, err := m.Client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download failed with status: %s (URL: %s)", resp.Status, file.URL)
	}

	tmpFile, err := os.CreateTemp("", "ne_*.zip")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())
	defer tmpFile.Close()

	n, err := io.Copy(tmpFile, resp.Body)
	if err != nil {
		return fmt.Errorf("failed to save download: %w", err)
	}

	tmpFile.Close()

	if err := m.extractZip(tmpFile.Name(), m.cacheDir); err != nil {
		return fmt.Errorf("failed to extract: %w", err)
	}

	if _, err := os.Stat(shpPath); err != nil {
		return fmt.Errorf("archive did not contain %s.shp", file.Base)
	}

	debug.Log("download_finished", "file", file.Base, "bytes", n)
	fmt.Fprintf(m.Progress, "Downloaded and extracted %s\n", file.Name)
	return nil
}

func (m *Manager) extractZip(zipPath, destDir string) error {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.FileInfo().IsDir() || strings.HasPrefix(filepath.Base(f.Name), ".") {
			continue
		}

		destPath := filepath.Join(destDir, filepath.Base(f.Name))
		rc, err := f.Open()

		if err != nil {
			return err
		}

		outFile, err := os.Create(destPath)
		if err != nil {
			rc.Close()
			return err
		}

		_, err = io.Copy(outFile, rc)
		outFile.Close()
		rc.Close()

		if err != nil {
			return err
		}
	}

	return nil
}

// GetDataPath returns the cached shapefile path of a dataset
func (m *Manager) GetDataPath(base string) string {
	return filepath.Join(m.cacheDir, base+".shp")
}

// GetCacheDir returns the cache directory
func (m *Manager) GetCacheDir() string {
	return m.cacheDir
}
