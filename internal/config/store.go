package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/mzyy94/pclraster/internal/pcl"
)

// Settings holds the user-configurable job defaults.
type Settings struct {
	Model       int     `json:"model"`
	MediaSize   string  `json:"mediaSize"`
	MediaType   string  `json:"mediaType"`
	MediaSource string  `json:"mediaSource"`
	Resolution  string  `json:"resolution"`
	InkType     string  `json:"inkType"`
	Output      string  `json:"output"`      // "color", "gray", "monochrome"
	Orientation string  `json:"orientation"` // "auto", "portrait", "landscape"
	Scaling     float64 `json:"scaling"`     // >0 percent, <0 pixels per inch, 0 image dpi
	Density     float64 `json:"density"`
	ImageType   string  `json:"imageType"`   // "continuous", "lineart", "solid"
	PrinterAddr string  `json:"printerAddr"` // host[:port] for raw printing
}

// DefaultSettings returns the default job settings.
func DefaultSettings() Settings {
	return Settings{
		Model:       550,
		MediaSize:   "Letter",
		Output:      "color",
		Orientation: "auto",
		Scaling:     100,
		Density:     1,
		ImageType:   "continuous",
	}
}

// Request converts the settings into print options for pcl.Resolve.
func (s Settings) Request() (pcl.Request, error) {
	req := pcl.DefaultRequest(s.Model)
	req.MediaSize = s.MediaSize
	req.MediaType = s.MediaType
	req.MediaSource = s.MediaSource
	req.Resolution = s.Resolution
	req.InkType = s.InkType
	req.Scaling = s.Scaling
	req.Density = s.Density

	var err error
	if req.Output, err = pcl.ParseOutput(s.Output); err != nil {
		return req, err
	}
	if req.Orientation, err = pcl.ParseOrientation(s.Orientation); err != nil {
		return req, err
	}
	if req.ImageType, err = pcl.ParseImageType(s.ImageType); err != nil {
		return req, err
	}
	return req, nil
}

// RequestFor is Request with scaling 0 resolved against the image: an image
// that records its dpi prints at its physical size, any other at 100%.
func (s Settings) RequestFor(imageDPI int) (pcl.Request, error) {
	req, err := s.Request()
	if err != nil {
		return req, err
	}
	if s.Scaling == 0 {
		req.Scaling = 100
		if imageDPI > 0 {
			req.Scaling = -float64(imageDPI)
		}
	}
	return req, nil
}

// Validate checks the values that cannot be substituted at print time.
func (s Settings) Validate() error {
	if _, err := s.Request(); err != nil {
		return err
	}
	if s.Density < 0 {
		return fmt.Errorf("density %v must not be negative", s.Density)
	}
	return nil
}

// Store provides thread-safe settings persistence backed by a JSON file.
type Store struct {
	mu       sync.RWMutex
	settings Settings
	path     string
}

// NewStore creates a Store that persists settings to dataDir/settings.json.
// If the file does not exist or is invalid, default settings are used.
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}
	s := &Store{
		path:     filepath.Join(dataDir, "settings.json"),
		settings: DefaultSettings(),
	}
	s.load()
	return s, nil
}

// NewMemoryStore creates a Store that keeps settings in memory only (no file persistence).
func NewMemoryStore() *Store {
	return &Store{settings: DefaultSettings()}
}

// Get returns a copy of the current settings.
func (s *Store) Get() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Update replaces the settings and persists to disk.
func (s *Store) Update(settings Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
	return s.save()
}

func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return // file missing is OK, use defaults
	}
	settings := DefaultSettings()
	if err := json.Unmarshal(data, &settings); err != nil {
		slog.Warn("invalid settings file, using defaults", "path", s.path, "err", err)
		return
	}
	s.settings = settings
}

func (s *Store) save() error {
	if s.path == "" {
		return nil // memory-only mode
	}
	data, err := json.MarshalIndent(s.settings, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
