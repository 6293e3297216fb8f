// ABOUTME: Manages the recent food-photo list for the upload screen
// ABOUTME: Stores recent image paths in the client config directory

package recentimages

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// MaxRecentImages is the maximum number of recent images to keep
const MaxRecentImages = 5

// RecentImages manages the list of recently analyzed image files
type RecentImages struct {
	configDir string
	paths     []string
}

type recentData struct {
	Images []string `json:"images"`
}

// New creates a manager rooted at the given config directory
func New(configDir string) *RecentImages {
	return &RecentImages{configDir: configDir}
}

func (ri *RecentImages) configFile() string {
	return filepath.Join(ri.configDir, "recent_images.json")
}

// Load reads the recent image list from disk, dropping files that no
// longer exist or are not analyzable photo formats.
func (ri *RecentImages) Load() ([]string, error) {
	data, err := os.ReadFile(ri.configFile())
	if os.IsNotExist(err) {
		ri.paths = []string{}
		return ri.paths, nil
	}
	if err != nil {
		return nil, err
	}

	var recent recentData
	if err := json.Unmarshal(data, &recent); err != nil {
		// Invalid JSON, start fresh
		ri.paths = []string{}
		return ri.paths, nil
	}

	ri.paths = make([]string, 0, len(recent.Images))
	for _, path := range recent.Images {
		if !analyzable(path) {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			ri.paths = append(ri.paths, path)
		}
	}

	return ri.paths, nil
}

// analyzable mirrors the formats the analyze endpoint accepts; anything
// else in the stored list is stale noise in the picker.
func analyzable(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg", ".png", ".webp":
		return true
	}
	return false
}

// Save writes the recent image list to disk
func (ri *RecentImages) Save(paths []string) error {
	if err := os.MkdirAll(ri.configDir, 0700); err != nil {
		return err
	}

	if len(paths) > MaxRecentImages {
		paths = paths[:MaxRecentImages]
	}

	ri.paths = paths

	data, err := json.MarshalIndent(recentData{Images: paths}, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(ri.configFile(), data, 0600)
}

// Add adds an image path to the recent list (moves to front if it exists)
func (ri *RecentImages) Add(path string) error {
	if ri.paths == nil {
		if _, err := ri.Load(); err != nil {
			ri.paths = []string{}
		}
	}

	newPaths := make([]string, 0, len(ri.paths)+1)
	newPaths = append(newPaths, path)
	for _, p := range ri.paths {
		if p != path {
			newPaths = append(newPaths, p)
		}
	}

	return ri.Save(newPaths)
}

// List returns the current list of recent images
func (ri *RecentImages) List() []string {
	if ri.paths == nil {
		ri.Load()
	}
	return ri.paths
}
