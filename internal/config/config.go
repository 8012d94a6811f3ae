// Package config handles daemon configuration file management.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/austinkregel/local-media/musicd/internal/audio"
)

// Config represents musicd's configuration
type Config struct {
	// LibraryPaths is a list of directories containing music files
	LibraryPaths []string `json:"libraryPaths"`

	// DataDir is where to store data files (analysis, cache, etc.)
	DataDir string `json:"dataDir"`

	// Analysis settings
	Analysis AnalysisConfig `json:"analysis"`
}

// ComputeDevice selects where the batch FFT stage of the analysis pipeline runs.
type ComputeDevice string

const (
	ComputeDeviceCPU ComputeDevice = "cpu"
	ComputeDeviceGPU ComputeDevice = "gpu"
)

// AnalysisConfig contains settings for the audio analysis pipeline.
type AnalysisConfig struct {
	// AnalysisSampleRate is the fixed rate all decoded audio is resampled to
	// before windowing and feature extraction (default: 11025).
	AnalysisSampleRate int `json:"analysisSampleRate"`

	// WindowSize is the number of analysis-rate samples per FFT window
	// (default: 1024).
	WindowSize int `json:"windowSize"`

	// OverlapSize is the number of samples consecutive windows share
	// (default: 0, i.e. no overlap).
	OverlapSize int `json:"overlapSize"`

	// BatchSize is the number of windows staged per FFT dispatch. 0 selects
	// the device default: 1 on CPU (dispatch per window), 8192 on GPU.
	BatchSize int `json:"batchSize"`

	// Device selects the batch FFT backend.
	Device ComputeDevice `json:"device"`

	// MaxConcurrentAnalyses bounds how many files a library scan analyzes
	// at once (default: 4).
	MaxConcurrentAnalyses int `json:"maxConcurrentAnalyses"`
}

// ToAudioOptions converts the JSON-friendly config into the audio package's
// Options, translating the string-based ComputeDevice into audio's
// int-based enum.
func (a AnalysisConfig) ToAudioOptions() audio.Options {
	device := audio.DeviceCPU
	if a.Device == ComputeDeviceGPU {
		device = audio.DeviceGPU
	}
	return audio.Options{
		WindowSize:  a.WindowSize,
		OverlapSize: a.OverlapSize,
		Device:      device,
		BatchSize:   a.BatchSize,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		LibraryPaths: []string{},
		Analysis: AnalysisConfig{
			AnalysisSampleRate:    11025,
			WindowSize:            1024,
			OverlapSize:           0,
			BatchSize:             0, // resolved to the device default
			Device:                ComputeDeviceCPU,
			MaxConcurrentAnalyses: 4,
		},
	}
}

// Manager handles loading and saving configuration
type Manager struct {
	configDir  string
	configPath string
	config     *Config
}

// NewManager creates a new configuration manager
func NewManager(configDir string) *Manager {
	return &Manager{
		configDir:  configDir,
		configPath: filepath.Join(configDir, "config.json"),
		config:     DefaultConfig(),
	}
}

// Load reads the configuration from disk
func (m *Manager) Load() error {
	// Ensure config directory exists
	if err := os.MkdirAll(m.configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if config file exists
	if _, err := os.Stat(m.configPath); os.IsNotExist(err) {
		// Create default config
		m.config = DefaultConfig()
		return m.Save()
	}

	// Read existing config
	data, err := os.ReadFile(m.configPath)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	// Parse JSON
	config := DefaultConfig() // Start with defaults
	if err := json.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	m.config = config
	return nil
}

// Save writes the configuration to disk
func (m *Manager) Save() error {
	// Ensure config directory exists
	if err := os.MkdirAll(m.configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Marshal to JSON with indentation
	data, err := json.MarshalIndent(m.config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(m.configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Get returns the current configuration
func (m *Manager) Get() *Config {
	return m.config
}

// GetPath returns the config file path
func (m *Manager) GetPath() string {
	return m.configPath
}

// Update updates the configuration and saves it
func (m *Manager) Update(config *Config) error {
	m.config = config
	return m.Save()
}

// SetLibraryPaths updates the library paths
func (m *Manager) SetLibraryPaths(paths []string) error {
	m.config.LibraryPaths = paths
	return m.Save()
}

// AddLibraryPath adds a library path
func (m *Manager) AddLibraryPath(path string) error {
	// Check if already exists
	for _, p := range m.config.LibraryPaths {
		if p == path {
			return nil // Already exists
		}
	}

	m.config.LibraryPaths = append(m.config.LibraryPaths, path)
	return m.Save()
}

// RemoveLibraryPath removes a library path
func (m *Manager) RemoveLibraryPath(path string) error {
	paths := make([]string, 0, len(m.config.LibraryPaths))
	for _, p := range m.config.LibraryPaths {
		if p != path {
			paths = append(paths, p)
		}
	}
	m.config.LibraryPaths = paths
	return m.Save()
}
