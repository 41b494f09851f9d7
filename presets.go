package cardstream

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed config/presets/presets.yaml
var presetsYAML []byte

// Presets Philosophy:
//
// Presets are named pacing profiles for demos and documentation pages, not
// an exhaustive configuration surface. The embedded catalog ships sensible
// defaults; library users can override it by:
//  1. Calling LoadPresetsFromFile() with custom YAML
//  2. Calling RegisterPreset() programmatically

// presetCatalog is the YAML file shape.
type presetCatalog struct {
	Version     string                 `yaml:"version"`      // Semantic version (e.g., "1.0.0")
	LastUpdated string                 `yaml:"last_updated"` // ISO 8601 date
	Presets     map[string]presetEntry `yaml:"presets"`
}

type presetEntry struct {
	TokensPerSecond float64 `yaml:"tokens_per_second"`
	ThinkingDelayMs int     `yaml:"thinking_delay_ms"`
}

func (p presetEntry) config() Config {
	return Config{
		TokensPerSecond: p.TokensPerSecond,
		ThinkingDelay:   time.Duration(p.ThinkingDelayMs) * time.Millisecond,
	}
}

// PresetRegistry manages named streaming configs
type PresetRegistry struct {
	presets map[string]Config
	mu      sync.RWMutex
}

var (
	globalPresets     *PresetRegistry
	globalPresetsOnce sync.Once
)

// GetPresetRegistry returns the global preset registry (singleton)
func GetPresetRegistry() *PresetRegistry {
	globalPresetsOnce.Do(func() {
		globalPresets = &PresetRegistry{
			presets: make(map[string]Config),
		}
		if err := globalPresets.loadEmbedded(); err != nil {
			// Log error but don't panic - Get will report unknown presets
			fmt.Printf("Warning: failed to load embedded presets: %v\n", err)
		}
	})
	return globalPresets
}

func (r *PresetRegistry) loadEmbedded() error {
	var catalog presetCatalog
	if err := yaml.Unmarshal(presetsYAML, &catalog); err != nil {
		return fmt.Errorf("failed to unmarshal embedded presets: %w", err)
	}
	return r.merge(catalog)
}

func (r *PresetRegistry) merge(catalog presetCatalog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for name, entry := range catalog.Presets {
		cfg := entry.config()
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("preset '%s': %w", name, err)
		}
		r.presets[name] = cfg
	}
	return nil
}

// Get returns the config for a named preset
func (r *PresetRegistry) Get(name string) (Config, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cfg, ok := r.presets[name]
	if !ok {
		return Config{}, fmt.Errorf("preset '%s': %w", name, ErrUnknownPreset)
	}
	return cfg, nil
}

// Names returns the registered preset names, sorted
func (r *PresetRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.presets))
	for name := range r.presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadFromFile merges presets from a YAML file over the registry. The file
// format matches the embedded catalog.
func (r *PresetRegistry) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read presets file: %w", err)
	}

	var catalog presetCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return fmt.Errorf("failed to unmarshal presets: %w", err)
	}
	return r.merge(catalog)
}

// Register programmatically registers (or replaces) a preset
func (r *PresetRegistry) Register(name string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.presets[name] = cfg
	return nil
}

// GetPreset is a convenience function that calls the global registry's Get.
func GetPreset(name string) (Config, error) {
	return GetPresetRegistry().Get(name)
}

// LoadPresetsFromFile is a convenience function that calls the global registry's LoadFromFile.
func LoadPresetsFromFile(path string) error {
	return GetPresetRegistry().LoadFromFile(path)
}

// RegisterPreset is a convenience function that calls the global registry's Register.
func RegisterPreset(name string, cfg Config) error {
	return GetPresetRegistry().Register(name, cfg)
}
