package chunk

import (
	"fmt"
	"sort"

	"github.com/opskit/awsmcp/internal/errors"
)

// DefaultPreset is used when the config names no preset and no explicit
// size/overlap pair.
const DefaultPreset = "technical_manual"

// presets is the static lookup table of named chunk geometries.
// Long-form technical documentation gets larger windows with more overlap;
// short policy and legal documents get smaller windows with less.
var presets = map[string]Config{
	"aws_docs":         {Size: 1500, Overlap: 300},
	"technical_manual": {Size: 1200, Overlap: 200},
	"research_paper":   {Size: 1000, Overlap: 150},
	"business_policy":  {Size: 800, Overlap: 100},
	"tutorial":         {Size: 1000, Overlap: 200},
	"legal_document":   {Size: 800, Overlap: 100},
}

// Preset resolves a preset name to its chunk configuration.
func Preset(name string) (Config, error) {
	cfg, ok := presets[name]
	if !ok {
		return Config{}, errors.New(errors.ErrCodeUnknownPreset,
			fmt.Sprintf("unknown chunk preset %q (available: %v)", name, PresetNames()), nil)
	}
	return cfg, nil
}

// PresetNames returns the sorted preset names.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
