// Package recipe loads YAML experiment recipes and turns them into batches of
// PPL script files.
package recipe

import (
	"io"

	"gopkg.in/yaml.v3"
)

type Pump struct {
	RateMLH float64 `yaml:"rate_mlh"`
}

// Single lists the droplet volumes to generate scripts for at one flow rate.
type Single struct {
	VolumesUL []float64 `yaml:"volumes_uL"`
	Pump      Pump      `yaml:"pump"`
}

// Coalescence pairs each leading volume with its trailing volumes. The
// trailing_uL map is keyed by the leading volume rendered as text, matching
// how the recipes are written by hand.
type Coalescence struct {
	LeadingUL  []float64            `yaml:"leading_uL"`
	TrailingUL map[string][]float64 `yaml:"trailing_uL"`
	Pump       Pump                 `yaml:"pump"`
	WaitS      float64              `yaml:"wait_s"`
}

func LoadSingle(r io.Reader) (*Single, error) {
	var s Single
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

func LoadCoalescence(r io.Reader) (*Coalescence, error) {
	var c Coalescence
	if err := yaml.NewDecoder(r).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}
