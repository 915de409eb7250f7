// Package config loads a declarative YAML schedule document — channels,
// shapes, crosstalk, and the element tree — into the types pulsegen's
// core expects.
package config

import (
	"github.com/cbegin/pulsegen/channel"
	"github.com/cbegin/pulsegen/schedule"
	"github.com/cbegin/pulsegen/shape"
	"github.com/cbegin/pulsegen/xerr"
)

// Document is the root of a schedule file.
type Document struct {
	Channels  map[string]ChannelDoc `yaml:"channels"`
	Shapes    map[string]ShapeDoc   `yaml:"shapes"`
	Crosstalk *CrosstalkDoc         `yaml:"crosstalk,omitempty"`
	Schedule  ElementDoc            `yaml:"schedule"`
}

// ChannelDoc is the on-disk form of channel.Config.
type ChannelDoc struct {
	BaseFreq     float64     `yaml:"base_freq"`
	SampleRate   float64     `yaml:"sample_rate"`
	Length       uint32      `yaml:"length"`
	Delay        float64     `yaml:"delay,omitempty"`
	AlignLevel   *int        `yaml:"align_level,omitempty"`
	IQMatrix     [][]float64 `yaml:"iq_matrix,omitempty"`
	Offset       []float64   `yaml:"offset,omitempty"`
	IIR          [][]float64 `yaml:"iir,omitempty"`
	FIR          []float64   `yaml:"fir,omitempty"`
	FilterOffset bool        `yaml:"filter_offset,omitempty"`
	IsReal       bool        `yaml:"is_real,omitempty"`
}

// ShapeDoc is a tagged union: Hann needs nothing else, Spline carries the
// de Boor construction parameters.
type ShapeDoc struct {
	Kind         string    `yaml:"kind"` // "hann" or "spline"
	Knots        []float64 `yaml:"knots,omitempty"`
	Coefficients []float64 `yaml:"coefficients,omitempty"`
	Degree       int       `yaml:"degree,omitempty"`
}

// CrosstalkDoc is the on-disk form of a pulsegen.Crosstalk.
type CrosstalkDoc struct {
	Channels []string    `yaml:"channels"`
	Matrix   [][]float64 `yaml:"matrix"`
}

// Build converts cd into a channel.Config, applying defaults.
func (cd ChannelDoc) Build() (channel.Config, error) {
	cfg := channel.Config{
		BaseFreq:     cd.BaseFreq,
		SampleRate:   cd.SampleRate,
		Length:       cd.Length,
		Delay:        cd.Delay,
		AlignLevel:   channel.DefaultAlignLevel,
		Offset:       cd.Offset,
		FIR:          cd.FIR,
		FilterOffset: cd.FilterOffset,
		IsReal:       cd.IsReal,
	}
	if cd.AlignLevel != nil {
		cfg.AlignLevel = *cd.AlignLevel
	}
	if cd.IQMatrix != nil {
		m, err := to2x2(cd.IQMatrix)
		if err != nil {
			return channel.Config{}, err
		}
		cfg.IQMatrix = &m
	}
	if cd.IIR != nil {
		sos, err := toSOS(cd.IIR)
		if err != nil {
			return channel.Config{}, err
		}
		cfg.IIR = sos
	}
	if err := cfg.Validate(); err != nil {
		return channel.Config{}, err
	}
	return cfg, nil
}

func to2x2(m [][]float64) ([2][2]float64, error) {
	var out [2][2]float64
	if len(m) != 2 || len(m[0]) != 2 || len(m[1]) != 2 {
		return out, xerr.New(xerr.InvalidInput, "iq_matrix must be 2x2")
	}
	out[0][0], out[0][1] = m[0][0], m[0][1]
	out[1][0], out[1][1] = m[1][0], m[1][1]
	return out, nil
}

func toSOS(rows [][]float64) ([][6]float64, error) {
	out := make([][6]float64, len(rows))
	for i, row := range rows {
		if len(row) != 6 {
			return nil, xerr.New(xerr.InvalidInput, "iir section %d has %d coefficients, want 6", i, len(row))
		}
		copy(out[i][:], row)
	}
	return out, nil
}

// Build constructs the Shape this document describes.
func (sd ShapeDoc) Build() (shape.Shape, error) {
	switch sd.Kind {
	case "hann":
		return shape.Hann{}, nil
	case "spline":
		return shape.NewInterp(sd.Knots, sd.Coefficients, sd.Degree)
	default:
		return nil, xerr.New(xerr.InvalidInput, "unknown shape kind %q", sd.Kind)
	}
}

// Shapes builds every shape in the document, keyed by name.
func (d Document) Shapes() (map[string]shape.Shape, error) {
	out := make(map[string]shape.Shape, len(d.Shapes))
	for name, sd := range d.Shapes {
		s, err := sd.Build()
		if err != nil {
			return nil, xerr.Wrap(xerr.InvalidInput, err, "shape %q", name)
		}
		out[name] = s
	}
	return out, nil
}

// ChannelConfigs builds every channel in the document, keyed by name.
func (d Document) ChannelConfigs() (map[string]channel.Config, error) {
	out := make(map[string]channel.Config, len(d.Channels))
	for name, cd := range d.Channels {
		cfg, err := cd.Build()
		if err != nil {
			return nil, xerr.Wrap(xerr.InvalidInput, err, "channel %q", name)
		}
		out[name] = cfg
	}
	return out, nil
}

// Build builds the schedule element tree described by d.Schedule.
func (d Document) Build() (*schedule.Element, error) {
	return d.Schedule.Build()
}
