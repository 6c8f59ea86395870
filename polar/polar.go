package polar

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Polar struct {
	Id                      string  `json:"id,omitempty" yaml:"id,omitempty"`
	PolarId                 uint8   `json:"_id" yaml:"_id"`
	Archived                bool    `json:"archived" yaml:"-"`
	Label                   string  `json:"label" yaml:"label"`
	GlobalSpeedRatio        float64 `json:"globalSpeedRatio" yaml:"globalSpeedRatio"`
	IceSpeedRatio           float64 `json:"iceSpeedRatio" yaml:"iceSpeedRatio"`
	AutoSailChangeTolerance float64 `json:"autoSailChangeTolerance" yaml:"autoSailChangeTolerance"`
	BadSailTolerance        float64 `json:"badSailTolerance" yaml:"badSailTolerance"`
	MaxSpeed                float64 `json:"maxSpeed" yaml:"maxSpeed"`
	Foil                    Foil    `json:"foil" yaml:"foil"`
	Hull                    Hull    `json:"hull" yaml:"hull"`
	Winch                   Winch   `json:"winch" yaml:"winch"`
	Tws                     []int   `json:"tws" yaml:"tws"`
	Twa                     []int   `json:"twa" yaml:"twa"`
	Sail                    []Sail  `json:"sail" yaml:"sail"`
}

type Foil struct {
	SpeedRatio float64 `json:"speedRatio" yaml:"speedRatio"`
	TwaMin     float64 `json:"twaMin" yaml:"twaMin"`
	TwaMax     float64 `json:"twaMax" yaml:"twaMax"`
	TwaMerge   float64 `json:"twaMerge" yaml:"twaMerge"`
	TwsMin     float64 `json:"twsMin" yaml:"twsMin"`
	TwsMax     float64 `json:"twsMax" yaml:"twsMax"`
	TwsMerge   float64 `json:"twsMerge" yaml:"twsMerge"`
}

type Hull struct {
	SpeedRatio float64 `json:"speedRatio" yaml:"speedRatio"`
}

type Winch struct {
	Tack       PenaltyCase `json:"tack" yaml:"tack"`
	Gybe       PenaltyCase `json:"gybe" yaml:"gybe"`
	SailChange PenaltyCase `json:"sailChange" yaml:"sailChange"`
	Lws        int         `json:"lws" yaml:"lws"`
	Hws        int         `json:"hws" yaml:"hws"`
}

type PenaltyCase struct {
	StdTimerSec int               `json:"stdTimerSec" yaml:"stdTimerSec"`
	StdRatio    float64           `json:"stdRatio" yaml:"stdRatio"`
	ProTimerSec int               `json:"proTimerSec" yaml:"proTimerSec"`
	ProRatio    float64           `json:"proRatio" yaml:"proRatio"`
	Std         PenaltyBoundaries `json:"std" yaml:"std"`
}

type PenaltyBoundaries struct {
	Lw Penalty `json:"lw" yaml:"lw"`
	Hw Penalty `json:"hw" yaml:"hw"`
}

type Penalty struct {
	Ratio float64 `json:"ratio" yaml:"ratio"`
	Timer int     `json:"timer" yaml:"timer"`
}

type Sail struct {
	Id    int         `json:"id" yaml:"id"`
	Name  string      `json:"name" yaml:"name"`
	Speed [][]float64 `json:"speed" yaml:"speed"`
}

// DecodeError is returned when a polar file does not hold a valid document.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("error decoding polar file %s : %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func readPolar(path string) (*Polar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening file %s : %w", path, err)
	}
	defer f.Close()

	var polar Polar
	if err := yaml.NewDecoder(f).Decode(&polar); err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	return &polar, nil
}

func savePolar(path string, polar *Polar) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("error opening file %s : %w", path, err)
	}

	enc := yaml.NewEncoder(f)
	if err := enc.Encode(polar); err != nil {
		f.Close()
		return fmt.Errorf("error encoding polar %s : %w", path, err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
