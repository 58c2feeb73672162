package convert

import (
	gomath "math"
	"strconv"

	"github.com/Areng14/BeePEE/internal/config"
	"github.com/Areng14/BeePEE/pkg/mesh"
)

// Options controls a single conversion.
type Options struct {
	Scale      float64
	Rotation   mesh.Rotation
	ObjectName string
}

// DefaultOptions returns unit scale, no rotation and the default object name.
func DefaultOptions() Options {
	return Options{Scale: 1.0}
}

// OptionsFromConfig builds Options from the convert section of a config.
func OptionsFromConfig(cfg config.ConvertConfig) Options {
	return Options{
		Scale: cfg.Scale,
		Rotation: mesh.Rotation{
			Roll:  cfg.Roll,
			Pitch: cfg.Pitch,
			Yaw:   cfg.Yaw,
		},
		ObjectName: cfg.ObjectName,
	}
}

// Validate checks that scale is positive and every value is finite.
func (o Options) Validate() error {
	if !isFinite(o.Scale) {
		return &ValidationError{Arg: "scale", Value: strconv.FormatFloat(o.Scale, 'g', -1, 64), Reason: "must be a finite number"}
	}
	if o.Scale <= 0 {
		return &ValidationError{Arg: "scale", Value: strconv.FormatFloat(o.Scale, 'g', -1, 64), Reason: "must be greater than 0"}
	}
	for _, a := range []struct {
		name  string
		value float64
	}{
		{"roll", o.Rotation.Roll},
		{"pitch", o.Rotation.Pitch},
		{"yaw", o.Rotation.Yaw},
	} {
		if !isFinite(a.value) {
			return &ValidationError{Arg: a.name, Value: strconv.FormatFloat(a.value, 'g', -1, 64), Reason: "must be a finite number"}
		}
	}
	return nil
}

// ParseArgs parses the positional arguments
//
//	<input> <output> [scale] [roll] [pitch] [yaw]
//
// Optional values that are omitted keep the value from defaults.
func ParseArgs(args []string, defaults Options) (input, output string, opts Options, err error) {
	opts = defaults

	if len(args) < 2 {
		return "", "", opts, &ValidationError{Arg: "arguments", Reason: "input and output paths are required"}
	}
	if len(args) > 6 {
		return "", "", opts, &ValidationError{Arg: "arguments", Reason: "too many arguments"}
	}
	input, output = args[0], args[1]

	targets := []struct {
		name string
		dst  *float64
	}{
		{"scale", &opts.Scale},
		{"roll", &opts.Rotation.Roll},
		{"pitch", &opts.Rotation.Pitch},
		{"yaw", &opts.Rotation.Yaw},
	}
	for i, arg := range args[2:] {
		v, perr := strconv.ParseFloat(arg, 64)
		if perr != nil {
			return "", "", opts, &ValidationError{Arg: targets[i].name, Value: arg, Reason: "not a number"}
		}
		*targets[i].dst = v
	}

	if err := opts.Validate(); err != nil {
		return "", "", opts, err
	}
	return input, output, opts, nil
}

func isFinite(f float64) bool {
	return !gomath.IsNaN(f) && !gomath.IsInf(f, 0)
}
