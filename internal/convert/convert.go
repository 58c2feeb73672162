// Package convert runs the OBJ to 3DS conversion pipeline for one file pair.
package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/Areng14/BeePEE/internal/logger"
	"github.com/Areng14/BeePEE/pkg/formats"
	"github.com/Areng14/BeePEE/pkg/math"
	"github.com/Areng14/BeePEE/pkg/mesh"
)

// Result summarizes a successful conversion.
type Result struct {
	Input     string
	Output    string
	Vertices  int
	Triangles int
	Polygons  int
	Bytes     int64
	Bounds    math.Box
	Elapsed   time.Duration
}

// Run converts the OBJ file at input to a 3DS file at output.
//
// Stages run in order and the first failure aborts the conversion:
// validate options, check the input, create the output directory, parse,
// transform, check mesh consistency, encode, write and verify. An output file
// left behind by a failed write is not removed.
func Run(input, output string, opts Options) (*Result, error) {
	start := time.Now()

	if err := opts.Validate(); err != nil {
		return nil, err
	}

	info, err := os.Stat(input)
	if err != nil {
		return nil, &IOError{Op: "stat", Path: input, Err: err}
	}
	if info.IsDir() {
		return nil, &IOError{Op: "stat", Path: input, Err: fmt.Errorf("is a directory")}
	}

	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, &IOError{Op: "mkdir", Path: dir, Err: err}
		}
	}

	logger.Info("Converting", zap.String("input", input), zap.String("output", output))

	data, err := os.ReadFile(input)
	if err != nil {
		return nil, &IOError{Op: "read", Path: input, Err: err}
	}

	obj, err := formats.ParseOBJ(data)
	if err != nil {
		return nil, err
	}
	m := obj.Mesh
	logger.Info("Loaded OBJ",
		zap.Int("vertices", len(m.Vertices)),
		zap.Int("faces", obj.Polygons),
		zap.Int("triangles", len(m.Triangles)),
		zap.Int("ignored_lines", obj.Ignored))

	if opts.Scale != 1 || !opts.Rotation.IsZero() {
		mesh.Transform(m, opts.Scale, opts.Rotation)
		logger.Info("Transformed vertices",
			zap.Float64("scale", opts.Scale),
			zap.Float64("roll", opts.Rotation.Roll),
			zap.Float64("pitch", opts.Rotation.Pitch),
			zap.Float64("yaw", opts.Rotation.Yaw))
	}

	if err := m.Validate(); err != nil {
		return nil, &InternalError{Err: err}
	}
	if err := checkFinite(m); err != nil {
		return nil, &EncodeError{Err: err}
	}

	encoded, err := formats.Encode3DS(m, formats.EncodeOptions{ObjectName: opts.ObjectName})
	if err != nil {
		return nil, &EncodeError{Err: err}
	}

	if err := writeFile(output, encoded); err != nil {
		return nil, err
	}

	size, err := verifyOutput(output)
	if err != nil {
		return nil, err
	}

	stats := m.Stats()
	result := &Result{
		Input:     input,
		Output:    output,
		Vertices:  stats.Vertices,
		Triangles: stats.Triangles,
		Polygons:  obj.Polygons,
		Bytes:     size,
		Bounds:    stats.Bounds,
		Elapsed:   time.Since(start),
	}

	logger.Success(fmt.Sprintf("3DS file created (%d bytes)", size), zap.String("output", output))
	logger.Debug("Bounds",
		zap.Float32s("min", []float32{stats.Bounds.Min.X, stats.Bounds.Min.Y, stats.Bounds.Min.Z}),
		zap.Float32s("max", []float32{stats.Bounds.Max.X, stats.Bounds.Max.Y, stats.Bounds.Max.Z}),
		zap.Duration("elapsed", result.Elapsed))

	return result, nil
}

// checkFinite rejects vertices that overflowed float32 while transforming.
func checkFinite(m *mesh.Mesh) error {
	for i, v := range m.Vertices {
		if !v.IsFinite() {
			return fmt.Errorf("%w: vertex %d is (%v, %v, %v)", ErrNonFiniteVertex, i+1, v.X, v.Y, v.Z)
		}
	}
	return nil
}

// writeFile writes data to path. The file is closed on every path.
func writeFile(path string, data []byte) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &IOError{Op: "write", Path: path, Err: cerr}
		}
	}()

	if _, err := f.Write(data); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// verifyOutput checks that path exists and is non-empty, returning its size.
func verifyOutput(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, &IOError{Op: "verify", Path: path, Err: err}
	}
	if info.Size() == 0 {
		return 0, &IOError{Op: "verify", Path: path, Err: ErrEmptyOutput}
	}
	return info.Size(), nil
}
