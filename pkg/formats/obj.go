// Package formats provides parsers and encoders for mesh file formats.
// OBJ (Wavefront text mesh) parser.
package formats

import (
	"bufio"
	"errors"
	"fmt"
	gomath "math"
	"os"
	"strconv"
	"strings"

	"github.com/Areng14/BeePEE/pkg/encoding"
	"github.com/Areng14/BeePEE/pkg/math"
	"github.com/Areng14/BeePEE/pkg/mesh"
)

// OBJ format errors.
var (
	ErrNoVertices      = errors.New("no vertices found in OBJ data")
	ErrNoFaces         = errors.New("no faces found in OBJ data")
	ErrMalformedLine   = errors.New("malformed OBJ line")
	ErrIndexOutOfRange = errors.New("OBJ face references a missing vertex")
)

// maxOBJLineLength bounds a single line; large exports put thousands of
// references on one face line.
const maxOBJLineLength = 16 * 1024 * 1024

// ParseErrorKind classifies a ParseError.
type ParseErrorKind int

const (
	NoVertices      ParseErrorKind = iota // No "v" lines
	NoFaces                               // No "f" lines
	MalformedLine                         // Unparseable numeric token or short face
	IndexOutOfRange                       // Face reference outside the vertex list
)

// String returns a human-readable kind name.
func (k ParseErrorKind) String() string {
	switch k {
	case NoVertices:
		return "NoVertices"
	case NoFaces:
		return "NoFaces"
	case MalformedLine:
		return "MalformedLine"
	case IndexOutOfRange:
		return "IndexOutOfRange"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

func (k ParseErrorKind) sentinel() error {
	switch k {
	case NoVertices:
		return ErrNoVertices
	case NoFaces:
		return ErrNoFaces
	case IndexOutOfRange:
		return ErrIndexOutOfRange
	default:
		return ErrMalformedLine
	}
}

// ParseError describes why OBJ data could not be turned into a mesh.
// Line and Text are set for errors tied to a specific source line.
type ParseError struct {
	Kind ParseErrorKind
	Line int    // 1-based, 0 if not line specific
	Text string // Offending line, trimmed
	Err  error  // Underlying cause, may be nil
}

func (e *ParseError) Error() string {
	msg := e.Kind.sentinel().Error()
	if e.Line > 0 {
		msg = fmt.Sprintf("%s at line %d: %q", msg, e.Line, e.Text)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is matches the sentinel error for the error's kind.
func (e *ParseError) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// Unwrap returns the underlying cause.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// OBJ is a parsed OBJ mesh plus source statistics.
type OBJ struct {
	Mesh *mesh.Mesh

	// Polygons is the number of face lines read before triangulation.
	Polygons int
	// Ignored counts lines that were neither vertices nor faces, including
	// vertex lines with fewer than three coordinates.
	Ignored int
}

// pendingRef is a face whose largest reference was not yet defined when the
// line was read. It is checked once the whole file is scanned.
type pendingRef struct {
	line  int
	text  string
	index int
}

// ParseOBJ parses OBJ text into a triangle mesh.
//
// Only "v" and "f" statements are used. Faces with more than three
// references are fan-triangulated around their first vertex. Texture and
// normal references ("v/vt/vn") are dropped.
func ParseOBJ(data []byte) (*OBJ, error) {
	text, err := encoding.DecodeText(data)
	if err != nil {
		return nil, err
	}

	obj := &OBJ{Mesh: &mesh.Mesh{}}
	m := obj.Mesh
	var pending []pendingRef

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), maxOBJLineLength)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				obj.Ignored++
				continue
			}
			v, err := parseVertex(fields[1:4])
			if err != nil {
				return nil, &ParseError{Kind: MalformedLine, Line: lineNum, Text: line, Err: err}
			}
			m.Vertices = append(m.Vertices, v)

		case "f":
			polygon, maxRef, err := parseFace(fields[1:], len(m.Vertices))
			if err != nil {
				var pe *ParseError
				if errors.As(err, &pe) {
					pe.Line, pe.Text = lineNum, line
					return nil, pe
				}
				return nil, &ParseError{Kind: MalformedLine, Line: lineNum, Text: line, Err: err}
			}
			if maxRef >= len(m.Vertices) {
				pending = append(pending, pendingRef{line: lineNum, text: line, index: maxRef})
			}
			m.AddPolygon(polygon)
			obj.Polygons++

		default:
			obj.Ignored++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading OBJ data: %w", err)
	}

	if len(m.Vertices) == 0 {
		return nil, &ParseError{Kind: NoVertices}
	}
	if len(m.Triangles) == 0 {
		return nil, &ParseError{Kind: NoFaces}
	}

	for _, p := range pending {
		if p.index >= len(m.Vertices) {
			return nil, &ParseError{
				Kind: IndexOutOfRange,
				Line: p.line,
				Text: p.text,
				Err:  fmt.Errorf("vertex %d of %d", p.index+1, len(m.Vertices)),
			}
		}
	}

	return obj, nil
}

// ParseOBJFile parses an OBJ file from disk.
func ParseOBJFile(path string) (*OBJ, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading OBJ file: %w", err)
	}
	return ParseOBJ(data)
}

// parseVertex parses the x, y, z fields of a "v" statement.
func parseVertex(fields []string) (math.Vec3, error) {
	var coords [3]float32
	for i, f := range fields {
		val, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return math.Vec3{}, err
		}
		if gomath.IsNaN(val) || gomath.IsInf(val, 0) {
			return math.Vec3{}, fmt.Errorf("non-finite coordinate %q", f)
		}
		coords[i] = float32(val)
	}
	v := math.Vec3{X: coords[0], Y: coords[1], Z: coords[2]}
	if !v.IsFinite() {
		return math.Vec3{}, fmt.Errorf("coordinate out of float32 range in %q", strings.Join(fields, " "))
	}
	return v, nil
}

// parseFace converts the references of an "f" statement to zero-based
// indices. vertexCount is the number of vertices defined so far, used to
// resolve negative (relative) references. Returns the largest index seen.
func parseFace(refs []string, vertexCount int) ([]int, int, error) {
	if len(refs) < 3 {
		return nil, 0, fmt.Errorf("face needs at least 3 vertices, got %d", len(refs))
	}

	polygon := make([]int, len(refs))
	maxRef := -1
	for i, ref := range refs {
		head, _, _ := strings.Cut(ref, "/")
		n, err := strconv.Atoi(head)
		if err != nil {
			return nil, 0, err
		}

		var idx int
		switch {
		case n > 0:
			idx = n - 1
		case n < 0:
			idx = vertexCount + n
			if idx < 0 {
				return nil, 0, &ParseError{Kind: IndexOutOfRange, Err: fmt.Errorf("relative reference %d with %d vertices", n, vertexCount)}
			}
		default:
			return nil, 0, &ParseError{Kind: IndexOutOfRange, Err: errors.New("vertex reference 0")}
		}

		polygon[i] = idx
		maxRef = max(maxRef, idx)
	}
	return polygon, maxRef, nil
}
