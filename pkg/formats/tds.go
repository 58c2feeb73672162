// Package formats provides parsers and encoders for mesh file formats.
// 3DS (3D Studio) chunk encoder and decoder for single-object collision meshes.
package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	gomath "math"
	"os"

	"github.com/Areng14/BeePEE/pkg/encoding"
	"github.com/Areng14/BeePEE/pkg/math"
	"github.com/Areng14/BeePEE/pkg/mesh"
)

// 3DS chunk IDs.
const (
	ChunkMain       uint16 = 0x4D4D // Root of the file
	ChunkEditor     uint16 = 0x3D3D // 3D editor data
	ChunkObject     uint16 = 0x4000 // Named object block
	ChunkTriMesh    uint16 = 0x4100 // Triangular mesh
	ChunkVertexList uint16 = 0x4110 // Vertex positions
	ChunkFaceList   uint16 = 0x4120 // Triangle indices
)

const (
	// ChunkHeaderSize is the size of the ID + length header.
	ChunkHeaderSize = 6
	// MaxCount is the largest vertex or face count a list chunk can hold.
	MaxCount = 0xFFFF
	// MaxObjectNameLen is the longest object name, excluding the terminator.
	MaxObjectNameLen = 10
	// DefaultObjectName is the object name used when none is given.
	DefaultObjectName = "collision"
)

// 3DS format errors.
var (
	ErrInvalid3DSMagic    = errors.New("invalid 3DS magic: expected main chunk 0x4D4D")
	ErrTruncated3DSData   = errors.New("truncated 3DS data")
	ErrInvalidChunkLength = errors.New("invalid 3DS chunk length")
	ErrTrailing3DSData    = errors.New("trailing data after 3DS main chunk")
	ErrCapacityExceeded   = errors.New("mesh exceeds 3DS capacity of 65535")
	ErrInvalidObjectName  = errors.New("invalid 3DS object name")
	ErrNoMeshObject       = errors.New("3DS data has no triangle mesh object")
)

// Chunk is a node in a 3DS chunk tree. The payload is Data followed by the
// encoded Children. The length field is always derived, never stored.
type Chunk struct {
	ID       uint16
	Data     []byte
	Children []*Chunk
}

// Size returns the encoded size of the chunk including its header.
func (c *Chunk) Size() uint32 {
	size := uint32(ChunkHeaderSize + len(c.Data))
	for _, child := range c.Children {
		size += child.Size()
	}
	return size
}

// WriteTo writes the chunk and its children to w.
func (c *Chunk) WriteTo(w io.Writer) (int64, error) {
	var header [ChunkHeaderSize]byte
	binary.LittleEndian.PutUint16(header[0:], c.ID)
	binary.LittleEndian.PutUint32(header[2:], c.Size())

	n, err := w.Write(header[:])
	written := int64(n)
	if err != nil {
		return written, err
	}

	n, err = w.Write(c.Data)
	written += int64(n)
	if err != nil {
		return written, err
	}

	for _, child := range c.Children {
		cn, err := child.WriteTo(w)
		written += cn
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

// Find returns the first chunk with the given ID in depth-first order,
// including c itself. Returns nil if there is none.
func (c *Chunk) Find(id uint16) *Chunk {
	if c.ID == id {
		return c
	}
	for _, child := range c.Children {
		if found := child.Find(id); found != nil {
			return found
		}
	}
	return nil
}

// Walk calls fn for c and every descendant in depth-first order.
func (c *Chunk) Walk(fn func(c *Chunk, depth int)) {
	c.walk(fn, 0)
}

func (c *Chunk) walk(fn func(*Chunk, int), depth int) {
	fn(c, depth)
	for _, child := range c.Children {
		child.walk(fn, depth+1)
	}
}

// ChunkName returns a human-readable name for known chunk IDs.
func ChunkName(id uint16) string {
	switch id {
	case ChunkMain:
		return "Main"
	case ChunkEditor:
		return "Editor"
	case ChunkObject:
		return "Object"
	case ChunkTriMesh:
		return "TriMesh"
	case ChunkVertexList:
		return "VertexList"
	case ChunkFaceList:
		return "FaceList"
	default:
		return fmt.Sprintf("Unknown(0x%04X)", id)
	}
}

// EncodeOptions controls 3DS output.
type EncodeOptions struct {
	// ObjectName names the single mesh object. Empty means DefaultObjectName.
	ObjectName string
}

// Build3DS builds the chunk tree for m:
//
//	Main 0x4D4D
//	  Editor 0x3D3D
//	    Object 0x4000 (name)
//	      TriMesh 0x4100
//	        VertexList 0x4110
//	        FaceList 0x4120
//
// Triangle indices are not range checked; callers validate the mesh first.
func Build3DS(m *mesh.Mesh, opts EncodeOptions) (*Chunk, error) {
	if len(m.Vertices) > MaxCount {
		return nil, fmt.Errorf("%w: %d vertices", ErrCapacityExceeded, len(m.Vertices))
	}
	if len(m.Triangles) > MaxCount {
		return nil, fmt.Errorf("%w: %d triangles", ErrCapacityExceeded, len(m.Triangles))
	}

	name := opts.ObjectName
	if name == "" {
		name = DefaultObjectName
	}
	nameData, err := encoding.CString(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidObjectName, err)
	}
	if len(nameData)-1 > MaxObjectNameLen {
		return nil, fmt.Errorf("%w: %q is longer than %d bytes", ErrInvalidObjectName, name, MaxObjectNameLen)
	}

	triMesh := &Chunk{
		ID: ChunkTriMesh,
		Children: []*Chunk{
			{ID: ChunkVertexList, Data: encodeVertexList(m.Vertices)},
			{ID: ChunkFaceList, Data: encodeFaceList(m.Triangles)},
		},
	}
	object := &Chunk{ID: ChunkObject, Data: nameData, Children: []*Chunk{triMesh}}
	editor := &Chunk{ID: ChunkEditor, Children: []*Chunk{object}}
	return &Chunk{ID: ChunkMain, Children: []*Chunk{editor}}, nil
}

// Encode3DS encodes m as a complete 3DS file.
func Encode3DS(m *mesh.Mesh, opts EncodeOptions) ([]byte, error) {
	root, err := Build3DS(m, opts)
	if err != nil {
		return nil, err
	}
	buf := bytes.NewBuffer(make([]byte, 0, root.Size()))
	if _, err := root.WriteTo(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write3DS encodes m and writes it to w.
func Write3DS(w io.Writer, m *mesh.Mesh, opts EncodeOptions) error {
	root, err := Build3DS(m, opts)
	if err != nil {
		return err
	}
	if _, err := root.WriteTo(w); err != nil {
		return fmt.Errorf("writing 3DS data: %w", err)
	}
	return nil
}

// encodeVertexList encodes u16 count followed by count x (f32 x, y, z).
func encodeVertexList(vertices []math.Vec3) []byte {
	data := make([]byte, 2+len(vertices)*12)
	binary.LittleEndian.PutUint16(data, uint16(len(vertices)))
	off := 2
	for _, v := range vertices {
		binary.LittleEndian.PutUint32(data[off:], gomath.Float32bits(v.X))
		binary.LittleEndian.PutUint32(data[off+4:], gomath.Float32bits(v.Y))
		binary.LittleEndian.PutUint32(data[off+8:], gomath.Float32bits(v.Z))
		off += 12
	}
	return data
}

// encodeFaceList encodes u16 count followed by count x (u16 a, b, c, flags).
func encodeFaceList(tris []mesh.Triangle) []byte {
	data := make([]byte, 2+len(tris)*8)
	binary.LittleEndian.PutUint16(data, uint16(len(tris)))
	off := 2
	for _, t := range tris {
		binary.LittleEndian.PutUint16(data[off:], uint16(t[0]))
		binary.LittleEndian.PutUint16(data[off+2:], uint16(t[1]))
		binary.LittleEndian.PutUint16(data[off+4:], uint16(t[2]))
		binary.LittleEndian.PutUint16(data[off+6:], 0) // Face flags
		off += 8
	}
	return data
}

// Decode3DS parses a 3DS chunk tree. Every declared length is checked
// against the enclosing chunk and the whole input must be one main chunk.
func Decode3DS(data []byte) (*Chunk, error) {
	if len(data) < ChunkHeaderSize {
		return nil, ErrTruncated3DSData
	}
	if binary.LittleEndian.Uint16(data) != ChunkMain {
		return nil, ErrInvalid3DSMagic
	}

	root, n, err := decodeChunk(data)
	if err != nil {
		return nil, err
	}
	if n != len(data) {
		return nil, fmt.Errorf("%w: %d bytes", ErrTrailing3DSData, len(data)-n)
	}
	return root, nil
}

// decodeChunk decodes one chunk at the start of data and returns the number
// of bytes it occupies.
func decodeChunk(data []byte) (*Chunk, int, error) {
	if len(data) < ChunkHeaderSize {
		return nil, 0, fmt.Errorf("%w: reading chunk header", ErrTruncated3DSData)
	}
	id := binary.LittleEndian.Uint16(data)
	length := binary.LittleEndian.Uint32(data[2:])
	if length < ChunkHeaderSize || uint64(length) > uint64(len(data)) {
		return nil, 0, fmt.Errorf("%w: chunk 0x%04X declares %d bytes, %d available", ErrInvalidChunkLength, id, length, len(data))
	}

	payload := data[ChunkHeaderSize:length]
	c := &Chunk{ID: id}

	switch id {
	case ChunkMain, ChunkEditor, ChunkTriMesh:
		children, err := decodeChildren(payload)
		if err != nil {
			return nil, 0, fmt.Errorf("chunk 0x%04X: %w", id, err)
		}
		c.Children = children
	case ChunkObject:
		_, nameLen, ok := encoding.ReadCString(payload)
		if !ok {
			return nil, 0, fmt.Errorf("%w: unterminated object name", ErrTruncated3DSData)
		}
		c.Data = payload[:nameLen]
		children, err := decodeChildren(payload[nameLen:])
		if err != nil {
			return nil, 0, fmt.Errorf("chunk 0x%04X: %w", id, err)
		}
		c.Children = children
	default:
		c.Data = payload
	}

	return c, int(length), nil
}

func decodeChildren(data []byte) ([]*Chunk, error) {
	var children []*Chunk
	for off := 0; off < len(data); {
		child, n, err := decodeChunk(data[off:])
		if err != nil {
			return nil, err
		}
		children = append(children, child)
		off += n
	}
	return children, nil
}

// Mesh3DS is the first mesh object extracted from a 3DS chunk tree.
type Mesh3DS struct {
	Name string
	Mesh *mesh.Mesh
	// Flags holds the per-face flags word, parallel to Mesh.Triangles.
	Flags []uint16
}

// ReadMesh3DS decodes data and extracts the first triangle mesh object.
func ReadMesh3DS(data []byte) (*Mesh3DS, error) {
	root, err := Decode3DS(data)
	if err != nil {
		return nil, err
	}
	return ExtractMesh3DS(root)
}

// ExtractMesh3DS extracts the first triangle mesh object from a chunk tree
// returned by Decode3DS or Build3DS.
func ExtractMesh3DS(root *Chunk) (*Mesh3DS, error) {
	object := root.Find(ChunkObject)
	if object == nil {
		return nil, ErrNoMeshObject
	}
	// Object data is the name and its terminator.
	name := encoding.DecodeWindows1252(encoding.TrimNullBytes(object.Data))

	triMesh := object.Find(ChunkTriMesh)
	if triMesh == nil {
		return nil, ErrNoMeshObject
	}

	result := &Mesh3DS{Name: name, Mesh: &mesh.Mesh{}}
	if vl := triMesh.Find(ChunkVertexList); vl != nil {
		vertices, err := decodeVertexList(vl.Data)
		if err != nil {
			return nil, err
		}
		result.Mesh.Vertices = vertices
	}
	if fl := triMesh.Find(ChunkFaceList); fl != nil {
		tris, flags, err := decodeFaceList(fl.Data)
		if err != nil {
			return nil, err
		}
		result.Mesh.Triangles = tris
		result.Flags = flags
	}
	return result, nil
}

// ReadMesh3DSFile reads a 3DS file from disk and extracts its mesh.
func ReadMesh3DSFile(path string) (*Mesh3DS, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading 3DS file: %w", err)
	}
	return ReadMesh3DS(data)
}

func decodeVertexList(data []byte) ([]math.Vec3, error) {
	if len(data) < 2 {
		return nil, fmt.Errorf("%w: reading vertex count", ErrTruncated3DSData)
	}
	count := int(binary.LittleEndian.Uint16(data))
	if len(data) < 2+count*12 {
		return nil, fmt.Errorf("%w: %d vertices need %d bytes, have %d", ErrTruncated3DSData, count, 2+count*12, len(data))
	}

	vertices := make([]math.Vec3, count)
	r := bytes.NewReader(data[2:])
	if err := binary.Read(r, binary.LittleEndian, vertices); err != nil {
		return nil, fmt.Errorf("%w: reading vertices", ErrTruncated3DSData)
	}
	return vertices, nil
}

func decodeFaceList(data []byte) ([]mesh.Triangle, []uint16, error) {
	if len(data) < 2 {
		return nil, nil, fmt.Errorf("%w: reading face count", ErrTruncated3DSData)
	}
	count := int(binary.LittleEndian.Uint16(data))
	if len(data) < 2+count*8 {
		return nil, nil, fmt.Errorf("%w: %d faces need %d bytes, have %d", ErrTruncated3DSData, count, 2+count*8, len(data))
	}

	tris := make([]mesh.Triangle, count)
	flags := make([]uint16, count)
	off := 2
	for i := range tris {
		tris[i] = mesh.Triangle{
			int(binary.LittleEndian.Uint16(data[off:])),
			int(binary.LittleEndian.Uint16(data[off+2:])),
			int(binary.LittleEndian.Uint16(data[off+4:])),
		}
		flags[i] = binary.LittleEndian.Uint16(data[off+6:])
		off += 8
	}
	return tris, flags, nil
}
