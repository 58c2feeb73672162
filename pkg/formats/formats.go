// Package formats provides parsers and encoders for mesh file formats.
package formats

// Note: OBJ (Wavefront text mesh) parsing is implemented in obj.go
// Note: 3DS (3D Studio chunk tree) encoding and decoding is implemented in tds.go
