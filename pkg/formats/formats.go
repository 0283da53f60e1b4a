// Package formats provides parsers for 3D asset file formats.
//
// WaveFront OBJ is handled in obj.go: ParseOBJ and ParseOBJFile turn a text
// mesh into deduplicated vertices, a triangle index list and the planar
// extents of the result.
package formats
