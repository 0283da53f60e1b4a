package formats

import (
	"fmt"
	"strconv"
	"strings"
)

// OBJIndex is an optional 0-based pool index. Valid is false when the face
// vertex omits the attribute.
type OBJIndex struct {
	Value int
	Valid bool
}

// OBJFaceVertex references one entry of each attribute pool.
// It is comparable and serves as the deduplication key.
type OBJFaceVertex struct {
	Position int
	TexCoord OBJIndex
	Normal   OBJIndex
}

// OBJFace is a polygon as written in the source, in file winding order.
type OBJFace struct {
	Line     int
	Vertices []OBJFaceVertex
}

// OBJPoolSizes holds the number of records declared so far in each pool.
type OBJPoolSizes struct {
	Positions int
	TexCoords int
	Normals   int
}

// ParseOBJFace parses the vertex tokens of an "f" line (keyword excluded).
// Tokens take the forms p, p/t, p//n and p/t/n with 1-based indices.
// Negative indices count back from the last record declared before the line.
func ParseOBJFace(tokens []string, line int, sizes OBJPoolSizes) (OBJFace, error) {
	if len(tokens) < 3 {
		return OBJFace{}, &ParseError{
			Line:   line,
			Token:  "f",
			Reason: fmt.Sprintf("face needs at least 3 vertices, got %d", len(tokens)),
		}
	}

	face := OBJFace{
		Line:     line,
		Vertices: make([]OBJFaceVertex, 0, len(tokens)),
	}
	for _, tok := range tokens {
		ref, err := parseFaceVertex(tok, line, sizes)
		if err != nil {
			return OBJFace{}, err
		}
		face.Vertices = append(face.Vertices, ref)
	}
	return face, nil
}

func parseFaceVertex(tok string, line int, sizes OBJPoolSizes) (OBJFaceVertex, error) {
	parts := strings.Split(tok, "/")
	if len(parts) > 3 || parts[0] == "" {
		return OBJFaceVertex{}, &ParseError{
			Line:   line,
			Token:  tok,
			Reason: "malformed face vertex",
		}
	}

	var ref OBJFaceVertex
	pos, err := resolveOBJIndex(parts[0], tok, line, OBJPoolPosition, sizes.Positions)
	if err != nil {
		return OBJFaceVertex{}, err
	}
	ref.Position = pos

	if len(parts) > 1 && parts[1] != "" {
		tc, err := resolveOBJIndex(parts[1], tok, line, OBJPoolTexCoord, sizes.TexCoords)
		if err != nil {
			return OBJFaceVertex{}, err
		}
		ref.TexCoord = OBJIndex{Value: tc, Valid: true}
	}

	if len(parts) > 2 {
		if parts[2] == "" {
			return OBJFaceVertex{}, &ParseError{
				Line:   line,
				Token:  tok,
				Reason: "empty normal index",
			}
		}
		n, err := resolveOBJIndex(parts[2], tok, line, OBJPoolNormal, sizes.Normals)
		if err != nil {
			return OBJFaceVertex{}, err
		}
		ref.Normal = OBJIndex{Value: n, Valid: true}
	}

	return ref, nil
}

// resolveOBJIndex turns a 1-based (or negative, relative) index into a
// 0-based pool offset and checks it against the pool size.
func resolveOBJIndex(s, tok string, line int, pool string, size int) (int, error) {
	raw, err := strconv.Atoi(s)
	if err != nil {
		return 0, &ParseError{
			Line:   line,
			Token:  tok,
			Reason: "malformed index",
		}
	}

	idx := raw - 1
	if raw < 0 {
		idx = size + raw
	}
	if raw == 0 || idx < 0 || idx >= size {
		return 0, &ParseError{
			Line:   line,
			Token:  tok,
			Pool:   pool,
			Index:  raw,
			Reason: fmt.Sprintf("index out of range (%d declared)", size),
		}
	}
	return idx, nil
}

// TriangulateFan splits a polygon into len-2 triangles rooted at its first
// vertex, keeping the source winding.
func TriangulateFan(face OBJFace) [][3]OBJFaceVertex {
	n := len(face.Vertices)
	if n < 3 {
		return nil
	}

	tris := make([][3]OBJFaceVertex, 0, n-2)
	for i := 1; i < n-1; i++ {
		tris = append(tris, [3]OBJFaceVertex{
			face.Vertices[0],
			face.Vertices[i],
			face.Vertices[i+1],
		})
	}
	return tris
}
