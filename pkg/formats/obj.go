package formats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// OBJ loader errors.
var (
	ErrOBJParse = errors.New("obj parse error")
	ErrOBJIO    = errors.New("obj read error")
)

// maxOBJLineSize bounds a single source line.
const maxOBJLineSize = 1 << 20

// Attribute pool names used in error reports.
const (
	OBJPoolPosition = "position"
	OBJPoolTexCoord = "texcoord"
	OBJPoolNormal   = "normal"
)

// ParseError describes malformed OBJ content. Line is 1-based; zero means
// the error concerns the file as a whole.
type ParseError struct {
	Line   int
	Token  string
	Pool   string
	Index  int
	Reason string
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("obj: ")
	if e.Line > 0 {
		fmt.Fprintf(&b, "line %d: ", e.Line)
	}
	b.WriteString(e.Reason)
	if e.Pool != "" {
		fmt.Fprintf(&b, ": %s index %d", e.Pool, e.Index)
	}
	if e.Token != "" {
		fmt.Fprintf(&b, " (token %q)", e.Token)
	}
	return b.String()
}

// Unwrap lets errors.Is match ErrOBJParse.
func (e *ParseError) Unwrap() error {
	return ErrOBJParse
}

// IOError reports an OBJ source that could not be read.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("obj: %v", e.Err)
	}
	return fmt.Sprintf("obj: %s: %v", e.Path, e.Err)
}

// Unwrap exposes both ErrOBJIO and the underlying cause.
func (e *IOError) Unwrap() []error {
	return []error{ErrOBJIO, e.Err}
}

// OBJVertex is one GPU-ready vertex. The layout is 8 packed float32:
// position (offset 0), normal (offset 12), texture coordinate (offset 24).
type OBJVertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	TexCoord mgl32.Vec2
}

// OBJMesh is an indexed triangle mesh built from an OBJ file.
type OBJMesh struct {
	Vertices []OBJVertex
	Indices  []uint32

	// Width and Height are the X and Y extents of all emitted positions.
	Width  float32
	Height float32

	// Ignored counts skipped statements by keyword (o, g, usemtl, ...).
	// Nil when every line carried geometry or was a comment.
	Ignored map[string]int
}

// TriangleCount returns the number of triangles in the index list.
func (m *OBJMesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Bounds returns the axis-aligned bounding box of the vertex positions.
func (m *OBJMesh) Bounds() (min, max mgl32.Vec3) {
	if len(m.Vertices) == 0 {
		return mgl32.Vec3{}, mgl32.Vec3{}
	}

	min = m.Vertices[0].Position
	max = m.Vertices[0].Position
	for _, v := range m.Vertices[1:] {
		for i := 0; i < 3; i++ {
			if v.Position[i] < min[i] {
				min[i] = v.Position[i]
			}
			if v.Position[i] > max[i] {
				max[i] = v.Position[i]
			}
		}
	}
	return min, max
}

// objParser holds the scratch state of a single load.
type objParser struct {
	line int

	positions []mgl32.Vec3
	texCoords []mgl32.Vec2
	normals   []mgl32.Vec3

	slots    map[OBJFaceVertex]uint32
	vertices []OBJVertex
	indices  []uint32
	ignored  map[string]int
}

// ParseOBJ parses WaveFront OBJ text into an indexed mesh.
func ParseOBJ(r io.Reader) (*OBJMesh, error) {
	p := &objParser{
		slots: make(map[OBJFaceVertex]uint32),
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxOBJLineSize)

	for scanner.Scan() {
		p.line++
		if err := p.parseLine(scanner.Text()); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &IOError{Err: fmt.Errorf("reading line %d: %w", p.line+1, err)}
	}

	return p.finish()
}

// ParseOBJFile parses an OBJ file from disk.
func ParseOBJFile(path string) (*OBJMesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, &IOError{Path: path, Err: errors.New("is a directory")}
	}
	if info.Size() == 0 {
		return nil, &IOError{Path: path, Err: errors.New("file is empty")}
	}

	mesh, err := ParseOBJ(f)
	if err != nil {
		var ioErr *IOError
		if errors.As(err, &ioErr) && ioErr.Path == "" {
			ioErr.Path = path
		}
		return nil, err
	}
	return mesh, nil
}

// parseLine classifies one source line and feeds the matching stage.
func (p *objParser) parseLine(raw string) error {
	line := strings.TrimSpace(raw)
	if line == "" || line[0] == '#' {
		return nil
	}

	fields := strings.Fields(line)
	switch fields[0] {
	case "v":
		vals, err := p.parseFloats(fields, 3)
		if err != nil {
			return err
		}
		p.positions = append(p.positions, mgl32.Vec3{vals[0], vals[1], vals[2]})

	case "vn":
		vals, err := p.parseFloats(fields, 3)
		if err != nil {
			return err
		}
		p.normals = append(p.normals, mgl32.Vec3{vals[0], vals[1], vals[2]})

	case "vt":
		vals, err := p.parseFloats(fields, 2)
		if err != nil {
			return err
		}
		p.texCoords = append(p.texCoords, mgl32.Vec2{vals[0], vals[1]})

	case "f":
		face, err := ParseOBJFace(fields[1:], p.line, p.poolSizes())
		if err != nil {
			return err
		}
		for _, tri := range TriangulateFan(face) {
			for _, ref := range tri {
				p.emit(ref)
			}
		}

	default:
		// o, g, s, usemtl, mtllib and anything unknown carry no geometry.
		if p.ignored == nil {
			p.ignored = make(map[string]int)
		}
		p.ignored[fields[0]]++
	}

	return nil
}

// parseFloats reads the first n numeric fields after the keyword. Any extra
// fields (vertex w, vertex colours, texture w) are ignored.
func (p *objParser) parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields)-1 < n {
		return nil, &ParseError{
			Line:   p.line,
			Token:  fields[0],
			Reason: fmt.Sprintf("expected %d components, got %d", n, len(fields)-1),
		}
	}

	vals := make([]float32, n)
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(fields[i+1], 32)
		if err != nil {
			return nil, &ParseError{
				Line:   p.line,
				Token:  fields[i+1],
				Reason: "malformed number",
			}
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, &ParseError{
				Line:   p.line,
				Token:  fields[i+1],
				Reason: "non-finite number",
			}
		}
		vals[i] = float32(f)
	}
	return vals, nil
}

func (p *objParser) poolSizes() OBJPoolSizes {
	return OBJPoolSizes{
		Positions: len(p.positions),
		TexCoords: len(p.texCoords),
		Normals:   len(p.normals),
	}
}
