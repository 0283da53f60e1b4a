package formats

import "fmt"

// emit appends the slot for ref to the index list, creating the combined
// vertex the first time its index triple is seen.
func (p *objParser) emit(ref OBJFaceVertex) {
	if slot, ok := p.slots[ref]; ok {
		p.indices = append(p.indices, slot)
		return
	}

	v := OBJVertex{Position: p.positions[ref.Position]}
	if ref.Normal.Valid {
		v.Normal = p.normals[ref.Normal.Value]
	}
	if ref.TexCoord.Valid {
		v.TexCoord = p.texCoords[ref.TexCoord.Value]
	}

	slot := uint32(len(p.vertices))
	p.vertices = append(p.vertices, v)
	p.slots[ref] = slot
	p.indices = append(p.indices, slot)
}

// finish computes the planar extents and hands the buffers to a mesh.
func (p *objParser) finish() (*OBJMesh, error) {
	if len(p.vertices) == 0 {
		return nil, &ParseError{Reason: "no geometry: file produced zero vertices"}
	}

	mesh := &OBJMesh{
		Vertices: p.vertices,
		Indices:  p.indices,
		Ignored:  p.ignored,
	}
	mesh.Width, mesh.Height = planarExtents(p.vertices)
	return mesh, nil
}

// planarExtents returns max(x)-min(x) and max(y)-min(y).
func planarExtents(vertices []OBJVertex) (width, height float32) {
	minX, maxX := vertices[0].Position.X(), vertices[0].Position.X()
	minY, maxY := vertices[0].Position.Y(), vertices[0].Position.Y()

	for _, v := range vertices[1:] {
		x, y := v.Position.X(), v.Position.Y()
		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}

	return maxX - minX, maxY - minY
}

// Validate checks that the index list describes whole triangles that only
// reference existing vertices.
func (m *OBJMesh) Validate() error {
	if len(m.Vertices) == 0 {
		return fmt.Errorf("%w: mesh has no vertices", ErrOBJParse)
	}
	if len(m.Indices) == 0 {
		return fmt.Errorf("%w: mesh has no indices", ErrOBJParse)
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: index count %d is not a multiple of 3", ErrOBJParse, len(m.Indices))
	}
	for i, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			return fmt.Errorf("%w: index %d at position %d exceeds vertex count %d",
				ErrOBJParse, idx, i, len(m.Vertices))
		}
	}
	return nil
}
