// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// MeshVertexShader transforms OBJ mesh vertices by model, view and projection.
//
//go:embed mesh.vert
var MeshVertexShader string

// MeshFragmentShader samples the diffuse texture.
//
//go:embed mesh.frag
var MeshFragmentShader string
