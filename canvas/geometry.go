package canvas

import "fmt"

// Four corners of normalized device space, ordered for a triangle strip.
var quadVertices = []float32{
	-1, 1, // top left
	-1, -1, // bottom left
	1, 1, // top right
	1, -1, // bottom right
}

// Geometry is the full-screen quad and its attribute layout, bound together
// as one vertex array.
type Geometry struct {
	VAO   uint32
	VBO   uint32
	Mode  Primitive
	Count int32
}

// NewFullscreenQuad uploads the quad and binds it to the position attribute
// of the linked program p.
func NewFullscreenQuad(gl GL, p *Program) (*Geometry, error) {
	if p == nil || !p.Linked {
		return nil, ErrProgramNotLinked
	}

	loc := gl.AttribLocation(p.ID, PositionAttrib)
	if loc < 0 {
		return nil, fmt.Errorf("attribute %s is not active in program %d", PositionAttrib, p.ID)
	}

	g := &Geometry{
		Mode:  TriangleStrip,
		Count: int32(len(quadVertices) / 2),
	}

	g.VAO = gl.CreateVertexArray()
	gl.BindVertexArray(g.VAO)

	g.VBO = gl.CreateBuffer()
	gl.BindBuffer(g.VBO)
	gl.BufferData(quadVertices)

	gl.EnableVertexAttribArray(uint32(loc))
	gl.VertexAttribPointer(uint32(loc), 2)

	gl.BindVertexArray(0)
	gl.BindBuffer(0)

	return g, nil
}

// Draw issues the single draw call covering the quad.
func (g *Geometry) Draw(gl GL) {
	gl.BindVertexArray(g.VAO)
	gl.DrawArrays(g.Mode, 0, g.Count)
	gl.BindVertexArray(0)
}

// Delete releases the vertex array and buffer.
func (g *Geometry) Delete(gl GL) {
	if g == nil {
		return
	}
	if g.VAO != 0 {
		gl.DeleteVertexArray(g.VAO)
		g.VAO = 0
	}
	if g.VBO != 0 {
		gl.DeleteBuffer(g.VBO)
		g.VBO = 0
	}
}
