package canvas

import (
	"errors"
	"testing"
)

func TestFullscreenQuad(t *testing.T) {
	gl := newFakeGL()
	p, err := BuildProgram(gl, VertexShader, validFragment)
	if err != nil {
		t.Fatal(err)
	}

	g, err := NewFullscreenQuad(gl, p)
	if err != nil {
		t.Fatal(err)
	}
	if g.Mode != TriangleStrip || g.Count != 4 {
		t.Fatalf("expected a 4 vertex triangle strip; got mode %v count %d", g.Mode, g.Count)
	}
	if gl.index("BufferData 8") < 0 {
		t.Fatalf("expected 8 floats to be uploaded; calls: %v", gl.calls)
	}
	if gl.index("VertexAttribPointer 0 2") < 0 {
		t.Fatalf("expected a 2 component position attribute; calls: %v", gl.calls)
	}

	for i := 0; i < len(quadVertices); i++ {
		if v := quadVertices[i]; v != -1 && v != 1 {
			t.Fatalf("expected quad coordinates to span NDC; got %v at %d", v, i)
		}
	}

	g.Delete(gl)
	if len(gl.vaos) != 0 || len(gl.buffers) != 0 {
		t.Fatal("expected the quad objects to be released")
	}
}

func TestFullscreenQuadRequiresLinkedProgram(t *testing.T) {
	gl := newFakeGL()
	if _, err := NewFullscreenQuad(gl, nil); !errors.Is(err, ErrProgramNotLinked) {
		t.Fatalf("expected ErrProgramNotLinked; got %v", err)
	}
	if _, err := NewFullscreenQuad(gl, &Program{ID: 3}); !errors.Is(err, ErrProgramNotLinked) {
		t.Fatalf("expected ErrProgramNotLinked; got %v", err)
	}

	gl.noPosition = true
	p, err := BuildProgram(gl, VertexShader, validFragment)
	if err != nil {
		t.Fatal(err)
	}
	if _, err = NewFullscreenQuad(gl, p); err == nil {
		t.Fatal("expected an error when a_position is inactive")
	}
	if n := gl.count("CreateVertexArray"); n != 0 {
		t.Fatalf("expected no vertex array to be created; got %d", n)
	}
}
