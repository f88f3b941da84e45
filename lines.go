package main

import (
	"unsafe"

	gl "github.com/go-gl/gl/v3.1/gles2"

	"github.com/cellux/gradnoise/internal/render"
)

const (
	lineVertexShader = `
    precision highp float;
    attribute vec2 a_position;
    uniform mat4 u_transform;
    void main(void) {
      gl_Position = u_transform * vec4(a_position, 0.0, 1.0);
    }` + "\x00"
	lineFragmentShader = `
    precision highp float;
    uniform vec4 u_color;
    void main(void) {
      gl_FragColor = u_color;
    }` + "\x00"
)

type PointVertex struct {
	position [2]float32
}

// LineDisplay strokes batches of segments given in field pixel coordinates.
type LineDisplay struct {
	vertices    []PointVertex
	program     Program
	a_position  int32
	u_transform int32
	u_color     int32
}

func CreateLineDisplay() (*LineDisplay, error) {
	program, err := CreateProgram(lineVertexShader, lineFragmentShader)
	if err != nil {
		return nil, err
	}
	ld := &LineDisplay{
		program:     program,
		a_position:  program.GetAttribLocation("a_position\x00"),
		u_transform: program.GetUniformLocation("u_transform\x00"),
		u_color:     program.GetUniformLocation("u_color\x00"),
	}
	return ld, nil
}

// Render draws segs offset by origin in a single color.
func (ld *LineDisplay) Render(segs []render.Segment, origin Point, color [4]float32) {
	if len(segs) == 0 {
		return
	}
	ld.vertices = ld.vertices[:0]
	for _, s := range segs {
		ld.vertices = append(ld.vertices,
			PointVertex{position: [2]float32{float32(s.X0), float32(s.Y0)}},
			PointVertex{position: [2]float32{float32(s.X1), float32(s.Y1)}},
		)
	}
	ld.program.Use()
	gl.EnableVertexAttribArray(uint32(ld.a_position))
	gl.VertexAttribPointer(
		uint32(ld.a_position), 2, gl.FLOAT, false,
		int32(unsafe.Sizeof(PointVertex{})),
		gl.Ptr(&ld.vertices[0].position[0]))
	mTransform := pixelTransform(origin)
	gl.UniformMatrix4fv(ld.u_transform, 1, false, &mTransform[0])
	gl.Uniform4fv(ld.u_color, 1, &color[0])
	gl.DrawArrays(gl.LINES, 0, int32(len(ld.vertices)))
	gl.DisableVertexAttribArray(uint32(ld.a_position))
}

func (ld *LineDisplay) Close() error {
	return ld.program.Close()
}
