package main

import (
	"image"
	"unsafe"

	gl "github.com/go-gl/gl/v3.1/gles2"
)

const (
	heatVertexShader = `
    precision highp float;
    attribute vec2 a_position;
    attribute vec2 a_texcoord;
    uniform mat4 u_transform;
    varying vec2 v_texcoord;
    void main(void) {
      gl_Position = u_transform * vec4(a_position, 0.0, 1.0);
      v_texcoord = a_texcoord;
    }` + "\x00"
	heatFragmentShader = `
    precision highp float;
    uniform sampler2D u_tex;
    varying vec2 v_texcoord;
    void main(void) {
      gl_FragColor = texture2D(u_tex, v_texcoord);
    }` + "\x00"
)

// HeatMapDisplay draws a heat map image one texel per pixel.
type HeatMapDisplay struct {
	size        Size
	vertices    [6]TileVertex
	tex         Texture
	program     Program
	a_position  int32
	a_texcoord  int32
	u_transform int32
	u_tex       int32
}

func CreateHeatMapDisplay() (*HeatMapDisplay, error) {
	program, err := CreateProgram(heatVertexShader, heatFragmentShader)
	if err != nil {
		return nil, err
	}
	tex, err := CreateTexture(gl.NEAREST)
	if err != nil {
		program.Close()
		return nil, err
	}
	return &HeatMapDisplay{
		tex:         tex,
		program:     program,
		a_position:  program.GetAttribLocation("a_position\x00"),
		a_texcoord:  program.GetAttribLocation("a_texcoord\x00"),
		u_transform: program.GetUniformLocation("u_transform\x00"),
		u_tex:       program.GetUniformLocation("u_tex\x00"),
	}, nil
}

// SetImage uploads img; it replaces the previous heat map.
func (hd *HeatMapDisplay) SetImage(img *image.RGBA) error {
	if err := hd.tex.Upload(img); err != nil {
		return err
	}
	hd.size = img.Bounds().Size()
	w, h := float32(hd.size.X), float32(hd.size.Y)
	hd.vertices = [6]TileVertex{
		{position: [2]float32{0, 0}, texcoord: [2]float32{0, 0}},
		{position: [2]float32{0, h}, texcoord: [2]float32{0, 1}},
		{position: [2]float32{w, h}, texcoord: [2]float32{1, 1}},
		{position: [2]float32{w, h}, texcoord: [2]float32{1, 1}},
		{position: [2]float32{w, 0}, texcoord: [2]float32{1, 0}},
		{position: [2]float32{0, 0}, texcoord: [2]float32{0, 0}},
	}
	return nil
}

// Render draws the heat map with its top left corner at origin.
func (hd *HeatMapDisplay) Render(origin Point) {
	if hd.size.X == 0 || hd.size.Y == 0 {
		return
	}
	hd.program.Use()
	gl.ActiveTexture(gl.TEXTURE0)
	hd.tex.Bind()
	gl.Uniform1i(hd.u_tex, 0)
	gl.EnableVertexAttribArray(uint32(hd.a_position))
	gl.VertexAttribPointer(
		uint32(hd.a_position), 2, gl.FLOAT, false,
		int32(unsafe.Sizeof(TileVertex{})),
		gl.Ptr(&hd.vertices[0].position[0]))
	gl.EnableVertexAttribArray(uint32(hd.a_texcoord))
	gl.VertexAttribPointer(
		uint32(hd.a_texcoord), 2, gl.FLOAT, false,
		int32(unsafe.Sizeof(TileVertex{})),
		gl.Ptr(&hd.vertices[0].texcoord[0]))
	mTransform := pixelTransform(origin)
	gl.UniformMatrix4fv(hd.u_transform, 1, false, &mTransform[0])
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(hd.vertices)))
	gl.DisableVertexAttribArray(uint32(hd.a_position))
	gl.DisableVertexAttribArray(uint32(hd.a_texcoord))
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

func (hd *HeatMapDisplay) Close() error {
	hd.tex.Close()
	return hd.program.Close()
}
