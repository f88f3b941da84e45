package main

import (
	"unsafe"

	gl "github.com/go-gl/gl/v3.1/gles2"

	"github.com/cellux/gradnoise/internal/glyphs"
)

const (
	tileVertexShader = `
    precision highp float;
    attribute vec2 a_position;
    attribute vec2 a_texcoord;
    uniform mat4 u_transform;
    varying vec2 v_texcoord;
    void main(void) {
      gl_Position = u_transform * vec4(a_position, 0.0, 1.0);
      v_texcoord = a_texcoord;
    }` + "\x00"
	tileFragmentShader = `
    precision highp float;
    uniform sampler2D u_tex;
    uniform vec4 u_color;
    varying vec2 v_texcoord;
    void main(void) {
      gl_FragColor = vec4(u_color.rgb, u_color.a * texture2D(u_tex, v_texcoord).a);
    }` + "\x00"
)

type TileVertex struct {
	position [2]float32
	texcoord [2]float32
}

// TileMap is a glyph atlas uploaded as a texture.
type TileMap struct {
	atlas       *glyphs.Atlas
	tex         Texture
	program     Program
	a_position  int32
	a_texcoord  int32
	u_transform int32
	u_tex       int32
	u_color     int32
}

// TileDrawList batches glyph quads positioned in framebuffer pixels.
type TileDrawList struct {
	tm       *TileMap
	vertices []TileVertex
}

func CreateTileMap(atlas *glyphs.Atlas) (*TileMap, error) {
	program, err := CreateProgram(tileVertexShader, tileFragmentShader)
	if err != nil {
		return nil, err
	}
	tex, err := CreateTexture(gl.LINEAR)
	if err != nil {
		program.Close()
		return nil, err
	}
	if err := tex.Upload(atlas.Image); err != nil {
		tex.Close()
		program.Close()
		return nil, err
	}
	tm := &TileMap{
		atlas:       atlas,
		tex:         tex,
		program:     program,
		a_position:  program.GetAttribLocation("a_position\x00"),
		a_texcoord:  program.GetAttribLocation("a_texcoord\x00"),
		u_transform: program.GetUniformLocation("u_transform\x00"),
		u_tex:       program.GetUniformLocation("u_tex\x00"),
		u_color:     program.GetUniformLocation("u_color\x00"),
	}
	return tm, nil
}

func (tm *TileMap) GetTileSize() Size {
	return tm.atlas.Cell
}

func (tm *TileMap) CreateDrawList() *TileDrawList {
	return &TileDrawList{
		tm:       tm,
		vertices: make([]TileVertex, 0, 6*1024),
	}
}

func (tdl *TileDrawList) Clear() {
	tdl.vertices = tdl.vertices[:0]
}

// DrawRune puts r with its top left corner at pixel (x, y). Runes the atlas
// does not hold leave a blank cell.
func (tdl *TileDrawList) DrawRune(x, y int, r rune) {
	s0, t0, s1, t1, ok := tdl.tm.atlas.TexCoords(r)
	if !ok {
		return
	}
	tileSize := tdl.tm.GetTileSize()
	x0 := float32(x)
	x1 := float32(x + tileSize.X)
	y0 := float32(y)
	y1 := float32(y + tileSize.Y)
	tdl.vertices = append(tdl.vertices,
		TileVertex{position: [2]float32{x0, y0}, texcoord: [2]float32{s0, t0}},
		TileVertex{position: [2]float32{x0, y1}, texcoord: [2]float32{s0, t1}},
		TileVertex{position: [2]float32{x1, y1}, texcoord: [2]float32{s1, t1}},
		TileVertex{position: [2]float32{x1, y1}, texcoord: [2]float32{s1, t1}},
		TileVertex{position: [2]float32{x1, y0}, texcoord: [2]float32{s1, t0}},
		TileVertex{position: [2]float32{x0, y0}, texcoord: [2]float32{s0, t0}},
	)
}

func (tdl *TileDrawList) DrawString(x, y int, s string) {
	w := tdl.tm.GetTileSize().X
	offset := 0
	for _, r := range s {
		tdl.DrawRune(x+offset*w, y, r)
		offset++
	}
}

func (tdl *TileDrawList) Render(color [4]float32) error {
	if len(tdl.vertices) == 0 {
		return nil
	}
	tm := tdl.tm
	tm.program.Use()
	gl.ActiveTexture(gl.TEXTURE0)
	tm.tex.Bind()
	gl.Uniform1i(tm.u_tex, 0)
	gl.Uniform4fv(tm.u_color, 1, &color[0])
	gl.EnableVertexAttribArray(uint32(tm.a_position))
	gl.VertexAttribPointer(
		uint32(tm.a_position), 2, gl.FLOAT, false,
		int32(unsafe.Sizeof(TileVertex{})),
		gl.Ptr(&tdl.vertices[0].position[0]))
	gl.EnableVertexAttribArray(uint32(tm.a_texcoord))
	gl.VertexAttribPointer(
		uint32(tm.a_texcoord), 2, gl.FLOAT, false,
		int32(unsafe.Sizeof(TileVertex{})),
		gl.Ptr(&tdl.vertices[0].texcoord[0]))
	mTransform := pixelTransform(Point{})
	gl.UniformMatrix4fv(tm.u_transform, 1, false, &mTransform[0])
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(tdl.vertices)))
	gl.Disable(gl.BLEND)
	gl.DisableVertexAttribArray(uint32(tm.a_position))
	gl.DisableVertexAttribArray(uint32(tm.a_texcoord))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return nil
}

func (tm *TileMap) Close() error {
	tm.tex.Close()
	return tm.program.Close()
}
