// Package glview presents CPU-traced frames in a GLFW window. Each frame is
// uploaded into a texture and drawn as a full-screen quad.
package glview

import (
	"fmt"
	"log"
	"runtime"
	"time"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/DerNait/dioarama/internal/engine"
	"github.com/DerNait/dioarama/internal/scene"
)

func init() {
	// GLFW event handling must run on the main OS thread.
	runtime.LockOSThread()
}

const vertexShaderSource = `
#version 330 core
layout(location = 0) in vec2 position;
layout(location = 1) in vec2 texCoord;
out vec2 uv;
void main() {
	uv = texCoord;
	gl_Position = vec4(position, 0.0, 1.0);
}
`

const fragmentShaderSource = `
#version 330 core
in vec2 uv;
out vec4 fragColor;
uniform sampler2D tex;
void main() {
	fragColor = texture(tex, uv);
}
`

// Image rows start at the top, texture rows at the bottom.
var (
	quadVertices = []float32{-1, -1, 1, -1, -1, 1, 1, 1}
	texCoords    = []float32{0, 1, 1, 1, 0, 0, 1, 0}
)

// Run opens the window and renders the session until the window is closed.
// It must be called from the main goroutine.
func Run(sess *engine.Session, orbit scene.Orbit, scale int) error {
	cfg := sess.Config()
	if scale < 1 {
		scale = 1
	}

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	window, err := glfw.CreateWindow(cfg.Width*scale, cfg.Height*scale, engine.Caption, nil, nil)
	if err != nil {
		return fmt.Errorf("glfw create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}
	log.Printf("glview: OpenGL %s", gl.GoStr(gl.GetString(gl.VERSION)))

	program, err := buildProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return err
	}
	defer gl.DeleteProgram(program)

	vao := newQuad()
	tex := newTexture(cfg.Width, cfg.Height)

	dirty := true
	dragging := false
	var lastX, lastY float64
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft {
			return
		}
		dragging = action == glfw.Press
		if dragging {
			lastX, lastY = w.GetCursorPos()
		}
	})
	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		if !dragging {
			return
		}
		orbit.Drag(xpos-lastX, ypos-lastY)
		lastX, lastY = xpos, ypos
		dirty = true
	})
	window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		orbit.Zoom(yoff)
		dirty = true
	})
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		switch key {
		case glfw.KeyEscape:
			w.SetShouldClose(true)
		case glfw.KeyG:
			sess.Gamma = !sess.Gamma
			dirty = true
		case glfw.KeyZ:
			sess.ShowDepth = !sess.ShowDepth
			dirty = true
		}
	})

	var frames int
	var traceTime time.Duration
	lastTitle := time.Now()
	for !window.ShouldClose() {
		if dirty {
			img, elapsed, err := sess.RenderOrbit(orbit)
			if err != nil {
				return fmt.Errorf("render frame: %w", err)
			}
			gl.BindTexture(gl.TEXTURE_2D, tex)
			gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(cfg.Width), int32(cfg.Height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
			traceTime += elapsed
			frames++
			dirty = false
		}

		w, h := window.GetFramebufferSize()
		gl.Viewport(0, 0, int32(w), int32(h))
		gl.ClearColor(0, 0, 0, 1)
		gl.Clear(gl.COLOR_BUFFER_BIT)
		gl.UseProgram(program)
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, tex)
		gl.BindVertexArray(vao)
		gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)

		window.SwapBuffers()
		glfw.PollEvents()

		if since := time.Since(lastTitle); since >= time.Second {
			title := engine.Caption
			if frames > 0 {
				title = fmt.Sprintf("%s - %.1f ms/frame", engine.Caption, float64(traceTime.Microseconds())/1000/float64(frames))
			}
			window.SetTitle(title)
			frames, traceTime, lastTitle = 0, 0, time.Now()
		}
	}
	return nil
}

func newQuad() uint32 {
	var vao, vbo, tbo uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 0, nil)
	gl.EnableVertexAttribArray(0)

	gl.GenBuffers(1, &tbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, tbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(texCoords)*4, gl.Ptr(texCoords), gl.STATIC_DRAW)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, 0, nil)
	gl.EnableVertexAttribArray(1)
	return vao
}

// newTexture allocates an RGBA8 texture. NEAREST keeps traced pixels as blocks.
func newTexture(w, h int) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	return tex
}

func buildProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertex, err := compileShader(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex shader: %w", err)
	}
	defer gl.DeleteShader(vertex)
	fragment, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment shader: %w", err)
	}
	defer gl.DeleteShader(fragment)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertex)
	gl.AttachShader(program, fragment)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		msg := make([]byte, logLen+1)
		gl.GetProgramInfoLog(program, logLen, nil, &msg[0])
		return 0, fmt.Errorf("program link: %s", string(msg))
	}
	return program, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(src + "\x00")
	defer free()
	gl.ShaderSource(shader, 1, csources, nil)
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		msg := make([]byte, logLen+1)
		gl.GetShaderInfoLog(shader, logLen, nil, &msg[0])
		return 0, fmt.Errorf("shader compile: %s", string(msg))
	}
	return shader, nil
}
