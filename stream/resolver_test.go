package stream

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, width int, c color.Color) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, 2))
	for x := 0; x < width; x++ {
		img.Set(x, 0, c)
		img.Set(x, 1, color.Black)
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestLibrary_Resolve(t *testing.T) {
	f := NewFrame(3)
	lib := Library{"a": f, "nil": nil}

	got, ok := lib.Resolve("a")
	assert.True(t, ok)
	assert.Same(t, f, got)

	_, ok = lib.Resolve("nil")
	assert.False(t, ok)

	_, ok = lib.Resolve("missing")
	assert.False(t, ok)
}

func TestFirstOf_TakesFirstMatch(t *testing.T) {
	first := NewFrame(1)
	second := NewFrame(1)
	var asked []string
	spy := ResolverFunc(func(name string) (*Frame, bool) {
		asked = append(asked, name)
		return nil, false
	})

	r := FirstOf(spy, nil, Library{"x": first}, Library{"x": second, "y": second})

	got, ok := r.Resolve("x")
	assert.True(t, ok)
	assert.Same(t, first, got)

	got, ok = r.Resolve("y")
	assert.True(t, ok)
	assert.Same(t, second, got)

	_, ok = r.Resolve("z")
	assert.False(t, ok)
	assert.Equal(t, []string{"x", "y", "z"}, asked)
}

func TestFirstOf_Empty(t *testing.T) {
	_, ok := FirstOf().Resolve("x")
	assert.False(t, ok)
}

func TestDirResolver_DecodesTopRow(t *testing.T) {
	fsys := fstest.MapFS{
		"frame_0.png": {Data: encodePNG(t, 4, color.NRGBA{R: 255, A: 255})},
	}
	r := NewDirResolver(fsys, 0)

	f, ok := r.Resolve("frame_0")

	require.True(t, ok)
	require.Equal(t, 4, f.Len())
	for i := 0; i < f.Len(); i++ {
		r, g, b := f.Pixel(i).RGB255()
		assert.Equal(t, [3]uint8{255, 0, 0}, [3]uint8{r, g, b})
	}
}

func TestDirResolver_ResizesToWidth(t *testing.T) {
	fsys := fstest.MapFS{
		"frame_0.png": {Data: encodePNG(t, 4, color.NRGBA{G: 255, A: 255})},
	}
	r := NewDirResolver(fsys, 10)

	f, ok := r.Resolve("frame_0")

	require.True(t, ok)
	assert.Equal(t, 10, f.Len())
}

func TestDirResolver_ExtensionFallback(t *testing.T) {
	fsys := fstest.MapFS{
		"a.jpeg":    {Data: encodePNG(t, 2, color.White)},
		"b.png":     {Data: []byte("not an image")},
		"b.jpg":     {Data: encodePNG(t, 3, color.White)},
		"c.png":     {Data: []byte("not an image")},
		"d.bmp":     {Data: encodePNG(t, 2, color.White)},
		"dir/e.png": {Data: encodePNG(t, 5, color.White)},
	}
	r := NewDirResolver(fsys, 0)

	f, ok := r.Resolve("a")
	require.True(t, ok, "falls through to .jpeg")
	assert.Equal(t, 2, f.Len())

	f, ok = r.Resolve("b")
	require.True(t, ok, "skips undecodable .png")
	assert.Equal(t, 3, f.Len())

	_, ok = r.Resolve("c")
	assert.False(t, ok)

	_, ok = r.Resolve("d")
	assert.False(t, ok)

	f, ok = r.Resolve("dir/e")
	require.True(t, ok)
	assert.Equal(t, 5, f.Len())
}

func TestDirResolver_TransparentPixelsAreBlack(t *testing.T) {
	fsys := fstest.MapFS{
		"clear.png": {Data: encodePNG(t, 2, color.NRGBA{R: 255})},
	}
	f, ok := NewDirResolver(fsys, 0).Resolve("clear")

	require.True(t, ok)
	assert.Equal(t, colorful.Color{}, f.Pixel(0))
}

func TestNewPlayerFromNames_DirResolver(t *testing.T) {
	fsys := fstest.MapFS{
		"burst_0.png": {Data: encodePNG(t, 2, color.White)},
		"burst_2.png": {Data: encodePNG(t, 2, color.White)},
	}
	rec := newRecorder(nil)

	p := NewPlayerFromNames(NewDirResolver(fsys, 0), "burst_", 4, rec)

	assert.Equal(t, 2, p.Len())
	assert.Equal(t, 1, rec.Len())
}
