package stream

import (
	"image"
	_ "image/jpeg" // JPEG frames
	_ "image/png"  // PNG frames
	"io/fs"
	"log/slog"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
)

// A Resolver looks up a frame by name.
type Resolver interface {
	Resolve(name string) (*Frame, bool)
}

// ResolverFunc adapts a function to a Resolver.
type ResolverFunc func(name string) (*Frame, bool)

// Resolve calls fn(name).
func (fn ResolverFunc) Resolve(name string) (*Frame, bool) {
	return fn(name)
}

// Library is an in-memory set of named frames.
type Library map[string]*Frame

// Resolve returns the frame stored under name.
func (l Library) Resolve(name string) (*Frame, bool) {
	f, ok := l[name]
	return f, ok && f != nil
}

// FirstOf returns a Resolver that asks each resolver in turn and returns
// the first frame found.
func FirstOf(resolvers ...Resolver) Resolver {
	return ResolverFunc(func(name string) (*Frame, bool) {
		for _, r := range resolvers {
			if r == nil {
				continue
			}
			if f, ok := r.Resolve(name); ok {
				return f, true
			}
		}
		return nil, false
	})
}

// DefaultExtensions are the file extensions DirResolver tries, in order.
var DefaultExtensions = []string{".png", ".jpg", ".jpeg"}

// DirResolver loads frames from image files. The top row of each image is
// scaled to Width pixels; a zero Width keeps the image's own width.
type DirResolver struct {
	FS         fs.FS
	Width      int
	Extensions []string
	Log        *slog.Logger
}

// NewDirResolver creates a DirResolver for fsys producing frames of width
// pixels.
func NewDirResolver(fsys fs.FS, width int) *DirResolver {
	return &DirResolver{
		FS:         fsys,
		Width:      width,
		Extensions: DefaultExtensions,
		Log:        slog.Default(),
	}
}

// Resolve loads name plus the first extension that exists and decodes.
func (d *DirResolver) Resolve(name string) (*Frame, bool) {
	attempts := make([]Resolver, 0, len(d.Extensions))
	for _, ext := range d.Extensions {
		attempts = append(attempts, ResolverFunc(func(string) (*Frame, bool) {
			return d.load(name + ext)
		}))
	}
	return FirstOf(attempts...).Resolve(name)
}

func (d *DirResolver) load(path string) (*Frame, bool) {
	file, err := d.FS.Open(path)
	if err != nil {
		return nil, false
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		d.logger().Debug("skipping undecodable frame", "path", path, "error", err)
		return nil, false
	}
	return imageToFrame(img, d.Width), true
}

func (d *DirResolver) logger() *slog.Logger {
	if d.Log == nil {
		return slog.Default()
	}
	return d.Log
}

// imageToFrame takes the top row of img as a strip of width pixels.
func imageToFrame(img image.Image, width int) *Frame {
	b := img.Bounds()
	if width > 0 && width != b.Dx() {
		img = resize.Resize(uint(width), uint(max(b.Dy(), 1)), img, resize.Lanczos3)
		b = img.Bounds()
	}

	f := NewFrame(b.Dx())
	for x := 0; x < b.Dx(); x++ {
		// Fully transparent pixels stay black.
		if c, ok := colorful.MakeColor(img.At(b.Min.X+x, b.Min.Y)); ok {
			f.pixels[x] = c
		}
	}
	return f
}
