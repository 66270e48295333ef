package export

import (
	"errors"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"io"

	"github.com/san-kum/fortune/internal/viz"
)

var ErrNoFrames = errors.New("export: no frames recorded")

// Recorder collects canvas frames into an animated GIF.
type Recorder struct {
	scale  int
	delay  int
	frames []*image.Paletted
	delays []int
}

// NewRecorder returns a recorder that draws each sub-pixel as a scale x scale
// square and holds each frame for delay hundredths of a second.
func NewRecorder(scale, delay int) *Recorder {
	if scale < 1 {
		scale = 1
	}
	if delay < 1 {
		delay = 1
	}
	return &Recorder{scale: scale, delay: delay}
}

func (r *Recorder) Len() int { return len(r.frames) }

// Add rasterizes the canvas as the next frame.
func (r *Recorder) Add(c *viz.Canvas) {
	pw, ph := c.PixelSize()
	img := image.NewPaletted(image.Rect(0, 0, pw*r.scale, ph*r.scale), palette.Plan9)
	bg := uint8(img.Palette.Index(color.RGBA{0x0a, 0x0a, 0x0a, 0xff}))
	for i := range img.Pix {
		img.Pix[i] = bg
	}

	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			ink, ok := c.Ink(col, row)
			if !ok {
				continue
			}
			idx := uint8(img.Palette.Index(ink.Clamped()))
			if c.IsText(col, row) {
				if c.Glyph(col, row) == " " {
					if b, ok := c.Background(col, row); ok {
						r.fill(img, col*2, row*4, 2, 4, uint8(img.Palette.Index(b.Clamped())))
					}
					continue
				}
				r.fill(img, col*2, row*4+1, 2, 2, idx)
				continue
			}
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if c.Lit(col*2+dx, row*4+dy) {
						r.fill(img, col*2+dx, row*4+dy, 1, 1, idx)
					}
				}
			}
		}
	}

	r.frames = append(r.frames, img)
	r.delays = append(r.delays, r.delay)
}

// Hold stretches the last frame by extra hundredths of a second.
func (r *Recorder) Hold(extra int) {
	if n := len(r.delays); n > 0 && extra > 0 {
		r.delays[n-1] += extra
	}
}

func (r *Recorder) fill(img *image.Paletted, x, y, w, h int, idx uint8) {
	for py := y * r.scale; py < (y+h)*r.scale; py++ {
		for px := x * r.scale; px < (x+w)*r.scale; px++ {
			img.SetColorIndex(px, py, idx)
		}
	}
}

// Encode writes the recorded frames as a looping GIF.
func (r *Recorder) Encode(w io.Writer) error {
	if len(r.frames) == 0 {
		return ErrNoFrames
	}
	anim := gif.GIF{LoopCount: 0, Image: r.frames, Delay: r.delays}
	return gif.EncodeAll(w, &anim)
}
