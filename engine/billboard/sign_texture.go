package billboard

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/transform"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/rxhxm/rc-car-3d-experience/common"
)

var (
	signPanelColor  = color.RGBA{R: 24, G: 38, B: 64, A: 255}
	signBorderColor = color.RGBA{R: 240, G: 214, B: 90, A: 255}
	signTextColor   = color.RGBA{R: 250, G: 250, B: 250, A: 255}
)

// SignTexture rasterizes a text panel into staged RGBA texture data. The text
// is drawn with the built-in 7x13 face at native resolution, then upscaled
// with nearest-neighbor so the glyphs stay crisp, and finally run through a
// mild box blur to soften the upscaling stairsteps.
//
// Parameters:
//   - text: the label to draw, centered on the panel
//   - width: output texture width in pixels
//   - height: output texture height in pixels
//
// Returns:
//   - *common.TextureStagingData: the staged RGBA texture
func SignTexture(text string, width, height int) *common.TextureStagingData {
	if width < 8 {
		width = 8
	}
	if height < 8 {
		height = 8
	}

	face := basicfont.Face7x13
	textWidth := font.MeasureString(face, text).Ceil()

	// Native-resolution canvas sized to the text plus padding, drawn small
	// and scaled up afterwards.
	smallW := textWidth + 16
	smallH := face.Height + 12
	small := image.NewRGBA(image.Rect(0, 0, smallW, smallH))
	draw.Draw(small, small.Bounds(), image.NewUniform(signPanelColor), image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  small,
		Src:  image.NewUniform(signTextColor),
		Face: face,
		Dot:  fixed.P((smallW-textWidth)/2, (smallH+face.Ascent)/2-2),
	}
	d.DrawString(text)

	scaled := transform.Resize(small, width, height, transform.NearestNeighbor)
	softened := blur.Box(scaled, 0.8)

	out := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(out, out.Bounds(), softened, image.Point{}, draw.Src)
	drawBorder(out, 4)

	return &common.TextureStagingData{
		Pixels: out.Pix,
		Width:  uint32(width),
		Height: uint32(height),
	}
}

func drawBorder(img *image.RGBA, thickness int) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if x < b.Min.X+thickness || x >= b.Max.X-thickness ||
				y < b.Min.Y+thickness || y >= b.Max.Y-thickness {
				img.SetRGBA(x, y, signBorderColor)
			}
		}
	}
}
