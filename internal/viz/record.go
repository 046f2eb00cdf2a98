package viz

import (
	"errors"
	"image"
	"image/color"
	"image/gif"
	"os"
)

var errNoFrames = errors.New("viz: no frames recorded")

// CaptureFrame rasterizes the braille canvas into a two-color image, one
// 4×4 block per dot.
func CaptureFrame(c *Canvas) *image.Paletted {
	charW, charH := 8, 16
	dotW, dotH := charW/2, charH/4
	img := image.NewPaletted(image.Rect(0, 0, c.Width*charW, c.Height*charH), color.Palette{color.Black, color.White})

	w, h := c.Dots()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !c.Dot(x, y) {
				continue
			}
			for py := 0; py < dotH; py++ {
				for px := 0; px < dotW; px++ {
					img.SetColorIndex(x*dotW+px, y*dotH+py, 1)
				}
			}
		}
	}
	return img
}

func SaveGIF(path string, frames []*image.Paletted, fps int) error {
	if len(frames) == 0 {
		return errNoFrames
	}
	delay := 100 / fps
	if delay < 2 {
		delay = 2
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, delay)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gif.EncodeAll(f, &anim)
}
