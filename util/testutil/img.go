package testutil

import (
	"fmt"
	"hash/crc32"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	"image/png"
	"os"
)

func OpenImage(filename string) (image.Image, string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()
	return image.Decode(f)
}

//----------

func ClearImg2(img draw.Image, c color.Color) {
	r := img.Bounds()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.Set(x, y, c)
		}
	}
}

//----------

// Checksum of the image colors (independent of the pixel layout).
func Checksum(img image.Image) uint32 {
	h := crc32.NewIEEE()
	b := img.Bounds()
	buf := make([]byte, 4)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			buf[0], buf[1], buf[2], buf[3] = c.R, c.G, c.B, c.A
			h.Write(buf)
		}
	}
	return h.Sum32()
}

//----------

func CompareImgs(img1, img2 image.Image) error {
	if img1.Bounds() != img2.Bounds() {
		return fmt.Errorf("bounds: %v %v", img1.Bounds(), img2.Bounds())
	}
	b1 := img1.Bounds()
	nFails := 0
	firstFail := image.Point{}
	for y := b1.Min.Y; y < b1.Max.Y; y++ {
		for x := b1.Min.X; x < b1.Max.X; x++ {
			c1 := color.NRGBAModel.Convert(img1.At(x, y))
			c2 := color.NRGBAModel.Convert(img2.At(x, y))
			if c1 != c2 {
				nFails++
				if nFails == 1 {
					firstFail = image.Point{x, y}
				}
			}
		}
	}
	if nFails > 0 {
		x, y := firstFail.X, firstFail.Y
		c1 := color.NRGBAModel.Convert(img1.At(x, y))
		c2 := color.NRGBAModel.Convert(img2.At(x, y))
		return fmt.Errorf("colors: xy=(%v,%v): %v %v (nfails: %v)", x, y, c1, c2, nFails)
	}
	return nil
}

// Saves the image as png in the given dir, useful to inspect failures.
func SavePng(img image.Image, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

//----------

// Region of img that differs from c.
func InkBounds(img image.Image, c color.Color) image.Rectangle {
	c1 := color.NRGBAModel.Convert(c)
	r := image.Rectangle{}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if color.NRGBAModel.Convert(img.At(x, y)) != c1 {
				r = r.Union(image.Rect(x, y, x+1, y+1))
			}
		}
	}
	return r
}
