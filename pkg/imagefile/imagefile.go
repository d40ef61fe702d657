// Package imagefile reports image metadata without decoding pixels.
//
// image.DecodeConfig reads just enough of the header to learn the
// format, dimensions, and color model, so asking about a 50 MB photo
// costs a few hundred bytes of I/O. PNG, JPEG, and GIF decoders are
// registered; other formats are rejected.
package imagefile

import (
	"image"
	"image/color"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	apperrors "github.com/datapeek/datapeek/pkg/errors"
	"github.com/datapeek/datapeek/pkg/source"
)

// Info describes an image file from its header.
type Info struct {
	Format     string `json:"format"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	ColorModel string `json:"color_model"`
}

// Describe reads the image header at path.
func Describe(path string) (*Info, error) {
	src, err := source.Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	cfg, format, err := image.DecodeConfig(src)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeParse, err, "failed to decode image header of %s", path)
	}

	return &Info{
		Format:     format,
		Width:      cfg.Width,
		Height:     cfg.Height,
		ColorModel: modelName(cfg.ColorModel),
	}, nil
}

func modelName(m color.Model) string {
	switch m {
	case color.RGBAModel:
		return "rgba"
	case color.RGBA64Model:
		return "rgba64"
	case color.NRGBAModel:
		return "nrgba"
	case color.NRGBA64Model:
		return "nrgba64"
	case color.GrayModel:
		return "gray"
	case color.Gray16Model:
		return "gray16"
	case color.YCbCrModel:
		return "ycbcr"
	case color.CMYKModel:
		return "cmyk"
	}
	if _, ok := m.(color.Palette); ok {
		return "paletted"
	}
	return "unknown"
}
