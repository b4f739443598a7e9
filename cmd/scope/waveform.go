package main

import (
	"math"
	"strings"
)

// renderBraille draws data (assumed roughly in [-1,1]) as a Braille-dot
// waveform spanning width*height cells, each cell holding 2x4 dots.
func renderBraille(width, height int, data []float32) string {
	if width <= 0 || height <= 0 || len(data) == 0 {
		return ""
	}

	fineW := width * 2
	fineH := height * 4

	sampleAt := func(p float64) float64 {
		if p <= 0 {
			return float64(data[0])
		}
		maxIdx := float64(len(data) - 1)
		if p >= maxIdx {
			return float64(data[len(data)-1])
		}
		i := int(math.Floor(p))
		f := p - float64(i)
		return float64(data[i])*(1-f) + float64(data[i+1])*f
	}

	const (
		dot1 = 0x01
		dot2 = 0x02
		dot3 = 0x04
		dot4 = 0x08
		dot5 = 0x10
		dot6 = 0x20
		dot7 = 0x40
		dot8 = 0x80
	)
	const brailleBase = 0x2800

	masks := make([]byte, width*height)

	span := float64(len(data) - 1)
	if span <= 0 {
		span = 1
	}

	for x := 0; x < fineW; x++ {
		p := (float64(x) / float64(fineW-1)) * span
		v := sampleAt(p)

		y := int(math.Round((1.0 - (v+1.0)/2.0) * float64(fineH-1)))
		if y < 0 {
			y = 0
		} else if y >= fineH {
			y = fineH - 1
		}

		cellCol := x >> 1
		cellRow := y >> 2
		inCol := x & 1
		inRow := y & 3

		var bit byte
		switch inRow {
		case 0:
			if inCol == 0 {
				bit = dot1
			} else {
				bit = dot4
			}
		case 1:
			if inCol == 0 {
				bit = dot2
			} else {
				bit = dot5
			}
		case 2:
			if inCol == 0 {
				bit = dot3
			} else {
				bit = dot6
			}
		default:
			if inCol == 0 {
				bit = dot7
			} else {
				bit = dot8
			}
		}

		masks[cellRow*width+cellCol] |= bit
	}

	var b strings.Builder
	b.Grow(height*width + (height - 1))
	for row := 0; row < height; row++ {
		base := row * width
		for col := 0; col < width; col++ {
			b.WriteRune(rune(brailleBase + int(masks[base+col])))
		}
		if row != height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
