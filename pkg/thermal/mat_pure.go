//go:build purego || js

package thermal

import (
	"errors"
	"fmt"
	"image"
	"math"
)

// Backend names the image-processing implementation compiled in.
const Backend = "purego"

var errEmptyMat = errors.New("empty mat")

// Mat is a pure Go 8-bit image held as float32 samples, channels interleaved.
// Every operation rounds and clamps its output to [0, 255] the way OpenCV does
// for CV_8U, so the stages compose the same way on both backends.
type Mat struct {
	data     []float32
	rows     int
	cols     int
	channels int
}

func NewMat() Mat { return Mat{} }

func newMatWithSize(rows, cols, channels int) Mat {
	return Mat{data: make([]float32, rows*cols*channels), rows: rows, cols: cols, channels: channels}
}

func (m Mat) Rows() int     { return m.rows }
func (m Mat) Cols() int     { return m.cols }
func (m Mat) Channels() int { return m.channels }
func (m Mat) Empty() bool   { return m.data == nil || m.rows == 0 || m.cols == 0 }

func (m *Mat) Close() {
	m.data = nil
	m.rows = 0
	m.cols = 0
}

func matFromGray(g *image.Gray) (Mat, error) {
	g = compactGray(g)
	m := newMatWithSize(g.Rect.Dy(), g.Rect.Dx(), 1)
	for i, v := range g.Pix {
		m.data[i] = float32(v)
	}
	return m, nil
}

func (m Mat) toGray() *image.Gray {
	g := image.NewGray(image.Rect(0, 0, m.cols, m.rows))
	for i := range g.Pix {
		g.Pix[i] = saturate(m.data[i])
	}
	return g
}

// toRGBA converts a 3-channel RGB Mat.
func (m Mat) toRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, m.cols, m.rows))
	for i, j := 0, 0; i+2 < len(m.data); i, j = i+3, j+4 {
		img.Pix[j] = saturate(m.data[i])
		img.Pix[j+1] = saturate(m.data[i+1])
		img.Pix[j+2] = saturate(m.data[i+2])
		img.Pix[j+3] = 0xff
	}
	return img
}

func saturate(v float32) uint8 {
	r := math.Round(float64(v))
	if r < 0 {
		return 0
	}
	if r > 255 {
		return 255
	}
	return uint8(r)
}

// --- Pure Go CV operations ---

// reflectIndex maps an out-of-range index back into [0, size) mirroring about
// the edge pixel (gfedcb|abcdefgh|gfedcba).
func reflectIndex(idx, size int) int {
	if size == 1 {
		return 0
	}
	if idx < 0 {
		idx = -idx
	}
	for idx >= size {
		idx = 2*size - 2 - idx
		if idx < 0 {
			idx = -idx
		}
	}
	return idx
}

func clampIndex(idx, size int) int {
	if idx < 0 {
		return 0
	}
	if idx >= size {
		return size - 1
	}
	return idx
}

// equalizeCLAHE is contrast-limited adaptive histogram equalization over a
// tiles x tiles grid with bilinear blending between neighbouring tile LUTs.
func equalizeCLAHE(src Mat, dst *Mat, clipLimit float64, tiles int) error {
	if src.Empty() {
		return fmt.Errorf("clahe: %w", errEmptyMat)
	}
	rows, cols := src.rows, src.cols
	tilesX, tilesY := min(tiles, cols), min(tiles, rows)
	tileW := (cols + tilesX - 1) / tilesX
	tileH := (rows + tilesY - 1) / tilesY
	tilesX = (cols + tileW - 1) / tileW
	tilesY = (rows + tileH - 1) / tileH

	limit := int(clipLimit * float64(tileW*tileH) / 256)
	if limit < 1 {
		limit = 1
	}

	luts := make([][256]float32, tilesX*tilesY)
	for ty := 0; ty < tilesY; ty++ {
		for tx := 0; tx < tilesX; tx++ {
			var hist [256]int
			n := 0
			for y := ty * tileH; y < min((ty+1)*tileH, rows); y++ {
				for x := tx * tileW; x < min((tx+1)*tileW, cols); x++ {
					hist[saturate(src.data[y*cols+x])]++
					n++
				}
			}

			excess := 0
			for i := range hist {
				if hist[i] > limit {
					excess += hist[i] - limit
					hist[i] = limit
				}
			}
			batch := excess / 256
			residual := excess - batch*256
			for i := range hist {
				hist[i] += batch
			}
			if residual > 0 {
				step := max(256/residual, 1)
				for i := 0; i < 256 && residual > 0; i += step {
					hist[i]++
					residual--
				}
			}

			scale := 255 / float64(n)
			lut := &luts[ty*tilesX+tx]
			sum := 0
			for i := range hist {
				sum += hist[i]
				lut[i] = float32(saturate(float32(float64(sum) * scale)))
			}
		}
	}

	out := newMatWithSize(rows, cols, 1)
	for y := 0; y < rows; y++ {
		fy := (float64(y)+0.5)/float64(tileH) - 0.5
		ty0 := int(math.Floor(fy))
		wy := float32(fy - float64(ty0))
		ty1 := clampIndex(ty0+1, tilesY)
		ty0 = clampIndex(ty0, tilesY)
		for x := 0; x < cols; x++ {
			fx := (float64(x)+0.5)/float64(tileW) - 0.5
			tx0 := int(math.Floor(fx))
			wx := float32(fx - float64(tx0))
			tx1 := clampIndex(tx0+1, tilesX)
			tx0 = clampIndex(tx0, tilesX)

			v := saturate(src.data[y*cols+x])
			top := (1-wx)*luts[ty0*tilesX+tx0][v] + wx*luts[ty0*tilesX+tx1][v]
			bottom := (1-wx)*luts[ty1*tilesX+tx0][v] + wx*luts[ty1*tilesX+tx1][v]
			out.data[y*cols+x] = float32(saturate((1-wy)*top + wy*bottom))
		}
	}
	*dst = out
	return nil
}

func lanczos(x float64, a int) float64 {
	if math.Abs(x) < 1e-9 {
		return 1
	}
	if math.Abs(x) >= float64(a) {
		return 0
	}
	px := math.Pi * x
	return float64(a) * math.Sin(px) * math.Sin(px/float64(a)) / (px * px)
}

// lanczos4Taps returns the first source index and normalized 8-tap weights
// for every destination coordinate along one axis.
func lanczos4Taps(srcSize, dstSize int) ([]int, [][8]float32) {
	scale := float64(srcSize) / float64(dstSize)
	base := make([]int, dstSize)
	weights := make([][8]float32, dstSize)
	for d := 0; d < dstSize; d++ {
		s := (float64(d)+0.5)*scale - 0.5
		i0 := int(math.Floor(s))
		t := s - float64(i0)
		var w [8]float64
		sum := 0.0
		for k := 0; k < 8; k++ {
			w[k] = lanczos(t+3-float64(k), 4)
			sum += w[k]
		}
		for k := 0; k < 8; k++ {
			weights[d][k] = float32(w[k] / sum)
		}
		base[d] = i0 - 3
	}
	return base, weights
}

func resizeLanczos4(src Mat, dst *Mat, width, height int) error {
	rows, cols := src.rows, src.cols
	xBase, xW := lanczos4Taps(cols, width)
	yBase, yW := lanczos4Taps(rows, height)

	temp := make([]float32, rows*width)
	for r := 0; r < rows; r++ {
		row := src.data[r*cols : (r+1)*cols]
		for c := 0; c < width; c++ {
			var sum float32
			for k := 0; k < 8; k++ {
				sum += row[clampIndex(xBase[c]+k, cols)] * xW[c][k]
			}
			temp[r*width+c] = sum
		}
	}

	out := newMatWithSize(height, width, 1)
	for r := 0; r < height; r++ {
		for c := 0; c < width; c++ {
			var sum float32
			for k := 0; k < 8; k++ {
				sum += temp[clampIndex(yBase[r]+k, rows)*width+c] * yW[r][k]
			}
			out.data[r*width+c] = float32(saturate(sum))
		}
	}
	*dst = out
	return nil
}

// bilateralFilter weights a circular d-wide neighbourhood by spatial distance
// and by intensity difference.
func bilateralFilter(src Mat, dst *Mat, d int, sigmaColor, sigmaSpace float64) error {
	rows, cols := src.rows, src.cols
	radius := d / 2
	spaceCoeff := -0.5 / (sigmaSpace * sigmaSpace)
	colorCoeff := -0.5 / (sigmaColor * sigmaColor)

	type tap struct {
		dy, dx int
		w      float32
	}
	var taps []tap
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			r2 := float64(dy*dy + dx*dx)
			if math.Sqrt(r2) > float64(radius) {
				continue
			}
			taps = append(taps, tap{dy, dx, float32(math.Exp(r2 * spaceCoeff))})
		}
	}
	var colorW [256]float32
	for i := range colorW {
		colorW[i] = float32(math.Exp(float64(i*i) * colorCoeff))
	}

	out := newMatWithSize(rows, cols, 1)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			center := src.data[y*cols+x]
			var sum, wsum float32
			for _, t := range taps {
				v := src.data[reflectIndex(y+t.dy, rows)*cols+reflectIndex(x+t.dx, cols)]
				diff := int(math.Abs(float64(v - center)))
				w := t.w * colorW[min(diff, 255)]
				sum += v * w
				wsum += w
			}
			out.data[y*cols+x] = float32(saturate(sum / wsum))
		}
	}
	*dst = out
	return nil
}

func getGaussianKernel1D(size int, sigma float64) []float32 {
	k := make([]float32, size)
	half := size / 2
	sum := 0.0
	for i := 0; i < size; i++ {
		x := float64(i - half)
		val := math.Exp(-x * x / (2 * sigma * sigma))
		k[i] = float32(val)
		sum += val
	}
	for i := range k {
		k[i] = float32(float64(k[i]) / sum)
	}
	return k
}

// sepFilter2DReflect convolves rows then columns with kernel k, channel by
// channel.
func sepFilter2DReflect(src Mat, dst *Mat, k []float32) {
	rows, cols, ch := src.rows, src.cols, src.channels
	stride := cols * ch
	half := len(k) / 2

	temp := make([]float32, rows*stride)
	for r := 0; r < rows; r++ {
		rowOff := r * stride
		for c := 0; c < cols; c++ {
			for z := 0; z < ch; z++ {
				var sum float32
				for i, kv := range k {
					sum += src.data[rowOff+reflectIndex(c+i-half, cols)*ch+z] * kv
				}
				temp[rowOff+c*ch+z] = sum
			}
		}
	}

	out := newMatWithSize(rows, cols, ch)
	rowOffs := make([]int, len(k))
	for r := 0; r < rows; r++ {
		for i := range k {
			rowOffs[i] = reflectIndex(r+i-half, rows) * stride
		}
		for j := 0; j < stride; j++ {
			var sum float32
			for i, kv := range k {
				sum += temp[rowOffs[i]+j] * kv
			}
			out.data[r*stride+j] = float32(saturate(sum))
		}
	}
	*dst = out
}

// gaussianBlur derives the kernel size from sigma the way OpenCV does for
// 8-bit images.
func gaussianBlur(src Mat, dst *Mat, sigma float64) error {
	size := int(math.Round(sigma*6+1)) | 1
	sepFilter2DReflect(src, dst, getGaussianKernel1D(size, sigma))
	return nil
}

func addWeighted(a Mat, alpha float64, b Mat, beta float64, dst *Mat) error {
	if a.Empty() {
		return fmt.Errorf("add weighted: %w", errEmptyMat)
	}
	if a.rows != b.rows || a.cols != b.cols || a.channels != b.channels {
		return fmt.Errorf("add weighted: size mismatch %dx%dx%d vs %dx%dx%d",
			a.cols, a.rows, a.channels, b.cols, b.rows, b.channels)
	}
	out := newMatWithSize(a.rows, a.cols, a.channels)
	for i := range out.data {
		out.data[i] = float32(saturate(float32(float64(a.data[i])*alpha + float64(b.data[i])*beta)))
	}
	*dst = out
	return nil
}

func applyColorMap(src Mat, dst *Mat, p Palette) error {
	if src.Empty() {
		return fmt.Errorf("apply colormap: %w", errEmptyMat)
	}
	if src.channels != 1 {
		return fmt.Errorf("apply colormap: want 1 channel, got %d", src.channels)
	}
	if p < 0 || int(p) >= len(ramps) {
		return fmt.Errorf("apply colormap: unknown palette %d", int(p))
	}
	lut := colormapLUT(p)
	out := newMatWithSize(src.rows, src.cols, 3)
	for i, v := range src.data {
		c := lut[saturate(v)]
		out.data[3*i] = float32(c[0])
		out.data[3*i+1] = float32(c[1])
		out.data[3*i+2] = float32(c[2])
	}
	*dst = out
	return nil
}
