//go:build gocv
// +build gocv

package vision

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"label-bot/internal/domain/port"
)

// LabelPreparer готовит фото этикетки к распознаванию:
// уменьшает, переводит в серый и перекодирует в JPEG.
type LabelPreparer struct {
	MaxSide int
	Quality int
}

// NewLabelPreparer создаёт препроцессор с ограничением на длинную сторону.
func NewLabelPreparer(maxSide int) *LabelPreparer {
	if maxSide <= 0 {
		maxSide = DefaultMaxSide
	}
	return &LabelPreparer{
		MaxSide: maxSide,
		Quality: DefaultQuality,
	}
}

// Prepare возвращает обработанные байты изображения.
func (p *LabelPreparer) Prepare(ctx context.Context, imageData []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mat, err := decodeToMat(imageData)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	// Крупные фото с телефона уменьшаем: OCR они не помогают, а загрузка дольше.
	if mat.Cols() > p.MaxSide || mat.Rows() > p.MaxSide {
		scale := float64(p.MaxSide) / float64(max(mat.Cols(), mat.Rows()))
		newW := int(float64(mat.Cols()) * scale)
		newH := int(float64(mat.Rows()) * scale)
		resized := gocv.NewMat()
		gocv.Resize(mat, &resized, image.Pt(newW, newH), 0, 0, gocv.InterpolationArea)
		mat.Close()
		mat = resized
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(mat, &gray, gocv.ColorBGRToGray)

	buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, gray, []int{int(gocv.IMWriteJpegQuality), p.Quality})
	if err != nil {
		return nil, fmt.Errorf("encode label: %w", err)
	}
	defer buf.Close()

	return bytes.Clone(buf.GetBytes()), nil
}

// decodeToMat превращает байты изображения в gocv.Mat.
func decodeToMat(imageData []byte) (gocv.Mat, error) {
	mat, err := gocv.IMDecode(imageData, gocv.IMReadColor)
	if err == nil && !mat.Empty() {
		return mat, nil
	}
	if !mat.Empty() {
		mat.Close()
	}
	return gocv.NewMat(), errors.New("failed to decode image")
}

// Проверка реализации интерфейса
var _ port.ImagePreparer = (*LabelPreparer)(nil)
