//go:build !gocv
// +build !gocv

package vision

import (
	"context"

	"label-bot/internal/domain/port"
)

type LabelPreparer struct {
	MaxSide int
	Quality int
}

// NewLabelPreparer создаёт препроцессор-заглушку (без OpenCV).
func NewLabelPreparer(maxSide int) *LabelPreparer {
	if maxSide <= 0 {
		maxSide = DefaultMaxSide
	}
	return &LabelPreparer{
		MaxSide: maxSide,
		Quality: DefaultQuality,
	}
}

// Prepare без тега gocv отдаёт изображение как есть.
func (p *LabelPreparer) Prepare(ctx context.Context, imageData []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return imageData, nil
}

var _ port.ImagePreparer = (*LabelPreparer)(nil)
