package port

import "context"

// ImagePreparer подготавливает фото этикетки перед отправкой на распознавание
type ImagePreparer interface {
	// Prepare возвращает изображение, пригодное для загрузки
	Prepare(ctx context.Context, imageData []byte) ([]byte, error)
}
