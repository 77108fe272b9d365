// Package vision предобработка фото этикеток перед отправкой на распознавание.
package vision

const (
	DefaultMaxSide = 1600
	DefaultQuality = 90
)
