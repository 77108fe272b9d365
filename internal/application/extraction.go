package app

import (
	"context"

	"label-bot/internal/domain/entity"
)

const (
	msgNoImage           = "Please upload an image first."
	msgExtracted         = "Ingredients extracted successfully!"
	msgExtractFailed     = "Extraction failed."
	msgExtractNetwork    = "Network error during extraction."
	msgExtractDisplayErr = "Failed to extract ingredients."
	extractedPrefix      = "Extracted Ingredients:\n"
)

// Extract распознаёт состав на прикреплённом фото.
// Без фото запрос не отправляется, прежний состав остаётся нетронутым.
func (c *Controller) Extract(ctx context.Context) entity.Result {
	s := c.session
	var image entity.LabelImage

	return Run(ctx, c.runner, s, Workflow[*entity.ExtractReply]{
		Name:    "extract",
		Trigger: s.Extract,
		Ready: func() bool {
			var ok bool
			image, ok = s.Image()
			return ok
		},
		NotReady: msgNoImage,
		Call: func(ctx context.Context) (*entity.ExtractReply, error) {
			return c.service.Extract(ctx, c.prepare(ctx, image))
		},
		Accept: func(r *entity.ExtractReply) (bool, string) {
			return r.OK, r.Message
		},
		Apply: func(r *entity.ExtractReply) {
			s.ReplaceIngredients(r.Ingredients)
			s.SetIngredientsText(extractedPrefix + entity.JoinTokens(r.Ingredients))
		},
		Reject: func(string) {
			s.SetIngredientsText(msgExtractDisplayErr)
		},
		Success: msgExtracted,
		Failure: func(message string) string {
			return withReason(msgExtractFailed, message)
		},
		Network: msgExtractNetwork,
	})
}

// withReason дописывает к общему тексту причину от сервера, если она есть.
func withReason(generic, reason string) string {
	if reason == "" {
		return generic
	}
	return generic[:len(generic)-1] + ": " + reason
}
