package app

import (
	"context"
	"strconv"

	"label-bot/internal/domain/entity"
)

const (
	msgScored         = "Suitability score calculated!"
	msgPredictFailed  = "Prediction failed."
	msgPredictNetwork = "Network error during prediction."
)

// Predict запрашивает оценку пригодности извлечённого состава под предпочтения.
// До первого распознавания состав пуст, запрос всё равно уходит.
func (c *Controller) Predict(ctx context.Context) entity.Result {
	s := c.session

	return Run(ctx, c.runner, s, Workflow[*entity.PredictReply]{
		Name:    "predict",
		Trigger: s.Predict,
		Call: func(ctx context.Context) (*entity.PredictReply, error) {
			prefs := s.Fields().Parse()
			return c.service.Predict(ctx, entity.PredictRequest{
				Ingredients: s.Ingredients(),
				Likes:       prefs.Likes,
				Dislikes:    prefs.Dislikes,
				Allergens:   prefs.Allergens,
			})
		},
		Accept: func(r *entity.PredictReply) (bool, string) {
			return r.OK, r.Message
		},
		Apply: func(r *entity.PredictReply) {
			s.SetScoreText("Suitability Score: " + FormatScore(r.Score))
		},
		Reject: func(message string) {
			if message == "" {
				message = msgPredictFailed
			}
			s.SetScoreText("Error: " + message)
		},
		Success: msgScored,
		Failure: func(string) string {
			return msgPredictFailed
		},
		Network: msgPredictNetwork,
	})
}

// FormatScore печатает оценку без лишних нулей: 0, 87.5, 42.13.
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}
