package entity

// LabelImage фото этикетки, выбранное пользователем
type LabelImage struct {
	Name string
	Data []byte
}

// PredictRequest тело запроса оценки пригодности.
type PredictRequest struct {
	Ingredients []string `json:"ingredients"`
	Likes       []string `json:"likes"`
	Dislikes    []string `json:"dislikes"`
	Allergens   []string `json:"allergens"`
}

// ExtractReply ответ распознавания состава.
type ExtractReply struct {
	OK          bool // ответ содержит список ingredients
	Ingredients []string
	Message     string // текст ошибки от сервера, если есть
}

// PredictReply ответ оценки. Ноль тоже корректная оценка.
type PredictReply struct {
	OK      bool // поле suitability_score присутствует и числовое
	Score   float64
	Message string
}

// SaveReply ответ сохранения предпочтений.
type SaveReply struct {
	OK      bool // success == true
	Message string
}

// PreferencesReply ответ загрузки сохранённых предпочтений.
type PreferencesReply struct {
	OK          bool // success == true и есть все три списка
	Preferences Preferences
	Message     string
}
