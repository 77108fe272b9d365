package entity

import (
	"errors"
	"fmt"
)

// Классы ошибок сценариев
var (
	ErrLocalValidation = errors.New("local validation failure") // запрос не отправлялся
	ErrSemantic        = errors.New("semantic failure")         // ответ получен, но сообщает об ошибке
	ErrTransport       = errors.New("transport failure")        // сеть, тело ответа не JSON
)

// ResultKind исход сценария
type ResultKind string

const (
	ResultSuccess         ResultKind = "success"
	ResultLocalValidation ResultKind = "local_validation_failure"
	ResultSemantic        ResultKind = "semantic_failure"
	ResultTransport       ResultKind = "transport_failure"
)

// Result итог одного запуска сценария.
type Result struct {
	Kind    ResultKind
	Message string // текст, показанный пользователю
}

func (r Result) OK() bool {
	return r.Kind == ResultSuccess
}

// Err переводит неуспешный исход в ошибку соответствующего класса.
func (r Result) Err() error {
	switch r.Kind {
	case ResultSuccess:
		return nil
	case ResultLocalValidation:
		return fmt.Errorf("%w: %s", ErrLocalValidation, r.Message)
	case ResultSemantic:
		return fmt.Errorf("%w: %s", ErrSemantic, r.Message)
	default:
		return fmt.Errorf("%w: %s", ErrTransport, r.Message)
	}
}
