package entity

import "sync"

// TriggerID идентификатор кнопки запуска сценария
type TriggerID string

const (
	TriggerExtract TriggerID = "extract"
	TriggerPredict TriggerID = "predict"
	TriggerSave    TriggerID = "save"
)

// Trigger кнопка сценария: на время запроса она занята и показывает другую подпись.
// Занятость защищает только от повторного нажатия, прямой вызов сценария она не блокирует.
type Trigger struct {
	mu        sync.Mutex
	id        TriggerID
	label     string
	busyLabel string
	busy      bool
}

// NewTrigger создаёт свободную кнопку.
func NewTrigger(id TriggerID, label, busyLabel string) *Trigger {
	return &Trigger{id: id, label: label, busyLabel: busyLabel}
}

func (t *Trigger) ID() TriggerID {
	return t.id
}

// MarkBusy блокирует кнопку и меняет подпись
func (t *Trigger) MarkBusy() {
	t.mu.Lock()
	t.busy = true
	t.mu.Unlock()
}

// TryMarkBusy занимает свободную кнопку. Возвращает false, если она уже занята.
func (t *Trigger) TryMarkBusy() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.busy {
		return false
	}
	t.busy = true
	return true
}

// MarkIdle возвращает кнопке исходную подпись
func (t *Trigger) MarkIdle() {
	t.mu.Lock()
	t.busy = false
	t.mu.Unlock()
}

func (t *Trigger) Busy() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.busy
}

// Label возвращает текущую подпись кнопки.
func (t *Trigger) Label() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.busy {
		return t.busyLabel
	}
	return t.label
}
