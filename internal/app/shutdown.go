package app

import (
	"log/slog"
)

// closeStep один шаг остановки приложения.
type closeStep struct {
	name string
	fn   func() error
}

// closeAll выполняет шаги по порядку; ошибка шага логируется и не прерывает остальные.
func closeAll(log *slog.Logger, steps ...closeStep) {
	for _, step := range steps {
		if step.fn == nil {
			continue
		}
		log.Info("остановка", slog.String("component", step.name))
		if err := step.fn(); err != nil {
			log.Error("ошибка при остановке",
				slog.String("component", step.name),
				slog.String("error", err.Error()))
		}
	}
}
