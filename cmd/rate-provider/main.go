package main

import (
	_ "currency-converter/docs"
	"currency-converter/internal/app"
	"log"
)

// @title           Currency Converter Rate Provider API
// @version         1.0
// @description     Фоновый процесс конвертера: курс пары со страницы котировок с кэшем на одну пару

// @host      localhost:8080
// @BasePath  /api/v1
func main() {
	app, err := app.NewRateProviderApp()
	if err != nil {
		log.Fatalf("Ошибка создания приложения: %v", err)
	}

	if err := app.BuildRateLayer(); err != nil {
		log.Fatalf("Ошибка сборки приложения: %v", err)
	}

	if err := app.Run(); err != nil {
		log.Fatalf("Ошибка при работе приложения: %v", err)
	}
}
