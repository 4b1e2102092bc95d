package main

import (
	"currency-converter/internal/app"
	"log"
)

func main() {
	historyApp, err := app.NewRateHistoryApp()
	if err != nil {
		log.Fatalf("rate-history: инициализация: %v", err)
	}

	if err := historyApp.Run(); err != nil {
		log.Fatalf("rate-history: %v", err)
	}
}
