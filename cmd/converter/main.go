package main

import (
	"currency-converter/internal/app"
	"log"
	"os"
)

func main() {
	converterApp, err := app.NewConverterApp(os.Stdin, os.Stdout)
	if err != nil {
		log.Fatalf("converter: инициализация: %v", err)
	}

	if err := converterApp.Run(); err != nil {
		log.Fatalf("converter: %v", err)
	}
}
