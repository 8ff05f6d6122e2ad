package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Local runs keep their keys in .env; absence is fine.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
