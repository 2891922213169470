package config

import "github.com/joho/godotenv"

// loadDotEnv loads a .env file from the working directory if present.
// A missing file is not an error; the process is expected to run with
// real environment variables in production.
func loadDotEnv() {
	_ = godotenv.Load()
}
