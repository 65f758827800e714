package main

import (
	"github.com/joho/godotenv"

	"forumcli/internal/cli"
)

func main() {
	_ = godotenv.Load(".env")
	cli.Execute()
}
