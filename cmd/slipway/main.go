package main

import (
	"github.com/joho/godotenv"
	"github.com/slipway-sh/slipway/cmd/slipway/cmd"
)

func main() {
	godotenv.Load()

	cmd.Run()
}
