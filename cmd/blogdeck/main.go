package main

import (
	"blogdeck/internal/cmd"
)

func main() {
	cmd.Run()
}
