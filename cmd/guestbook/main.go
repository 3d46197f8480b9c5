package main

import "github.com/anoveskey1/evbpmusic-backend/internal/cli"

func main() {
	cli.Execute()
}
