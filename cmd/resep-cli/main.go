package main

import "github.com/zfogg/resep/internal/cmd"

func main() {
	cmd.Execute()
}
