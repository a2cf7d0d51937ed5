package main

import "github.com/MeKo-Tech/scanbar/cmd/scanbar/cmd"

func main() {
	cmd.Execute()
}
