package main

import "call-coaching-go/internal/cmd"

func main() {
	cmd.Execute()
}
