package main

import "github.com/alexiusacademia/gosteel/cmd"

func main() {
	cmd.Execute()
}
