package main

import "github.com/alexiusacademia/godiag/cmd"

func main() {
	cmd.Execute()
}
