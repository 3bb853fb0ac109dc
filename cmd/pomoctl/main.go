package main

import "github.com/SoarinFerret/pomodorod/cmd/pomoctl/arg"

func main() {
	arg.Execute()
}
