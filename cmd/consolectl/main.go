package main

import "github.com/spec-kit/restaurant-console/cmd/consolectl/cmd"

func main() {
	cmd.Execute()
}
