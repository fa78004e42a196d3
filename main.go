package main

import "github.com/codesolver12/weight-loss-tracker/cmd/tracker"

func main() {
	tracker.Execute()
}
