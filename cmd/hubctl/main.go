// Command hubctl manages the game hub collection from the terminal. It runs
// the same load and custom game pipeline as the desktop app.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := (&cli{out: os.Stdout}).execute(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
