package main

import (
	"fmt"
	"os"
)

// tuiMode controls whether the live progress view runs during a check.
type tuiMode int

const (
	tuiAuto tuiMode = iota
	tuiOn
	tuiOff
)

func parseTUIMode(s string) (tuiMode, error) {
	switch s {
	case "", "auto":
		return tuiAuto, nil
	case "on":
		return tuiOn, nil
	case "off":
		return tuiOff, nil
	}
	return tuiAuto, fmt.Errorf("unknown ui mode %q: want auto, on or off", s)
}

// enabled resolves auto against whether stdout is a terminal.
func (m tuiMode) enabled() bool {
	if m == tuiAuto {
		return isTerminal(os.Stdout)
	}
	return m == tuiOn
}
