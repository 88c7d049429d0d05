package main

import (
	"bufio"
	"fmt"
	"io"
)

// consoleUI drives prompts and messages over stdin/stdout.
type consoleUI struct {
	in  *bufio.Scanner
	out io.Writer
}

func (u *consoleUI) Prompt(label string) (string, bool) {
	fmt.Fprintf(u.out, "%s: ", label)
	if !u.in.Scan() {
		return "", false
	}
	return u.in.Text(), true
}

func (u *consoleUI) Say(msg string) {
	fmt.Fprintf(u.out, "· %s\n", msg)
}

func (u *consoleUI) Alert(msg string) {
	fmt.Fprintf(u.out, "! %s\n", msg)
}

func (u *consoleUI) Show(fragment string) {
	fmt.Fprint(u.out, fragment)
	if len(fragment) > 0 && fragment[len(fragment)-1] != '\n' {
		fmt.Fprintln(u.out)
	}
}
