package main

import (
	"io"
	"os"
)

const version = "0.1.0"

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}

// readFromStdin reads all input from stdin.
func readFromStdin() (string, error) {
	bytes, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// readFromFile reads the contents of a file.
func readFromFile(filename string) (string, error) {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// readInput reads from filename, or from stdin when filename is empty.
func readInput(filename string) (string, error) {
	if filename == "" {
		return readFromStdin()
	}
	return readFromFile(filename)
}
