// Command hashcode prompts for an access code and prints its argon2id hash.
//
// Useful for repairing a calendar's codes directly in SQLite when the admin
// code is lost:
//
//	go run ./cmd/hashcode
//	sqlite3 data/adventcal.db "UPDATE calendars SET admin_code_hash='<hash>' WHERE slug='...'"
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/instantcheese/adventcal/internal/auth"
)

func main() {
	code, err := readCode()
	if err != nil {
		fmt.Fprintf(os.Stderr, "read code: %v\n", err)
		os.Exit(1)
	}

	if code == "" {
		fmt.Fprintln(os.Stderr, "empty code, nothing to hash")
		os.Exit(1)
	}

	hash, err := auth.HashCode(code)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash code: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(hash)
}

// readCode reads the code without echo when stdin is a terminal, falling
// back to a plain line read when input is piped in.
func readCode() (string, error) {
	fd := int(os.Stdin.Fd())

	if term.IsTerminal(fd) {
		fmt.Fprint(os.Stderr, "Code: ")
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(raw)), nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
