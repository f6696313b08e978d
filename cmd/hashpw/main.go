package main

import (
	"fmt"
	"os"

	"github.com/loopinhq/backend/internal/pkg/auth"
)

// hashpw prints a bcrypt hash of the given password, suitable for the
// ADMIN_PASSWORD setting. Without it the admin credential would
// have to be stored in plaintext.
func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <password>\n", os.Args[0])
		os.Exit(2)
	}

	hash, err := auth.HashPassword(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to hash password: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(hash)
}
