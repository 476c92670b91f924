package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/pfjetdev/pfgrouptravel/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

// Usage: generate-secrets [admin-password]
// Without an argument the password is read from stdin.
func main() {
	fmt.Println("===========================================")
	fmt.Println("Operator Secret Generator")
	fmt.Println("===========================================")
	fmt.Println()

	jwtSecret, err := utils.GenerateSecret(32)
	if err != nil {
		log.Fatalf("Failed to generate secrets: %v", err)
	}

	password := ""
	if len(os.Args) > 1 {
		password = os.Args[1]
	} else {
		fmt.Print("Operator password: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			log.Fatalf("Failed to read password: %v", err)
		}
		password = strings.TrimSpace(line)
	}
	if len(password) < 8 {
		log.Fatal("Password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	fmt.Println()
	fmt.Println("Add these to your .env file or deployment secrets:")
	fmt.Println()
	fmt.Printf("JWT_SECRET=%s\n", jwtSecret)
	fmt.Printf("ADMIN_PASSWORD_HASH=%s\n", hash)
	fmt.Println()
	fmt.Println("IMPORTANT: Keep these secrets safe and never commit them to version control!")
	fmt.Println("===========================================")
}
