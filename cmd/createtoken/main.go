package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"mybtp.com/mybtp/security"
)

func main() {
	id := flag.Uint("id", 1, "employee id")
	email := flag.String("email", "", "employee email")
	name := flag.String("name", "", "full name")
	userType := flag.String("type", "Administrateur", "user type")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	secret := os.Getenv("MYBTP_JWT_SECRET")
	if secret == "" {
		log.Fatal("MYBTP_JWT_SECRET is not set")
	}

	token, err := security.CreateIdentityToken(&security.Identity{
		ID:       *id,
		FullName: *name,
		Email:    *email,
		UserType: *userType,
	}, secret, *ttl)
	if err != nil {
		log.Fatalf("failed to create token: %v", err)
	}
	fmt.Println(token)
}
