package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type RealmAccess struct {
	Roles []string `json:"roles"`
}

type Claims struct {
	PreferredUsername string      `json:"preferred_username,omitempty"`
	BusinessID        string      `json:"businessId,omitempty"`
	RealmAccess       RealmAccess `json:"realm_access"`
	jwt.RegisteredClaims
}

// Signs a development token with the RS256 private key matching JWT_PUBLIC_KEY.
func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	userID := flag.String("user", "", "Subject (Keycloak user id) of the token")
	username := flag.String("username", "", "preferred_username claim")
	roles := flag.String("roles", "", "Comma-separated list of realm roles")
	businessID := flag.String("business", "", "businessId claim")
	expirationHours := flag.Int("exp", 24, "Token expiration in hours")
	keyFile := flag.String("key", "", "PEM private key file (defaults to JWT_PRIVATE_KEY)")
	flag.Parse()

	if *userID == "" {
		*userID = uuid.NewString()
	}

	rolesList := []string{}
	if *roles != "" {
		for _, role := range strings.Split(*roles, ",") {
			if role = strings.TrimSpace(role); role != "" {
				rolesList = append(rolesList, role)
			}
		}
	}

	now := time.Now()
	claims := &Claims{
		PreferredUsername: *username,
		BusinessID:        *businessID,
		RealmAccess:       RealmAccess{Roles: rolesList},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   *userID,
			Issuer:    os.Getenv("JWT_ISSUER"),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(*expirationHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	pemKey, err := privateKeyPEM(*keyFile)
	if err != nil {
		log.Fatal(err)
	}

	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(pemKey)
	if err != nil {
		log.Fatalf("Error parsing private key: %v", err)
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(privateKey)
	if err != nil {
		log.Fatalf("Error signing token: %v", err)
	}

	fmt.Printf("Generated JWT Token:\n%s\n", tokenString)
}

func privateKeyPEM(path string) ([]byte, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error reading private key: %w", err)
		}
		return data, nil
	}

	key := strings.ReplaceAll(os.Getenv("JWT_PRIVATE_KEY"), `\n`, "\n")
	if key == "" {
		return nil, fmt.Errorf("a private key is required: pass -key or set JWT_PRIVATE_KEY")
	}
	return []byte(key), nil
}
