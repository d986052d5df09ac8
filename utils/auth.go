package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/emidigital/emi-crm/config"
	"github.com/emidigital/emi-crm/models"

	"github.com/dgrijalva/jwt-go"
)

var jwtSecret = []byte(config.LoadConfig().JWTKey)

// HashPassword hashes a password with SHA-256.
func HashPassword(password string) string {
	hash := sha256.Sum256([]byte(password))
	return hex.EncodeToString(hash[:])
}

// VerifyPassword checks a plaintext password against a stored hash.
func VerifyPassword(password string, hashedPassword string) bool {
	return HashPassword(password) == hashedPassword
}

// GenerateToken creates a signed JWT for a marketer account.
func GenerateToken(marketer models.Marketer) (string, error) {
	claims := jwt.MapClaims{
		"id":       marketer.ID.Hex(),
		"username": marketer.Username,
		"role":     string(marketer.Role),
		"exp":      time.Now().Add(time.Hour * 24 * 30).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		Logger.Error().Err(err).Msg("failed to sign token")
		return "", err
	}

	return tokenString, nil
}

// ParseToken parses and validates a JWT.
func ParseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("token tidak valid")
}

// IsAdmin reports whether the role may act across ownership boundaries.
func IsAdmin(role models.UserRole) bool {
	return role == models.UserRoleAdmin
}

// CanAccessRecord reports whether a user may read or mutate a record owned
// by ownerID. Records are owned exclusively by the marketer who created
// them unless a privileged role is acting.
func CanAccessRecord(userID string, role models.UserRole, ownerID string) bool {
	if IsAdmin(role) {
		return true
	}
	return userID == ownerID
}
