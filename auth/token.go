package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"watchroom/domain"
	"watchroom/errors"
)

// RoomClaims defines the structure of the data stored inside the JWT.
// A token authorizes exactly one participant in exactly one room.
type RoomClaims struct {
	ParticipantID string `json:"participant_id"`
	DisplayName   string `json:"display_name"`
	Room          string `json:"room"`
	jwt.RegisteredClaims
}

func (c *RoomClaims) RoomID() domain.RoomID { return domain.RoomID(c.Room) }

// TokenManager issues and validates the room access tokens handed out
// on join and presented on the websocket upgrade.
type TokenManager struct {
	key      []byte
	duration time.Duration
}

func NewTokenManager(secret string, duration time.Duration) *TokenManager {
	return &TokenManager{key: []byte(secret), duration: duration}
}

// Generate creates a signed JWT for one participant in one room.
func (t *TokenManager) Generate(participantID, displayName string, room domain.RoomID) (string, error) {
	expirationTime := time.Now().Add(t.duration)

	claims := &RoomClaims{
		ParticipantID: participantID,
		DisplayName:   displayName,
		Room:          string(room),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "watchroom",
		},
	}

	// Create the token using the HS256 algorithm (HMAC with SHA256).
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	// Sign the token with the server's secret key.
	return token.SignedString(t.key)
}

// Validate parses and validates the signature and expiration of a JWT string.
func (t *TokenManager) Validate(tokenString string) (*RoomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &RoomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return t.key, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*RoomClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.ErrInvalidToken
}
