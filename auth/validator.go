package auth

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type RoomRequest struct {
	Room     string `validate:"required,min=1,max=64"`
	JoinCode string `validate:"omitempty,min=4,max=72"`
}

func ValidateRoom(req RoomRequest) error {
	return validate.Struct(req)
}

type TokenRequest struct {
	Room          string `validate:"required,min=1,max=64"`
	JoinCode      string `validate:"omitempty,min=4,max=72"`
	ParticipantID string `validate:"required,min=1,max=64"`
	DisplayName   string `validate:"required,min=1,max=64"`
}

func ValidateToken(req TokenRequest) error {
	return validate.Struct(req)
}
