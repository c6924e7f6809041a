package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"watchroom/errors"
)

func Test_TokenManager_Roundtrip(t *testing.T) {
	req := require.New(t)
	manager := NewTokenManager("test-secret", time.Hour)

	// Given a token issued for alice in r1
	token, err := manager.Generate("alice", "Alice", "r1")
	req.NoError(err)
	req.NotEmpty(token)

	// Then validation yields the same claims
	claims, err := manager.Validate(token)
	req.NoError(err)
	req.Equal("alice", claims.ParticipantID)
	req.Equal("Alice", claims.DisplayName)
	req.Equal("r1", claims.Room)
	req.Equal("watchroom", claims.Issuer)
	req.Equal("r1", string(claims.RoomID()))
}

func Test_TokenManager_Rejects_Expired_Tokens(t *testing.T) {
	req := require.New(t)
	manager := NewTokenManager("test-secret", -time.Minute)

	token, err := manager.Generate("alice", "Alice", "r1")
	req.NoError(err)

	_, err = manager.Validate(token)
	req.Error(err)
}

func Test_TokenManager_Rejects_Foreign_Signatures(t *testing.T) {
	req := require.New(t)
	issuer := NewTokenManager("secret-a", time.Hour)
	verifier := NewTokenManager("secret-b", time.Hour)

	token, err := issuer.Generate("alice", "Alice", "r1")
	req.NoError(err)

	_, err = verifier.Validate(token)
	req.Error(err)
}

func Test_TokenManager_Rejects_Garbage(t *testing.T) {
	req := require.New(t)
	manager := NewTokenManager("test-secret", time.Hour)

	_, err := manager.Validate("not.a.token")
	req.Error(err)
}

func Test_JoinCode_Hash_And_Compare(t *testing.T) {
	req := require.New(t)

	hash, err := HashJoinCode("open-sesame")
	req.NoError(err)
	req.NotContains(hash, "open-sesame")

	// Then the right code matches and the wrong one does not
	ok, err := CompareJoinCode("open-sesame", hash)
	req.NoError(err)
	req.True(ok)

	ok, err = CompareJoinCode("wrong-code", hash)
	req.NoError(err)
	req.False(ok)
}

func Test_JoinCode_Hashes_Are_Salted(t *testing.T) {
	req := require.New(t)

	first, err := HashJoinCode("open-sesame")
	req.NoError(err)
	second, err := HashJoinCode("open-sesame")
	req.NoError(err)

	// Same code, different salt, different hash
	req.NotEqual(first, second)
}

func Test_JoinCode_Rejects_Malformed_Hashes(t *testing.T) {
	req := require.New(t)

	_, err := CompareJoinCode("whatever", "not-an-argon2-hash")
	req.ErrorIs(err, errors.ErrInvalidHash)
}
