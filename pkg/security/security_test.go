package security

import (
	"testing"
	"time"

	"review-service/internal/data/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUser() *entity.User {
	u := &entity.User{Username: "alice", Email: "alice@example.com", Role: entity.RoleUser}
	u.ID = uuid.New()
	return u
}

func TestTokenIssuer_MintVerify(t *testing.T) {
	issuer, err := NewTokenIssuer("test-secret", time.Hour)
	require.NoError(t, err)

	user := newUser()
	raw, expiresAt, err := issuer.Mint(user)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := issuer.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.ParsedUserID())
	assert.Equal(t, "alice", claims.Username)
	assert.NotEmpty(t, claims.ID)
}

func TestTokenIssuer_Rejects(t *testing.T) {
	issuer, err := NewTokenIssuer("test-secret", time.Hour)
	require.NoError(t, err)
	user := newUser()

	t.Run("wrong secret", func(t *testing.T) {
		other, err := NewTokenIssuer("other-secret", time.Hour)
		require.NoError(t, err)
		raw, _, err := other.Mint(user)
		require.NoError(t, err)

		_, err = issuer.Verify(raw)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		raw, _, err := issuer.Mint(user)
		require.NoError(t, err)

		later := *issuer
		later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err = later.Verify(raw)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("none algorithm", func(t *testing.T) {
		claims := &Claims{UserID: user.ID.String(), Username: user.Username}
		raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = issuer.Verify(raw)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := issuer.Verify("not-a-token")
		assert.Error(t, err)
	})
}

func TestNewTokenIssuer_Config(t *testing.T) {
	_, err := NewTokenIssuer("", time.Hour)
	assert.Error(t, err)
	_, err = NewTokenIssuer("s", 0)
	assert.Error(t, err)
}

func TestCodeGenerator_IssueCheck(t *testing.T) {
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	gen, err := NewCodeGenerator("secret", 72*time.Hour)
	require.NoError(t, err)
	gen = gen.WithClock(func() time.Time { return base })

	user := newUser()
	code := gen.Issue(user)

	assert.NoError(t, gen.Check(user, code))

	t.Run("other user", func(t *testing.T) {
		assert.ErrorIs(t, gen.Check(newUser(), code), ErrCodeMismatch)
	})

	t.Run("tampered", func(t *testing.T) {
		last := code[len(code)-1]
		flipped := byte('0')
		if last == '0' {
			flipped = '1'
		}
		assert.ErrorIs(t, gen.Check(user, code[:len(code)-1]+string(flipped)), ErrCodeMismatch)
	})

	t.Run("malformed", func(t *testing.T) {
		for _, c := range []string{"", "abc", "-", "zz-", "!!-00ff", "abc-zz"} {
			assert.ErrorIs(t, gen.Check(user, c), ErrCodeMalformed, c)
		}
	})

	t.Run("expired", func(t *testing.T) {
		late := gen.WithClock(func() time.Time { return base.Add(73 * time.Hour) })
		assert.ErrorIs(t, late.Check(user, code), ErrCodeExpired)
	})

	t.Run("invalidated by activation", func(t *testing.T) {
		activated := *user
		now := base.Add(time.Minute)
		activated.IsActive = true
		activated.LastLogin = &now
		assert.ErrorIs(t, gen.Check(&activated, code), ErrCodeMismatch)
	})

	t.Run("different secret", func(t *testing.T) {
		other, err := NewCodeGenerator("another", 72*time.Hour)
		require.NoError(t, err)
		assert.ErrorIs(t, other.Check(user, code), ErrCodeMismatch)
	})
}
