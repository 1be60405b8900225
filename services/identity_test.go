package services

import (
	"context"
	"testing"
	"time"

	apperrors "restaurante360/errors"
	"restaurante360/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalProviderUsesItsClock(t *testing.T) {
	ctx := context.Background()
	user := &models.User{ID: "u-1", Email: "ana@restaurante.com", Role: "garcon"}

	for _, offset := range []time.Duration{2 * time.Hour, -48 * time.Hour, 24 * 365 * time.Hour} {
		t.Run(offset.String(), func(t *testing.T) {
			at := time.Now().Add(offset)
			p := NewLocalProvider("segredo", time.Hour, func() time.Time { return at })

			token, err := p.IssueToken(user)
			require.NoError(t, err)
			identity, err := p.Verify(ctx, token)
			require.NoError(t, err)
			assert.Equal(t, "u-1", identity.UID)
			assert.Equal(t, "ana@restaurante.com", identity.Email)
		})
	}
}

func TestLocalProviderRejectsOutsideWindow(t *testing.T) {
	ctx := context.Background()
	user := &models.User{ID: "u-1", Email: "ana@restaurante.com"}
	at := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)
	p := NewLocalProvider("segredo", time.Hour, func() time.Time { return at })

	token, err := p.IssueToken(user)
	require.NoError(t, err)

	at = at.Add(2 * time.Hour)
	_, err = p.Verify(ctx, token)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidToken))

	at = time.Date(2029, 12, 31, 12, 0, 0, 0, time.UTC)
	_, err = p.Verify(ctx, token)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidToken), "issued in the future")

	other := NewLocalProvider("outro", time.Hour, func() time.Time { return time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC) })
	_, err = other.Verify(ctx, token)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidToken))
}
