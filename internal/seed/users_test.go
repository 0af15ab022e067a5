package seed

import (
	"context"
	"testing"

	"cinedex/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestEnsureUsers_TopsUp(t *testing.T) {
	s, db := newTestSeeder(t, nil)
	ctx := context.Background()

	require.NoError(t, s.EnsureUsers(ctx, 4))
	assert.EqualValues(t, 4, countRows(t, db, &models.User{}))

	require.NoError(t, s.EnsureUsers(ctx, 3))
	assert.EqualValues(t, 4, countRows(t, db, &models.User{}))

	require.NoError(t, s.EnsureUsers(ctx, 7))
	assert.EqualValues(t, 7, countRows(t, db, &models.User{}))
}

func TestEnsureUsers_HashesPassword(t *testing.T) {
	s, db := newTestSeeder(t, func(o *Options) { o.SkipBcrypt = false })

	require.NoError(t, s.EnsureUsers(context.Background(), 1))

	var u models.User
	require.NoError(t, db.First(&u).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(defaultPassword)))
}
