package utils

import (
	"testing"

	"github.com/Lukiyanto/cisaroni-news/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTempDB(t *testing.T) {
	db := CreateTempDB(t)

	// The schema is fully migrated: writes to every table succeed.
	user := model.User{Name: "n", Email: "n@example.com", Role: model.RoleAuthor}
	require.NoError(t, db.Create(&user).Error)
	assert.NotEmpty(t, user.Id)

	var count int64
	require.NoError(t, db.Model(&model.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestTempDBsAreIsolated(t *testing.T) {
	first := CreateTempDB(t)
	second := CreateTempDB(t)

	user := model.User{Name: "n", Email: "n@example.com", Role: model.RoleAuthor}
	require.NoError(t, first.Create(&user).Error)

	var count int64
	require.NoError(t, second.Model(&model.User{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}
