package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	assert.Equal(t, "breaking-go-1-21-released", GenerateSlug("Breaking: Go 1.21 Released!"))
	assert.Equal(t, "hello-world", GenerateSlug("  Hello --- World  "))
	assert.Equal(t, "already-a-slug", GenerateSlug("already-a-slug"))
	assert.Equal(t, "", GenerateSlug("!!!"))
}
