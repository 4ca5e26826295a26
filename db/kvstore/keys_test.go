package kvstore

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeysShareClusterSlot(t *testing.T) {
	access := key(accessPrefix, "a")
	refresh := key(refreshPrefix, "b")
	assert.NotEqual(t, access, refresh)
	assert.Equal(t, hashTag(access), hashTag(refresh))
	assert.Equal(t, "token", hashTag(access))
}

func TestKeysDoNotExposeToken(t *testing.T) {
	k := key(accessPrefix, "s3cret-token")
	assert.NotContains(t, k, "s3cret-token")
	assert.True(t, strings.HasPrefix(k, accessPrefix))
	assert.Len(t, k, len(accessPrefix)+64)
}

// hashTag extracts the part of a key redis cluster hashes to pick a slot
func hashTag(k string) string {
	start := strings.Index(k, "{")
	if start < 0 {
		return k
	}
	end := strings.Index(k[start+1:], "}")
	if end <= 0 {
		return k
	}
	return k[start+1 : start+1+end]
}
