package sanitize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanRemovesLineBreaks(t *testing.T) {
	assert.Equal(t, "adminINFO fake entry", Clean("admin\r\nINFO fake entry"))
}

func TestCleanRemovesControlCharacters(t *testing.T) {
	assert.Equal(t, "svcx", Clean("svc\x00\tx\x1b"))
}

func TestCleanTruncates(t *testing.T) {
	cleaned := Clean(strings.Repeat("a", 300))
	assert.Len(t, cleaned, maxLoggedLength+3)
	assert.True(t, strings.HasSuffix(cleaned, "..."))
}

func TestStringField(t *testing.T) {
	f := String("client_id", "svc\n")
	assert.Equal(t, "client_id", f.Key)
	assert.Equal(t, "svc", f.String)
}
