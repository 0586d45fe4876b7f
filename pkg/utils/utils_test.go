package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInt(t *testing.T) {
	assert.Equal(t, 7, ParseInt("7", 1))
	assert.Equal(t, 1, ParseInt("", 1))
	assert.Equal(t, 1, ParseInt("seven", 1))
	assert.Equal(t, -3, ParseInt(" -3 ", 1))
}

func TestContainsFold(t *testing.T) {
	assert.True(t, ContainsFold("Smart TV", "tv"))
	assert.True(t, ContainsFold("smart tv", "SMART"))
	assert.False(t, ContainsFold("Radio", "tv"))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\% off\_now \\ ok`, EscapeLike(`50% off_now \ ok`))
	assert.Equal(t, "plain", EscapeLike("plain"))
}

func TestSequenceGenerator(t *testing.T) {
	g := &SequenceGenerator{Prefix: "p"}
	assert.Equal(t, "p-1", g.NewID())
	assert.Equal(t, "p-2", g.NewID())
}

func TestUUIDGeneratorUnique(t *testing.T) {
	var g UUIDGenerator
	a, b := g.NewID(), g.NewID()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, http.StatusConflict, "taken")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"taken"}`, rec.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}
	require.NoError(t, DecodeJSON(strings.NewReader(`{"name":"tv"}`), &dst))
	assert.Equal(t, "tv", dst.Name)

	assert.ErrorIs(t, DecodeJSON(strings.NewReader(""), &dst), ErrEmptyBody)
	assert.Error(t, DecodeJSON(strings.NewReader("not json"), &dst))
}
