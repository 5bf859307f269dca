package execution

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionAccessors(t *testing.T) {
	session := NewSession("run-1", map[string]interface{}{"seed": 1})

	value, ok := session.Get("seed")
	assert.True(t, ok)
	assert.Equal(t, 1, value)

	_, ok = session.Get("missing")
	assert.False(t, ok)

	assert.NoError(t, session.Set("key", "value"))
	assert.True(t, session.Has("key"))

	session.Delete("key")
	assert.False(t, session.Has("key"))

	assert.NoError(t, session.Set("a", 1))
	session.Clear()
	assert.False(t, session.Has("a"))
	assert.False(t, session.Has("seed"))
}

func TestSessionSetEmptyKey(t *testing.T) {
	session := NewSession("run-1", nil)
	assert.Error(t, session.Set("", "value"))
}

func TestSessionEnvSnapshot(t *testing.T) {
	os.Setenv("STEPLINE_TEST_ENV", "before")
	session := NewSession("run-1", nil)
	os.Setenv("STEPLINE_TEST_ENV", "after")

	value, ok := session.Env("STEPLINE_TEST_ENV")
	assert.True(t, ok)
	assert.Equal(t, "before", value)
}

func TestSessionClone(t *testing.T) {
	session := NewSession("run-1", map[string]interface{}{"shared": "original"})
	clone := session.Clone()

	assert.NoError(t, clone.Set("shared", "changed"))
	value, _ := session.Get("shared")
	assert.Equal(t, "original", value)

	assert.NoError(t, session.Set("new", true))
	assert.False(t, clone.Has("new"))
}

func TestSessionListeners(t *testing.T) {
	session := NewSession("run-1", nil)
	var seen []string
	session.RegisterListeners(func(s *Session, key string, oldVal, newVal interface{}) {
		seen = append(seen, key)
	})
	assert.NoError(t, session.Set("a", 1))
	assert.NoError(t, session.Set("b", 2))
	assert.Equal(t, []string{"a", "b"}, seen)
}
