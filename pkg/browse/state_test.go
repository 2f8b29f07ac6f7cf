package browse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestState_Select(t *testing.T) {
	s := State{}
	next := s.Select(Candidate{Key: "a/", Dir: true})

	assert.Equal(t, State{Prefix: "a/", IsDirectory: true}, next)
	assert.Equal(t, State{}, s, "original value is untouched")
}

func TestState_Settle(t *testing.T) {
	assert.Equal(t, State{Prefix: "a", IsDirectory: true}, State{Prefix: "a/"}.Settle("/"))
	assert.Equal(t, State{Prefix: "a/key", IsDirectory: false}, State{Prefix: "a/key"}.Settle("/"))
	assert.Equal(t, State{Prefix: "", IsDirectory: true}, State{Prefix: "/"}.Settle("/"))
}

func TestState_Terminal(t *testing.T) {
	assert.False(t, State{}.Terminal("/"))
	assert.False(t, State{Prefix: "a/"}.Terminal("/"))
	assert.True(t, State{Prefix: "a"}.Terminal("/"))
	assert.True(t, State{Prefix: "a/"}.Terminal("|"))
}
