package handler

import (
	"sync"
	"testing"

	"lingotutor/internal/domain"
	"lingotutor/internal/testutil"

	"github.com/stretchr/testify/assert"
)

func newTestHandler() *Handler {
	return NewHandler(nil, nil, nil, nil, nil, testutil.NewTestLogger())
}

func TestHandler_Sessions(t *testing.T) {
	h := newTestHandler()

	_, ok := h.Token(1)
	assert.False(t, ok)

	h.SetToken(1, "tok")
	h.SetState(1, &domain.StateData{State: domain.StateWaitingMeaning, CurrentWord: "hello"})

	token, ok := h.Token(1)
	assert.True(t, ok)
	assert.Equal(t, "tok", token)

	// other chats are untouched
	_, ok = h.Token(2)
	assert.False(t, ok)

	h.Forget(1)
	_, ok = h.Token(1)
	assert.False(t, ok)
	assert.Equal(t, domain.StateIdle, h.GetState(1).State)
}

func TestHandler_State(t *testing.T) {
	h := newTestHandler()

	assert.Equal(t, domain.StateIdle, h.GetState(5).State)

	h.SetState(5, &domain.StateData{State: domain.StateWaitingWord})
	assert.Equal(t, domain.StateWaitingWord, h.GetState(5).State)

	h.ResetState(5)
	state := h.GetState(5)
	assert.Equal(t, domain.StateIdle, state.State)
	assert.Empty(t, state.CurrentWord)
}

func TestHandler_ConcurrentSessions(t *testing.T) {
	h := newTestHandler()

	var wg sync.WaitGroup
	for i := int64(0); i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			h.SetToken(id, "tok")
			h.Token(id)
			h.chatLock(id).Lock()
			h.chatLock(id).Unlock()
		}(i)
	}
	wg.Wait()

	for i := int64(0); i < 50; i++ {
		_, ok := h.Token(i)
		assert.True(t, ok)
	}
	assert.Same(t, h.chatLock(3), h.chatLock(3))
}
