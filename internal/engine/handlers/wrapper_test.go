package handlers

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/todo-knk/xibalba/internal/domain"
	"github.com/todo-knk/xibalba/pkg/api"
)

func TestWithPayload(t *testing.T) {
	var got api.DirectionPayload
	h := WithPayload(func(_ Context, p api.DirectionPayload) (Result, error) {
		got = p
		return TurnResult(), nil
	})

	tests := []struct {
		name    string
		raw     string
		wantErr bool
		wantMsg string
	}{
		{name: "valid", raw: `{"dx":1,"dy":-1}`},
		{name: "empty", raw: ``, wantErr: true, wantMsg: msgPayloadMissing},
		{name: "broken json", raw: `{"dx":`, wantErr: true, wantMsg: msgPayloadBroken},
		{name: "zero vector", raw: `{"dx":0,"dy":0}`, wantErr: true, wantMsg: msgPayloadInvalid},
		{name: "too far", raw: `{"dx":3,"dy":0}`, wantErr: true, wantMsg: msgPayloadInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := h(Context{}, json.RawMessage(tt.raw))
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidAction)
				assert.False(t, res.Turn)
				assert.Equal(t, tt.wantMsg, res.Msg)
				assert.Equal(t, domain.LogError, res.MsgType)
				return
			}
			require.NoError(t, err)
			assert.True(t, res.Turn)
			assert.Equal(t, api.DirectionPayload{Dx: 1, Dy: -1}, got)
		})
	}
}

func TestWithEmptyPayload_IgnoresBody(t *testing.T) {
	called := false
	h := WithEmptyPayload(func(Context) (Result, error) {
		called = true
		return EmptyResult(), nil
	})

	_, err := h(Context{}, json.RawMessage(`garbage`))
	require.NoError(t, err)
	assert.True(t, called)
}

func TestFail(t *testing.T) {
	cause := errors.New("boom")
	res, err := Fail("Не вышло.", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Не вышло.", res.Msg)
	assert.Equal(t, domain.LogError, res.MsgType)
	assert.False(t, res.Turn)
}
