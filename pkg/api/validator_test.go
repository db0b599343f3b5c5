package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectionPayload_Validate(t *testing.T) {
	tests := []struct {
		name    string
		p       DirectionPayload
		wantErr bool
	}{
		{name: "east", p: DirectionPayload{Dx: 1}},
		{name: "diagonal", p: DirectionPayload{Dx: -1, Dy: 1}},
		{name: "zero", p: DirectionPayload{}, wantErr: true},
		{name: "too long", p: DirectionPayload{Dx: 2}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTargetPayload_Validate(t *testing.T) {
	tests := []struct {
		name    string
		p       TargetPayload
		wantErr bool
	}{
		{name: "cell only", p: TargetPayload{X: 3, Y: 4}},
		{name: "with item", p: TargetPayload{ItemID: "72057594037927940", X: 3, Y: 4}},
		{name: "negative", p: TargetPayload{X: -1, Y: 4}, wantErr: true},
		{name: "bad item", p: TargetPayload{ItemID: "stone", X: 1, Y: 1}, wantErr: true},
		{name: "blank body part", p: TargetPayload{X: 1, Y: 1, BodyPart: "  "}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestClientCommand_Decode(t *testing.T) {
	var cmd ClientCommand
	require.NoError(t, json.Unmarshal([]byte(`{"action":"MOVE","payload":{"dx":1,"dy":0}}`), &cmd))
	assert.Equal(t, "MOVE", cmd.Action)

	var p DirectionPayload
	require.NoError(t, json.Unmarshal(cmd.Payload, &p))
	assert.Equal(t, DirectionPayload{Dx: 1}, p)
}
