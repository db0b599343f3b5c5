package domain

import "testing"

func TestParseAction(t *testing.T) {
	tests := []struct {
		input    string
		expected ActionType
	}{
		{"MOVE", ActionMove},
		{"move", ActionMove},
		{"Throw", ActionThrow},
		{"FIRE", ActionFire},
		{"WAIT", ActionWait},
		{"descend", ActionDescend},
		{"ATTACK", ActionUnknown},
		{"", ActionUnknown},
	}

	for _, tt := range tests {
		if got := ParseAction(tt.input); got != tt.expected {
			t.Errorf("ParseAction(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestActionType_String(t *testing.T) {
	tests := []struct {
		action   ActionType
		expected string
	}{
		{ActionMove, "MOVE"},
		{ActionDebug, "DEBUG"},
		{ActionUnknown, "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.action.String(); got != tt.expected {
			t.Errorf("ActionType(%d).String() = %q, want %q", tt.action, got, tt.expected)
		}
	}
}

func TestActionType_ConsumesTurn(t *testing.T) {
	if !ActionMove.ConsumesTurn() || !ActionWait.ConsumesTurn() {
		t.Error("MOVE and WAIT must consume a turn")
	}
	if ActionDebug.ConsumesTurn() || ActionInit.ConsumesTurn() {
		t.Error("DEBUG and INIT must not consume a turn")
	}
}
