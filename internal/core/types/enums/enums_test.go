package enums

import "testing"

func TestDirection_RoundTrip(t *testing.T) {
	for _, d := range AllDirections {
		if got := ParseDirection(d.String()); got != d {
			t.Errorf("ParseDirection(%q) = %v, want %v", d.String(), got, d)
		}
		dx, dy := d.Delta()
		if got := DirectionFromDelta(dx, dy); got != d {
			t.Errorf("DirectionFromDelta(%d,%d) = %v, want %v", dx, dy, got, d)
		}
	}
}

func TestDirection_Unknown(t *testing.T) {
	if got := ParseDirection("up"); got != DirNone {
		t.Errorf("ParseDirection(up) = %v, want NONE", got)
	}
	if dx, dy := DirNone.Delta(); dx != 0 || dy != 0 {
		t.Errorf("DirNone.Delta() = (%d,%d)", dx, dy)
	}
	if got := DirectionFromDelta(5, -3); got != DirNE {
		t.Errorf("DirectionFromDelta clamps to signs, got %v", got)
	}
}

func TestParse_CaseInsensitive(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"personality", ParsePersonality("aggressive").String(), "AGGRESSIVE"},
		{"skill", ParseSkill("Throwing").String(), "THROWING"},
		{"body part with space", ParseBodyPart("left arm").String(), "LEFT_ARM"},
		{"item type", ParseItemType("ammunition").String(), "AMMUNITION"},
		{"item effect", ParseItemEffect("raise_health").String(), "RAISE_HEALTH"},
		{"entity type", ParseEntityType("exit").String(), "EXIT"},
		{"unknown skill", ParseSkill("juggling").String(), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestSkill_IsRanged(t *testing.T) {
	if !SkillThrowing.IsRanged() || !SkillArchery.IsRanged() {
		t.Error("throwing and archery are ranged")
	}
	if SkillSlashing.IsRanged() {
		t.Error("slashing is not ranged")
	}
}
