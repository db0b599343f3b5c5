package enums

import "strings"

type Skill uint8

const (
	SkillUnknown Skill = iota
	SkillUnarmed
	SkillSlashing
	SkillPiercing
	SkillBashing
	SkillThrowing
	SkillSlinging
	SkillArchery
)

var skillToString = map[Skill]string{
	SkillUnarmed:  "UNARMED",
	SkillSlashing: "SLASHING",
	SkillPiercing: "PIERCING",
	SkillBashing:  "BASHING",
	SkillThrowing: "THROWING",
	SkillSlinging: "SLINGING",
	SkillArchery:  "ARCHERY",
}

var skillStringToType = map[string]Skill{
	"UNARMED":  SkillUnarmed,
	"SLASHING": SkillSlashing,
	"PIERCING": SkillPiercing,
	"BASHING":  SkillBashing,
	"THROWING": SkillThrowing,
	"SLINGING": SkillSlinging,
	"ARCHERY":  SkillArchery,
}

func (s Skill) String() string {
	if val, ok := skillToString[s]; ok {
		return val
	}
	return "UNKNOWN"
}

func ParseSkill(s string) Skill {
	if val, ok := skillStringToType[strings.ToUpper(s)]; ok {
		return val
	}
	return SkillUnknown
}

// IsRanged — навыки, применяемые через RangedSystem.
func (s Skill) IsRanged() bool {
	return s == SkillThrowing || s == SkillSlinging || s == SkillArchery
}
