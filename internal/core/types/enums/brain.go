package enums

import "strings"

// Personality — черта характера ИИ, задаётся в данных монстра.
type Personality uint8

const (
	PersonalityUnknown Personality = iota
	PersonalityAggressive
	PersonalitySkittish
	PersonalityCurious
	PersonalityLazy
)

var personalityToString = map[Personality]string{
	PersonalityAggressive: "AGGRESSIVE",
	PersonalitySkittish:   "SKITTISH",
	PersonalityCurious:    "CURIOUS",
	PersonalityLazy:       "LAZY",
}

var personalityStringToType = map[string]Personality{
	"AGGRESSIVE": PersonalityAggressive,
	"SKITTISH":   PersonalitySkittish,
	"CURIOUS":    PersonalityCurious,
	"LAZY":       PersonalityLazy,
}

func (p Personality) String() string {
	if val, ok := personalityToString[p]; ok {
		return val
	}
	return "UNKNOWN"
}

func ParsePersonality(s string) Personality {
	if val, ok := personalityStringToType[strings.ToUpper(s)]; ok {
		return val
	}
	return PersonalityUnknown
}
