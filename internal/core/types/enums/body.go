package enums

import "strings"

type BodyPart uint8

const (
	BodyPartUnknown BodyPart = iota
	BodyPartHead
	BodyPartBody
	BodyPartLeftArm
	BodyPartRightArm
	BodyPartLeftLeg
	BodyPartRightLeg
	BodyPartTail
	BodyPartWings
)

var bodyPartToString = map[BodyPart]string{
	BodyPartHead:     "HEAD",
	BodyPartBody:     "BODY",
	BodyPartLeftArm:  "LEFT_ARM",
	BodyPartRightArm: "RIGHT_ARM",
	BodyPartLeftLeg:  "LEFT_LEG",
	BodyPartRightLeg: "RIGHT_LEG",
	BodyPartTail:     "TAIL",
	BodyPartWings:    "WINGS",
}

var bodyPartStringToType = map[string]BodyPart{
	"HEAD":      BodyPartHead,
	"BODY":      BodyPartBody,
	"LEFT_ARM":  BodyPartLeftArm,
	"RIGHT_ARM": BodyPartRightArm,
	"LEFT_LEG":  BodyPartLeftLeg,
	"RIGHT_LEG": BodyPartRightLeg,
	"TAIL":      BodyPartTail,
	"WINGS":     BodyPartWings,
}

func (b BodyPart) String() string {
	if val, ok := bodyPartToString[b]; ok {
		return val
	}
	return "UNKNOWN"
}

// ParseBodyPart принимает и "left arm", и "LEFT_ARM".
func ParseBodyPart(s string) BodyPart {
	key := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", "_"))
	if val, ok := bodyPartStringToType[key]; ok {
		return val
	}
	return BodyPartUnknown
}

// HitModifier — штраф к попаданию по части тела; голова меньше туловища.
func (b BodyPart) HitModifier() int {
	switch b {
	case BodyPartHead, BodyPartTail:
		return -2
	case BodyPartBody:
		return 0
	}
	return -1
}
