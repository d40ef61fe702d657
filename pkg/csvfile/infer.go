package csvfile

import (
	"strconv"
	"strings"
	"time"
)

// Column types, from most to least specific.
const (
	TypeInt    = "int"
	TypeFloat  = "float"
	TypeBool   = "bool"
	TypeTime   = "time"
	TypeString = "string"
)

// timeLayouts are the formats a value may use to count as a time column.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01-02 15:04:05",
}

// inferState narrows the possible types of a column as values arrive.
// A column starts out able to be anything; each non-empty value rules
// out the types it does not parse as.
type inferState struct {
	seen  int64
	empty int64

	canInt   bool
	canFloat bool
	canBool  bool
	canTime  bool
}

func newInferState() *inferState {
	return &inferState{canInt: true, canFloat: true, canBool: true, canTime: true}
}

func (s *inferState) observe(cell string) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		s.empty++
		return
	}
	s.seen++

	if s.canInt {
		if _, err := strconv.ParseInt(cell, 10, 64); err != nil {
			s.canInt = false
		}
	}
	if s.canFloat {
		if _, err := strconv.ParseFloat(cell, 64); err != nil {
			s.canFloat = false
		}
	}
	if s.canBool {
		if _, err := strconv.ParseBool(cell); err != nil {
			s.canBool = false
		}
	}
	if s.canTime {
		s.canTime = parsesAsTime(cell)
	}
}

// result picks the most specific type every observed value allowed.
// A column with no non-empty values is a string column.
func (s *inferState) result() string {
	if s.seen == 0 {
		return TypeString
	}
	switch {
	case s.canInt:
		return TypeInt
	case s.canFloat:
		return TypeFloat
	case s.canBool:
		return TypeBool
	case s.canTime:
		return TypeTime
	default:
		return TypeString
	}
}

func parsesAsTime(cell string) bool {
	for _, layout := range timeLayouts {
		if _, err := time.Parse(layout, cell); err == nil {
			return true
		}
	}
	return false
}
