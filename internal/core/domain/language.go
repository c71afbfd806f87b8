package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// Language tags the source language of a compilation unit.
// The numeric order is the link order: C, then C++, then Objective-C.
type Language int

const (
	// LangC is ISO C.
	LangC Language = iota
	// LangCXX is C++.
	LangCXX
	// LangObjC is Objective-C.
	LangObjC
)

// Languages returns all languages in compile and link order.
func Languages() []Language {
	return []Language{LangC, LangCXX, LangObjC}
}

// String returns the display name of the language.
func (l Language) String() string {
	switch l {
	case LangC:
		return "C"
	case LangCXX:
		return "C++"
	case LangObjC:
		return "ObjC"
	default:
		return "unknown"
	}
}

// Key returns the short identifier used in configuration files and object names.
func (l Language) Key() string {
	switch l {
	case LangC:
		return "c"
	case LangCXX:
		return "cpp"
	case LangObjC:
		return "objc"
	default:
		return "unknown"
	}
}

// ParseLanguage converts a configuration key to a Language.
func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "c":
		return LangC, nil
	case "cpp", "c++", "cxx":
		return LangCXX, nil
	case "objc", "m":
		return LangObjC, nil
	default:
		return 0, zerr.With(zerr.Wrap(ErrInvalidConfig, "unknown source language"), "language", s)
	}
}
