package library

import (
	"fmt"
	"strings"
)

// Version is one photo version row.
type Version struct {
	UUID     string
	Title    string
	HasTitle bool // false when the name column is NULL
	FileName string
}

// TitleValue renders the title the way the database holds it.
func (v Version) TitleValue() string {
	if !v.HasTitle {
		return "NULL"
	}
	return fmt.Sprintf("%q", v.Title)
}

// AbsentConvention describes how a library stores a missing title.
type AbsentConvention int

const (
	// AbsentIsNull is used by Photos libraries: name IS NULL.
	AbsentIsNull AbsentConvention = iota
	// AbsentIsEmptyString is used by iPhoto libraries: name = ''.
	AbsentIsEmptyString
)

// ParseAbsentConvention maps the configuration names "null" and "empty" to a convention.
func ParseAbsentConvention(value string) (AbsentConvention, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "null":
		return AbsentIsNull, nil
	case "empty":
		return AbsentIsEmptyString, nil
	default:
		return 0, fmt.Errorf("unknown absent-title convention %q (want null or empty)", value)
	}
}

func (c AbsentConvention) String() string {
	switch c {
	case AbsentIsNull:
		return "null"
	case AbsentIsEmptyString:
		return "empty"
	default:
		return fmt.Sprintf("AbsentConvention(%d)", int(c))
	}
}

// IsAbsent reports whether v has no title under the convention. It agrees
// with the SQL predicates used by Count and Versions: under
// AbsentIsEmptyString a NULL name is neither titled nor untitled.
func (c AbsentConvention) IsAbsent(v Version) bool {
	if c == AbsentIsEmptyString {
		return v.HasTitle && v.Title == ""
	}
	return !v.HasTitle
}

// TitleFilter selects versions by title presence.
type TitleFilter int

const (
	AllVersions TitleFilter = iota
	WithTitle
	WithoutTitle
)

func (f TitleFilter) String() string {
	switch f {
	case AllVersions:
		return "all"
	case WithTitle:
		return "with_title"
	case WithoutTitle:
		return "without_title"
	default:
		return fmt.Sprintf("TitleFilter(%d)", int(f))
	}
}

// predicate returns a constant SQL boolean expression for the filter.
func (f TitleFilter) predicate(c AbsentConvention) (string, error) {
	switch f {
	case AllVersions:
		return "1 = 1", nil
	case WithTitle:
		if c == AbsentIsEmptyString {
			return "name != ''", nil
		}
		return "name IS NOT NULL", nil
	case WithoutTitle:
		if c == AbsentIsEmptyString {
			return "name = ''", nil
		}
		return "name IS NULL", nil
	default:
		return "", fmt.Errorf("unknown title filter %d", int(f))
	}
}
