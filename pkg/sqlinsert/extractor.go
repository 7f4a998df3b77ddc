// Package sqlinsert extracts view and relation records from loosely
// formatted, semicolon-separated SQL INSERT dumps. It is deliberately not a
// SQL parser: statements are classified by table-name substring, matched
// against a single INSERT-shape pattern, and anything that does not fit is
// skipped without error.
package sqlinsert

import (
	"regexp"
	"strings"
)

// Source table names recognized in pasted dumps.
const (
	ViewTable     = "Report_View"
	RelationTable = "Report_ViewRelation"
)

// Kind classifies a candidate statement.
type Kind int

const (
	KindIgnored Kind = iota
	KindView
	KindRelation
)

// Only the first parenthesized column list and value list are captured;
// multi-row VALUES lists are not supported and anything beyond the first
// tuple is ignored.
var (
	viewInsertPattern     = regexp.MustCompile(`(?i)INSERT\s+INTO\s+` + ViewTable + `\s*\(([^)]+)\)\s*VALUES\s*\(([^)]+)\)`)
	relationInsertPattern = regexp.MustCompile(`(?i)INSERT\s+INTO\s+` + RelationTable + `\s*\(([^)]+)\)\s*VALUES\s*\(([^)]+)\)`)
)

// Statements splits raw SQL text on semicolons into trimmed, non-empty
// candidate statements. The split is naive: a semicolon inside a string
// literal incorrectly terminates a statement. That is a known, accepted
// limitation of the dump format this package targets.
func Statements(sql string) []string {
	parts := strings.Split(sql, ";")
	stmts := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			stmts = append(stmts, s)
		}
	}
	return stmts
}

// Classify reports which record kind a candidate statement targets. The
// relation table is checked first: its name contains the view table's name
// as a prefix, so the order matters.
func Classify(stmt string) Kind {
	switch {
	case strings.Contains(stmt, RelationTable):
		return KindRelation
	case strings.Contains(stmt, ViewTable):
		return KindView
	default:
		return KindIgnored
	}
}

// ParseViewInsert extracts a view record from a candidate statement.
// Returns false when the statement does not match the INSERT shape or the
// mapped record is missing required fields; both cases are silent skips.
func ParseViewInsert(stmt string) (*ViewRecord, bool) {
	m := viewInsertPattern.FindStringSubmatch(stmt)
	if m == nil {
		return nil, false
	}
	return MapViewRecord(strings.Split(m[1], ","), SplitValues(m[2]))
}

// ParseRelationInsert extracts a relation record from a candidate statement.
func ParseRelationInsert(stmt string) (*RelationRecord, bool) {
	m := relationInsertPattern.FindStringSubmatch(stmt)
	if m == nil {
		return nil, false
	}
	return MapRelationRecord(strings.Split(m[1], ","), SplitValues(m[2]))
}
