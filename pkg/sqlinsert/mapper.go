package sqlinsert

import (
	"strconv"
	"strings"
)

// ViewRecord is a candidate view extracted from an INSERT statement.
type ViewRecord struct {
	ViewID int
	Name   string
	Name2  *string
	Alias  *string
}

// RelationRecord is a candidate relation extracted from an INSERT statement.
type RelationRecord struct {
	IDView1       int
	IDView2       int
	Relation      string
	Relation2     *string
	EdgeWeight    *int
	MinAppVersion *int
	MaxAppVersion *int
	ChangeOwner   *int
}

// Column case tables. Keys are column names after normalization (lowercase,
// all whitespace removed); unrecognized columns are dropped silently.
var viewColumns = map[string]string{
	"idview": "view_id",
	"viewid": "view_id",
	"name":   "name",
	"name2":  "name2",
	"alias":  "alias",
}

var relationColumns = map[string]string{
	"idview1":       "id_view1",
	"idview2":       "id_view2",
	"relation":      "relation",
	"relation2":     "relation2",
	"edgeweight":    "edge_weight",
	"minappversion": "min_app_version",
	"maxappversion": "max_app_version",
	"changeowner":   "change_owner",
}

func normalizeColumn(col string) string {
	return strings.Join(strings.Fields(strings.ToLower(col)), "")
}

// stripQuotes removes exactly one layer of surrounding quotes when the token
// opens and closes with the same quote character.
func stripQuotes(s string) string {
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

func isNullLiteral(s string) bool {
	return strings.EqualFold(s, "NULL")
}

// MapViewRecord maps a column-name sequence and an aligned value sequence
// onto a ViewRecord. Extra values beyond the column count are ignored, as are
// extra columns beyond the value count. Returns false when the required
// fields (view_id, name) are absent after mapping; that is a silent skip for
// the caller, not an error.
func MapViewRecord(columns, values []string) (*ViewRecord, bool) {
	var (
		viewID *int
		name   *string
		rec    ViewRecord
	)

	for i, col := range columns {
		if i >= len(values) {
			break
		}
		field, ok := viewColumns[normalizeColumn(col)]
		if !ok {
			continue
		}
		raw := stripQuotes(values[i])
		null := isNullLiteral(raw)

		switch field {
		case "view_id":
			if null {
				continue
			}
			n, err := strconv.Atoi(raw)
			if err != nil {
				// Required integer failed to parse: drop the column so
				// the record is rejected below.
				continue
			}
			viewID = &n
		case "name":
			if null {
				continue
			}
			v := raw
			name = &v
		case "name2":
			if !null {
				v := raw
				rec.Name2 = &v
			}
		case "alias":
			if !null {
				v := raw
				rec.Alias = &v
			}
		}
	}

	if viewID == nil || name == nil {
		return nil, false
	}
	rec.ViewID = *viewID
	rec.Name = *name
	return &rec, true
}

// MapRelationRecord maps a column-name sequence and an aligned value sequence
// onto a RelationRecord. Required fields are id_view1, id_view2 and relation;
// optional integer fields become null on NULL literals or unparsable values.
func MapRelationRecord(columns, values []string) (*RelationRecord, bool) {
	var (
		idView1  *int
		idView2  *int
		relation *string
		rec      RelationRecord
	)

	setOptionalInt := func(dst **int, raw string) {
		if n, err := strconv.Atoi(raw); err == nil {
			*dst = &n
		}
	}

	for i, col := range columns {
		if i >= len(values) {
			break
		}
		field, ok := relationColumns[normalizeColumn(col)]
		if !ok {
			continue
		}
		raw := stripQuotes(values[i])
		if isNullLiteral(raw) {
			continue
		}

		switch field {
		case "id_view1":
			if n, err := strconv.Atoi(raw); err == nil {
				idView1 = &n
			}
		case "id_view2":
			if n, err := strconv.Atoi(raw); err == nil {
				idView2 = &n
			}
		case "relation":
			v := raw
			relation = &v
		case "relation2":
			v := raw
			rec.Relation2 = &v
		case "edge_weight":
			setOptionalInt(&rec.EdgeWeight, raw)
		case "min_app_version":
			setOptionalInt(&rec.MinAppVersion, raw)
		case "max_app_version":
			setOptionalInt(&rec.MaxAppVersion, raw)
		case "change_owner":
			setOptionalInt(&rec.ChangeOwner, raw)
		}
	}

	if idView1 == nil || idView2 == nil || relation == nil {
		return nil, false
	}
	rec.IDView1 = *idView1
	rec.IDView2 = *idView2
	rec.Relation = *relation
	return &rec, true
}
