package sqlinsert_test

import (
	"testing"

	"github.com/leapstack-labs/viewgraph/pkg/sqlinsert"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapViewRecord(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		values  []string
		want    *sqlinsert.ViewRecord
		ok      bool
	}{
		{
			name:    "basic view",
			columns: []string{"IdView", "Name"},
			values:  []string{"42", "'Customers'"},
			want:    &sqlinsert.ViewRecord{ViewID: 42, Name: "Customers"},
			ok:      true,
		},
		{
			name:    "alternate id column and mixed case",
			columns: []string{"ViewId", "NAME", "Alias"},
			values:  []string{"7", "'Orders'", "'Ord'"},
			want:    &sqlinsert.ViewRecord{ViewID: 7, Name: "Orders", Alias: strptr("Ord")},
			ok:      true,
		},
		{
			name:    "column names with embedded spaces",
			columns: []string{" Id View ", "Name"},
			values:  []string{"3", "'X'"},
			want:    &sqlinsert.ViewRecord{ViewID: 3, Name: "X"},
			ok:      true,
		},
		{
			name:    "unrecognized columns dropped silently",
			columns: []string{"IdView", "Name", "Owner", "Comment"},
			values:  []string{"1", "'V'", "'bob'", "'n/a'"},
			want:    &sqlinsert.ViewRecord{ViewID: 1, Name: "V"},
			ok:      true,
		},
		{
			name:    "NULL optional maps to null",
			columns: []string{"IdView", "Name", "Name2"},
			values:  []string{"1", "'V'", "NULL"},
			want:    &sqlinsert.ViewRecord{ViewID: 1, Name: "V"},
			ok:      true,
		},
		{
			name:    "lowercase null literal",
			columns: []string{"IdView", "Name", "Alias"},
			values:  []string{"1", "'V'", "null"},
			want:    &sqlinsert.ViewRecord{ViewID: 1, Name: "V"},
			ok:      true,
		},
		{
			name:    "quoted NULL is a real string",
			columns: []string{"IdView", "Name"},
			values:  []string{"1", "'NULL'"},
			want:    &sqlinsert.ViewRecord{ViewID: 1, Name: "NULL"},
			ok:      true,
		},
		{
			name:    "unparsable required int rejects the record",
			columns: []string{"IdView", "Name"},
			values:  []string{"'abc'", "'V'"},
			ok:      false,
		},
		{
			name:    "missing name rejects the record",
			columns: []string{"IdView"},
			values:  []string{"1"},
			ok:      false,
		},
		{
			name:    "extra values beyond columns ignored",
			columns: []string{"IdView", "Name"},
			values:  []string{"1", "'V'", "'extra'", "'more'"},
			want:    &sqlinsert.ViewRecord{ViewID: 1, Name: "V"},
			ok:      true,
		},
		{
			name:    "extra columns beyond values ignored",
			columns: []string{"IdView", "Name", "Name2", "Alias"},
			values:  []string{"1", "'V'"},
			want:    &sqlinsert.ViewRecord{ViewID: 1, Name: "V"},
			ok:      true,
		},
		{
			name:    "double quoted strings",
			columns: []string{"IdView", "Name"},
			values:  []string{"5", `"Products"`},
			want:    &sqlinsert.ViewRecord{ViewID: 5, Name: "Products"},
			ok:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := sqlinsert.MapViewRecord(tt.columns, tt.values)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestMapRelationRecord(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		values  []string
		want    *sqlinsert.RelationRecord
		ok      bool
	}{
		{
			name:    "full relation",
			columns: []string{"IdView1", "IdView2", "Relation", "EdgeWeight"},
			values:  []string{"100", "200", "'INNER JOIN Users ON Users.id = Orders.user_id'", "5"},
			want: &sqlinsert.RelationRecord{
				IDView1:    100,
				IDView2:    200,
				Relation:   "INNER JOIN Users ON Users.id = Orders.user_id",
				EdgeWeight: intptr(5),
			},
			ok: true,
		},
		{
			name:    "optional int unparsable becomes null",
			columns: []string{"IdView1", "IdView2", "Relation", "EdgeWeight"},
			values:  []string{"1", "2", "'J'", "'heavy'"},
			want:    &sqlinsert.RelationRecord{IDView1: 1, IDView2: 2, Relation: "J"},
			ok:      true,
		},
		{
			name:    "optional int NULL becomes null",
			columns: []string{"IdView1", "IdView2", "Relation", "MinAppVersion", "MaxAppVersion"},
			values:  []string{"1", "2", "'J'", "NULL", "42"},
			want: &sqlinsert.RelationRecord{
				IDView1: 1, IDView2: 2, Relation: "J",
				MaxAppVersion: intptr(42),
			},
			ok: true,
		},
		{
			name:    "required int unparsable rejects the record",
			columns: []string{"IdView1", "IdView2", "Relation"},
			values:  []string{"'x'", "2", "'J'"},
			ok:      false,
		},
		{
			name:    "missing relation rejects the record",
			columns: []string{"IdView1", "IdView2"},
			values:  []string{"1", "2"},
			ok:      false,
		},
		{
			name:    "change owner and relation2",
			columns: []string{"IdView1", "IdView2", "Relation", "Relation2", "ChangeOwner"},
			values:  []string{"1", "2", "'J'", "'J2'", "99"},
			want: &sqlinsert.RelationRecord{
				IDView1: 1, IDView2: 2, Relation: "J",
				Relation2: strptr("J2"), ChangeOwner: intptr(99),
			},
			ok: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := sqlinsert.MapRelationRecord(tt.columns, tt.values)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func strptr(s string) *string { return &s }
func intptr(n int) *int       { return &n }
