package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTableRef(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		defaultSchema string
		want          TableRef
	}{
		{name: "bare name takes default", input: "orders", defaultSchema: "sales", want: TableRef{Schema: "sales", Name: "orders"}},
		{name: "bare name without default", input: "orders", want: TableRef{Name: "orders"}},
		{name: "qualified", input: "public.orders", defaultSchema: "sales", want: TableRef{Schema: "public", Name: "orders"}},
		{name: "last dot splits", input: "db.dbo.orders", want: TableRef{Schema: "db.dbo", Name: "orders"}},
		{name: "trims spaces", input: "  scratch.tmp  ", want: TableRef{Schema: "scratch", Name: "tmp"}},
		{name: "trailing dot is a name", input: "orders.", defaultSchema: "s", want: TableRef{Schema: "s", Name: "orders."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTableRef(tt.input, tt.defaultSchema))
		})
	}
}

func TestTableRef_String(t *testing.T) {
	assert.Equal(t, "orders", TableRef{Name: "orders"}.String())
	assert.Equal(t, "public.orders", TableRef{Schema: "public", Name: "orders"}.String())
	assert.Equal(t, "main.orders", TableRef{Name: "orders"}.WithDefaultSchema("main").String())
	assert.Equal(t, "s.orders", TableRef{Schema: "s", Name: "orders"}.WithDefaultSchema("main").String())
}

func TestColumnNames(t *testing.T) {
	cols := []Column{{Name: "id", DataType: "integer"}, {Name: "name", DataType: "text"}}
	assert.Equal(t, []string{"id", "name"}, ColumnNames(cols))
	assert.Empty(t, ColumnNames(nil))
}
