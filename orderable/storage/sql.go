package storage

import "github.com/orderable/orderable/orderable/storage/sqlbuilder"

// Render builds the statement set for one table in the backend's
// placeholder style. Identifiers were validated by the caller.
func Render(t Table, style sqlbuilder.PlaceholderStyle) SQL {
	tbl := sqlbuilder.QuoteIdent(t.Name)
	id := sqlbuilder.QuoteIdent(t.IDColumn)
	ord := sqlbuilder.QuoteIdent(t.OrderColumn)
	p1 := sqlbuilder.Placeholder(style, 1)
	p2 := sqlbuilder.Placeholder(style, 2)

	return SQL{
		SelectOrderedAsc:  "SELECT " + id + ", " + ord + " FROM " + tbl + " ORDER BY " + ord + " ASC",
		SelectOrderedDesc: "SELECT " + id + ", " + ord + " FROM " + tbl + " ORDER BY " + ord + " DESC",
		MaxValue:          "SELECT COALESCE(MAX(" + ord + "), 0) FROM " + tbl,
		CountRows:         "SELECT COUNT(*) FROM " + tbl,
		GetByID:           "SELECT " + ord + " FROM " + tbl + " WHERE " + id + " = " + p1,
		SetValue:          "UPDATE " + tbl + " SET " + ord + " = " + p1 + " WHERE " + id + " = " + p2,
		ShiftUp:           "UPDATE " + tbl + " SET " + ord + " = " + ord + " + 1 WHERE " + ord + " >= " + p1 + " AND " + ord + " <= " + p2,
		ShiftDown:         "UPDATE " + tbl + " SET " + ord + " = " + ord + " - 1 WHERE " + ord + " >= " + p1 + " AND " + ord + " <= " + p2,
	}
}
