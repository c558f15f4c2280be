// Package tables mirrors a text column from a source table into a target
// table.
//
// Both tables have the columns id and value. They are read with keyset
// pagination ordered by (value, id), so memory stays bounded by the page size
// and no cursor is held open while rows are inserted or deleted. Added rows
// get a fresh id; removed rows are deleted by the id they were read with.
//
// On MySQL values are compared with BINARY so the database orders them the
// same way the reconciler does.
package tables
