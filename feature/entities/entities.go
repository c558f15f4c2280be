// Package entities shows how records with several fields are reconciled.
//
// An entity is keyed by its zero-padded id followed by every field, so
// lists ordered by id are also ordered by key. A changed field produces a
// different key: the old version is removed and the new one added.
package entities

import (
	"context"

	"ordered-sync/core/orderedsync"
)

// IDWidth is the number of digits ids are padded to.
const IDWidth = 10

// Entity is a record with a unique id.
type Entity struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Key returns the comparison key of e.
func Key(e Entity) string {
	return orderedsync.JoinKey(orderedsync.PadInt(e.ID, IDWidth), e.Name, e.Email)
}

var reconciler = orderedsync.New(Key)

// Reconcile compares two id-ordered lists.
func Reconcile(ctx context.Context, source, target []Entity, sink orderedsync.Sink[Entity]) (orderedsync.Stats, error) {
	return reconciler.Reconcile(ctx, orderedsync.FromSlice(source), orderedsync.FromSlice(target), sink)
}

// Sample returns the demo lists: both entities changed their email.
func Sample() (source, target []Entity) {
	source = []Entity{
		{ID: 1, Name: "John Doe", Email: "john@doe.com"},
		{ID: 2, Name: "Jane Doe", Email: "jane@test.org"},
	}
	target = []Entity{
		{ID: 1, Name: "John Doe", Email: "john@test.com"},
		{ID: 2, Name: "Jane Doe", Email: "jane@test.com"},
	}
	return source, target
}
