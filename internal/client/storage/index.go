package storage

import (
	"context"
	"slices"

	"github.com/dmitrijs2005/simkeeper/internal/common"
)

// Index is the ordered list of Sim ids, oldest first. It is the only way
// Sims are enumerated.
type Index struct {
	cell *Cell[[]string]
}

func NewIndex(ctx context.Context, a *Adapter) *Index {
	return &Index{cell: NewCell(ctx, a, common.SimIDsKey, func() []string { return []string{} })}
}

// Key returns the backing key of the index.
func (i *Index) Key() string {
	return i.cell.Key()
}

// IDs returns a copy of the ids in insertion order.
func (i *Index) IDs() []string {
	ids := slices.Clone(i.cell.Get())
	if ids == nil {
		ids = []string{}
	}
	return ids
}

func (i *Index) Contains(id string) bool {
	return slices.Contains(i.cell.Get(), id)
}

// Append adds id at the end. Ids already present are not duplicated.
func (i *Index) Append(ctx context.Context, id string) error {
	ids := i.cell.Get()
	if slices.Contains(ids, id) {
		return nil
	}
	return i.cell.Set(ctx, append(slices.Clone(ids), id))
}

// Remove drops id, keeping the order of the rest.
func (i *Index) Remove(ctx context.Context, id string) error {
	ids := slices.DeleteFunc(slices.Clone(i.cell.Get()), func(s string) bool { return s == id })
	return i.cell.Set(ctx, ids)
}

// Replace overwrites the whole list.
func (i *Index) Replace(ctx context.Context, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	return i.cell.Set(ctx, slices.Clone(ids))
}
