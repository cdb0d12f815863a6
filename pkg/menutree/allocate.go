// SPDX-License-Identifier: MPL-2.0

package menutree

import (
	"github.com/RoaringBitmap/roaring"

	"github.com/invowk/xdgmenu/pkg/desktopentry"
	"github.com/invowk/xdgmenu/pkg/rule"
)

// Allocation records which applications each menu of a tree received.
// Applications are identified by their index in the table.
type Allocation struct {
	table      *desktopentry.Table
	order      []*Entry
	paths      map[*Entry]string
	members    map[*Entry]*roaring.Bitmap
	candidates *roaring.Bitmap
	allocated  *roaring.Bitmap
}

// Allocate distributes the applications of table over the menus of root.
//
// Applications hidden in env (OnlyShowIn/NotShowIn) or marked Hidden are
// never candidates. Menus are visited in pre-order and deleted subtrees are
// skipped. A menu receives every still unallocated candidate its rule
// matches; unless it is marked NotOnlyUnallocated, those applications are
// then removed from the pool so no later menu can claim them.
func Allocate(root *Entry, table *desktopentry.Table, env string) *Allocation {
	a := &Allocation{
		table:      table,
		paths:      make(map[*Entry]string),
		members:    make(map[*Entry]*roaring.Bitmap),
		candidates: roaring.New(),
		allocated:  roaring.New(),
	}
	for i, app := range table.All() {
		if !app.Hidden && app.ShowIn(env) {
			a.candidates.Add(uint32(i))
		}
	}
	if root == nil {
		return a
	}

	pool := a.candidates.Clone()
	root.Walk(func(path string, e *Entry) bool {
		if e.IsDeleted() {
			return false
		}
		m := roaring.New()
		it := pool.Iterator()
		for it.HasNext() {
			i := it.Next()
			if rule.Evaluate(e.Rule, table.At(int(i))) {
				m.Add(i)
			}
		}
		if e.IsOnlyUnallocated() {
			pool.AndNot(m)
		}
		a.allocated.Or(m)
		a.order = append(a.order, e)
		a.paths[e] = path
		a.members[e] = m
		return true
	})
	return a
}

// Table returns the application table the allocation was computed over.
func (a *Allocation) Table() *desktopentry.Table { return a.table }

// Apps returns the applications allocated to e in table order.
func (a *Allocation) Apps(e *Entry) []*desktopentry.Application {
	m, ok := a.members[e]
	if !ok {
		return nil
	}
	out := make([]*desktopentry.Application, 0, m.GetCardinality())
	it := m.Iterator()
	for it.HasNext() {
		out = append(out, a.table.At(int(it.Next())))
	}
	return out
}

// Count returns the number of applications allocated to e.
func (a *Allocation) Count(e *Entry) int {
	if m, ok := a.members[e]; ok {
		return int(m.GetCardinality())
	}
	return 0
}

// Has reports whether the application with desktop id was allocated to e.
func (a *Allocation) Has(e *Entry, id string) bool {
	i := a.table.Index(id)
	m, ok := a.members[e]
	return ok && i >= 0 && m.Contains(uint32(i))
}

// Menus returns the paths of the menus the application was allocated to, in
// pre-order.
func (a *Allocation) Menus(id string) []string {
	i := a.table.Index(id)
	if i < 0 {
		return nil
	}
	var out []string
	for _, e := range a.order {
		if a.members[e].Contains(uint32(i)) {
			out = append(out, a.paths[e])
		}
	}
	return out
}

// Path returns the slash-separated path of an allocated menu.
func (a *Allocation) Path(e *Entry) string { return a.paths[e] }

// Unallocated returns the candidates no menu received, in table order.
func (a *Allocation) Unallocated() []*desktopentry.Application {
	rest := roaring.AndNot(a.candidates, a.allocated)
	out := make([]*desktopentry.Application, 0, rest.GetCardinality())
	it := rest.Iterator()
	for it.HasNext() {
		out = append(out, a.table.At(int(it.Next())))
	}
	return out
}

// Equal reports whether b allocated the same applications to the same menu
// paths as a.
func (a *Allocation) Equal(b *Allocation) bool {
	if len(a.order) != len(b.order) {
		return false
	}
	for i, e := range a.order {
		f := b.order[i]
		if a.paths[e] != b.paths[f] || !a.members[e].Equals(b.members[f]) {
			return false
		}
	}
	return true
}
