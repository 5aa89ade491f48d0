// Package fd is a small finite-domain constraint store: integer variables
// with interval domains, a propagation loop that runs posted constraints to
// a fixpoint, and a depth-first search engine with space cloning and
// seeded value-order branching. It exists because no third-party
// constraint-programming library is present anywhere in the retrieved
// example corpus; see DESIGN.md for why this is built on the standard
// library instead of an ecosystem dependency.
package fd

import "math/bits"

// maxDomainWidth bounds how many consecutive values a Domain can represent,
// since a domain is stored as a bitmask in a single machine word. Every
// domain used by this module (degrees, states, qualities, pitch classes,
// scale degrees, booleans) comfortably fits.
const maxDomainWidth = 32

// Domain is an interval-like finite set of integers, represented as a
// bitmask offset from lo. It is a plain value type so that cloning a Store
// for backtracking is just copying a slice of Domains.
type Domain struct {
	lo   int
	mask uint32
}

// Full returns the domain {lo, lo+1, ..., hi}.
func Full(lo, hi int) Domain {
	width := hi - lo + 1
	if width <= 0 {
		return Domain{lo: lo, mask: 0}
	}
	if width >= maxDomainWidth {
		width = maxDomainWidth
	}
	var mask uint32
	if width == maxDomainWidth {
		mask = ^uint32(0)
	} else {
		mask = (uint32(1) << uint(width)) - 1
	}
	return Domain{lo: lo, mask: mask}
}

// Singleton returns the domain containing exactly v.
func Singleton(v int) Domain {
	return Domain{lo: v, mask: 1}
}

// Empty reports whether the domain has no values left.
func (d Domain) Empty() bool { return d.mask == 0 }

// Size is the number of values remaining in the domain.
func (d Domain) Size() int { return bits.OnesCount32(d.mask) }

// Assigned reports whether exactly one value remains.
func (d Domain) Assigned() bool { return d.mask != 0 && d.mask&(d.mask-1) == 0 }

// Contains reports whether v is in the domain.
func (d Domain) Contains(v int) bool {
	off := v - d.lo
	if off < 0 || off >= maxDomainWidth {
		return false
	}
	return d.mask&(uint32(1)<<uint(off)) != 0
}

// Min returns the smallest remaining value. Panics on an empty domain.
func (d Domain) Min() int {
	if d.mask == 0 {
		panic("fd: Min of empty domain")
	}
	return d.lo + bits.TrailingZeros32(d.mask)
}

// Max returns the largest remaining value. Panics on an empty domain.
func (d Domain) Max() int {
	if d.mask == 0 {
		panic("fd: Max of empty domain")
	}
	return d.lo + 31 - bits.LeadingZeros32(d.mask)
}

// Value returns the single remaining value. Panics if not Assigned.
func (d Domain) Value() int {
	if !d.Assigned() {
		panic("fd: Value of unassigned domain")
	}
	return d.Min()
}

// Values returns every remaining value in increasing order.
func (d Domain) Values() []int {
	out := make([]int, 0, d.Size())
	m := d.mask
	for m != 0 {
		off := bits.TrailingZeros32(m)
		out = append(out, d.lo+off)
		m &^= uint32(1) << uint(off)
	}
	return out
}

// Remove excludes v from the domain, returning the new domain and whether
// it actually changed anything.
func (d Domain) Remove(v int) (Domain, bool) {
	off := v - d.lo
	if off < 0 || off >= maxDomainWidth {
		return d, false
	}
	bit := uint32(1) << uint(off)
	if d.mask&bit == 0 {
		return d, false
	}
	return Domain{lo: d.lo, mask: d.mask &^ bit}, true
}

// Fix restricts the domain to exactly {v}, returning whether it changed.
func (d Domain) Fix(v int) (Domain, bool) {
	if !d.Contains(v) {
		return Domain{lo: d.lo, mask: 0}, d.mask != 0
	}
	nd := Singleton(v)
	return nd, nd != d
}

// RestrictMin removes every value below lo, returning the new domain and
// whether it changed.
func (d Domain) RestrictMin(lo int) (Domain, bool) {
	changed := false
	for _, v := range d.Values() {
		if v < lo {
			d, _ = d.Remove(v)
			changed = true
		}
	}
	return d, changed
}

// RestrictMax removes every value above hi, returning the new domain and
// whether it changed.
func (d Domain) RestrictMax(hi int) (Domain, bool) {
	changed := false
	for _, v := range d.Values() {
		if v > hi {
			d, _ = d.Remove(v)
			changed = true
		}
	}
	return d, changed
}

// KeepOnly intersects the domain with the given allowed set, returning the
// new domain and whether it changed.
func (d Domain) KeepOnly(allowed map[int]bool) (Domain, bool) {
	changed := false
	for _, v := range d.Values() {
		if !allowed[v] {
			d, _ = d.Remove(v)
			changed = true
		}
	}
	return d, changed
}
