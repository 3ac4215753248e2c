package util

import (
	"fmt"
	"sort"
	"strings"
)

// ISet is the set surface the grammar and automaton code builds on. It
// deliberately offers no unordered rendering and no iteration-order
// guarantee beyond what Elements documents: canonical state naming, table
// printing, and DOT emission all depend on set contents never being
// observed in Go's map order, so the only string form is the sorted one.
type ISet[E any] interface {
	Container[E]

	// Add puts element in the set. Adding an element already present has
	// no effect.
	Add(element E)

	// AddAll adds every element of s2. If both sets carry mapped values
	// (VSet), the values come along too.
	AddAll(s2 ISet[E])

	// Remove takes element out of the set. Removing an element not
	// present has no effect.
	Remove(element E)

	// Has returns whether element is in the set.
	Has(element E) bool

	// Len returns the number of elements in the set.
	Len() int

	// Empty returns whether the set has no elements.
	Empty() bool

	// Any returns whether at least one element satisfies predicate.
	Any(predicate func(v E) bool) bool

	// Equal returns whether o is a set with the same elements. For sets
	// that map values to elements, the values do not participate.
	Equal(o any) bool

	// StringOrdered renders the contents sorted ascending, so equal sets
	// always render identically. Item-set hashing and state naming key off
	// this.
	StringOrdered() string
}

// VSet is a set whose elements each carry a mapped value. Item sets are
// VSets keyed by each item's canonical string with the item itself as the
// value.
type VSet[E any, V any] interface {
	ISet[E]

	// Set adds element to the set if needed and assigns it the given
	// value.
	Set(element E, value V)

	// Get returns the value mapped to element, or the zero value of V if
	// element is not in the set.
	Get(element E) V
}

// renderOrdered is the one rendering shared by every set type here;
// elements are shown sorted so output never depends on map order.
func renderOrdered(elems []string) string {
	sorted := make([]string, len(elems))
	copy(sorted, elems)
	sort.Strings(sorted)

	var sb strings.Builder
	sb.WriteRune('{')
	for i := range sorted {
		sb.WriteString(sorted[i])
		if i+1 < len(sorted) {
			sb.WriteRune(',')
			sb.WriteRune(' ')
		}
	}
	sb.WriteRune('}')
	return sb.String()
}

func setEqual[E comparable](s map[E]bool, o any) bool {
	other, ok := o.(ISet[E])
	if !ok {
		otherPtr, ok := o.(*ISet[E])
		if !ok {
			return false
		} else if otherPtr == nil {
			return false
		}
		other = *otherPtr
	}

	if len(s) != other.Len() {
		return false
	}
	for k := range s {
		if !other.Has(k) {
			return false
		}
	}
	return true
}

// SVSet is a VSet keyed by string. The automaton and grammar packages use
// it as the item-set type, with each item's canonical String() as the key.
type SVSet[V any] map[string]V

func NewSVSet[V any](of ...map[string]V) SVSet[V] {
	bs := SVSet[V](map[string]V{})
	for _, m := range of {
		for k := range m {
			bs.Set(k, m[k])
		}
	}
	return bs
}

// Add adds idx mapped to the zero value of V. Has no effect if it's
// already there.
func (s SVSet[V]) Add(idx string) {
	if _, ok := s[idx]; ok {
		return
	}
	newRef := new(V)
	s[idx] = *newRef
}

func (s SVSet[V]) Set(idx string, val V) {
	s[idx] = val
}

func (s SVSet[V]) Get(idx string) V {
	return s[idx]
}

func (s SVSet[V]) Has(idx string) bool {
	_, ok := s[idx]
	return ok
}

func (s SVSet[V]) Remove(idx string) {
	delete(s, idx)
}

func (s SVSet[V]) Len() int {
	return len(s)
}

func (s SVSet[V]) Empty() bool {
	return len(s) == 0
}

func (s SVSet[V]) Elements() []string {
	elems := []string{}
	for k := range s {
		elems = append(elems, k)
	}
	return elems
}

func (s SVSet[V]) AddAll(s2 ISet[string]) {
	// if the other set also maps values of our type, carry them over
	valuedSet, isValued := s2.(VSet[string, V])
	if isValued {
		for _, k := range valuedSet.Elements() {
			s.Set(k, valuedSet.Get(k))
		}
	} else {
		for _, k := range s2.Elements() {
			s.Add(k)
		}
	}
}

func (s SVSet[V]) Any(predicate func(v string) bool) bool {
	for k := range s {
		if predicate(k) {
			return true
		}
	}
	return false
}

// Equal returns whether o is a set with the same element keys. Mapped
// values are NOT compared; two item sets holding the same item strings are
// equal regardless of the value structs behind them.
func (s SVSet[V]) Equal(o any) bool {
	other, ok := o.(ISet[string])
	if !ok {
		otherPtr, ok := o.(*ISet[string])
		if !ok {
			return false
		} else if otherPtr == nil {
			return false
		}
		other = *otherPtr
	}

	if s.Len() != other.Len() {
		return false
	}
	for k := range s {
		if !other.Has(k) {
			return false
		}
	}
	return true
}

func (s SVSet[V]) StringOrdered() string {
	return renderOrdered(s.Elements())
}

func (s SVSet[V]) String() string {
	return s.StringOrdered()
}

// StringSet is a plain set of strings.
type StringSet map[string]bool

func NewStringSet(of ...map[string]bool) StringSet {
	s := StringSet{}
	for _, m := range of {
		for k := range m {
			s.Add(k)
		}
	}
	return s
}

func (s StringSet) Has(value string) bool {
	_, has := s[value]
	return has
}

func (s StringSet) Add(value string) {
	s[value] = true
}

func (s StringSet) Remove(value string) {
	delete(s, value)
}

func (s StringSet) Len() int {
	return len(s)
}

func (s StringSet) Empty() bool {
	return len(s) == 0
}

func (s StringSet) AddAll(s2 ISet[string]) {
	for _, element := range s2.Elements() {
		s.Add(element)
	}
}

func (s StringSet) Any(predicate func(v string) bool) bool {
	for k := range s {
		if predicate(k) {
			return true
		}
	}
	return false
}

func (s StringSet) Equal(o any) bool {
	return setEqual[string](s, o)
}

func (s StringSet) StringOrdered() string {
	return renderOrdered(s.Elements())
}

func (s StringSet) String() string {
	return s.StringOrdered()
}

// Elements returns the elements of s as a slice. No particular order is
// guaranteed nor should it be relied on; sort with Alphabetized before
// iterating anywhere order can leak into output.
func (s StringSet) Elements() []string {
	if s == nil {
		return nil
	}

	sl := make([]string, 0)
	for item := range s {
		sl = append(sl, item)
	}
	return sl
}

func StringSetOf(sl []string) StringSet {
	if sl == nil {
		return nil
	}

	s := StringSet{}
	for i := range sl {
		s.Add(sl[i])
	}
	return s
}

// KeySet is a set over any comparable element type. The DFA simulator uses
// it for alphabet membership, where the alphabet may be runes or any other
// comparable symbol type rather than strings.
type KeySet[E comparable] map[E]bool

func NewKeySet[E comparable](of ...map[E]bool) KeySet[E] {
	s := KeySet[E]{}
	for _, m := range of {
		for k := range m {
			s.Add(k)
		}
	}
	return s
}

func (s KeySet[E]) Has(value E) bool {
	_, has := s[value]
	return has
}

func (s KeySet[E]) Add(value E) {
	s[value] = true
}

func (s KeySet[E]) Remove(value E) {
	delete(s, value)
}

func (s KeySet[E]) Len() int {
	return len(s)
}

func (s KeySet[E]) Empty() bool {
	return len(s) == 0
}

func (s KeySet[E]) AddAll(s2 ISet[E]) {
	for _, element := range s2.Elements() {
		s.Add(element)
	}
}

func (s KeySet[E]) Any(predicate func(v E) bool) bool {
	for k := range s {
		if predicate(k) {
			return true
		}
	}
	return false
}

func (s KeySet[E]) Equal(o any) bool {
	return setEqual[E](s, o)
}

// StringOrdered renders elements sorted by their %v representation, the
// same ordering the simulator's sequence generator walks the alphabet in.
func (s KeySet[E]) StringOrdered() string {
	elems := make([]string, 0, len(s))
	for k := range s {
		elems = append(elems, fmt.Sprintf("%v", k))
	}
	return renderOrdered(elems)
}

func (s KeySet[E]) String() string {
	return s.StringOrdered()
}

// Elements returns the elements of s as a slice, in no guaranteed order.
func (s KeySet[E]) Elements() []E {
	if s == nil {
		return nil
	}

	sl := make([]E, 0)
	for item := range s {
		sl = append(sl, item)
	}
	return sl
}

func KeySetOf[E comparable](sl []E) KeySet[E] {
	if sl == nil {
		return nil
	}

	s := NewKeySet[E]()
	for i := range sl {
		s.Add(sl[i])
	}
	return s
}
