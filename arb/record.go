package arb

import "math/rand"

// recordArb is the Record({k: Arbitrary}) primitive of spec §4.1: a
// product arbitrary whose size is the product of field sizes, whose
// corner cases are the (capped) cartesian product of field corner cases.
// Since Go generics cannot express a heterogeneous map[string]Arbitrary[T]
// for varying T, it operates over a fixed result type R built by a
// constructor function from per-field picks, matching how the rest of the
// corpus threads typed records through generic code (e.g. gnark's typed
// circuit witnesses).
type recordArb[R any] struct {
	fields    []recordField
	build     func(map[string]any) R
	cornerCap int
}

type recordField struct {
	name        string
	size        Size
	pick        func(rng *rand.Rand) (any, bool)
	cornerCases func() []any
	shrink      func(current any) (Arbitrary[any], bool)
}

// RecordField describes one field of a Record for a concrete element
// type T; use RecordOf to assemble several into a Record arbitrary.
type RecordField[T any] struct {
	Name string
	Arb  Arbitrary[T]
}

const defaultRecordCornerCap = 64

// RecordOf builds a Record arbitrary over named fields, assembling a
// result of type R via build. Corner cases are the cartesian product of
// each field's corner cases, truncated to defaultRecordCornerCap entries
// as spec §4.1 requires.
func RecordOf[R any](build func(map[string]any) R, fields ...any) Arbitrary[R] {
	rf := make([]recordField, 0, len(fields))
	for _, f := range fields {
		rf = append(rf, toRecordField(f))
	}
	return recordArb[R]{fields: rf, build: build, cornerCap: defaultRecordCornerCap}
}

func toRecordField(f any) recordField {
	switch v := f.(type) {
	case recordFieldAdapter:
		return v.toInternal()
	default:
		panic("arb: RecordOf fields must be built with arb.Fld()")
	}
}

// recordFieldAdapter lets RecordField[T] erase its type parameter into the
// internal recordField representation.
type recordFieldAdapter interface {
	toInternal() recordField
}

func (f RecordField[T]) toInternal() recordField {
	arb := f.Arb
	return recordField{
		name: f.Name,
		size: arb.Size(),
		pick: func(rng *rand.Rand) (any, bool) {
			p, ok := arb.Pick(rng)
			return p.Value, ok
		},
		cornerCases: func() []any {
			cc := arb.CornerCases()
			out := make([]any, len(cc))
			for i, c := range cc {
				out[i] = c.Value
			}
			return out
		},
		shrink: func(current any) (Arbitrary[any], bool) {
			shrunk := arb.Shrink(NewPick(current.(T)))
			if shrunk.Size().IsZero() {
				return nil, false
			}
			return eraseArbitrary[T](shrunk), true
		},
	}
}

// Fld is the ergonomic constructor for a Record field, used as
// arb.Fld("name", someArbitrary).
func Fld[T any](name string, a Arbitrary[T]) any {
	return RecordField[T]{Name: name, Arb: a}
}

// eraseArbitrary adapts an Arbitrary[T] to Arbitrary[any] so recordField
// can hold heterogeneous field shrinkers uniformly.
func eraseArbitrary[T any](a Arbitrary[T]) Arbitrary[any] {
	return erasedArbitrary[T]{inner: a}
}

// EraseArbitrary is the exported form of eraseArbitrary, used outside this
// package (scenario's compiled ExecutableQuantifier) wherever a set of
// heterogeneously-typed quantifier arbitraries needs a uniform handle.
func EraseArbitrary[T any](a Arbitrary[T]) Arbitrary[any] {
	return eraseArbitrary[T](a)
}

type erasedArbitrary[T any] struct{ inner Arbitrary[T] }

func (e erasedArbitrary[T]) Size() Size { return e.inner.Size() }
func (e erasedArbitrary[T]) Pick(rng *rand.Rand) (Pick[any], bool) {
	p, ok := e.inner.Pick(rng)
	if !ok {
		var zero Pick[any]
		return zero, false
	}
	return NewPick[any](p.Value), true
}
func (e erasedArbitrary[T]) CornerCases() []Pick[any] {
	cc := e.inner.CornerCases()
	out := make([]Pick[any], len(cc))
	for i, c := range cc {
		out[i] = NewPick[any](c.Value)
	}
	return out
}
func (e erasedArbitrary[T]) Sample(n int, rng *rand.Rand) []Pick[any] {
	return DefaultSample[any](e, n, rng)
}
func (e erasedArbitrary[T]) SampleWithBias(n int, rng *rand.Rand) []Pick[any] {
	return DefaultSampleWithBias[any](e, n, rng)
}
func (e erasedArbitrary[T]) SampleUnique(n int, exclude []Pick[any], rng *rand.Rand) []Pick[any] {
	return DefaultSampleUnique[any](e, n, exclude, rng)
}
func (e erasedArbitrary[T]) Shrink(pick Pick[any]) Arbitrary[any] {
	return eraseArbitrary(e.inner.Shrink(NewPick(pick.Value.(T))))
}
func (e erasedArbitrary[T]) ShrinkIterator(pick Pick[any], opts ShrinkIterOpts) ShrinkIterator[any] {
	inner := e.inner.ShrinkIterator(NewPick(pick.Value.(T)), opts)
	return &mappedShrinkIterator[T, any]{inner: inner, f: func(t T) any { return t }}
}
func (e erasedArbitrary[T]) CanGenerate(pick Pick[any]) bool {
	v, ok := pick.Value.(T)
	return ok && e.inner.CanGenerate(NewPick(v))
}
func (e erasedArbitrary[T]) IsShrunken(candidate, current Pick[any]) bool {
	return e.inner.IsShrunken(NewPick(candidate.Value.(T)), NewPick(current.Value.(T)))
}
func (e erasedArbitrary[T]) Equals(a, b any) bool { return e.inner.Equals(a.(T), b.(T)) }
func (e erasedArbitrary[T]) Hash(a any) uint64    { return e.inner.Hash(a.(T)) }

func (r recordArb[R]) Size() Size {
	total := ExactSize(1)
	for _, f := range r.fields {
		total = total.Mul(f.size)
	}
	return total
}

func (r recordArb[R]) Pick(rng *rand.Rand) (Pick[R], bool) {
	rng = newRNG(rng)
	m := make(map[string]any, len(r.fields))
	for _, f := range r.fields {
		v, ok := f.pick(rng)
		if !ok {
			var zero Pick[R]
			return zero, false
		}
		m[f.name] = v
	}
	return NewMappedPick(r.build(m), m), true
}

func (r recordArb[R]) CornerCases() []Pick[R] {
	if len(r.fields) == 0 {
		return nil
	}
	combos := []map[string]any{{}}
	for _, f := range r.fields {
		ccs := f.cornerCases()
		if len(ccs) == 0 {
			continue
		}
		var next []map[string]any
		for _, combo := range combos {
			for _, cc := range ccs {
				if len(next) >= r.cornerCap {
					break
				}
				m := make(map[string]any, len(combo)+1)
				for k, v := range combo {
					m[k] = v
				}
				m[f.name] = cc
				next = append(next, m)
			}
			if len(next) >= r.cornerCap {
				break
			}
		}
		combos = next
	}
	out := make([]Pick[R], 0, len(combos))
	for _, m := range combos {
		out = append(out, NewMappedPick(r.build(m), m))
	}
	return out
}

func (r recordArb[R]) Sample(n int, rng *rand.Rand) []Pick[R] {
	return DefaultSample[R](r, n, rng)
}
func (r recordArb[R]) SampleWithBias(n int, rng *rand.Rand) []Pick[R] {
	return DefaultSampleWithBias[R](r, n, rng)
}
func (r recordArb[R]) SampleUnique(n int, exclude []Pick[R], rng *rand.Rand) []Pick[R] {
	return DefaultSampleUnique[R](r, n, exclude, rng)
}

func (r recordArb[R]) fieldMap(pick Pick[R]) map[string]any {
	if m, ok := pick.Original.(map[string]any); ok {
		return m
	}
	return nil
}

func (r recordArb[R]) Shrink(pick Pick[R]) Arbitrary[R] {
	m := r.fieldMap(pick)
	if m == nil {
		return NoArbitrary[R]()
	}
	// Shrink the first field whose current value admits a smaller
	// arbitrary; this gives the caller a usable ShrinkIterator per field
	// via ShrinkIterator below, while Shrink itself returns one concrete
	// narrower Record arbitrary (spec's "smaller arbitrary" contract).
	for _, f := range r.fields {
		if sub, ok := f.shrink(m[f.name]); ok {
			narrowed := make([]recordField, len(r.fields))
			copy(narrowed, r.fields)
			for i := range narrowed {
				if narrowed[i].name == f.name {
					captured := sub
					narrowed[i].pick = func(rng *rand.Rand) (any, bool) {
						p, ok := captured.Pick(rng)
						return p.Value, ok
					}
					narrowed[i].cornerCases = func() []any {
						cc := captured.CornerCases()
						out := make([]any, len(cc))
						for j, c := range cc {
							out[j] = c.Value
						}
						return out
					}
					narrowed[i].size = captured.Size()
				}
			}
			return recordArb[R]{fields: narrowed, build: r.build, cornerCap: r.cornerCap}
		}
	}
	return NoArbitrary[R]()
}

func (r recordArb[R]) ShrinkIterator(pick Pick[R], opts ShrinkIterOpts) ShrinkIterator[R] {
	grow := func(base Pick[R]) []Pick[R] {
		bm := r.fieldMap(base)
		if bm == nil {
			return nil
		}
		var out []Pick[R]
		for _, f := range r.fields {
			sub, ok := f.shrink(bm[f.name])
			if !ok {
				continue
			}
			for _, cc := range sub.CornerCases() {
				nm := make(map[string]any, len(bm))
				for k, v := range bm {
					nm[k] = v
				}
				nm[f.name] = cc.Value
				out = append(out, NewMappedPick(r.build(nm), nm))
			}
		}
		return out
	}
	return newNeighborQueueIterator[R](pick, ShrinkBFS, opts.MaxCandidates, r.Hash, grow)
}

func (r recordArb[R]) CanGenerate(pick Pick[R]) bool {
	m := r.fieldMap(pick)
	return m != nil
}

func (r recordArb[R]) IsShrunken(candidate, current Pick[R]) bool {
	cm, om := r.fieldMap(candidate), r.fieldMap(current)
	if cm == nil || om == nil {
		return false
	}
	return fmtString(cm) < fmtString(om)
}

func (r recordArb[R]) Equals(x, y R) bool { return fmtEqual(x, y) }
func (r recordArb[R]) Hash(x R) uint64     { return fnv1a(fmtString(x)) }
