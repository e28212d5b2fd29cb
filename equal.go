package ujson

// Equal reports general structural equality: same Kind, deep-equal payload.
// For objects this is order-sensitive — two objects with the same pairs in
// a different order are NOT Equal. This is the equality used for round-trip
// tests (parse(stringify(v)) == v) and ordinary API comparisons.
//
// Schema evaluation of uniqueItems/enum/const deliberately uses a different,
// order-insensitive notion of object equality; see EqualForSchema. The
// divergence is intentional, not a bug to unify.
func Equal(a, b Value) bool {
	return equal(a, b, false)
}

// EqualForSchema reports the equality used by the schema validator's
// uniqueItems, enum, and const keywords: identical to Equal except that
// objects are compared as unordered multisets of (key, value) pairs rather
// than as ordered sequences.
func EqualForSchema(a, b Value) bool {
	return equal(a, b, true)
}

func equal(a, b Value, objectsUnordered bool) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindInvalid, KindNull:
		return true
	case KindBoolean:
		return a.b == b.b
	case KindNumber:
		return a.num.Float64() == b.num.Float64()
	case KindString:
		return a.str == b.str
	case KindArray:
		return equalArrays(a.arr, b.arr, objectsUnordered)
	case KindObject:
		if objectsUnordered {
			return equalObjectsUnordered(a.obj, b.obj)
		}
		return equalObjectsOrdered(a.obj, b.obj)
	default:
		return false
	}
}

func equalArrays(a, b *Array, objectsUnordered bool) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := 0; i < a.Len(); i++ {
		av, _ := a.At(i)
		bv, _ := b.At(i)
		if !equal(av, bv, objectsUnordered) {
			return false
		}
	}
	return true
}

func equalObjectsOrdered(a, b *Object) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := 0; i < a.Len(); i++ {
		if a.pairs[i].key != b.pairs[i].key {
			return false
		}
		if !equal(a.pairs[i].val, b.pairs[i].val, false) {
			return false
		}
	}
	return true
}

// equalObjectsUnordered treats each object as a multiset of (key, value)
// pairs: every pair in a must match some not-yet-matched pair in b, and
// vice versa (sizes equal), independent of position.
func equalObjectsUnordered(a, b *Object) bool {
	if a.Len() != b.Len() {
		return false
	}
	used := make([]bool, b.Len())
	for _, pa := range a.pairs {
		matched := false
		for j, pb := range b.pairs {
			if used[j] || pa.key != pb.key {
				continue
			}
			if equal(pa.val, pb.val, true) {
				used[j] = true
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}
