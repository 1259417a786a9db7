package smartdiff

import (
	"sort"
)

// DefaultPreferredKeys are identifier-like field names tried, in order, before
// any other qualifying join key
var DefaultPreferredKeys = []string{"codPrestazione", "id", "uuid", "code", "key"}

// ChooseJoinKey finds a field that can align two lists of objects by identity
// rather than by position. A field qualifies when it's present in every
// element of both lists and, within each list separately, its values are all
// scalars (or null) and pairwise distinct. The first qualifying name in
// preferred wins, otherwise the lexicographically smallest qualifying name.
// ok is false when either list is empty, holds a non-object, or no field
// qualifies
func ChooseJoinKey(list1, list2 Array, preferred []string) (key string, ok bool) {
	if len(list1) == 0 || len(list2) == 0 {
		return "", false
	}
	objs1, ok1 := allObjects(list1)
	objs2, ok2 := allObjects(list2)
	if !ok1 || !ok2 {
		return "", false
	}

	common := map[string]bool{}
	for _, k := range objs1[0].Keys() {
		common[k] = true
	}
	for _, objs := range [][]Object{objs1, objs2} {
		for _, o := range objs {
			for k := range common {
				if !o.Has(k) {
					delete(common, k)
				}
			}
		}
	}

	var candidates []string
	for k := range common {
		if uniqueScalarField(k, objs1) && uniqueScalarField(k, objs2) {
			candidates = append(candidates, k)
		}
	}
	if len(candidates) == 0 {
		return "", false
	}

	for _, pref := range preferred {
		for _, c := range candidates {
			if c == pref {
				return c, true
			}
		}
	}
	sort.Strings(candidates)
	return candidates[0], true
}

func allObjects(list Array) ([]Object, bool) {
	objs := make([]Object, len(list))
	for i, el := range list {
		o, ok := el.(Object)
		if !ok {
			return nil, false
		}
		objs[i] = o
	}
	return objs, true
}

// uniqueScalarField reports whether every object holds a scalar at key and no
// two of those scalars are equal
func uniqueScalarField(key string, objs []Object) bool {
	seen := make(map[string]struct{}, len(objs))
	for _, o := range objs {
		v, _ := o.Get(key)
		sk, ok := scalarKey(v)
		if !ok {
			return false
		}
		if _, dup := seen[sk]; dup {
			return false
		}
		seen[sk] = struct{}{}
	}
	return true
}

// scalarKey maps a scalar to a string that's equal for two scalars exactly
// when they compare equal. kinds are kept apart, so true and 1 never collide
func scalarKey(v Value) (string, bool) {
	switch x := v.(type) {
	case Null:
		return "null", true
	case Bool:
		if x {
			return "b:true", true
		}
		return "b:false", true
	case Number:
		return "n:" + parseDecimal(x.String()).String(), true
	case String:
		return "s:" + string(x), true
	}
	return "", false
}
