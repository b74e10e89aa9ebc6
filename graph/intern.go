package graph

import (
	"fmt"

	"github.com/minio/highwayhash"
)

// internKey is a 64-bit fingerprint of a constant node's (variant, value)
// pair, used to intern identical constants within a single build: two
// Int(42) nodes compare equal by identity at most once per graph. Scalar
// constants (int/long/float/double/bool/string/null)
// already have Go-comparable values and are interned via a plain map key;
// the hash is reserved for the composite case -- an Enum constant's
// resolved constructor-argument tuple, which may itself contain nested
// EnumValueReference values that are not directly comparable as a map key
// once collected into a slice.
var internHashKey = []byte("vmgraph-constant-intern-key00000")

func enumArgsFingerprint(enumType, enumName string, args []interface{}) uint64 {
	h, err := highwayhash.New64(internHashKey)
	if err != nil {
		// highwayhash.New64 only fails for a wrong-length key, which is a
		// programmer error, not a runtime condition; fall back to 0 rather
		// than panic.
		return 0
	}
	_, _ = h.Write([]byte(enumType))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(enumName))
	for _, a := range args {
		_, _ = h.Write([]byte{0})
		_, _ = h.Write([]byte(fmt.Sprintf("%T:%v", a, a)))
	}
	return h.Sum64()
}

type scalarKey struct {
	kind ConstantKind
	val  interface{}
}

func scalarInternKey(c *Constant) (scalarKey, bool) {
	switch c.ConstKind {
	case ConstInt:
		return scalarKey{c.ConstKind, c.IntVal}, true
	case ConstLong:
		return scalarKey{c.ConstKind, c.LongVal}, true
	case ConstFloat:
		return scalarKey{c.ConstKind, c.FloatVal}, true
	case ConstDouble:
		return scalarKey{c.ConstKind, c.DoubleVal}, true
	case ConstBool:
		return scalarKey{c.ConstKind, c.BoolVal}, true
	case ConstString:
		return scalarKey{c.ConstKind, c.StringVal}, true
	case ConstNull:
		return scalarKey{c.ConstKind, nil}, true
	default:
		return scalarKey{}, false
	}
}
