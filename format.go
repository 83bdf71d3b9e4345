package goanf

import (
	"strconv"
	"strings"
)

func variableName(v Variable) string {
	return "x" + strconv.FormatUint(uint64(v), 10)
}

// Format renders id in algebraic normal form, highest term first, such as
// "x0*x1 + x2 + 1". The zero polynomial renders as "0".
func Format(f *Forest, id NodeID) string {
	terms := Terms(f, id)
	if len(terms) == 0 {
		return "0"
	}

	var b strings.Builder
	for i, t := range terms {
		if i > 0 {
			b.WriteString(" + ")
		}
		if t == True {
			b.WriteByte('1')
			continue
		}
		for j := 0; !t.IsConstant(); j++ {
			v, hi, _ := f.split(t)
			if j > 0 {
				b.WriteByte('*')
			}
			b.WriteString(variableName(v))
			t = hi
		}
	}
	return b.String()
}

// FormatAll renders each polynomial of ids with Format.
func FormatAll(f *Forest, ids []NodeID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = Format(f, id)
	}
	return out
}
