package runtime

import (
	"strings"
)

// Stringify renders a value the way print shows it.
func Stringify(v Value) string {
	switch val := v.(type) {
	case nil, NilValue:
		return "NIL"
	case BoolValue:
		if val.Val {
			return "TRUE"
		}
		return "FALSE"
	case CharValue:
		return string(val.Val)
	case StringValue:
		return val.Val
	case IntegerValue:
		return val.Val.String()
	case DecimalValue:
		return val.Val.Text('f')
	case *ListValue:
		var b strings.Builder
		b.WriteByte('[')
		for i, el := range val.Elements {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(Stringify(el))
		}
		b.WriteByte(']')
		return b.String()
	default:
		return "<unknown>"
	}
}
