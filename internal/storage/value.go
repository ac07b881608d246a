package storage

import (
	"fmt"
	"strconv"
)

// CoerceValue converts v to dtype the way the Python original's
// constructor-style coercion does (int(v), float(v), str(v)): a string is
// parsed, a float truncates toward zero when coerced to int, and anything
// coerced to text is stringified. nil passes through unchanged — callers
// check nullability separately.
func CoerceValue(v Value, dtype DType) (Value, error) {
	if v == nil {
		return nil, nil
	}
	switch dtype {
	case DTypeInt:
		switch x := v.(type) {
		case int64:
			return x, nil
		case float64:
			return int64(x), nil
		case string:
			i, err := strconv.ParseInt(x, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid int literal %q", x)
			}
			return i, nil
		default:
			return nil, fmt.Errorf("cannot coerce %T to int", v)
		}
	case DTypeFloat:
		switch x := v.(type) {
		case float64:
			return x, nil
		case int64:
			return float64(x), nil
		case string:
			f, err := strconv.ParseFloat(x, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid float literal %q", x)
			}
			return f, nil
		default:
			return nil, fmt.Errorf("cannot coerce %T to float", v)
		}
	case DTypeText:
		switch x := v.(type) {
		case string:
			return x, nil
		case int64:
			return strconv.FormatInt(x, 10), nil
		case float64:
			return strconv.FormatFloat(x, 'g', -1, 64), nil
		default:
			return fmt.Sprint(x), nil
		}
	default:
		return nil, fmt.Errorf("unknown dtype %v", dtype)
	}
}
