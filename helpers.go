package sparkapi

// Bootstrap Config values usually arrive from decoded JSON, where every
// number is a float64 and every list is a []any. The accessors below
// normalize those shapes back into host-native types.

// GetString returns the string stored under key.
func GetString(cfg Config, key string) (string, bool) {
	s, ok := cfg[key].(string)
	return s, ok
}

// GetInt returns the integer stored under key, accepting int, int64, and
// the float64 form JSON decoding produces.
func GetInt(cfg Config, key string) (int, bool) {
	switch n := cfg[key].(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}

// GetFloat returns the float stored under key, widening integer values.
func GetFloat(cfg Config, key string) (float64, bool) {
	switch n := cfg[key].(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// GetBool returns the bool stored under key.
func GetBool(cfg Config, key string) (bool, bool) {
	b, ok := cfg[key].(bool)
	return b, ok
}

// GetStringSlice returns the string list stored under key, accepting both
// []string and the []any form JSON decoding produces. A list with any
// non-string element is rejected.
func GetStringSlice(cfg Config, key string) ([]string, bool) {
	switch v := cfg[key].(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out, true
	case []any:
		out := make([]string, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out[i] = s
		}
		return out, true
	}
	return nil, false
}
