package validator

// Safe path lookup over an untyped JSON tree. Every getter returns a
// typed zero value when the path is missing, the node has the wrong
// type, or the container chain is broken anywhere along the way.

func navigate(tree any, path ...string) (any, bool) {
	node := tree
	for _, key := range path {
		m, ok := node.(map[string]any)
		if !ok {
			return nil, false
		}
		node, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return node, true
}

func str(tree any, path ...string) string {
	node, ok := navigate(tree, path...)
	if !ok {
		return ""
	}
	s, _ := node.(string)
	return s
}

func strSlice(tree any, path ...string) []string {
	items, ok := slice(tree, path...)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func obj(tree any, path ...string) map[string]any {
	node, ok := navigate(tree, path...)
	if !ok {
		return nil
	}
	m, _ := node.(map[string]any)
	return m
}

func slice(tree any, path ...string) ([]any, bool) {
	node, ok := navigate(tree, path...)
	if !ok {
		return nil, false
	}
	items, ok := node.([]any)
	return items, ok
}

// resolutions extracts [width, height] pairs, skipping entries that are
// not two-element numeric arrays.
func resolutions(tree any, path ...string) [][2]int {
	items, ok := slice(tree, path...)
	if !ok {
		return nil
	}
	out := make([][2]int, 0, len(items))
	for _, item := range items {
		pair, ok := item.([]any)
		if !ok || len(pair) < 2 {
			continue
		}
		w, wok := pair[0].(float64)
		h, hok := pair[1].(float64)
		if !wok || !hok {
			continue
		}
		out = append(out, [2]int{int(w), int(h)})
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
