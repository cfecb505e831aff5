package util

// UniqueBy keeps the first item for every distinct key, preserving order
func UniqueBy[T any, K comparable](items []T, key func(T) K) []T {
	present := make(map[K]bool, len(items))
	list := make([]T, 0, len(items))

	for _, item := range items {
		k := key(item)
		if present[k] {
			continue
		}

		present[k] = true
		list = append(list, item)
	}

	return list
}
