package domain

// keyedList is an insertion-ordered collection holding at most one entry per
// key. The zero value is ready to use.
type keyedList[T any] struct {
	order []string
	items map[string]T
}

// add inserts v under key unless key is already present.
func (l *keyedList[T]) add(key string, v T) bool {
	if _, ok := l.items[key]; ok {
		return false
	}
	if l.items == nil {
		l.items = make(map[string]T)
	}
	l.items[key] = v
	l.order = append(l.order, key)
	return true
}

func (l *keyedList[T]) get(key string) (T, bool) {
	v, ok := l.items[key]
	return v, ok
}

func (l *keyedList[T]) remove(key string) bool {
	if _, ok := l.items[key]; !ok {
		return false
	}
	delete(l.items, key)
	for i, k := range l.order {
		if k == key {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	return true
}

func (l *keyedList[T]) size() int {
	return len(l.order)
}

// each visits entries in insertion order.
func (l *keyedList[T]) each(fn func(key string, v T)) {
	for _, k := range l.order {
		fn(k, l.items[k])
	}
}
