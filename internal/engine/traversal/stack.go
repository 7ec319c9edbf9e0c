package traversal

// Stack is a LIFO of traversal candidates with O(1) membership tests.
// It remembers its high-water mark so the backing array can be trimmed
// after a frame.
type Stack[T comparable] struct {
	items  []T
	counts map[T]int
	maxLen int
}

// NewStack creates an empty stack.
func NewStack[T comparable]() *Stack[T] {
	return &Stack[T]{counts: make(map[T]int)}
}

// Push adds v on top of the stack.
func (s *Stack[T]) Push(v T) {
	s.items = append(s.items, v)
	s.counts[v]++
	s.maxLen = max(s.maxLen, len(s.items))
}

// Pop removes and returns the top element.
func (s *Stack[T]) Pop() (T, bool) {
	var zero T
	if len(s.items) == 0 {
		return zero, false
	}
	last := len(s.items) - 1
	v := s.items[last]
	s.items[last] = zero
	s.items = s.items[:last]
	s.forget(v)
	return v, true
}

// Len returns the number of elements.
func (s *Stack[T]) Len() int {
	return len(s.items)
}

// Find reports whether v is on the stack.
func (s *Stack[T]) Find(v T) bool {
	return s.counts[v] > 0
}

// Delete removes the topmost occurrence of v and reports whether one was found.
func (s *Stack[T]) Delete(v T) bool {
	if !s.Find(v) {
		return false
	}
	for i := len(s.items) - 1; i >= 0; i-- {
		if s.items[i] != v {
			continue
		}
		copy(s.items[i:], s.items[i+1:])
		var zero T
		s.items[len(s.items)-1] = zero
		s.items = s.items[:len(s.items)-1]
		s.forget(v)
		return true
	}
	return false
}

// Reset empties the stack and keeps its capacity.
func (s *Stack[T]) Reset() {
	clear(s.items)
	s.items = s.items[:0]
	clear(s.counts)
}

// Trim shrinks the backing array to maxLength, never below the current length,
// and restarts the high-water mark.
func (s *Stack[T]) Trim(maxLength int) {
	maxLength = max(maxLength, len(s.items))
	if cap(s.items) > maxLength {
		items := make([]T, len(s.items), maxLength)
		copy(items, s.items)
		s.items = items
	}
	s.maxLen = len(s.items)
}

// MaxLength returns the largest length observed since the last Trim.
func (s *Stack[T]) MaxLength() int {
	return s.maxLen
}

// Cap returns the capacity of the backing array.
func (s *Stack[T]) Cap() int {
	return cap(s.items)
}

func (s *Stack[T]) forget(v T) {
	if s.counts[v] <= 1 {
		delete(s.counts, v)
		return
	}
	s.counts[v]--
}
