package containers

import "errors"

// Stack is a LIFO container backed by a growable slice. The most recently
// pushed element is at the top.
type Stack[T any] struct {
	data []T
}

// Create a new Stack
func NewStack[T any]() *Stack[T] {
	return &Stack[T]{
		data: make([]T, 0),
	}
}

// Push adds an element on top of the stack
func (s *Stack[T]) Push(value T) {
	s.data = append(s.data, value)
}

// Pop removes and returns the top element of the stack
func (s *Stack[T]) Pop() (T, error) {
	var zero T
	if s.IsEmpty() {
		return zero, errors.New("stack is empty")
	}

	top := len(s.data) - 1
	value := s.data[top]
	s.data[top] = zero
	s.data = s.data[:top]
	return value, nil
}

// Peek returns the top element without removing it
func (s *Stack[T]) Peek() (T, error) {
	var zero T
	if s.IsEmpty() {
		return zero, errors.New("stack is empty")
	}
	return s.data[len(s.data)-1], nil
}

// IsEmpty checks if the stack is empty
func (s *Stack[T]) IsEmpty() bool {
	return len(s.data) == 0
}

// Count returns the number of stacked elements
func (s *Stack[T]) Count() int {
	return len(s.data)
}
