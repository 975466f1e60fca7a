// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package storage

import (
	"slices"

	"github.com/pkg/errors"
)

var (
	// ErrDuplicate is returned when inserting an element already present.
	ErrDuplicate = errors.New("duplicate entry")
	// ErrFull is returned when the list would exceed its bound.
	ErrFull = errors.New("bound exceeded")
	// ErrNotFound is returned when removing an element not present.
	ErrNotFound = errors.New("entry not found")
)

// BoundedVec is an ordered list of distinct elements, whose length never exceeds the bound.
// An absent list reads as empty.
type BoundedVec[V comparable] struct {
	value *Value[[]V]
	bound uint32
}

func NewBoundedVec[V comparable](context *Context, name string, bound uint32) *BoundedVec[V] {
	return &BoundedVec[V]{
		value: NewValue[[]V](context, name),
		bound: bound,
	}
}

// Bound returns the capacity.
func (b *BoundedVec[V]) Bound() uint32 {
	return b.bound
}

// Get returns all elements in insertion order.
func (b *BoundedVec[V]) Get() ([]V, error) {
	list, _, err := b.value.Get()
	return list, err
}

func (b *BoundedVec[V]) Len() (int, error) {
	list, err := b.Get()
	return len(list), err
}

func (b *BoundedVec[V]) Contains(v V) (bool, error) {
	list, err := b.Get()
	if err != nil {
		return false, err
	}
	return slices.Contains(list, v), nil
}

// TryMutate applies f to the list and stores the result, unless f fails or
// the result exceeds the bound. Nothing is written on failure.
func (b *BoundedVec[V]) TryMutate(f func([]V) ([]V, error)) error {
	list, err := b.Get()
	if err != nil {
		return err
	}
	list, err = f(list)
	if err != nil {
		return err
	}
	if uint32(len(list)) > b.bound {
		return ErrFull
	}
	if len(list) == 0 {
		b.value.Kill()
		return nil
	}
	return b.value.Put(list)
}

// Insert appends v. The duplicate check comes before the capacity check.
func (b *BoundedVec[V]) Insert(v V) error {
	return b.TryMutate(func(list []V) ([]V, error) {
		if slices.Contains(list, v) {
			return nil, ErrDuplicate
		}
		return append(list, v), nil
	})
}

// Remove deletes v, preserving the order of the others.
func (b *BoundedVec[V]) Remove(v V) error {
	return b.TryMutate(func(list []V) ([]V, error) {
		i := slices.Index(list, v)
		if i < 0 {
			return nil, ErrNotFound
		}
		return slices.Delete(list, i, i+1), nil
	})
}

// Set replaces all elements. The elements must be distinct.
func (b *BoundedVec[V]) Set(values []V) error {
	return b.TryMutate(func([]V) ([]V, error) {
		for i, v := range values {
			if slices.Contains(values[:i], v) {
				return nil, ErrDuplicate
			}
		}
		return slices.Clone(values), nil
	})
}
