// Package pkg is a package that provides generic utilities for gext.
package pkg

import (
	"errors"
	"fmt"
	"iter"
)

// ErrCategoryRange reports a classifier that returned a label outside
// [0, categories). It indicates a defect in the classification logic, not
// bad input data.
var ErrCategoryRange = errors.New("classifier label out of range")

// Classifier assigns an item to a category label in [0, categories).
type Classifier[T any] func(T) int

// Partition splits one input sequence into a fixed number of labeled
// output queues, lazily: the shared input is advanced only as far as needed
// to satisfy the next request, and elements belonging to other categories
// are buffered until asked for. Relative order within a category matches
// the input order.
//
// A Partition is not safe for concurrent use; each pipeline owns its own.
type Partition[T any] struct {
	next      func() (T, bool)
	stop      func()
	classify  Classifier[T]
	queues    [][]T
	exhausted bool
	failed    error
}

// NewPartition creates a partition of seq into categories queues. The
// category count must be at least 1.
func NewPartition[T any](seq iter.Seq[T], categories int, classify Classifier[T]) (*Partition[T], error) {
	if categories < 1 {
		return nil, fmt.Errorf("partition needs at least 1 category, got %d", categories)
	}

	next, stop := iter.Pull(seq)

	return &Partition[T]{
		next:     next,
		stop:     stop,
		classify: classify,
		queues:   make([][]T, categories),
	}, nil
}

// Categories returns the category count.
func (p *Partition[T]) Categories() int {
	return len(p.queues)
}

// Next returns the next element of the given category. ok is false once
// that category is exhausted; exhaustion is permanent since all categories
// draw from the one shared input. A classifier range violation is returned
// as an error wrapping ErrCategoryRange before any queue is touched, and
// poisons the partition for all categories.
func (p *Partition[T]) Next(category int) (T, bool, error) {
	var zero T

	if category < 0 || category >= len(p.queues) {
		return zero, false, fmt.Errorf("%w: requested category %d of %d", ErrCategoryRange, category, len(p.queues))
	}

	if p.failed != nil {
		return zero, false, p.failed
	}

	if q := p.queues[category]; len(q) > 0 {
		item := q[0]
		p.queues[category] = q[1:]

		return item, true, nil
	}

	for !p.exhausted {
		item, ok := p.next()
		if !ok {
			p.exhausted = true
			p.stop()

			break
		}

		label := p.classify(item)
		if label < 0 || label >= len(p.queues) {
			p.failed = fmt.Errorf("%w: %d not in [0, %d)", ErrCategoryRange, label, len(p.queues))
			p.stop()

			return zero, false, p.failed
		}

		if label == category {
			return item, true, nil
		}

		p.queues[label] = append(p.queues[label], item)
	}

	return zero, false, nil
}

// Collect drains one category into a slice.
func (p *Partition[T]) Collect(category int) ([]T, error) {
	var items []T

	for {
		item, ok, err := p.Next(category)
		if err != nil {
			return nil, err
		}

		if !ok {
			return items, nil
		}

		items = append(items, item)
	}
}
