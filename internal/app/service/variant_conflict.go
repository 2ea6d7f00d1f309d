package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yhkang/stylehub-backend/internal/app/repository"
	errs "github.com/yhkang/stylehub-backend/internal/errors"
)

// assignmentKey builds the canonical identity of an attribute assignment:
// the sorted attribute/value id pairs joined into one string. Two variants
// with the same key are indistinguishable to a buyer.
func assignmentKey(pairs []repository.AttributeValuePair) string {
	parts := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		parts = append(parts, pair.AttributeID+"="+pair.ValueID)
	}
	sort.Strings(parts)
	return strings.Join(parts, "|")
}

func resolvedAssignmentKey(resolved []ResolvedAssignment) string {
	pairs := make([]repository.AttributeValuePair, 0, len(resolved))
	for _, pair := range resolved {
		pairs = append(pairs, repository.AttributeValuePair{
			AttributeID: pair.Attribute.ID,
			ValueID:     pair.Value.ID,
		})
	}
	return assignmentKey(pairs)
}

// conflictDetector answers whether a proposed assignment collides with a
// sibling variant. Persisted siblings are loaded once per product; batch
// keys accumulate as a bulk request accepts items.
type conflictDetector struct {
	persisted map[string]bool
	batch     map[string]int
}

func newConflictDetector(assignments []repository.VariantAssignment) *conflictDetector {
	persisted := make(map[string]bool, len(assignments))
	for _, assignment := range assignments {
		persisted[assignmentKey(assignment.Pairs)] = true
	}
	return &conflictDetector{
		persisted: persisted,
		batch:     make(map[string]int),
	}
}

// Check reports a conflict for the proposed assignment, or nil when it is
// free. Does not register the key; call Accept once the item is committed.
func (d *conflictDetector) Check(resolved []ResolvedAssignment) *errs.ValidationError {
	key := resolvedAssignmentKey(resolved)
	if d.persisted[key] {
		return errs.Validation("attributes", errs.DuplicatedInputItem,
			"A variant with these attribute values already exists.")
	}
	if index, ok := d.batch[key]; ok {
		return errs.Validation("attributes", errs.DuplicatedInputItem,
			fmt.Sprintf("Duplicated attribute values with item at index %d.", index))
	}
	return nil
}

// Accept registers an assignment accepted at the given batch index so the
// rest of the batch conflicts against it.
func (d *conflictDetector) Accept(resolved []ResolvedAssignment, index int) {
	d.batch[resolvedAssignmentKey(resolved)] = index
}
