package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yhkang/stylehub-backend/internal/app/model"
	"github.com/yhkang/stylehub-backend/internal/app/repository"
	errs "github.com/yhkang/stylehub-backend/internal/errors"
)

func resolvedPair(attribute model.Attribute, valueID string) ResolvedAssignment {
	return ResolvedAssignment{
		Attribute: attribute,
		Value:     model.AttributeValue{ID: valueID, AttributeID: attribute.ID},
	}
}

func TestAssignmentKey_OrderIndependent(t *testing.T) {
	a := assignmentKey([]repository.AttributeValuePair{
		{AttributeID: "attr-1", ValueID: "val-1"},
		{AttributeID: "attr-2", ValueID: "val-2"},
	})
	b := assignmentKey([]repository.AttributeValuePair{
		{AttributeID: "attr-2", ValueID: "val-2"},
		{AttributeID: "attr-1", ValueID: "val-1"},
	})
	assert.Equal(t, a, b)

	c := assignmentKey([]repository.AttributeValuePair{
		{AttributeID: "attr-1", ValueID: "val-1"},
		{AttributeID: "attr-2", ValueID: "other"},
	})
	assert.NotEqual(t, a, c)
}

func TestConflictDetector_PersistedSibling(t *testing.T) {
	color := model.Attribute{ID: "attr-color"}
	size := model.Attribute{ID: "attr-size"}

	detector := newConflictDetector([]repository.VariantAssignment{
		{VariantID: "v1", Pairs: []repository.AttributeValuePair{
			{AttributeID: color.ID, ValueID: "red"},
			{AttributeID: size.ID, ValueID: "small"},
		}},
	})

	verr := detector.Check([]ResolvedAssignment{
		resolvedPair(color, "red"),
		resolvedPair(size, "small"),
	})
	require.NotNil(t, verr)
	assert.Equal(t, errs.DuplicatedInputItem, verr.Code)
	assert.Equal(t, "attributes", verr.Field)

	assert.Nil(t, detector.Check([]ResolvedAssignment{
		resolvedPair(color, "red"),
		resolvedPair(size, "large"),
	}))
}

func TestConflictDetector_BatchSibling(t *testing.T) {
	color := model.Attribute{ID: "attr-color"}
	detector := newConflictDetector(nil)

	first := []ResolvedAssignment{resolvedPair(color, "red")}
	require.Nil(t, detector.Check(first))
	detector.Accept(first, 0)

	verr := detector.Check([]ResolvedAssignment{resolvedPair(color, "red")})
	require.NotNil(t, verr)
	assert.Equal(t, errs.DuplicatedInputItem, verr.Code)
	assert.Contains(t, verr.Message, "index 0")
}
