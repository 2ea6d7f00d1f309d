package service

import (
	"fmt"
	"strings"

	"github.com/yhkang/stylehub-backend/internal/app/model"
	"github.com/yhkang/stylehub-backend/internal/app/repository"
	errs "github.com/yhkang/stylehub-backend/internal/errors"
)

// AttributeValueInput references one variant-selection attribute and the
// value names assigned to it. Parsed from the request body at the HTTP
// boundary; value names may be new (values are created lazily).
type AttributeValueInput struct {
	AttributeID string   `json:"id" binding:"required"`
	Values      []string `json:"values"`
}

// ResolvedAssignment is one validated (attribute, value) element of a
// variant's assignment, ready for conflict detection and persistence.
type ResolvedAssignment struct {
	Attribute model.Attribute
	Value     model.AttributeValue
}

// assignmentValidator checks a proposed attribute assignment against the
// product type's variant-selection attributes and resolves value names to
// canonical attribute values.
type assignmentValidator struct {
	attributeRepo repository.AttributeRepository
}

func newAssignmentValidator(attributeRepo repository.AttributeRepository) *assignmentValidator {
	return &assignmentValidator{attributeRepo: attributeRepo}
}

// Validate runs the structural checks and, if they pass, resolves every
// value, creating missing ones. The resolved assignment covers exactly the
// product type's variant-selection attributes, in their configured order.
//
// Checks, first violation wins:
//   - the same attribute referenced twice     -> DUPLICATED_INPUT_ITEM
//   - attribute not variant-selecting here    -> NOT_FOUND
//   - variant-selection attribute missing     -> ATTRIBUTES_REQUIRED
//   - zero values for an attribute            -> REQUIRED
//   - more than one value for an attribute    -> INVALID
//   - blank (empty/whitespace/null) value     -> REQUIRED
func (v *assignmentValidator) Validate(selection []model.Attribute, inputs []AttributeValueInput) ([]ResolvedAssignment, *errs.ValidationError) {
	byAttribute := make(map[string]AttributeValueInput, len(inputs))
	for _, input := range inputs {
		if _, ok := byAttribute[input.AttributeID]; ok {
			return nil, errs.Validation("attributes", errs.DuplicatedInputItem,
				fmt.Sprintf("Attribute %s was provided more than once.", input.AttributeID))
		}
		byAttribute[input.AttributeID] = input
	}

	selected := make(map[string]bool, len(selection))
	for _, attribute := range selection {
		selected[attribute.ID] = true
	}
	for _, input := range inputs {
		if !selected[input.AttributeID] {
			return nil, errs.Validation("attributes", errs.NotFound,
				fmt.Sprintf("Could not resolve attribute %s for this product.", input.AttributeID))
		}
	}

	for _, attribute := range selection {
		if _, ok := byAttribute[attribute.ID]; !ok {
			return nil, errs.Validation("attributes", errs.AttributesRequired,
				fmt.Sprintf("All attributes must take a value. %s is missing.", attribute.Name))
		}
	}

	resolved := make([]ResolvedAssignment, 0, len(selection))
	for _, attribute := range selection {
		input := byAttribute[attribute.ID]

		switch {
		case len(input.Values) == 0:
			return nil, errs.Validation("attributes", errs.Required,
				fmt.Sprintf("%s expects a value but none were given", attribute.Name))
		case len(input.Values) > 1:
			return nil, errs.Validation("attributes", errs.Invalid,
				"A variant attribute cannot take more than one value")
		}

		name := input.Values[0]
		if strings.TrimSpace(name) == "" {
			return nil, errs.Validation("attributes", errs.Required,
				"Attribute values cannot be blank")
		}

		value, err := v.attributeRepo.ResolveOrCreateValue(attribute.ID, name)
		if err != nil {
			return nil, errs.Validation("attributes", errs.Invalid,
				fmt.Sprintf("Could not resolve value %q for attribute %s.", name, attribute.Name))
		}
		resolved = append(resolved, ResolvedAssignment{Attribute: attribute, Value: *value})
	}

	return resolved, nil
}

// assignmentRows converts a resolved assignment into persistence rows.
func assignmentRows(resolved []ResolvedAssignment) []model.VariantAttributeValue {
	rows := make([]model.VariantAttributeValue, 0, len(resolved))
	for i, pair := range resolved {
		rows = append(rows, model.VariantAttributeValue{
			AttributeID:      pair.Attribute.ID,
			AttributeValueID: pair.Value.ID,
			SortOrder:        i,
		})
	}
	return rows
}

// variantDisplayName derives the default variant name from its values,
// e.g. "red / small".
func variantDisplayName(resolved []ResolvedAssignment) string {
	names := make([]string, 0, len(resolved))
	for _, pair := range resolved {
		names = append(names, pair.Value.Name)
	}
	return strings.Join(names, " / ")
}
