package dto

import (
	"testing"

	"github.com/aretw0/flowgrid/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestFieldSpec_ToDomain(t *testing.T) {
	short := FieldSpec{Name: "Stage", Type: "Choice", Editable: true, Choices: []domain.ChoiceValue{{Value: "a", Label: "A"}}}
	canonical := FieldSpec{FieldAPIName: "Stage", DataType: "picklist", IsEditable: true, ChoiceValues: []domain.ChoiceValue{{Value: "a", Label: "A"}}}

	assert.Equal(t, canonical.ToDomain(), short.ToDomain())
	assert.Equal(t, domain.DataTypePicklist, short.ToDomain().DataType)

	both := FieldSpec{Name: "short", FieldAPIName: "Canonical"}
	assert.Equal(t, "Canonical", both.ToDomain().FieldAPIName, "canonical keys win")
}

func TestFieldsToDomain_SkipsUnnamed(t *testing.T) {
	got := FieldsToDomain([]FieldSpec{{Label: "orphan"}, {Name: "Name"}})
	assert.Len(t, got, 1)
	assert.Equal(t, "Name", got[0].FieldAPIName)
}
