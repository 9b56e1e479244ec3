package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssemble_DedupPreservesFirstSeenOrder(t *testing.T) {
	a := NewAssembler()

	records := []PartnerRecord{
		{Partner: "Beta LLC", Description: "middle mile"},
		{Partner: "Acme Co", Description: "fiber"},
		{Partner: "Beta LLC", Description: "middle mile"},
		{Partner: "Acme Co", Description: "towers"}, // same entity, new description
	}
	result := a.Assemble(records, []int{3, 2, 2})

	require.Len(t, result.Records, 3)
	assert.Equal(t, "Beta LLC", result.Records[0].Partner)
	assert.Equal(t, "Acme Co", result.Records[1].Partner)
	assert.Equal(t, "towers", result.Records[2].Description)
	assert.Equal(t, []int{2, 3}, result.Pages)
}

func TestAssemble_Idempotent(t *testing.T) {
	a := NewAssembler()

	records := []PartnerRecord{
		{Partner: "Acme Co", Description: "fiber"},
		{Partner: "Acme Co", Description: "fiber"},
		{Partner: "Beta LLC", Description: ""},
	}
	once := a.Assemble(records, []int{1})
	twice := a.Assemble(once.Records, once.Pages)

	assert.Equal(t, once, twice)
}

func TestAssemble_DropsEmptyRowsAndNormalizes(t *testing.T) {
	a := NewAssembler()

	records := []PartnerRecord{
		{Partner: "  ", Description: " "},
		{Partner: " Acme Co ", Description: " fiber  buildout "},
		{Partner: "Acme Co", Description: "fiber buildout"}, // duplicate after normalization
	}
	result := a.Assemble(records, []int{1})

	require.Len(t, result.Records, 1)
	assert.Equal(t, PartnerRecord{Partner: "Acme Co", Description: "fiber buildout"}, result.Records[0])
}

func TestAssemble_EmptyInputYieldsEmptyResult(t *testing.T) {
	a := NewAssembler()

	result := a.Assemble(nil, []int{1, 2})
	assert.True(t, result.Empty())
	assert.Empty(t, result.Pages)
}

func TestAssemble_OneSidedRecordsKept(t *testing.T) {
	a := NewAssembler()

	records := []PartnerRecord{
		{Partner: "Acme Co", Description: ""},
		{Partner: "", Description: "an unattributed service description"},
	}
	result := a.Assemble(records, []int{7})
	assert.Len(t, result.Records, 2)
	assert.Equal(t, []int{7}, result.Pages)
}
