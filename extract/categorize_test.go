package extract

import (
	"testing"

	"github.com/poiesic/querygen/core"
	"github.com/stretchr/testify/assert"
)

func TestCategorizeTerm(t *testing.T) {
	tests := []struct {
		term string
		want string
	}{
		{term: "software engineer", want: core.CategoryRole},
		{term: "Senior Developer", want: core.CategoryRole},
		{term: "devops", want: core.CategoryRole},
		{term: "data scientist", want: core.CategoryRole},
		{term: "bachelor's degree", want: core.CategoryQualification},
		{term: "5 years experience", want: core.CategoryQualification},
		{term: "aws certified", want: core.CategoryQualification},
		{term: "python", want: core.CategorySkill},
		{term: "machine learning", want: core.CategorySkill},
		{term: "kubernetes", want: core.CategorySkill},
		{term: "distributed systems", want: core.CategorySkill},
		{term: "banana", want: core.CategoryOther},
		{term: "relocation", want: core.CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			assert.Equal(t, tt.want, CategorizeTerm(tt.term))
		})
	}
}

func TestCategorizeTerm_RoleWinsOverSkill(t *testing.T) {
	// "data engineer" contains a skill word but is a job title.
	assert.Equal(t, core.CategoryRole, CategorizeTerm("data engineer"))
}

func TestCategorize(t *testing.T) {
	t.Run("populates missing categories", func(t *testing.T) {
		items := []core.KeywordItem{
			{Keyword: "backend engineer", Frequency: 5},
			{Keyword: "python", Frequency: 3},
		}

		categorized := Categorize(items)

		assert.Equal(t, core.CategoryRole, categorized[0].Category)
		assert.Equal(t, core.CategorySkill, categorized[1].Category)
	})

	t.Run("keeps existing canonical categories", func(t *testing.T) {
		items := []core.KeywordItem{
			{Keyword: "python", Frequency: 3, Category: core.CategoryQualification},
		}

		categorized := Categorize(items)
		assert.Equal(t, core.CategoryQualification, categorized[0].Category)
	})

	t.Run("does not mutate input", func(t *testing.T) {
		items := []core.KeywordItem{{Keyword: "python", Frequency: 3}}
		Categorize(items)
		assert.Empty(t, items[0].Category)
	})
}
