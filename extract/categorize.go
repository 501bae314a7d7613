package extract

import (
	"strings"

	"github.com/poiesic/querygen/core"
)

// roleIndicators mark a keyword as a job title when any of them appears as
// a word in the term.
var roleIndicators = []string{
	"engineer", "developer", "programmer", "architect", "analyst",
	"scientist", "manager", "director", "designer", "consultant",
	"specialist", "administrator", "technician", "lead", "devops",
	"intern", "researcher",
}

// qualificationIndicators mark a keyword as an education or experience
// requirement.
var qualificationIndicators = []string{
	"degree", "bachelor", "bachelors", "master", "masters", "phd",
	"doctorate", "diploma", "certification", "certified", "certificate",
	"years", "experience", "education", "graduate",
}

// skillLexicon covers common single-word technologies the phrase catalog
// does not: languages, frameworks, platforms, tools.
var skillLexicon = map[string]bool{
	"python": true, "java": true, "javascript": true, "typescript": true,
	"golang": true, "rust": true, "ruby": true, "php": true, "scala": true,
	"kotlin": true, "swift": true, "sql": true, "nosql": true, "html": true,
	"css": true, "react": true, "angular": true, "vue": true, "svelte": true,
	"node": true, "nodejs": true, "django": true, "flask": true,
	"rails": true, "spring": true, "dotnet": true, "laravel": true,
	"express": true, "nextjs": true, "graphql": true, "rest": true,
	"docker": true, "kubernetes": true, "terraform": true, "ansible": true,
	"jenkins": true, "git": true, "github": true, "gitlab": true,
	"aws": true, "azure": true, "gcp": true, "linux": true, "unix": true,
	"postgresql": true, "postgres": true, "mysql": true, "mongodb": true,
	"redis": true, "elasticsearch": true, "kafka": true, "rabbitmq": true,
	"spark": true, "hadoop": true, "airflow": true, "snowflake": true,
	"tableau": true, "pandas": true, "numpy": true, "tensorflow": true,
	"pytorch": true, "sklearn": true, "jira": true, "figma": true,
	"grafana": true, "prometheus": true, "nginx": true, "api": true,
	"microservices": true, "serverless": true, "agile": true, "scrum": true,
	"kanban": true, "testing": true, "automation": true, "security": true,
	"networking": true, "analytics": true, "databases": true,
}

// CategorizeTerm assigns a canonical category to a single keyword term.
// Role and qualification markers win over skill detection because terms
// like "data engineer" contain skill words too.
func CategorizeTerm(term string) string {
	lower := core.NormalizeKeyword(term)
	words := strings.Fields(lower)

	for _, w := range words {
		for _, ind := range roleIndicators {
			if w == ind {
				return core.CategoryRole
			}
		}
	}

	for _, w := range words {
		for _, ind := range qualificationIndicators {
			if w == ind {
				return core.CategoryQualification
			}
		}
	}

	if isCatalogPhrase(lower) {
		return core.CategorySkill
	}
	for _, w := range words {
		if skillLexicon[w] {
			return core.CategorySkill
		}
	}

	return core.CategoryOther
}

// Categorize returns a copy of items with the Category field populated.
// Items that already carry a canonical category keep it.
func Categorize(items []core.KeywordItem) []core.KeywordItem {
	categorized := make([]core.KeywordItem, len(items))
	for i, item := range items {
		categorized[i] = item
		if !core.IsCanonicalCategory(item.Category) {
			categorized[i].Category = CategorizeTerm(item.Keyword)
		}
	}
	return categorized
}

// isCatalogPhrase reports whether term appears in the curated catalog.
func isCatalogPhrase(term string) bool {
	for _, phrase := range catalogPhrases() {
		if term == phrase {
			return true
		}
	}
	return false
}
