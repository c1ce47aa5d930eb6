package claim

import (
	"regexp"
	"strings"

	"github.com/obelus-labs/veritas-core/internal/model"
)

// categoryTerms maps each category to the terms that identify it. Multi-word
// terms score 2 points as a substring hit; single-word terms score 1 point
// as a whole-word hit (spec.md §4.2.1).
var categoryTerms = map[model.Category][]string{
	model.CategoryFinance: {
		"earnings per share", "quarterly revenue", "stock buyback", "interest rate",
		"market capitalization", "revenue", "profit", "earnings", "stock", "shares",
		"dividend", "ipo", "merger", "acquisition", "valuation", "investor", "portfolio",
	},
	model.CategoryTech: {
		"artificial intelligence", "machine learning", "large language model", "data center",
		"software", "hardware", "algorithm", "chip", "semiconductor", "startup", "app",
		"cloud", "server", "database", "encryption", "robotics",
	},
	model.CategoryPolitics: {
		"supreme court", "white house", "prime minister", "house of representatives",
		"election", "senator", "congress", "legislation", "governor", "president",
		"parliament", "campaign", "ballot", "policy", "administration",
	},
	model.CategoryHealth: {
		"clinical trial", "blood pressure", "public health", "mental health",
		"vaccine", "disease", "hospital", "patient", "diagnosis", "treatment",
		"medication", "surgery", "symptom", "outbreak", "physician",
	},
	model.CategoryScience: {
		"climate change", "space exploration", "genetic engineering", "particle physics",
		"research", "study", "experiment", "discovery", "telescope", "laboratory",
		"hypothesis", "biology", "chemistry", "physics", "astronomy",
	},
	model.CategoryMilitary: {
		"air force", "ballistic missile", "armed forces", "national guard",
		"military", "army", "navy", "soldier", "troops", "weapon", "combat",
		"deployment", "warfare", "veteran", "defense",
	},
	model.CategoryEducation: {
		"higher education", "school district", "student loan", "standardized test",
		"school", "university", "college", "teacher", "curriculum", "tuition",
		"classroom", "enrollment", "graduate", "scholarship",
	},
	model.CategoryEnergy: {
		"climate crisis", "renewable energy", "carbon emissions", "fossil fuel",
		"energy", "solar", "wind power", "oil", "gas", "pipeline", "emissions",
		"greenhouse", "electricity", "battery", "nuclear",
	},
	model.CategoryLabor: {
		"labor union", "minimum wage", "unemployment rate", "collective bargaining",
		"union", "wages", "layoffs", "strike", "workforce", "employment",
		"worker", "hiring", "payroll", "benefits",
	},
	model.CategoryGeneral: {},
}

// CategoryTerms exposes the fixed term list for a category, used by the
// Scorer's category-relevance rule (spec.md §4.5) and the Knowledge Graph's
// fingerprinting step (spec.md §4.8).
func CategoryTerms(cat model.Category) []string {
	return categoryTerms[cat]
}

var wordCharRe = regexp.MustCompile(`[a-z0-9]+`)

// categoryScores computes a score per category for text, following spec.md
// §4.2.1's scoring rule: +2 for a multi-word term substring match, +1 for a
// single-word term whole-word match (after punctuation strip).
func categoryScores(text string) map[model.Category]int {
	lower := strings.ToLower(text)
	tokens := wordCharRe.FindAllString(lower, -1)
	tokenSet := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		tokenSet[t] = struct{}{}
	}

	scores := make(map[model.Category]int, len(categoryTerms))
	for cat, terms := range categoryTerms {
		score := 0
		for _, term := range terms {
			if strings.Contains(term, " ") {
				if strings.Contains(lower, term) {
					score += 2
				}
			} else if _, ok := tokenSet[term]; ok {
				score++
			}
		}
		scores[cat] = score
	}
	return scores
}

// Categorize picks the highest-scoring category for text, with ties broken
// by model.CategoryOrder and a minimum score of 2 required to leave
// "general". metaText (source title/channel) is used as a tiebreaker when
// the claim text alone would resolve to general.
func Categorize(text, metaText string) model.Category {
	scores := categoryScores(text)
	best, bestScore := bestCategory(scores)
	if bestScore >= 2 {
		return best
	}

	if metaText != "" {
		metaScores := categoryScores(metaText)
		metaBest, metaScore := bestCategory(metaScores)
		if metaScore >= 2 {
			return metaBest
		}
	}
	return model.CategoryGeneral
}

func bestCategory(scores map[model.Category]int) (model.Category, int) {
	best := model.CategoryGeneral
	bestScore := -1
	for _, cat := range model.CategoryOrder {
		s := scores[cat]
		if s > bestScore {
			best = cat
			bestScore = s
		}
	}
	return best, bestScore
}
