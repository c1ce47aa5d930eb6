package claim

import "regexp"

// danglingConjunctions is the fixed set of openers that disqualify a
// candidate sentence (spec.md §4.2 step 5).
var danglingConjunctions = map[string]bool{
	"and": true, "but": true, "while": true, "because": true, "so": true,
	"which": true, "that": true, "or": true, "nor": true, "yet": true,
	"also": true, "then": true, "plus": true,
}

// assertionVerbs is the small closed set of verbs signalling a factual
// statement rather than narrative (GLOSSARY "Assertion verb").
var assertionVerbs = map[string]bool{
	"is": true, "are": true, "was": true, "were": true,
	"reported": true, "announced": true, "confirmed": true, "said": true,
	"stated": true, "revealed": true, "found": true, "showed": true,
	"concluded": true, "estimated": true, "projected": true, "grew": true,
	"fell": true, "rose": true, "declined": true, "increased": true,
	"decreased": true, "reached": true, "surpassed": true, "launched": true,
}

// subjectPronouns is the fixed set of pronouns accepted as a subject anchor.
var subjectPronouns = map[string]bool{
	"he": true, "she": true, "it": true, "they": true, "we": true,
	"this": true, "these": true, "those": true,
}

// boilerplatePhrases are filler phrases that, when two or more appear,
// disqualify a candidate.
var boilerplatePhrases = []string{
	"subscribe", "link in the description", "smash that like button",
	"hit the bell icon", "follow us on", "check out our merch",
	"patreon.com", "use code", "sponsored by", "thanks for watching",
}

// hedgeWords indicate a hedged (uncertain) assertion.
var hedgeWords = map[string]bool{
	"might": true, "may": true, "could": true, "possibly": true,
	"perhaps": true, "allegedly": true, "reportedly": true, "seems": true,
	"appears": true, "suggests": true, "likely": true, "probably": true,
	"rumored": true, "unconfirmed": true,
}

// definitiveWords indicate a definitive (confident) assertion.
var definitiveWords = map[string]bool{
	"confirmed": true, "definitely": true, "certainly": true, "always": true,
	"never": true, "proven": true, "established": true, "exactly": true,
	"precisely": true, "undeniably": true, "clearly": true, "fact": true,
}

// academicTerms signal academic/scientific language (spec.md §4.3 item 2,
// §4.4). The provider pre-filters use an identical copy and the router its
// own, different set; neither reads this one.
var academicTerms = map[string]bool{
	"study": true, "research": true, "paper": true, "journal": true,
	"peer-reviewed": true, "researchers": true, "hypothesis": true,
	"methodology": true, "findings": true, "dataset": true, "abstract": true,
}

// healthTerms signal biomedical/health content.
var healthTerms = map[string]bool{
	"clinical": true, "trial": true, "patients": true, "disease": true,
	"treatment": true, "drug": true, "vaccine": true, "diagnosis": true,
	"symptom": true, "fda": true, "medication": true,
}

// macroTerms signal macroeconomic-indicator content.
var macroTerms = map[string]bool{
	"gdp": true, "inflation": true, "unemployment": true, "interest rate": true,
	"consumer price index": true, "cpi": true, "recession": true,
	"federal reserve": true, "fed": true, "treasury yield": true,
}

// financeTerms signal finance-specific (filing/market) content.
var financeTerms = map[string]bool{
	"revenue": true, "earnings": true, "profit": true, "margin": true,
	"guidance": true, "shares": true, "dividend": true, "quarterly": true,
	"fiscal": true, "ebitda": true, "net income": true, "cash flow": true,
}

// forwardLookingVerbs mark a claim as guidance rather than a reported
// number (spec.md §4.5 "Finance claim typing").
var forwardLookingVerbs = map[string]bool{
	"expect": true, "expects": true, "expected": true, "anticipate": true,
	"anticipates": true, "forecast": true, "forecasts": true, "project": true,
	"projects": true, "plan": true, "plans": true, "intend": true,
	"intends": true, "guidance": true, "outlook": true, "target": true,
	"targets": true, "will": true,
}

// factcheckTerms signal a claim is itself about a fact-check/rating.
var factcheckTerms = map[string]bool{
	"fact-check": true, "fact check": true, "debunked": true, "hoax": true,
	"misleading": true, "false claim": true, "viral": true, "rumor": true,
}

// drugTerms signal FDA/drug-relevant content.
var drugTerms = map[string]bool{
	"drug": true, "fda": true, "approval": true, "recall": true,
	"adverse event": true, "clinical trial": true, "dosage": true,
}

// laborTerms signal BLS-style labor-statistics content.
var laborTerms = map[string]bool{
	"unemployment": true, "payroll": true, "jobs report": true,
	"labor force": true, "wages": true, "layoffs": true, "hiring": true,
}

// budgetTerms signal CBO/budget-publication content.
var budgetTerms = map[string]bool{
	"budget": true, "deficit": true, "appropriations": true,
	"federal spending": true, "national debt": true, "fiscal year": true,
}

// spendingTerms signal USAspending/federal-contract content.
var spendingTerms = map[string]bool{
	"contract": true, "federal contract": true, "grant": true,
	"procurement": true, "award": true, "spending bill": true,
}

// demographicsTerms signal Census/ACS-style content.
var demographicsTerms = map[string]bool{
	"population": true, "census": true, "demographic": true,
	"median income": true, "poverty rate": true, "household": true,
}

// internationalTerms signal World Bank/international-indicator content.
var internationalTerms = map[string]bool{
	"gdp per capita": true, "world bank": true, "developing country": true,
	"emerging market": true, "global economy": true, "trade deficit": true,
}

// patentTerms signal USPTO/patent content.
var patentTerms = map[string]bool{
	"patent": true, "patented": true, "intellectual property": true,
	"invention": true, "uspto": true,
}

// institutionalTerms signal a regulator's own publications (as opposed to
// third-party filings about the regulator).
var institutionalTerms = map[string]bool{
	"securities and exchange commission": true, "federal reserve": true,
	"department of labor": true, "federal trade commission": true,
	"congressional budget office": true,
}

// sentenceBoundaryRe splits a window of text at sentence boundaries:
// terminal punctuation followed by whitespace.
var sentenceBoundaryRe = regexp.MustCompile(`(?:[.!?])\s+`)

// dateTokenRe detects a date-like token (year, month name, or numeric date).
var dateTokenRe = regexp.MustCompile(`(?i)\b(19|20)\d{2}\b|\b(january|february|march|april|may|june|july|august|september|october|november|december)\b|\b\d{1,2}/\d{1,2}/\d{2,4}\b`)

// properNounPhraseRe detects a multi-word capitalised phrase (a simple
// named-entity heuristic): two or more consecutive capitalised words.
var properNounPhraseRe = regexp.MustCompile(`\b([A-Z][a-zA-Z]*(?:\s+[A-Z][a-zA-Z]*)+)\b`)

// digitRe detects any digit.
var digitRe = regexp.MustCompile(`\d`)

// yearInRangeRe detects a 4-digit year between 1500 and 1999. The Router's
// structured-entity boost uses its own identical regex (spec.md §4.4).
var yearInRangeRe = regexp.MustCompile(`\b(1[5-9]\d{2})\b`)

// currencySymbolRe detects a currency symbol.
var currencySymbolRe = regexp.MustCompile(`[$€£¥]`)

// smallIntegerRe captures integer tokens of two or more digits, so a bare
// single digit like "3" is excluded. The Scorer's small-integer-match rule
// (spec.md §4.5) does not use it; that rule matches every \d+ token.
var smallIntegerRe = regexp.MustCompile(`\b\d{2,}\b`)

// decimalNumberRe captures decimal/financial numbers. The exact-number
// scorer rule uses its own decimal-token regex; internal/evidence/provider
// keeps an identical copy for its filing-window scoring.
var decimalNumberRe = regexp.MustCompile(`\b\d+(?:,\d{3})*(?:\.\d+)?\b`)

// companyEntityRe is a loose heuristic for "Something Inc/Corp/LLC"-style
// company names. The Router's company-name boost uses its own identical
// regex.
var companyEntityRe = regexp.MustCompile(`\b([A-Z][\w&.]*(?:\s+[A-Z][\w&.]*)*\s+(?:Inc|Corp|Corporation|LLC|Ltd|Co)\.?)\b`)
