package router

// The term sets below are the router's own; they drive Rerank's
// signal-boost rules (spec.md §4.4). internal/evidence/provider keeps
// separate relevance sets under similar names (each package holds its own
// copy to avoid an import cycle); they overlap with these but, apart from
// patentTerms, are not identical.

var academicTerms = map[string]bool{
	"study": true, "research": true, "journal": true, "peer-reviewed": true,
	"paper": true, "findings": true, "researchers": true, "university": true,
}

var healthTerms = map[string]bool{
	"disease": true, "treatment": true, "patients": true, "clinical": true,
	"diagnosis": true, "symptom": true, "vaccine": true, "drug": true,
	"therapy": true, "fda": true,
}

var macroTerms = map[string]bool{
	"inflation": true, "unemployment": true, "gdp": true, "interest rate": true,
	"cpi": true, "recession": true, "fed": true, "federal reserve": true,
}

var drugTerms = map[string]bool{
	"drug": true, "medication": true, "fda": true, "recall": true,
	"side effect": true, "adverse event": true, "prescription": true,
}

var laborTerms = map[string]bool{
	"unemployment": true, "jobs report": true, "labor force": true,
	"payroll": true, "wages": true, "bls": true,
}

var budgetTerms = map[string]bool{
	"federal budget": true, "deficit": true, "appropriations": true,
	"congressional budget": true, "cbo": true,
}

var spendingTerms = map[string]bool{
	"federal contract": true, "government spending": true, "grant": true,
	"award": true, "usaspending": true,
}

var demographicsTerms = map[string]bool{
	"census": true, "population": true, "household income": true,
	"demographic": true, "poverty rate": true,
}

var internationalTerms = map[string]bool{
	"world bank": true, "global": true, "international": true,
	"developing country": true, "emerging market": true,
}

var patentTerms = map[string]bool{
	"patent": true, "patented": true, "intellectual property": true,
	"invention": true, "uspto": true, "trademark": true,
}

var institutionalTerms = map[string]bool{
	"government": true, "federal agency": true, "regulation": true,
	"regulator": true, "law": true, "act of congress": true,
}

var factcheckTerms = map[string]bool{
	"claim": true, "viral": true, "hoax": true, "misleading": true,
	"debunked": true, "fact check": true,
}

// companyNameHints is a small seed set of well-known tickers/companies; the
// Router also relies on the companyEntity regex for generic "X Corp"/"X Inc"
// matches (spec.md §4.4, "company-name hit").
var companyNameHints = map[string]bool{
	"apple": true, "microsoft": true, "amazon": true, "google": true,
	"alphabet": true, "meta": true, "tesla": true, "nvidia": true,
	"netflix": true, "walmart": true, "exxon": true, "chevron": true,
	"boeing": true, "intel": true, "ibm": true, "oracle": true,
}
