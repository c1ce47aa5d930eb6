package provider

// BuildRegistry constructs the fixed, ordered registry of all 17 spec
// providers plus the universal web-answer fallback (spec.md §4.3, §4.4).
func BuildRegistry(cfg Config) *Registry {
	r := NewRegistry()

	r.Register(NewLocalDataset(cfg.DataDir))
	r.Register(NewAcademicPaperSearch(cfg))
	r.Register(NewPreprintSearch(cfg))
	r.Register(NewBiomedicalLiteratureSearch(cfg))
	r.Register(NewCorporateFilingSearch(cfg))
	r.Register(NewOfficialPublicationSearch(cfg))
	r.Register(NewMarketData(cfg))
	r.Register(NewEncyclopediaArticle(cfg))
	r.Register(NewEconomicIndicatorCatalogue(cfg))
	r.Register(NewFactCheckAggregator(cfg))
	r.Register(NewDrugFDA(cfg))
	r.Register(NewLaborStatistics(cfg))
	r.Register(NewBudgetPublications(cfg))
	r.Register(NewFederalSpending(cfg))
	r.Register(NewDemographics(cfg))
	r.Register(NewInternationalIndicators(cfg))
	r.Register(NewPatents(cfg))
	r.Register(NewWebAnswer(cfg))

	return r
}
