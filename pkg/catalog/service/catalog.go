package service

import "github.com/latoulicious/setforge/pkg/catalog"

// Catalog bundles every sub-service behind one value
type Catalog struct {
	*SetService
	*CardService
	*ArchetypeService
	*ReportService
}

var _ catalog.CatalogServiceInterface = (*Catalog)(nil)

// NewCatalog wires all sub-services around s
func NewCatalog(s *catalog.Service) *Catalog {
	return &Catalog{
		SetService:       NewSetService(s),
		CardService:      NewCardService(s),
		ArchetypeService: NewArchetypeService(s),
		ReportService:    NewReportService(s),
	}
}
