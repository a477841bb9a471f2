package ports

import "rapbook/internal/domain"

// Exporter writes a snapshot of the library somewhere outside the store
type Exporter interface {
	Export(folders []domain.Folder, raps []domain.Rap) (*domain.ExportStats, error)
}

// FileOpener hands an exported file to an external application
type FileOpener interface {
	OpenFile(path string) error
}
