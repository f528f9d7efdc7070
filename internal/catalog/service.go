package catalog

import (
	"errors"

	"github.com/rs/zerolog/log"
)

// Service serves the artwork catalog from the export in a data directory.
// The export is re-read on every call so edits show up without a restart.
type Service struct {
	dataDir  string
	resolver *Resolver
}

func NewService(dataDir string, resolver *Resolver) *Service {
	return &Service{dataDir: dataDir, resolver: resolver}
}

// Artworks resolves the current export. With no export present the
// placeholder catalog is returned instead of an error.
func (s *Service) Artworks() ([]ArtworkEntry, error) {
	rows, err := LoadRowsFromDataDir(s.dataDir)
	if errors.Is(err, ErrNoCatalog) {
		log.Debug().Str("data_dir", s.dataDir).Msg("No product export, serving placeholder catalog")
		return Placeholder(), nil
	}
	if err != nil {
		return nil, err
	}
	return s.resolver.Resolve(rows), nil
}
