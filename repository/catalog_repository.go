package repository

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"career-roi/domain"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// CatalogRepository loads the read-only career and education catalog.
type CatalogRepository interface {
	LoadCatalog(ctx context.Context) (domain.Catalog, error)
}

type catalogFile struct {
	Careers []catalogEntry `yaml:"careers"`
}

type catalogEntry struct {
	domain.CareerProfile `yaml:",inline"`
	Education            []domain.EducationCost `yaml:"education"`
}

// YAMLCatalogRepository reads the catalog from a YAML file, or from the built-in
// catalog when no path is set.
type YAMLCatalogRepository struct {
	path string
}

func NewYAMLCatalogRepository(path string) *YAMLCatalogRepository {
	return &YAMLCatalogRepository{path: path}
}

func (r *YAMLCatalogRepository) LoadCatalog(_ context.Context) (domain.Catalog, error) {
	data := defaultCatalog
	if r.path != "" {
		raw, err := os.ReadFile(r.path)
		if err != nil {
			return domain.Catalog{}, fmt.Errorf("read catalog %s: %w", r.path, err)
		}
		data = raw
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes a YAML catalog document.
func ParseCatalog(data []byte) (domain.Catalog, error) {
	var file catalogFile
	if err := yaml.UnmarshalStrict(data, &file); err != nil {
		return domain.Catalog{}, fmt.Errorf("decode catalog: %w", err)
	}

	careers := make([]domain.CareerProfile, 0, len(file.Careers))
	education := make(map[string][]domain.EducationCost, len(file.Careers))
	for i, entry := range file.Careers {
		if entry.CareerID == "" {
			return domain.Catalog{}, fmt.Errorf("decode catalog: career %d has no career_id", i)
		}
		careers = append(careers, entry.CareerProfile)
		education[entry.CareerID] = entry.Education
	}
	return domain.NewCatalog(careers, education), nil
}
