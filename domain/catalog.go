package domain

import "strings"

// Catalog is the read-only set of careers and the education paths leading to each.
// It is built once by a repository and injected into the services.
type Catalog struct {
	order     []string
	careers   map[string]CareerProfile
	education map[string][]EducationCost
}

func NewCatalog(careers []CareerProfile, education map[string][]EducationCost) Catalog {
	c := Catalog{
		order:     make([]string, 0, len(careers)),
		careers:   make(map[string]CareerProfile, len(careers)),
		education: make(map[string][]EducationCost, len(education)),
	}
	for _, career := range careers {
		id := normalizeCareerID(career.CareerID)
		if _, dup := c.careers[id]; !dup {
			c.order = append(c.order, id)
		}
		c.careers[id] = career
	}
	for id, options := range education {
		c.education[normalizeCareerID(id)] = append([]EducationCost(nil), options...)
	}
	return c
}

func (c Catalog) Career(careerID string) (CareerProfile, bool) {
	career, ok := c.careers[normalizeCareerID(careerID)]
	return career, ok
}

// Careers returns the careers in the order they were loaded.
func (c Catalog) Careers() []CareerProfile {
	out := make([]CareerProfile, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.careers[id])
	}
	return out
}

func (c Catalog) EducationOptions(careerID string) []EducationCost {
	return append([]EducationCost(nil), c.education[normalizeCareerID(careerID)]...)
}

// EducationOption returns the first path of the given type for a career.
func (c Catalog) EducationOption(careerID string, educationType EducationType) (EducationCost, bool) {
	for _, option := range c.education[normalizeCareerID(careerID)] {
		if option.Type == educationType {
			return option, true
		}
	}
	return EducationCost{}, false
}

func (c Catalog) Len() int { return len(c.order) }

func normalizeCareerID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
