package recommend

import "github.com/Build24-Tech/discovery-engine/internal/domain/content"

// RefType classifies the content type a recommendation points at.
type RefType string

// Reference type constants. Templates and case studies are the two
// secondary pools mixed into recommendations alongside primary content.
const (
	TypeContent   RefType = "content"
	TypeTemplate  RefType = "template"
	TypeCaseStudy RefType = "case-study"
)

// Pool identifies a secondary reference pool in the content store.
type Pool string

// Secondary reference pools.
const (
	PoolTemplates   Pool = "templates"
	PoolCaseStudies Pool = "case-studies"
)

// RefType returns the recommendation type items from this pool carry.
func (p Pool) RefType() RefType {
	if p == PoolTemplates {
		return TypeTemplate
	}
	return TypeCaseStudy
}

// IsValid checks if the pool is one of the supported values.
func (p Pool) IsValid() bool {
	return p == PoolTemplates || p == PoolCaseStudies
}

// Reference is a cross-type pointer into a secondary pool.
type Reference struct {
	id       string
	title    string
	url      string
	category content.Category
}

// NewReference creates a secondary reference.
func NewReference(id, title, url string, category content.Category) Reference {
	return Reference{id: id, title: title, url: url, category: category}
}

// ID returns the reference identifier.
func (r *Reference) ID() string { return r.id }

// Title returns the reference title.
func (r *Reference) Title() string { return r.title }

// URL returns the reference link.
func (r *Reference) URL() string { return r.url }

// Category returns the reference category.
func (r *Reference) Category() content.Category { return r.category }

// Score is one ranked recommendation: either a primary content item or a
// secondary reference, with its score and type.
type Score struct {
	refType RefType
	score   float64
	item    *content.Item
	ref     *Reference
}

// NewItemScore creates a recommendation for a primary content item.
func NewItemScore(item content.Item, score float64) Score {
	return Score{refType: TypeContent, score: score, item: &item}
}

// NewRefScore creates a recommendation for a secondary reference.
func NewRefScore(ref Reference, refType RefType, score float64) Score {
	return Score{refType: refType, score: score, ref: &ref}
}

// Type returns the recommendation type.
func (s *Score) Type() RefType { return s.refType }

// Value returns the recommendation score.
func (s *Score) Value() float64 { return s.score }

// Item returns the primary item, nil for secondary references.
func (s *Score) Item() *content.Item { return s.item }

// Ref returns the secondary reference, nil for primary items.
func (s *Score) Ref() *Reference { return s.ref }

// TargetID returns the id of whatever the recommendation points at.
func (s *Score) TargetID() string {
	if s.item != nil {
		return s.item.ID()
	}
	if s.ref != nil {
		return s.ref.ID()
	}
	return ""
}
