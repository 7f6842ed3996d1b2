package content

import (
	"encoding/json"
	"fmt"
)

// Category is the fixed topic taxonomy of the knowledge hub.
type Category string

// Category constants.
const (
	CognitiveBias     Category = "cognitive-bias"
	SocialInfluence   Category = "social-influence"
	PricingPsychology Category = "pricing-psychology"
	DecisionMaking    Category = "decision-making"
	ConsumerBehavior  Category = "consumer-behavior"
	GrowthStrategy    Category = "growth-strategy"
)

var categoryNames = map[Category]string{
	CognitiveBias:     "Cognitive Bias",
	SocialInfluence:   "Social Influence",
	PricingPsychology: "Pricing Psychology",
	DecisionMaking:    "Decision Making",
	ConsumerBehavior:  "Consumer Behavior",
	GrowthStrategy:    "Growth Strategy",
}

// IsValid checks if the category is one of the supported values.
func (c Category) IsValid() bool {
	_, ok := categoryNames[c]
	return ok
}

// DisplayName returns the human-readable category name shown in the UI.
// Query matching against categories uses this form.
func (c Category) DisplayName() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return string(c)
}

// ParseCategory validates a raw category string.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

// Difficulty is the reader-level classification of an item.
type Difficulty string

// Difficulty constants, ordered by Ordinal.
const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

// IsValid checks if the difficulty is one of the supported values.
func (d Difficulty) IsValid() bool {
	return d == Beginner || d == Intermediate || d == Advanced
}

// Ordinal maps difficulty to its progression rank (beginner=1 .. advanced=3).
func (d Difficulty) Ordinal() int {
	switch d {
	case Beginner:
		return 1
	case Intermediate:
		return 2
	case Advanced:
		return 3
	default:
		return 0
	}
}

// RelevanceTag is a fixed-enum business concern an item applies to,
// distinct from free-form tags.
type RelevanceTag string

// RelevanceTag constants.
const (
	TagPricing    RelevanceTag = "pricing"
	TagMarketing  RelevanceTag = "marketing"
	TagProduct    RelevanceTag = "product"
	TagSales      RelevanceTag = "sales"
	TagRetention  RelevanceTag = "retention"
	TagConversion RelevanceTag = "conversion"
	TagBranding   RelevanceTag = "branding"
	TagFundraise  RelevanceTag = "fundraising"
)

var relevanceTags = map[RelevanceTag]bool{
	TagPricing: true, TagMarketing: true, TagProduct: true, TagSales: true,
	TagRetention: true, TagConversion: true, TagBranding: true, TagFundraise: true,
}

// IsValid checks if the tag is one of the supported values.
func (t RelevanceTag) IsValid() bool { return relevanceTags[t] }

// PremiumKind discriminates known premium content shapes.
type PremiumKind string

// Premium content kinds.
const (
	PremiumWorksheet PremiumKind = "worksheet"
	PremiumVideo     PremiumKind = "video"
	PremiumUnknown   PremiumKind = "unknown"
)

// PremiumContent is a tagged variant over the known premium block shapes.
// Unrecognized shapes are preserved verbatim in Extra instead of being
// flattened into an open map.
type PremiumContent struct {
	Kind      PremiumKind     `json:"kind"`
	Worksheet *Worksheet      `json:"worksheet,omitempty"`
	Video     *Video          `json:"video,omitempty"`
	Extra     json.RawMessage `json:"extra,omitempty"`
}

// Worksheet is a downloadable exercise attached to premium items.
type Worksheet struct {
	Title    string   `json:"title"`
	Steps    []string `json:"steps"`
	FileURL  string   `json:"file_url,omitempty"`
	Duration int      `json:"duration_min,omitempty"`
}

// Video is an embedded video lesson attached to premium items.
type Video struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Duration int    `json:"duration_min,omitempty"`
}

// Item is an indexed unit of knowledge (immutable value object).
// Items are authored by the ingestion pipeline; the engine only reads them.
type Item struct {
	id            string
	title         string
	category      Category
	summary       string
	description   string
	application   string
	examples      []string
	relatedIDs    []string
	difficulty    Difficulty
	relevanceTags []RelevanceTag
	readTime      int
	tags          []string
	premium       *PremiumContent
}

// Params carries the fields for constructing an Item.
type Params struct {
	ID            string
	Title         string
	Category      Category
	Summary       string
	Description   string
	Application   string
	Examples      []string
	RelatedIDs    []string
	Difficulty    Difficulty
	RelevanceTags []RelevanceTag
	ReadTime      int
	Tags          []string
	Premium       *PremiumContent
}

// New validates and creates an Item.
func New(p Params) (Item, error) {
	if p.ID == "" {
		return Item{}, fmt.Errorf("item ID is required")
	}
	if p.Title == "" {
		return Item{}, fmt.Errorf("item title is required")
	}
	if !p.Category.IsValid() {
		return Item{}, fmt.Errorf("invalid category %q", p.Category)
	}
	if !p.Difficulty.IsValid() {
		return Item{}, fmt.Errorf("invalid difficulty %q", p.Difficulty)
	}
	for _, t := range p.RelevanceTags {
		if !t.IsValid() {
			return Item{}, fmt.Errorf("invalid relevance tag %q", t)
		}
	}
	if p.ReadTime < 0 {
		return Item{}, fmt.Errorf("read time must be non-negative")
	}
	return Reconstruct(p), nil
}

// Reconstruct creates an Item without validation (storage hydration).
func Reconstruct(p Params) Item {
	return Item{
		id:            p.ID,
		title:         p.Title,
		category:      p.Category,
		summary:       p.Summary,
		description:   p.Description,
		application:   p.Application,
		examples:      p.Examples,
		relatedIDs:    p.RelatedIDs,
		difficulty:    p.Difficulty,
		relevanceTags: p.RelevanceTags,
		readTime:      p.ReadTime,
		tags:          p.Tags,
		premium:       p.Premium,
	}
}

// ID returns the item identifier.
func (i *Item) ID() string { return i.id }

// Title returns the item title.
func (i *Item) Title() string { return i.title }

// Category returns the item category.
func (i *Item) Category() Category { return i.category }

// Summary returns the short free-text summary.
func (i *Item) Summary() string { return i.summary }

// Description returns the long-form description.
func (i *Item) Description() string { return i.description }

// Application returns the application-guide text.
func (i *Item) Application() string { return i.application }

// Examples returns the example list.
func (i *Item) Examples() []string { return i.examples }

// RelatedIDs returns the authored related-content ids.
func (i *Item) RelatedIDs() []string { return i.relatedIDs }

// Difficulty returns the item difficulty.
func (i *Item) Difficulty() Difficulty { return i.difficulty }

// RelevanceTags returns the fixed-enum relevance tags.
func (i *Item) RelevanceTags() []RelevanceTag { return i.relevanceTags }

// ReadTime returns the estimated read time in minutes.
func (i *Item) ReadTime() int { return i.readTime }

// Tags returns the free-form tag set.
func (i *Item) Tags() []string { return i.tags }

// Premium returns the premium content block, nil for free items.
func (i *Item) Premium() *PremiumContent { return i.premium }

// HasRelevanceTag reports whether the item carries the given relevance tag.
func (i *Item) HasRelevanceTag(t RelevanceTag) bool {
	for _, rt := range i.relevanceTags {
		if rt == t {
			return true
		}
	}
	return false
}
