package discovery

// Category identifies a content topic area.
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

// Difficulty grades how advanced an item is.
type Difficulty string

// Difficulty constants.
const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

// RelevanceTag marks the business concern an item applies to.
type RelevanceTag string

// Relevance tag constants.
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

// Item is one unit of discoverable content.
type Item struct {
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
	ReadTimeMin   int
	Tags          []string
	Premium       *Premium
}

// Premium is the gated content block attached to paid items.
type Premium struct {
	Kind      string
	Worksheet *Worksheet
	Video     *Video
}

// Worksheet is a downloadable exercise attached to premium items.
type Worksheet struct {
	Title       string
	Steps       []string
	FileURL     string
	DurationMin int
}

// Video is an embedded video lesson attached to premium items.
type Video struct {
	Title       string
	URL         string
	DurationMin int
}

// SearchRequest describes one search or browse query.
// All fields are optional; a zero request lists the whole corpus by title.
type SearchRequest struct {
	Query         string
	Categories    []Category
	Difficulties  []Difficulty
	RelevanceTags []RelevanceTag
}

// SearchResult is a single scored search hit.
type SearchResult struct {
	Item          Item
	Score         float64
	MatchedFields []string
}

// Recommendation is one ranked entry of a mixed recommendation list.
// Exactly one of Item and Reference is set, discriminated by Type.
type Recommendation struct {
	Type      string // "content", "template" or "case-study"
	Score     float64
	Item      *Item
	Reference *Reference
}

// Reference points at a secondary resource (template or case study).
type Reference struct {
	ID       string
	Title    string
	URL      string
	Category Category
}

// TrendEntry is one row of the trending ranking.
type TrendEntry struct {
	ItemID string
	Score  float64
}
