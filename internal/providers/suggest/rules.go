package suggest

import (
	"context"
	"strings"

	"github.com/quickbill/quickbill/internal/document/domain"
)

// RuleProvider answers from a fixed keyword table. It never fails, so callers
// always have something to offer even without an external model configured.
type RuleProvider struct{}

func New() Provider {
	return &RuleProvider{}
}

func (p *RuleProvider) SuggestLineItems(ctx context.Context, query string, docType domain.DocumentType) ([]Suggestion, error) {
	q := strings.ToLower(query)

	switch {
	case strings.Contains(q, "web") || strings.Contains(q, "site"):
		return []Suggestion{
			{Description: "Website Design & Development", Rate: 2500, Quantity: 1},
			{Description: "Responsive Mobile Optimization", Rate: 500, Quantity: 1},
			{Description: "Content Management System Setup", Rate: 750, Quantity: 1},
		}, nil
	case strings.Contains(q, "logo") || strings.Contains(q, "brand"):
		return []Suggestion{
			{Description: "Logo Design (3 concepts, 2 revisions)", Rate: 800, Quantity: 1},
			{Description: "Brand Guidelines Document", Rate: 400, Quantity: 1},
			{Description: "Business Card Design", Rate: 150, Quantity: 1},
		}, nil
	case strings.Contains(q, "consult"):
		return []Suggestion{
			{Description: "Strategy Consultation Session", Rate: 150, Quantity: 2},
			{Description: "Market Research & Analysis", Rate: 500, Quantity: 1},
			{Description: "Implementation Roadmap", Rate: 350, Quantity: 1},
		}, nil
	case strings.Contains(q, "photo"):
		return []Suggestion{
			{Description: "Professional Photo Session (2 hours)", Rate: 350, Quantity: 1},
			{Description: "Photo Editing & Retouching (per image)", Rate: 25, Quantity: 10},
			{Description: "Digital Delivery (high-res files)", Rate: 50, Quantity: 1},
		}, nil
	}

	return []Suggestion{
		{Description: "Professional Services", Rate: 100, Quantity: 1},
		{Description: "Project Management", Rate: 75, Quantity: 2},
		{Description: "Consultation & Support", Rate: 125, Quantity: 1},
	}, nil
}

func (p *RuleProvider) ExpandDescription(ctx context.Context, text string, docType domain.DocumentType) (string, error) {
	desc := strings.TrimSpace(text)
	if desc == "" {
		return "Professional services as discussed and agreed upon.", nil
	}

	// Already reads as a full description; leave it alone.
	if len(strings.Fields(desc)) >= 6 {
		return desc, nil
	}

	lower := strings.ToLower(desc)
	switch {
	case strings.Contains(lower, "design"):
		return desc + " - Custom design work including concept development, revisions, and final deliverables in requested formats.", nil
	case strings.Contains(lower, "develop") || strings.Contains(lower, "build"):
		return desc + " - Full development including implementation, testing, and deployment as specified in project scope.", nil
	case strings.Contains(lower, "consult"):
		return desc + " - Professional consultation services including analysis, recommendations, and follow-up support.", nil
	case strings.Contains(lower, "manage"):
		return desc + " - Comprehensive management services including planning, coordination, and progress reporting.", nil
	case strings.Contains(lower, "support") || strings.Contains(lower, "maintenance"):
		return desc + " - Ongoing support and maintenance services to ensure optimal performance and reliability.", nil
	}

	return desc + " - Professional services delivered according to agreed specifications and timeline.", nil
}
