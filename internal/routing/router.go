// internal/routing/router.go
package routing

import (
	"strings"

	"go.uber.org/zap"

	"github.com/mktops/campaign-clarity/internal/model"
)

// Rule is one outreach-routing rule. A rule matches only when every
// listed condition holds; its specificity is its condition count, and a
// more specific rule always beats a less specific one. Ties go to the
// rule that appears first in its list.
type Rule struct {
	// BMIDContains conditions test substring membership in the
	// uppercased encoded identifier, one condition per entry.
	BMIDContains []string

	// Product, when set, must equal the uppercased intended product.
	Product string

	// EmployeeSize, when set, must equal the decoded EE-size bracket.
	EmployeeSize string

	// IMCTags, when present, must each appear among the decoded
	// integrated-marketing campaign tags.
	IMCTags []string

	Sequence model.Recommendation
}

// Specificity is the number of conditions the rule carries.
func (r Rule) Specificity() int {
	n := len(r.BMIDContains) + len(r.IMCTags)
	if r.Product != "" {
		n++
	}
	if r.EmployeeSize != "" {
		n++
	}
	return n
}

func (r Rule) matches(bmidUpper, productUpper, eeSize string, imcTags []string) bool {
	for _, token := range r.BMIDContains {
		if !strings.Contains(bmidUpper, token) {
			return false
		}
	}
	if r.Product != "" && r.Product != productUpper {
		return false
	}
	if r.EmployeeSize != "" && r.EmployeeSize != eeSize {
		return false
	}
	for _, tag := range r.IMCTags {
		if !containsString(imcTags, tag) {
			return false
		}
	}
	return true
}

// Router selects outreach sequences for a campaign. It is a pure rule
// evaluator: no state survives a call, and "no recommendation" is a
// normal outcome, not an error.
type Router struct {
	log *zap.Logger
}

func New(log *zap.Logger) *Router {
	return &Router{log: log}
}

// sizeBrackets are the concrete EE-size values an "Any" signal fans out
// across.
var sizeBrackets = []string{eeSizeSmall, eeSizeLarge}

const (
	eeSizeSmall = "<= 99"
	eeSizeLarge = ">= 100"
	eeSizeAny   = "Any"
)

// Route evaluates the rule set for the campaign's channel against its
// decoded identifier. Only two dispatch paths exist: content syndication
// with the content sub-channel, and email. Everything else routes
// nowhere.
func (rt *Router) Route(campaign *model.CampaignRecord, decoded model.DecodedBMID) []model.Recommendation {
	switch {
	case strings.EqualFold(campaign.Channel, "Content Syndication") &&
		strings.EqualFold(campaign.SubChannel, "Content"):
		return rt.routeSyndication(campaign, decoded)
	case strings.EqualFold(campaign.Channel, "Email"):
		return rt.routeEmail(campaign, decoded)
	}
	return nil
}

func (rt *Router) routeEmail(campaign *model.CampaignRecord, decoded model.DecodedBMID) []model.Recommendation {
	best := bestMatch(emailRules,
		strings.ToUpper(campaign.BMID),
		strings.ToUpper(campaign.IntendedProduct),
		decoded.EmployeeSize,
		decoded.IntegratedTags)
	if best == nil {
		rt.log.Debug("no email outreach rule matched",
			zap.String("campaign_id", campaign.ID),
			zap.String("bmid", campaign.BMID))
		return nil
	}
	return []model.Recommendation{best.Sequence}
}

func (rt *Router) routeSyndication(campaign *model.CampaignRecord, decoded model.DecodedBMID) []model.Recommendation {
	bmidUpper := strings.ToUpper(campaign.BMID)
	productUpper := strings.ToUpper(campaign.IntendedProduct)

	// An "Any" employee-size signal fans out deliberately: the rep gets
	// one recommendation per size bracket instead of a single pick.
	if decoded.EmployeeSize == eeSizeAny {
		var recs []model.Recommendation
		for _, bracket := range sizeBrackets {
			if best := bestMatch(syndicationRules, bmidUpper, productUpper, bracket, decoded.IntegratedTags); best != nil {
				recs = appendUnique(recs, best.Sequence)
			}
		}
		return recs
	}

	best := bestMatch(syndicationRules, bmidUpper, productUpper, decoded.EmployeeSize, decoded.IntegratedTags)
	if best == nil {
		rt.log.Debug("no content-syndication outreach rule matched",
			zap.String("campaign_id", campaign.ID),
			zap.String("bmid", campaign.BMID))
		return nil
	}
	return []model.Recommendation{best.Sequence}
}

// bestMatch returns the most specific fully-satisfied rule, first-seen
// winning ties, or nil when nothing matches.
func bestMatch(rules []Rule, bmidUpper, productUpper, eeSize string, imcTags []string) *Rule {
	var best *Rule
	bestScore := -1
	for i := range rules {
		rule := &rules[i]
		if !rule.matches(bmidUpper, productUpper, eeSize, imcTags) {
			continue
		}
		if score := rule.Specificity(); score > bestScore {
			best = rule
			bestScore = score
		}
	}
	return best
}

func containsString(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}

func appendUnique(recs []model.Recommendation, rec model.Recommendation) []model.Recommendation {
	for _, existing := range recs {
		if existing == rec {
			return recs
		}
	}
	return append(recs, rec)
}
