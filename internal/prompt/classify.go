// internal/prompt/classify.go
package prompt

import (
	"strings"

	"github.com/mktops/campaign-clarity/internal/model"
)

// Category is the closed set of prompt classifications. Exactly one
// applies to every campaign; everything downstream that needs channel
// behavior consumes this instead of re-matching channel strings.
type Category string

const (
	CategorySalesGenerated     Category = "sales_generated"
	CategoryPartnerReferral    Category = "partner_referral"
	CategoryExistingCustomer   Category = "existing_customer"
	CategoryEvents             Category = "events"
	CategoryHighIntent         Category = "high_intent"
	CategoryRetargetingNurture Category = "retargeting_nurture"
	CategoryAwarenessBroadcast Category = "awareness_broadcast"
	CategoryRegularMarketing   Category = "regular_marketing"
)

// channelSets maps each category to the lowercase channel names that
// select it. Declared order is the evaluation order: first matching set
// wins, and an unmatched channel defaults to regular marketing.
var channelSets = []struct {
	category Category
	channels []string
}{
	{CategorySalesGenerated, []string{"sales generated", "sales sourced", "outbound", "sales agent"}},
	{CategoryPartnerReferral, []string{"partner", "partner referral", "referral", "channel partner", "affiliate"}},
	{CategoryExistingCustomer, []string{"upsell", "customer marketing", "cross-sell", "install base"}},
	{CategoryEvents, []string{"corporate events", "field events", "webinar", "trade show", "appointment setting", "virtual event"}},
	{CategoryHighIntent, []string{"paid search", "sem", "content syndication", "demo request", "free trial"}},
	{CategoryRetargetingNurture, []string{"email", "marketing automation", "nurture", "retargeting", "remarketing"}},
	{CategoryAwarenessBroadcast, []string{"display", "social media", "paid social", "brand", "video", "radio", "tv", "out of home"}},
	{CategoryRegularMarketing, []string{"web", "organic search", "direct mail", "other"}},
}

// Classify assigns the single prompt category for a campaign. An
// existing-customer keyword in the encoded identifier beats everything:
// a customer campaign routed through, say, the email channel still needs
// the customer framing.
func Classify(campaign *model.CampaignRecord, decoded model.DecodedBMID) Category {
	if len(decoded.CustomerKeywords) > 0 {
		return CategoryExistingCustomer
	}

	channel := strings.ToLower(strings.TrimSpace(campaign.Channel))
	if channel == "" {
		return CategoryRegularMarketing
	}
	for _, set := range channelSets {
		for _, name := range set.channels {
			if channel == name {
				return set.category
			}
		}
	}
	return CategoryRegularMarketing
}
