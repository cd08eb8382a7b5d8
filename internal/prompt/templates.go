// internal/prompt/templates.go
package prompt

import "fmt"

// SystemPrompt frames every generation call.
const SystemPrompt = "You are a sales enablement expert who helps salespeople understand prospect intent and behavior."

// Each template demands exactly three labeled points under the shared
// 255-character budget so the output drops straight into the CRM
// description field.
var templates = map[Category]string{
	CategorySalesGenerated: `Based on the following campaign information, create a concise description (max 255 characters) that helps a salesperson understand:
1. This is a sales-sourced contact (not from prospect engagement)
2. The data source and why this contact was identified
3. What approach might work best for cold outreach

Focus on the sales context and potential fit, not prospect behavior (since they haven't engaged).

Campaign Information:
%s

Description (max 255 characters):`,

	CategoryPartnerReferral: `Based on the following campaign information, create a concise description (max 255 characters) that helps a salesperson understand:
1. This lead came through a partner or referral relationship
2. Which partner motion sourced it and what that implies about fit
3. How to open the conversation without undercutting the partner

Focus on the referral context and the warm-introduction angle.

Campaign Information:
%s

Description (max 255 characters):`,

	CategoryExistingCustomer: `Based on the following campaign information, create a concise description (max 255 characters) that helps a salesperson understand:
1. This is an existing customer, not a new prospect
2. Which expansion motion (upsell, cross-sell, renewal) the campaign ran
3. What the customer's engagement suggests they want next

Focus on the account relationship; never pitch them as if they were new.

Campaign Information:
%s

Description (max 255 characters):`,

	CategoryEvents: `Based on the following campaign information, create a concise description (max 255 characters) that helps a salesperson understand:
1. What event the prospect attended or registered for
2. What attending signals about their interest level
3. A natural follow-up angle that references the event

Focus on the event experience from the prospect's side.

Campaign Information:
%s

Description (max 255 characters):`,

	CategoryHighIntent: `Based on the following campaign information, create a concise description (max 255 characters) that helps a salesperson understand:
1. The high-intent action the prospect took (search, download, demo request)
2. What problem they were most likely trying to solve
3. Why speed of follow-up matters for this lead

Focus on the prospect's active evaluation signals.

Campaign Information:
%s

Description (max 255 characters):`,

	CategoryRetargetingNurture: `Based on the following campaign information, create a concise description (max 255 characters) that helps a salesperson understand:
1. The prospect has been nurtured over time, not a fresh inbound
2. Which touches or content they have been exposed to
3. What stage of warming this campaign represents

Focus on continuity - what the prospect has already seen.

Campaign Information:
%s

Description (max 255 characters):`,

	CategoryAwarenessBroadcast: `Based on the following campaign information, create a concise description (max 255 characters) that helps a salesperson understand:
1. This is broad awareness exposure, not an expressed interest
2. What message or brand impression the prospect received
3. How to calibrate outreach for a low-intent signal

Focus on setting expectations - this prospect may not remember the ad.

Campaign Information:
%s

Description (max 255 characters):`,

	CategoryRegularMarketing: `Based on the following campaign information, create a concise description (max 255 characters) that helps a salesperson understand:
1. What the prospect was doing when they engaged with this campaign
2. Why they likely engaged (their intent/interest)
3. What this tells us about their buyer's journey stage

Focus on the prospect's perspective and intent, not marketing terminology.

IMPORTANT: If the campaign details mention any URLs or websites, preserve the domain name in your description.

Campaign Information:
%s

Description (max 255 characters):`,
}

// Build renders the instruction prompt for a category and enriched
// context block.
func Build(category Category, context string) string {
	tmpl, ok := templates[category]
	if !ok {
		tmpl = templates[CategoryRegularMarketing]
	}
	return fmt.Sprintf(tmpl, context)
}
