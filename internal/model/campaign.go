// internal/model/campaign.go
package model

// CampaignRecord is one Salesforce campaign as extracted for a report run.
// Every field except ID is optional; the upstream CRM owns all values and
// this system never writes back.
type CampaignRecord struct {
	ID                    string `json:"id"`
	Name                  string `json:"name"`
	Channel               string `json:"channel"`
	SubChannel            string `json:"sub_channel"`
	SubChannelDetail      string `json:"sub_channel_detail"`
	Type                  string `json:"type"`
	BMID                  string `json:"bmid"`
	Description           string `json:"description"`
	ShortSalesDescription string `json:"short_sales_description"`
	Territory             string `json:"territory"`
	Segment               string `json:"segment"`
	IntendedProduct       string `json:"intended_product"`
	Vertical              string `json:"vertical"`
	Vendor                string `json:"vendor"`
	MarketingMessage      string `json:"marketing_message"`
	TCPCampaign           string `json:"tcp_campaign"`
	TCPProgram            string `json:"tcp_program"`
	TCPTheme              string `json:"tcp_theme"`
	IntegratedMarketing   string `json:"integrated_marketing"`
	IntendedCountry       string `json:"intended_country"`
	Program               string `json:"program"`
	NonAttributable       bool   `json:"non_attributable"`

	// RecentMemberCount comes from the member-count query, not the
	// campaign record itself.
	RecentMemberCount int `json:"recent_member_count"`
}
