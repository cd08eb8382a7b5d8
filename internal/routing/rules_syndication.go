// internal/routing/rules_syndication.go
package routing

import "github.com/mktops/campaign-clarity/internal/model"

// syndicationRules is the content-syndication rule set. Conditions here
// lean on the decoded EE-size bracket and integrated-marketing campaign
// tags rather than BMID substrings; syndication identifiers are decoded
// from campaign names and carry their intent in the dictionary labels.
var syndicationRules = []Rule{
	{
		EmployeeSize: eeSizeSmall,
		IMCTags:      []string{"Unified Communications"},
		Sequence: model.Recommendation{
			SequenceName: "Content Syndication - SBG UC Sequence",
			SequenceURL:  "https://app.outreach.io/sequences/4801/overview",
		},
	},
	{
		EmployeeSize: eeSizeLarge,
		IMCTags:      []string{"Unified Communications"},
		Sequence: model.Recommendation{
			SequenceName: "Content Syndication - Upmarket UC Sequence",
			SequenceURL:  "https://app.outreach.io/sequences/4802/overview",
		},
	},
	{
		EmployeeSize: eeSizeSmall,
		IMCTags:      []string{"Contact Center"},
		Sequence: model.Recommendation{
			SequenceName: "Content Syndication - SBG CC Sequence",
			SequenceURL:  "https://app.outreach.io/sequences/4803/overview",
		},
	},
	{
		EmployeeSize: eeSizeLarge,
		IMCTags:      []string{"Contact Center"},
		Sequence: model.Recommendation{
			SequenceName: "Content Syndication - Upmarket CC Sequence",
			SequenceURL:  "https://app.outreach.io/sequences/4804/overview",
		},
	},
	{
		EmployeeSize: eeSizeSmall,
		Sequence: model.Recommendation{
			SequenceName: "Content Syndication - SBG General Sequence",
			SequenceURL:  "https://app.outreach.io/sequences/4805/overview",
		},
	},
	{
		EmployeeSize: eeSizeLarge,
		Sequence: model.Recommendation{
			SequenceName: "Content Syndication - Upmarket General Sequence",
			SequenceURL:  "https://app.outreach.io/sequences/4806/overview",
		},
	},
	{
		IMCTags: []string{"Unified Communications"},
		Sequence: model.Recommendation{
			SequenceName: "Content Syndication - UC Interest Sequence",
			SequenceURL:  "https://app.outreach.io/sequences/4807/overview",
		},
	},
}
