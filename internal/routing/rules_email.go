// internal/routing/rules_email.go
package routing

import "github.com/mktops/campaign-clarity/internal/model"

// emailRules is the prospecting-email rule set. Order matters only for
// tie-breaking between rules of equal specificity; keep the most
// specific product+segment rules at the top so the list reads the way it
// evaluates.
var emailRules = []Rule{
	{
		BMIDContains: []string{"DG", "SMB"},
		Product:      "RINGEX",
		EmployeeSize: eeSizeSmall,
		Sequence: model.Recommendation{
			SequenceName: "RingEX Sequence - SBG CPL Q1FY25",
			SequenceURL:  "https://app.outreach.io/sequences/4614/overview",
		},
	},
	{
		BMIDContains: []string{"DG", "MM"},
		Product:      "RINGEX",
		EmployeeSize: eeSizeLarge,
		Sequence: model.Recommendation{
			SequenceName: "RingEX Sequence - Upmarket CPL Q1FY25",
			SequenceURL:  "https://app.outreach.io/sequences/4615/overview",
		},
	},
	{
		BMIDContains: []string{"DG", "SMB"},
		Product:      "RINGCENTRAL CONTACT CENTER",
		EmployeeSize: eeSizeSmall,
		Sequence: model.Recommendation{
			SequenceName: "Contact Center Sequence - SBG CPL Q1FY25",
			SequenceURL:  "https://app.outreach.io/sequences/4616/overview",
		},
	},
	{
		BMIDContains: []string{"DG", "MM"},
		Product:      "RINGCENTRAL CONTACT CENTER",
		EmployeeSize: eeSizeLarge,
		Sequence: model.Recommendation{
			SequenceName: "Contact Center Sequence - Upmarket CPL Q1FY25",
			SequenceURL:  "https://app.outreach.io/sequences/4617/overview",
		},
	},
	{
		BMIDContains: []string{"ENT"},
		Product:      "RINGEX",
		EmployeeSize: eeSizeLarge,
		Sequence: model.Recommendation{
			SequenceName: "RingEX Sequence - Enterprise CPL Q1FY25",
			SequenceURL:  "https://app.outreach.io/sequences/4618/overview",
		},
	},
	{
		BMIDContains: []string{"WBR"},
		Product:      "RINGEX",
		Sequence: model.Recommendation{
			SequenceName: "RingEX Webinar Follow-Up",
			SequenceURL:  "https://app.outreach.io/sequences/4702/overview",
		},
	},
	{
		BMIDContains: []string{"EBK"},
		EmployeeSize: eeSizeSmall,
		Sequence: model.Recommendation{
			SequenceName: "SBG Content Download Follow-Up",
			SequenceURL:  "https://app.outreach.io/sequences/4703/overview",
		},
	},
	{
		BMIDContains: []string{"DG"},
		EmployeeSize: eeSizeSmall,
		Sequence: model.Recommendation{
			SequenceName: "SBG General CPL Sequence",
			SequenceURL:  "https://app.outreach.io/sequences/4610/overview",
		},
	},
	{
		BMIDContains: []string{"DG"},
		EmployeeSize: eeSizeLarge,
		Sequence: model.Recommendation{
			SequenceName: "Upmarket General CPL Sequence",
			SequenceURL:  "https://app.outreach.io/sequences/4611/overview",
		},
	},
	{
		BMIDContains: []string{"CCTR"},
		Sequence: model.Recommendation{
			SequenceName: "Contact Center Interest Sequence",
			SequenceURL:  "https://app.outreach.io/sequences/4620/overview",
		},
	},
	{
		BMIDContains: []string{"RCV"},
		Sequence: model.Recommendation{
			SequenceName: "Video Interest Sequence",
			SequenceURL:  "https://app.outreach.io/sequences/4621/overview",
		},
	},
	{
		Product: "RINGEX",
		Sequence: model.Recommendation{
			SequenceName: "RingEX General Interest Sequence",
			SequenceURL:  "https://app.outreach.io/sequences/4601/overview",
		},
	},
	{
		BMIDContains: []string{"DG"},
		Sequence: model.Recommendation{
			SequenceName: "General Demand Gen Sequence",
			SequenceURL:  "https://app.outreach.io/sequences/4600/overview",
		},
	},
}
