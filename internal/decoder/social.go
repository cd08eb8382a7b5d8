// internal/decoder/social.go
package decoder

import (
	"strings"

	"go.uber.org/zap"

	"github.com/mktops/campaign-clarity/internal/model"
)

// socialFields are the ten positional fields of a structured social-media
// campaign name, in order.
var socialFields = []string{
	"Channel",
	"Country",
	"Product",
	"Vendor",
	"Objective",
	"Campaign Type",
	"Secondary Objective",
	"Business Size",
	"Media Objective",
	"Ad Type",
}

var socialCountries = map[string]string{
	"US": "United States",
	"UK": "United Kingdom",
	"CA": "Canada",
}

// DecodeSocial decodes a structured social-media campaign name: ten
// underscore-delimited positional fields, each with its own formatting
// rule. Short names decode partially with a warning, never an error.
func (d *Decoder) DecodeSocial(name string) model.DecodedBMID {
	out := model.DecodedBMID{Dialect: DialectSocial}
	if name == "" {
		return out
	}

	segments := strings.Split(name, "_")
	if len(segments) < len(socialFields) {
		d.log.Warn("social campaign name has fewer segments than expected",
			zap.String("name", name),
			zap.Int("segments", len(segments)),
			zap.Int("expected", len(socialFields)))
	}

	var parts []string
	for i, segment := range segments {
		if i >= len(socialFields) {
			break
		}
		segment = strings.TrimSpace(segment)
		value := d.formatSocialField(i, segment)
		out.Tokens = append(out.Tokens, model.DecodedToken{Raw: segment, Label: value})
		parts = append(parts, socialFields[i]+": "+value)
	}

	out.Display = strings.Join(parts, " | ")
	d.harvestSignals(&out)
	return out
}

// formatSocialField applies the per-position rule for one segment.
func (d *Decoder) formatSocialField(pos int, segment string) string {
	switch pos {
	case 1: // Country: fixed abbreviations, else uppercase.
		if country, ok := socialCountries[strings.ToUpper(segment)]; ok {
			return country
		}
		return strings.ToUpper(segment)

	case 2: // Product: product table first, then the social table.
		if desc, ok := d.store.Describe("Intended_Product__c", segment); ok {
			return desc
		}
		return d.socialLookup(segment)

	case 3: // Vendor: vendor table first, then the social table.
		if desc, ok := d.store.Describe("Vendor__c", segment); ok {
			return desc
		}
		return d.socialLookup(segment)

	case 7: // Business size is never dictionary-mapped.
		if segment == "" || strings.EqualFold(segment, "all") {
			return "All"
		}
		return titleCase(segment)

	default:
		return d.socialLookup(segment)
	}
}

func (d *Decoder) socialLookup(segment string) string {
	if segment == "" {
		return "All"
	}
	if desc, ok := d.store.Describe(tableSocial, segment); ok {
		return desc
	}
	return titleCase(segment)
}

// titleCase uppercases the first letter of each space-delimited word,
// lowercasing the rest. Enough for campaign-name segments; full Unicode
// title casing is not needed here.
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
