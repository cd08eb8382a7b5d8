// internal/decoder/decoder.go
package decoder

import (
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/mktops/campaign-clarity/internal/mappings"
	"github.com/mktops/campaign-clarity/internal/model"
)

// Dialect names reported on DecodedBMID.
const (
	DialectCustomer    = "customer"
	DialectEmail       = "email_prospecting"
	DialectSyndication = "content_syndication"
	DialectSocial      = "social_media"
	DialectRaw         = "raw"
)

// Mapping-table keys for the per-dialect token dictionaries.
const (
	tableEmail       = "BMID_Email_Prospecting"
	tableSyndication = "BMID_Content_Syndication"
	tableSocial      = "BMID_Social_Media"
	tableCustomer    = "BMID_Customer"
)

// maxTokenLen bounds the longest-prefix probe; no dictionary token is
// longer than this.
const maxTokenLen = 10

var (
	eeSizeRe = regexp.MustCompile(`EE Size: ([^)]+)\)`)
	imcRe    = regexp.MustCompile(`IMC: ([^)]+)\)`)
	fiscalRe = regexp.MustCompile(`^FY\d{2,4}$`)
)

// Decoder turns encoded campaign identifiers (BMIDs) into human-readable
// tokens plus the structured signals the outreach router consumes. It is
// total: any input decodes to something, unmatched chunks are preserved
// verbatim and logged.
type Decoder struct {
	store *mappings.Store
	log   *zap.Logger
}

func New(store *mappings.Store, log *zap.Logger) *Decoder {
	return &Decoder{store: store, log: log}
}

// Decode picks the dialect for a campaign and decodes its identifier.
// The existing-customer keyword override runs before channel dispatch:
// a BMID carrying any customer keyword decodes through the customer
// dictionary regardless of channel.
func (d *Decoder) Decode(campaign *model.CampaignRecord) model.DecodedBMID {
	if hits := d.customerKeywords(campaign.BMID); len(hits) > 0 {
		return d.decodeCustomer(campaign.BMID, hits)
	}

	switch {
	case strings.EqualFold(campaign.Channel, "Content Syndication"):
		return d.DecodeSyndication(campaign.Name, campaign.BMID)
	case strings.EqualFold(campaign.Channel, "Social Media"),
		strings.EqualFold(campaign.Channel, "Paid Social"):
		return d.DecodeSocial(campaign.Name)
	case strings.EqualFold(campaign.Channel, "Email"):
		return d.DecodeEmail(campaign.BMID)
	}

	// Unknown channels get no dictionary guessing; the raw code is
	// still worth showing.
	return model.DecodedBMID{Dialect: DialectRaw, Display: campaign.BMID}
}

// customerKeywords returns every customer-dictionary keyword present as a
// case-insensitive substring of the identifier.
func (d *Decoder) customerKeywords(bmid string) []string {
	if bmid == "" {
		return nil
	}
	upper := strings.ToUpper(bmid)
	var hits []string
	for keyword := range d.store.Table(tableCustomer) {
		if strings.Contains(upper, strings.ToUpper(keyword)) {
			hits = append(hits, keyword)
		}
	}
	// Map iteration order is random; keep keyword output deterministic.
	sort.Strings(hits)
	return hits
}

func (d *Decoder) decodeCustomer(bmid string, keywords []string) model.DecodedBMID {
	out := model.DecodedBMID{Dialect: DialectCustomer, CustomerKeywords: keywords}
	var labels []string
	for _, kw := range keywords {
		desc, ok := d.store.Describe(tableCustomer, kw)
		if !ok {
			continue
		}
		labels = append(labels, desc)
		out.Tokens = append(out.Tokens, model.DecodedToken{Raw: kw, Label: desc})
	}
	out.Display = strings.Join(labels, ", ")
	d.harvestSignals(&out)
	return out
}

// DecodeEmail applies greedy longest-prefix segmentation against the
// prospecting-email dictionary. At each position it probes substrings of
// decreasing length; with no match at any length the single character is
// emitted verbatim ("stranded") and the scan advances by one. Stranding
// is expected when the true tokenization is ambiguous.
func (d *Decoder) DecodeEmail(bmid string) model.DecodedBMID {
	out := model.DecodedBMID{Dialect: DialectEmail}
	if bmid == "" {
		return out
	}

	table := d.store.Table(tableEmail)
	input := strings.ToUpper(bmid)
	var parts []string

	for i := 0; i < len(input); {
		matched := false
		limit := maxTokenLen
		if rest := len(input) - i; rest < limit {
			limit = rest
		}
		for l := limit; l >= 1; l-- {
			candidate := input[i : i+l]
			if label, ok := table[candidate]; ok {
				out.Tokens = append(out.Tokens, model.DecodedToken{Raw: candidate, Label: label})
				parts = append(parts, label)
				i += l
				matched = true
				break
			}
		}
		if !matched {
			ch := input[i : i+1]
			out.Stranded = append(out.Stranded, ch)
			parts = append(parts, ch)
			i++
		}
	}

	if len(out.Stranded) > 0 {
		d.log.Warn("unmatched characters in email BMID",
			zap.String("bmid", bmid),
			zap.Strings("stranded", out.Stranded))
	}
	out.Display = strings.Join(parts, " ")
	d.harvestSignals(&out)
	return out
}

// DecodeSyndication decodes a content-syndication campaign by its
// underscore-delimited name, the canonical form for this dialect. When
// the name has no underscore structure it falls back to the deprecated
// prefix decode of the raw BMID.
func (d *Decoder) DecodeSyndication(name, bmid string) model.DecodedBMID {
	if !strings.Contains(name, "_") {
		return d.decodeSyndicationBMID(bmid)
	}

	out := model.DecodedBMID{Dialect: DialectSyndication}
	var parts []string

	for _, segment := range strings.Split(name, "_") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}

		label, ok := d.store.Describe(tableSyndication, segment)
		if !ok {
			label, ok = d.store.Describe(tableSyndication, strings.ToUpper(segment))
		}
		switch {
		case ok:
			out.Tokens = append(out.Tokens, model.DecodedToken{Raw: segment, Label: label})
			parts = append(parts, label)
		case fiscalRe.MatchString(strings.ToUpper(segment)):
			label = "Fiscal Year - " + segment
			out.Tokens = append(out.Tokens, model.DecodedToken{Raw: segment, Label: label})
			parts = append(parts, label)
		case len(segment) >= 4:
			// Long unrecognized tokens are assumed to be vendor names.
			label = "Vendor - " + segment
			out.Tokens = append(out.Tokens, model.DecodedToken{Raw: segment, Label: label})
			parts = append(parts, label)
		default:
			out.Stranded = append(out.Stranded, segment)
			parts = append(parts, segment)
		}
	}

	if len(out.Stranded) > 0 {
		d.log.Warn("unmatched segments in content-syndication name",
			zap.String("name", name),
			zap.Strings("stranded", out.Stranded))
	}
	out.Display = strings.Join(parts, ", ")
	d.harvestSignals(&out)
	return out
}

// decodeSyndicationBMID is the older prefix decode of the raw identifier.
//
// Deprecated: kept only for records whose names carry no underscore
// structure; the name-segment decode above is canonical because it
// tokenizes on an explicit delimiter instead of guessing boundaries.
func (d *Decoder) decodeSyndicationBMID(bmid string) model.DecodedBMID {
	out := model.DecodedBMID{Dialect: DialectSyndication}
	if bmid == "" {
		return out
	}

	table := d.store.Table(tableSyndication)
	input := strings.ToUpper(bmid)
	var parts []string

	for i := 0; i < len(input); {
		if loc := fiscalPrefix(input[i:]); loc > 0 {
			segment := input[i : i+loc]
			label := "Fiscal Year - " + segment
			out.Tokens = append(out.Tokens, model.DecodedToken{Raw: segment, Label: label})
			parts = append(parts, label)
			i += loc
			continue
		}

		matched := false
		limit := maxTokenLen
		if rest := len(input) - i; rest < limit {
			limit = rest
		}
		for l := limit; l >= 1; l-- {
			candidate := input[i : i+l]
			if label, ok := table[candidate]; ok {
				out.Tokens = append(out.Tokens, model.DecodedToken{Raw: candidate, Label: label})
				parts = append(parts, label)
				i += l
				matched = true
				break
			}
		}
		if !matched {
			ch := input[i : i+1]
			out.Stranded = append(out.Stranded, ch)
			parts = append(parts, ch)
			i++
		}
	}

	if len(out.Stranded) > 0 {
		d.log.Warn("unmatched characters in content-syndication BMID",
			zap.String("bmid", bmid),
			zap.Strings("stranded", out.Stranded))
	}
	out.Display = strings.Join(parts, " ")
	d.harvestSignals(&out)
	return out
}

// fiscalPrefix reports the length of a leading FY pattern (FY + 2-4
// digits), zero when absent.
func fiscalPrefix(s string) int {
	if len(s) < 4 || s[0] != 'F' || s[1] != 'Y' {
		return 0
	}
	n := 2
	for n < len(s) && n < 6 && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	if n-2 < 2 {
		return 0
	}
	return n
}

// harvestSignals parses the EE-size bracket and integrated-campaign tags
// out of matched dictionary labels, once, at decode time. The router
// reads these fields instead of re-parsing rendered text.
func (d *Decoder) harvestSignals(out *model.DecodedBMID) {
	for _, tok := range out.Tokens {
		if out.EmployeeSize == "" {
			if m := eeSizeRe.FindStringSubmatch(tok.Label); m != nil {
				out.EmployeeSize = strings.TrimSpace(m[1])
			}
		}
		if m := imcRe.FindStringSubmatch(tok.Label); m != nil {
			out.IntegratedTags = append(out.IntegratedTags, strings.TrimSpace(m[1]))
		}
	}
}
