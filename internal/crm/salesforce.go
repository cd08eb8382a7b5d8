// internal/crm/salesforce.go
package crm

import (
	"fmt"
	"strings"
	"time"

	"github.com/simpleforce/simpleforce"
	"go.uber.org/zap"

	"github.com/mktops/campaign-clarity/internal/model"
)

// inClauseLimit is the Salesforce SOQL IN-clause ceiling; campaign
// fetches are batched to stay under it.
const inClauseLimit = 200

// Salesforce is the CRM collaborator. Connectivity or query failure here
// is fatal for the run - there is no per-record recovery when the data
// cannot be fetched at all.
type Salesforce struct {
	client *simpleforce.Client
	log    *zap.Logger
}

// Connect logs into Salesforce with the username-password-token flow.
func Connect(username, password, token, domain string, log *zap.Logger) (*Salesforce, error) {
	url := fmt.Sprintf("https://%s.salesforce.com", domain)
	client := simpleforce.NewClient(url, simpleforce.DefaultClientID, simpleforce.DefaultAPIVersion)
	if client == nil {
		return nil, fmt.Errorf("create salesforce client")
	}
	if err := client.LoginPassword(username, password, token); err != nil {
		return nil, fmt.Errorf("salesforce login: %w", err)
	}
	log.Info("connected to Salesforce", zap.String("domain", domain))
	return &Salesforce{client: client, log: log}, nil
}

// FetchMemberCountsSince returns campaignID -> member count for campaign
// members created after the cutoff. A non-zero limit caps the member
// query, which is useful for trial runs.
func (s *Salesforce) FetchMemberCountsSince(cutoff time.Time, limit int) (map[string]int, error) {
	q := fmt.Sprintf(
		"SELECT CampaignId FROM CampaignMember WHERE CreatedDate > %s",
		cutoff.UTC().Format("2006-01-02T15:04:05.000+0000"))
	if limit > 0 {
		q += fmt.Sprintf(" LIMIT %d", limit)
	}

	counts := map[string]int{}
	total := 0
	for q != "" {
		result, err := s.client.Query(q)
		if err != nil {
			return nil, fmt.Errorf("query campaign members: %w", err)
		}
		for _, rec := range result.Records {
			counts[rec.StringField("CampaignId")]++
			total++
		}
		if result.Done {
			break
		}
		q = result.NextRecordsURL
	}

	s.log.Info("fetched campaign members",
		zap.Int("members", total), zap.Int("campaigns", len(counts)))
	return counts, nil
}

// campaignFields is the full field list the report needs, matching the
// upstream Campaign object.
const campaignFields = "BMID__c, Channel__c, Description, Id, Integrated_Marketing__c, " +
	"Intended_Country__c, Intended_Product__c, Marketing_Message__c, " +
	"Name, Non_Attributable__c, Program__c, Segment__c, Short_Description_for_Sales__c, " +
	"Sub_Channel__c, Sub_Channel_Detail__c, TCP_Campaign__c, " +
	"TCP_Program__c, TCP_Theme__c, Territory__c, Type, Vendor__c, Vertical__c"

// FetchCampaignsByIDs fetches full campaign records, batching the IN
// clause at the Salesforce limit.
func (s *Salesforce) FetchCampaignsByIDs(ids []string) ([]model.CampaignRecord, error) {
	var campaigns []model.CampaignRecord

	for start := 0; start < len(ids); start += inClauseLimit {
		end := start + inClauseLimit
		if end > len(ids) {
			end = len(ids)
		}
		batch := ids[start:end]

		q := fmt.Sprintf(
			"SELECT %s FROM Campaign WHERE Id IN ('%s')",
			campaignFields, strings.Join(batch, "','"))

		s.log.Info("fetching campaigns batch",
			zap.Int("batch", start/inClauseLimit+1), zap.Int("size", len(batch)))

		for q != "" {
			result, err := s.client.Query(q)
			if err != nil {
				return nil, fmt.Errorf("query campaigns: %w", err)
			}
			for _, rec := range result.Records {
				campaigns = append(campaigns, recordFromSObject(rec))
			}
			if result.Done {
				break
			}
			q = result.NextRecordsURL
		}
	}

	s.log.Info("extracted campaigns", zap.Int("count", len(campaigns)))
	return campaigns, nil
}

func recordFromSObject(rec simpleforce.SObject) model.CampaignRecord {
	return model.CampaignRecord{
		ID:                    rec.StringField("Id"),
		Name:                  rec.StringField("Name"),
		Channel:               rec.StringField("Channel__c"),
		SubChannel:            rec.StringField("Sub_Channel__c"),
		SubChannelDetail:      rec.StringField("Sub_Channel_Detail__c"),
		Type:                  rec.StringField("Type"),
		BMID:                  rec.StringField("BMID__c"),
		Description:           rec.StringField("Description"),
		ShortSalesDescription: rec.StringField("Short_Description_for_Sales__c"),
		Territory:             rec.StringField("Territory__c"),
		Segment:               rec.StringField("Segment__c"),
		IntendedProduct:       rec.StringField("Intended_Product__c"),
		Vertical:              rec.StringField("Vertical__c"),
		Vendor:                rec.StringField("Vendor__c"),
		MarketingMessage:      rec.StringField("Marketing_Message__c"),
		TCPCampaign:           rec.StringField("TCP_Campaign__c"),
		TCPProgram:            rec.StringField("TCP_Program__c"),
		TCPTheme:              rec.StringField("TCP_Theme__c"),
		IntegratedMarketing:   rec.StringField("Integrated_Marketing__c"),
		IntendedCountry:       rec.StringField("Intended_Country__c"),
		Program:               rec.StringField("Program__c"),
		NonAttributable:       boolField(rec, "Non_Attributable__c"),
	}
}

// boolField reads a checkbox field, which arrives as a JSON bool or a
// string depending on the API path.
func boolField(rec simpleforce.SObject, name string) bool {
	switch v := rec[name].(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(v, "true")
	}
	return false
}
