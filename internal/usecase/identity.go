package usecase

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/xavierca1/linkedin-tracker/internal/entity"
)

// HeyReach has shipped at least two incompatible lead schemas (camelCase and
// snake_case generations). Each canonical field therefore carries an ordered
// alias list, evaluated first-match-wins against the raw lead object.
type fieldRule struct {
	field   string
	aliases []string
}

var leadIDRule = fieldRule{"lead_id", []string{"id", "leadId"}}

var profileURLRule = fieldRule{"profile_url", []string{"profileUrl", "profile_url", "linkedInProfileUrl"}}

var leadFieldRules = []fieldRule{
	{"first_name", []string{"firstName", "first_name"}},
	{"last_name", []string{"lastName", "last_name"}},
	{"company", []string{"companyName", "company_name", "company"}},
	{"title", []string{"position", "title"}},
	{"email", []string{"emailAddress", "email_address", "email"}},
}

// CanonicalLead is one upstream lead record normalized out of whatever shape
// this upstream generation used.
type CanonicalLead struct {
	LeadID     string
	ProfileURL string
	Fields     entity.ProspectFields
}

// NormalizeLead applies the alias rules to a raw lead object.
func NormalizeLead(raw map[string]any) CanonicalLead {
	lead := CanonicalLead{
		LeadID:     extract(raw, leadIDRule),
		ProfileURL: extract(raw, profileURLRule),
	}
	fields := map[string]*string{
		"first_name": &lead.Fields.FirstName,
		"last_name":  &lead.Fields.LastName,
		"company":    &lead.Fields.Company,
		"title":      &lead.Fields.Title,
		"email":      &lead.Fields.Email,
	}
	for _, rule := range leadFieldRules {
		*fields[rule.field] = extract(raw, rule)
	}
	lead.Fields.HeyreachLeadID = lead.LeadID
	return lead
}

// Identity resolves the stable prospect key: the profile URL when present,
// otherwise a deterministic synthetic key off the upstream lead id so that
// repeated deliveries for the same lead still collide on one prospect row.
func (l CanonicalLead) Identity() (string, error) {
	if l.ProfileURL != "" {
		return l.ProfileURL, nil
	}
	if l.LeadID != "" {
		return fmt.Sprintf("heyreach_lead_%s", l.LeadID), nil
	}
	return "", &ValidationError{Message: "lead has neither profile URL nor id"}
}

func extract(raw map[string]any, rule fieldRule) string {
	for _, alias := range rule.aliases {
		if v, ok := raw[alias]; ok {
			if s := asString(v); s != "" {
				return s
			}
		}
	}
	return ""
}

// Upstream ids arrive as strings in one schema generation and numbers in the
// other.
func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	default:
		return ""
	}
}
