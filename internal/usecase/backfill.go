package usecase

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/xavierca1/linkedin-tracker/internal/entity"
)

// acceptedIndicators are the status strings upstream has used to mean "this
// lead accepted the connection". The schema for this signal is not stable, so
// the predicate below ORs every known spelling.
var acceptedIndicators = map[string]bool{
	"accepted":            true,
	"connected":           true,
	"connection_accepted": true,
}

// BackfillResult is the aggregate summary of one run.
type BackfillResult struct {
	TotalLeads     int
	AcceptedLeads  int
	Backfilled     int
	AlreadyExisted int
	Skipped        int
	DryRun         bool
}

type BackfillUseCase struct {
	Client   CampaignLeadSource
	Pipeline *IngestEventUseCase
}

func NewBackfillUseCase(client CampaignLeadSource, pipeline *IngestEventUseCase) *BackfillUseCase {
	return &BackfillUseCase{Client: client, Pipeline: pipeline}
}

// Execute fetches every lead of the campaign, filters for accepted
// connections, and replays each match through the ingestion pipeline as a
// connection_request_accepted event. The full lead set is accumulated before
// any store transaction opens: a transport failure mid-pagination aborts the
// run with nothing written, and reruns are safe because the merge is
// idempotent.
func (uc *BackfillUseCase) Execute(ctx context.Context, campaignID string, dryRun bool) (BackfillResult, error) {
	result := BackfillResult{DryRun: dryRun}

	log.Printf("backfill: fetching leads for campaign %s", campaignID)
	leads, err := uc.Client.GetAllCampaignLeads(ctx, campaignID)
	if err != nil {
		return result, err
	}
	result.TotalLeads = len(leads)

	for _, lead := range leads {
		if !IsConnectionAccepted(lead) {
			continue
		}
		result.AcceptedLeads++

		input := backfillInput(lead)

		if dryRun {
			canonical, identity, err := uc.Pipeline.Resolve(input)
			if err != nil {
				result.Skipped++
				log.Printf("backfill: [dry-run] skipping unresolvable lead: %v", err)
				continue
			}
			result.Backfilled++
			log.Printf("backfill: [dry-run] would backfill %s %s (%s)",
				canonical.Fields.FirstName, canonical.Fields.LastName, identity)
			continue
		}

		out, err := uc.Pipeline.Execute(ctx, input)
		switch {
		case IsValidationError(err):
			result.Skipped++
			log.Printf("backfill: skipping invalid lead: %v", err)
		case err != nil:
			return result, err
		case out.AlreadyConnected:
			result.AlreadyExisted++
		default:
			result.Backfilled++
		}
	}

	log.Printf("backfill: %d leads, %d accepted, %d backfilled, %d already existed",
		result.TotalLeads, result.AcceptedLeads, result.Backfilled, result.AlreadyExisted)
	return result, nil
}

// IsConnectionAccepted ORs every heuristic that has meant "accepted" across
// upstream schema generations: the status string, a dedicated
// connectionStatus field, and two spellings of a boolean connected flag.
func IsConnectionAccepted(lead map[string]any) bool {
	if acceptedIndicators[lowerString(lead["status"])] {
		return true
	}
	if acceptedIndicators[lowerString(lead["connectionStatus"])] ||
		acceptedIndicators[lowerString(lead["connection_status"])] {
		return true
	}
	return boolField(lead, "isConnected") || boolField(lead, "is_connected")
}

func backfillInput(lead map[string]any) IngestInput {
	raw, err := json.Marshal(lead)
	if err != nil {
		raw = []byte("{}")
	}
	return IngestInput{
		EventType:  entity.EventConnectionAccepted,
		Lead:       lead,
		RawPayload: string(raw),
		Source:     SourceBackfill,
	}
}

func lowerString(v any) string {
	s, _ := v.(string)
	return strings.ToLower(s)
}

func boolField(lead map[string]any, key string) bool {
	b, _ := lead[key].(bool)
	return b
}
