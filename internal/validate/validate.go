package validate

import (
	"context"
	"fmt"
	"strings"

	"campaignwiki/internal/attrs"
	"campaignwiki/internal/entity"
	"campaignwiki/internal/store"
)

type Severity string

const (
	SeverityError Severity = "error"
	SeverityWarn  Severity = "warning"
)

const (
	codeDanglingPlaceholder  = "dangling_placeholder"
	codeOrphanedEntity       = "orphaned_entity"
	codeUnrankedAffinity     = "unranked_affinity"
	codeMissingSessionNumber = "missing_session_number"
)

type Issue struct {
	Severity   Severity `json:"severity"`
	Code       string   `json:"code"`
	Message    string   `json:"message"`
	CampaignID string   `json:"campaign_id,omitempty"`
	Entity     string   `json:"entity"`
	FilePath   string   `json:"file_path,omitempty"`
}

type Report struct {
	Issues []Issue `json:"issues"`
}

// Split separates error issues from warnings, keeping report order.
func (r *Report) Split() (errs, warnings []Issue) {
	for _, issue := range r.Issues {
		switch issue.Severity {
		case SeverityError:
			errs = append(errs, issue)
		case SeverityWarn:
			warnings = append(warnings, issue)
		}
	}
	return errs, warnings
}

type Validator interface {
	ListEntities(ctx context.Context, filter store.EntityFilter) ([]entity.Record, error)
	ListDanglingPlaceholders(ctx context.Context, campaignID string) ([]store.EntitySummary, error)
	ListOrphanedEntities(ctx context.Context, campaignID string) ([]store.EntitySummary, error)
}

// Run checks one campaign, or every campaign when campaignID is empty.
func Run(ctx context.Context, ranks *entity.Ranks, db Validator, campaignID string) (*Report, error) {
	if db == nil {
		return nil, fmt.Errorf("store is required")
	}

	issues := make([]Issue, 0)

	records, err := db.ListEntities(ctx, store.EntityFilter{CampaignID: campaignID})
	if err != nil {
		return nil, fmt.Errorf("list entities: %w", err)
	}
	for _, rec := range records {
		issues = append(issues, validateAffinity(rec, ranks)...)
		issues = append(issues, validateSession(rec)...)
	}

	placeholders, err := db.ListDanglingPlaceholders(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("list dangling placeholders: %w", err)
	}
	for _, summary := range placeholders {
		issues = append(issues, issueFromSummary(summary, SeverityError, codeDanglingPlaceholder, "linked entity has no document"))
	}

	orphans, err := db.ListOrphanedEntities(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("list orphaned entities: %w", err)
	}
	for _, summary := range orphans {
		issues = append(issues, issueFromSummary(summary, SeverityWarn, codeOrphanedEntity, "orphaned entity"))
	}

	return &Report{Issues: issues}, nil
}

func validateAffinity(rec entity.Record, ranks *entity.Ranks) []Issue {
	typ := entity.NormalizeType(rec.Type)
	if typ != entity.TypeNPC && typ != entity.TypeFaction {
		return nil
	}
	affinity := strings.TrimSpace(attrs.String(rec.Attributes, "affinity", "disposition"))
	if affinity == "" || ranks.Rank(affinity) != entity.RankFallback {
		return nil
	}
	return []Issue{{
		Severity:   SeverityWarn,
		Code:       codeUnrankedAffinity,
		Message:    fmt.Sprintf("affinity %q matches no rank term", affinity),
		CampaignID: rec.CampaignID,
		Entity:     rec.Name,
	}}
}

func validateSession(rec entity.Record) []Issue {
	if entity.NormalizeType(rec.Type) != entity.TypeSession {
		return nil
	}
	if _, ok := attrs.Lookup(rec.Attributes, entity.SessionNumberKeys...); ok {
		return nil
	}
	return []Issue{{
		Severity:   SeverityWarn,
		Code:       codeMissingSessionNumber,
		Message:    "session has no session_number",
		CampaignID: rec.CampaignID,
		Entity:     rec.Name,
	}}
}

func issueFromSummary(summary store.EntitySummary, severity Severity, code, message string) Issue {
	return Issue{
		Severity:   severity,
		Code:       code,
		Message:    message,
		CampaignID: summary.CampaignID,
		Entity:     summary.Name,
		FilePath:   summary.SourceFile,
	}
}
