package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"campaignwiki/internal/config"
	"campaignwiki/internal/entity"
	"campaignwiki/internal/parser"
	"campaignwiki/internal/store"
)

type Store interface {
	EnsureSchema(ctx context.Context) error
	UpsertCampaign(ctx context.Context, c store.CampaignInput) error
	UpsertArc(ctx context.Context, a store.ArcInput) error
	UpsertEntity(ctx context.Context, e store.EntityInput) error
	UpsertRelationship(ctx context.Context, r store.RelationshipInput) error
	GetSourceHashes(ctx context.Context, campaignID string) (map[string]string, error)
	RemoveStaleEntities(ctx context.Context, campaignID string, currentSourceFiles []string) (int64, error)
	RemoveSupersededEntities(ctx context.Context, campaignID, sourceFile, keepID string) (int64, error)
	ClearRelationships(ctx context.Context, campaignID, fromID string) error
}

type Result struct {
	EntitiesUpserted int
	EdgesUpserted    int
	EntitiesRemoved  int
	FilesSkipped     int
	Errors           []error
}

type Options struct {
	Full bool
}

var entityNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("campaignwiki.entity"))

// EntityID derives the stable id of the entity called name in a campaign.
// Names compare case-insensitively, so a placeholder created for a link
// shares its id with the entity ingested later.
func EntityID(campaignID, name string) string {
	key := campaignID + "\x00" + strings.ToLower(strings.TrimSpace(name))
	return uuid.NewSHA1(entityNamespace, []byte(key)).String()
}

type processedDoc struct {
	doc *parser.Document
	id  string
}

func Run(ctx context.Context, cfg *config.ProjectConfig, db Store, options Options) (*Result, error) {
	if err := db.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	result := &Result{}
	for _, campaign := range cfg.Campaigns {
		if err := ingestCampaign(ctx, cfg, campaign, db, options, result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func ingestCampaign(ctx context.Context, cfg *config.ProjectConfig, campaign config.Campaign, db Store, options Options, result *Result) error {
	err := db.UpsertCampaign(ctx, store.CampaignInput{
		ID:          campaign.ID,
		Name:        campaign.Name,
		Description: campaign.Description,
	})
	if err != nil {
		return fmt.Errorf("upserting campaign %s: %w", campaign.ID, err)
	}

	arcTitles := make(map[string]string, len(campaign.Arcs))
	for i, arc := range campaign.Arcs {
		order := arc.Order
		if order == 0 {
			order = i + 1
		}
		title := arc.Title
		if strings.TrimSpace(title) == "" {
			title = arc.ID
		}
		arcTitles[arc.ID] = title
		err := db.UpsertArc(ctx, store.ArcInput{
			ID:          arc.ID,
			CampaignID:  campaign.ID,
			Title:       title,
			Description: arc.Description,
			Order:       order,
		})
		if err != nil {
			return fmt.Errorf("upserting arc %s: %w", arc.ID, err)
		}
	}

	var existingHashes map[string]string
	if !options.Full {
		existingHashes, err = db.GetSourceHashes(ctx, campaign.ID)
		if err != nil {
			return fmt.Errorf("get source hashes for %s: %w", campaign.ID, err)
		}
	}

	files, err := walkMarkdownFiles(campaign.Paths, cfg.Exclude)
	if err != nil {
		return fmt.Errorf("walking files for campaign %s: %w", campaign.ID, err)
	}

	var processed []processedDoc
	for _, path := range files {
		hash, err := computeHash(path)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("hashing %s: %w", path, err))
			continue
		}
		if !options.Full {
			if existing, ok := existingHashes[path]; ok && existing == hash {
				result.FilesSkipped++
				continue
			}
		}

		doc, err := parser.ParseFile(path)
		if err != nil {
			if errors.Is(err, parser.ErrNoFrontmatter) || errors.Is(err, parser.ErrMissingType) {
				log.Printf("ingest: skipping %s: %v", path, err)
				result.FilesSkipped++
				continue
			}
			result.Errors = append(result.Errors, fmt.Errorf("parsing %s: %w", path, err))
			continue
		}

		entityType := entity.NormalizeType(doc.EntityType)
		if !entity.IsKnownType(entityType) {
			log.Printf("ingest: skipping %s: unknown entity type %q", path, doc.EntityType)
			result.FilesSkipped++
			continue
		}

		input := buildInput(campaign.ID, entityType, doc, arcTitles)
		input.SourceFile = path
		input.SourceHash = hash
		if err := db.UpsertEntity(ctx, input); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("upserting %s: %w", path, err))
			continue
		}
		result.EntitiesUpserted++

		removed, err := db.RemoveSupersededEntities(ctx, campaign.ID, path, input.ID)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("removing superseded entities for %s: %w", path, err))
		}
		result.EntitiesRemoved += int(removed)

		if err := db.ClearRelationships(ctx, campaign.ID, input.ID); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("clearing relationships for %s: %w", path, err))
			continue
		}
		processed = append(processed, processedDoc{doc: doc, id: input.ID})
	}

	for _, item := range processed {
		for _, link := range item.doc.Links {
			target := strings.TrimSpace(link.Target)
			if target == "" {
				continue
			}
			err := db.UpsertRelationship(ctx, store.RelationshipInput{
				CampaignID: campaign.ID,
				FromID:     item.id,
				ToID:       EntityID(campaign.ID, target),
				ToName:     target,
				Type:       NormalizeLinkType(link.Type),
			})
			if err != nil {
				result.Errors = append(result.Errors, fmt.Errorf("upserting relationship for %s: %w", item.doc.Title, err))
				continue
			}
			result.EdgesUpserted++
		}
	}

	deleted, err := db.RemoveStaleEntities(ctx, campaign.ID, files)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Errorf("removing stale entities for %s: %w", campaign.ID, err))
		return nil
	}
	result.EntitiesRemoved += int(deleted)
	return nil
}

func buildInput(campaignID, entityType string, doc *parser.Document, arcTitles map[string]string) store.EntityInput {
	attributes := doc.Attributes()
	if len(doc.Tags) > 0 {
		attributes["tags"] = doc.Tags
	}
	if title, ok := arcTitles[doc.Arc]; ok {
		if _, set := attributes["campaign_arc"]; !set {
			attributes["campaign_arc"] = title
		}
	}

	description := doc.Description
	if description == "" {
		description = strings.TrimSpace(doc.Body)
	}

	return store.EntityInput{
		ID:          EntityID(campaignID, doc.Title),
		CampaignID:  campaignID,
		Name:        doc.Title,
		Type:        entityType,
		Status:      doc.Status,
		Description: description,
		ArcID:       doc.Arc,
		Attributes:  attributes,
	}
}

// NormalizeLinkType lowercases a relationship type and joins words with
// underscores.
func NormalizeLinkType(value string) string {
	fields := strings.FieldsFunc(strings.ToLower(value), func(r rune) bool {
		return r == ' ' || r == '-' || r == '_' || r == '\t'
	})
	if len(fields) == 0 {
		return parser.DefaultLinkType
	}
	return strings.Join(fields, "_")
}

func walkMarkdownFiles(roots []string, excludes []string) ([]string, error) {
	excluded := make([]string, 0, len(excludes))
	for _, path := range excludes {
		if path == "" {
			continue
		}
		excluded = append(excluded, filepath.Clean(path))
	}

	var files []string
	for _, root := range roots {
		if root == "" {
			continue
		}
		root = filepath.Clean(root)
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() && isExcluded(path, excluded) {
				return filepath.SkipDir
			}
			if d.IsDir() {
				return nil
			}
			if !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
				return nil
			}
			if isExcluded(path, excluded) {
				return nil
			}
			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

func isExcluded(path string, excludes []string) bool {
	clean := filepath.Clean(path)
	for _, exclude := range excludes {
		if exclude == clean || strings.HasPrefix(clean, exclude+string(os.PathSeparator)) {
			return true
		}
	}
	return false
}

func computeHash(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
