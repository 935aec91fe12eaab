// Package wiki is the read side of the campaign wiki. It loads records from
// a store and turns them into entries, sidebars, tooltips, search results
// and dashboards.
package wiki

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"campaignwiki/internal/connection"
	"campaignwiki/internal/dashboard"
	"campaignwiki/internal/entity"
	"campaignwiki/internal/grouping"
	"campaignwiki/internal/search"
	"campaignwiki/internal/store"
	"campaignwiki/internal/tooltip"
	"campaignwiki/internal/viewmodel"
)

var ErrNotFound = errors.New("not found")

var tracer = otel.Tracer("campaignwiki/internal/wiki")

type Service struct {
	db       store.Reader
	mapper   *viewmodel.Mapper
	grouper  *grouping.Grouper
	tooltips *tooltip.Builder
	search   *search.Service
}

func New(db store.Reader, mapper *viewmodel.Mapper) *Service {
	if mapper == nil {
		mapper = viewmodel.New(viewmodel.Options{})
	}
	return &Service{
		db:       db,
		mapper:   mapper,
		grouper:  grouping.New(mapper),
		tooltips: tooltip.NewBuilder(mapper),
		search:   search.New(db, mapper),
	}
}

func (s *Service) Mapper() *viewmodel.Mapper { return s.mapper }

func (s *Service) Campaigns(ctx context.Context) (campaigns []store.Campaign, err error) {
	ctx, span := tracer.Start(ctx, "wiki.Campaigns")
	defer func() { finish(span, err) }()

	campaigns, err = s.db.ListCampaigns(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing campaigns: %w", err)
	}
	return campaigns, nil
}

// Entry loads one entity by id or name. contextType only matters for
// records that carry no type of their own.
func (s *Service) Entry(ctx context.Context, campaignID, key, contextType string) (entry viewmodel.Entry, err error) {
	ctx, span := tracer.Start(ctx, "wiki.Entry", trace.WithAttributes(
		attribute.String("campaign.id", campaignID),
		attribute.String("entity.key", key),
	))
	defer func() { finish(span, err) }()

	rec, err := s.entity(ctx, campaignID, key)
	if err != nil {
		return viewmodel.Entry{}, err
	}
	return s.mapper.Entry(*rec, contextType), nil
}

func (s *Service) Tooltip(ctx context.Context, campaignID, key string) (tip tooltip.Tooltip, err error) {
	ctx, span := tracer.Start(ctx, "wiki.Tooltip", trace.WithAttributes(
		attribute.String("campaign.id", campaignID),
		attribute.String("entity.key", key),
	))
	defer func() { finish(span, err) }()

	rec, err := s.entity(ctx, campaignID, key)
	if err != nil {
		return tooltip.Tooltip{}, err
	}
	return s.tooltips.Build(*rec, ""), nil
}

// Connections returns the themed connections of an entity. A bound of zero
// or less uses the configured bound.
func (s *Service) Connections(ctx context.Context, campaignID, key string, maxConnections int) (conns []connection.Connection, err error) {
	ctx, span := tracer.Start(ctx, "wiki.Connections", trace.WithAttributes(
		attribute.String("campaign.id", campaignID),
		attribute.String("entity.key", key),
		attribute.Int("connections.max", maxConnections),
	))
	defer func() { finish(span, err) }()

	rec, err := s.entity(ctx, campaignID, key)
	if err != nil {
		return nil, err
	}
	return s.mapper.Connections(*rec, maxConnections), nil
}

// Sidebar lays out the entities of one type. NPC and encounter listings
// also load locations so entries nest under the places they belong to.
func (s *Service) Sidebar(ctx context.Context, campaignID, contextType, filter string) (groups []grouping.Group, err error) {
	contextType = entity.NormalizeType(contextType)
	ctx, span := tracer.Start(ctx, "wiki.Sidebar", trace.WithAttributes(
		attribute.String("campaign.id", campaignID),
		attribute.String("entity.type", contextType),
	))
	defer func() { finish(span, err) }()

	var primary, locations []entity.Record
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		recs, err := s.db.ListEntities(gctx, store.EntityFilter{CampaignID: campaignID, Type: contextType})
		if err != nil {
			return fmt.Errorf("listing %s entities: %w", contextType, err)
		}
		primary = recs
		return nil
	})
	if contextType == entity.TypeNPC || contextType == entity.TypeEncounter {
		g.Go(func() error {
			recs, err := s.db.ListEntities(gctx, store.EntityFilter{CampaignID: campaignID, Type: entity.TypeLocation})
			if err != nil {
				return fmt.Errorf("listing locations: %w", err)
			}
			locations = recs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("entities.count", len(primary)))
	return s.grouper.Group(append(primary, locations...), contextType, filter), nil
}

func (s *Service) Search(ctx context.Context, campaignID, query string) (results []search.Result, err error) {
	ctx, span := tracer.Start(ctx, "wiki.Search", trace.WithAttributes(
		attribute.String("campaign.id", campaignID),
	))
	defer func() { finish(span, err) }()

	results, err = s.search.Search(ctx, campaignID, query)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("results.count", len(results)))
	return results, nil
}

// Dashboard fetches the campaign, its sessions, quests, characters and
// entity counts concurrently and assembles the overview.
func (s *Service) Dashboard(ctx context.Context, campaignID string) (dash dashboard.Dashboard, err error) {
	ctx, span := tracer.Start(ctx, "wiki.Dashboard", trace.WithAttributes(
		attribute.String("campaign.id", campaignID),
	))
	defer func() { finish(span, err) }()

	var in dashboard.Input
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		campaign, err := s.db.GetCampaign(gctx, campaignID)
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("campaign %s: %w", campaignID, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("loading campaign: %w", err)
		}
		in.Campaign = *campaign
		return nil
	})
	g.Go(func() error {
		sessions, err := s.db.ListSessions(gctx, campaignID)
		if err != nil {
			return fmt.Errorf("listing sessions: %w", err)
		}
		in.Sessions = sessions
		return nil
	})
	g.Go(func() error {
		quests, err := s.db.ListEntities(gctx, store.EntityFilter{CampaignID: campaignID, Type: entity.TypeQuest})
		if err != nil {
			return fmt.Errorf("listing quests: %w", err)
		}
		in.Quests = quests
		return nil
	})
	g.Go(func() error {
		characters, err := s.db.ListEntities(gctx, store.EntityFilter{CampaignID: campaignID, Type: entity.TypeCharacter})
		if err != nil {
			return fmt.Errorf("listing characters: %w", err)
		}
		in.Characters = characters
		return nil
	})
	g.Go(func() error {
		counts, err := s.db.CountEntities(gctx, campaignID)
		if err != nil {
			return fmt.Errorf("counting entities: %w", err)
		}
		in.Counts = counts
		return nil
	})
	if err := g.Wait(); err != nil {
		return dashboard.Dashboard{}, err
	}

	return dashboard.Build(s.mapper, in), nil
}

// EntityTypes lists the configured presentation of every entity type.
func (s *Service) EntityTypes() []entity.Config {
	return s.mapper.Catalog().Configs()
}

func (s *Service) entity(ctx context.Context, campaignID, key string) (*entity.Record, error) {
	rec, err := s.db.GetEntity(ctx, campaignID, key)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("entity %s: %w", key, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading entity %s: %w", key, err)
	}
	return rec, nil
}

func finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
