package mcp

import (
	"context"
	"fmt"
	"strings"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"campaignwiki/internal/connection"
	"campaignwiki/internal/dashboard"
	"campaignwiki/internal/entity"
	"campaignwiki/internal/grouping"
	"campaignwiki/internal/search"
	"campaignwiki/internal/store"
	"campaignwiki/internal/tooltip"
	"campaignwiki/internal/viewmodel"
)

type GetEntryInput struct {
	Campaign string `json:"campaign,omitempty" jsonschema:"campaign id, defaults to the configured campaign"`
	Key      string `json:"key" jsonschema:"entity id or name"`
	Type     string `json:"type,omitempty" jsonschema:"listing type used when the entity has none"`
}

type ListEntitiesInput struct {
	Campaign string `json:"campaign,omitempty" jsonschema:"campaign id, defaults to the configured campaign"`
	Type     string `json:"type" jsonschema:"entity type: character, npc, location, quest, encounter, faction or session"`
	Filter   string `json:"filter,omitempty" jsonschema:"case-insensitive name filter"`
}

type SearchWikiInput struct {
	Campaign string `json:"campaign,omitempty" jsonschema:"campaign id, defaults to the configured campaign"`
	Query    string `json:"query" jsonschema:"text matched against names and descriptions"`
}

type GetTooltipInput struct {
	Campaign string `json:"campaign,omitempty" jsonschema:"campaign id, defaults to the configured campaign"`
	Key      string `json:"key" jsonschema:"entity id or name"`
}

type GetConnectionsInput struct {
	Campaign string `json:"campaign,omitempty" jsonschema:"campaign id, defaults to the configured campaign"`
	Key      string `json:"key" jsonschema:"entity id or name"`
	Max      int    `json:"max,omitempty" jsonschema:"maximum number of connections"`
}

type GetDashboardInput struct {
	Campaign string `json:"campaign,omitempty" jsonschema:"campaign id, defaults to the configured campaign"`
}

type ListCampaignsInput struct{}

type GetEntityTypesInput struct{}

type EntryOutput struct {
	Entry viewmodel.Entry `json:"entry"`
}

// ListedEntity is one sidebar entry, flattened. Depth is its nesting level
// in tree listings and ParentID the entry it sits under.
type ListedEntity struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Path        string `json:"path"`
	Status      string `json:"status"`
	Description string `json:"description,omitempty"`
	Group       string `json:"group,omitempty"`
	ParentID    string `json:"parent_id,omitempty"`
	Depth       int    `json:"depth"`
}

type ListEntitiesOutput struct {
	Entities []ListedEntity `json:"entities"`
}

type SearchWikiOutput struct {
	Results []search.Result `json:"results"`
}

type TooltipOutput struct {
	Tooltip tooltip.Tooltip `json:"tooltip"`
}

type ConnectionsOutput struct {
	Connections []connection.Connection `json:"connections"`
}

type DashboardOutput struct {
	Dashboard dashboard.Dashboard `json:"dashboard"`
}

type ListCampaignsOutput struct {
	Campaigns []store.Campaign `json:"campaigns"`
}

type EntityTypesOutput struct {
	Types []entity.Config `json:"types"`
}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "get_entry",
		Description: "Retrieve a wiki entry with its metadata, images and connections",
	}, s.handleGetEntry)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_entities",
		Description: "List the entities of one type the way the wiki sidebar lays them out",
	}, s.handleListEntities)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "search_wiki",
		Description: "Search sessions and entities by name and description",
	}, s.handleSearchWiki)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "get_tooltip",
		Description: "Return the hover card summary of an entity",
	}, s.handleGetTooltip)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "get_connections",
		Description: "Return the related entities of an entity",
	}, s.handleGetConnections)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "get_dashboard",
		Description: "Summarize a campaign: open quests, party, arcs and session progression",
	}, s.handleGetDashboard)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_campaigns",
		Description: "List the campaigns and their arcs",
	}, s.handleListCampaigns)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "get_entity_types",
		Description: "Return the label, icon and colors of every entity type",
	}, s.handleGetEntityTypes)
}

func (s *Server) handleGetEntry(ctx context.Context, req *sdk.CallToolRequest, input GetEntryInput) (*sdk.CallToolResult, EntryOutput, error) {
	if strings.TrimSpace(input.Key) == "" {
		return nil, EntryOutput{}, fmt.Errorf("key is required")
	}
	entry, err := s.wiki.Entry(ctx, s.campaign(input.Campaign), input.Key, input.Type)
	if err != nil {
		return nil, EntryOutput{}, err
	}
	return nil, EntryOutput{Entry: entry}, nil
}

func (s *Server) handleListEntities(ctx context.Context, req *sdk.CallToolRequest, input ListEntitiesInput) (*sdk.CallToolResult, ListEntitiesOutput, error) {
	if !entity.IsKnownType(input.Type) {
		return nil, ListEntitiesOutput{}, fmt.Errorf("unknown entity type: %q", input.Type)
	}
	groups, err := s.wiki.Sidebar(ctx, s.campaign(input.Campaign), input.Type, input.Filter)
	if err != nil {
		return nil, ListEntitiesOutput{}, err
	}
	return nil, ListEntitiesOutput{Entities: flatten(groups)}, nil
}

func (s *Server) handleSearchWiki(ctx context.Context, req *sdk.CallToolRequest, input SearchWikiInput) (*sdk.CallToolResult, SearchWikiOutput, error) {
	if strings.TrimSpace(input.Query) == "" {
		return nil, SearchWikiOutput{}, fmt.Errorf("query is required")
	}
	results, err := s.wiki.Search(ctx, s.campaign(input.Campaign), input.Query)
	if err != nil {
		return nil, SearchWikiOutput{}, err
	}
	return nil, SearchWikiOutput{Results: results}, nil
}

func (s *Server) handleGetTooltip(ctx context.Context, req *sdk.CallToolRequest, input GetTooltipInput) (*sdk.CallToolResult, TooltipOutput, error) {
	if strings.TrimSpace(input.Key) == "" {
		return nil, TooltipOutput{}, fmt.Errorf("key is required")
	}
	tip, err := s.wiki.Tooltip(ctx, s.campaign(input.Campaign), input.Key)
	if err != nil {
		return nil, TooltipOutput{}, err
	}
	return nil, TooltipOutput{Tooltip: tip}, nil
}

func (s *Server) handleGetConnections(ctx context.Context, req *sdk.CallToolRequest, input GetConnectionsInput) (*sdk.CallToolResult, ConnectionsOutput, error) {
	if strings.TrimSpace(input.Key) == "" {
		return nil, ConnectionsOutput{}, fmt.Errorf("key is required")
	}
	conns, err := s.wiki.Connections(ctx, s.campaign(input.Campaign), input.Key, input.Max)
	if err != nil {
		return nil, ConnectionsOutput{}, err
	}
	return nil, ConnectionsOutput{Connections: conns}, nil
}

func (s *Server) handleGetDashboard(ctx context.Context, req *sdk.CallToolRequest, input GetDashboardInput) (*sdk.CallToolResult, DashboardOutput, error) {
	campaignID := s.campaign(input.Campaign)
	if campaignID == "" {
		return nil, DashboardOutput{}, fmt.Errorf("campaign is required")
	}
	dash, err := s.wiki.Dashboard(ctx, campaignID)
	if err != nil {
		return nil, DashboardOutput{}, err
	}
	return nil, DashboardOutput{Dashboard: dash}, nil
}

func (s *Server) handleListCampaigns(ctx context.Context, req *sdk.CallToolRequest, input ListCampaignsInput) (*sdk.CallToolResult, ListCampaignsOutput, error) {
	campaigns, err := s.wiki.Campaigns(ctx)
	if err != nil {
		return nil, ListCampaignsOutput{}, err
	}
	if campaigns == nil {
		campaigns = []store.Campaign{}
	}
	return nil, ListCampaignsOutput{Campaigns: campaigns}, nil
}

func (s *Server) handleGetEntityTypes(ctx context.Context, req *sdk.CallToolRequest, input GetEntityTypesInput) (*sdk.CallToolResult, EntityTypesOutput, error) {
	return nil, EntityTypesOutput{Types: s.wiki.EntityTypes()}, nil
}

func flatten(groups []grouping.Group) []ListedEntity {
	out := make([]ListedEntity, 0)
	var walk func(nodes []*grouping.Node, group, parentID string, depth int)
	walk = func(nodes []*grouping.Node, group, parentID string, depth int) {
		for _, node := range nodes {
			out = append(out, ListedEntity{
				ID:          node.ID,
				Name:        node.Name,
				Type:        node.Type,
				Path:        node.Path,
				Status:      node.Status,
				Description: node.Description,
				Group:       group,
				ParentID:    parentID,
				Depth:       depth,
			})
			walk(node.Children, group, node.ID, depth+1)
		}
	}
	for _, g := range groups {
		walk(g.Items, g.Title, "", 0)
	}
	return out
}
