package mcp

import (
	"context"

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

// Wiki is the read surface the tools expose.
type Wiki interface {
	Campaigns(ctx context.Context) ([]store.Campaign, error)
	Entry(ctx context.Context, campaignID, key, contextType string) (viewmodel.Entry, error)
	Tooltip(ctx context.Context, campaignID, key string) (tooltip.Tooltip, error)
	Connections(ctx context.Context, campaignID, key string, maxConnections int) ([]connection.Connection, error)
	Sidebar(ctx context.Context, campaignID, contextType, filter string) ([]grouping.Group, error)
	Search(ctx context.Context, campaignID, query string) ([]search.Result, error)
	Dashboard(ctx context.Context, campaignID string) (dashboard.Dashboard, error)
	EntityTypes() []entity.Config
}

type Server struct {
	wiki            Wiki
	defaultCampaign string
	mcp             *sdk.Server
}

// NewServer registers the wiki tools. defaultCampaign is used by tools
// called without a campaign.
func NewServer(wiki Wiki, defaultCampaign, version string) *Server {
	s := &Server{
		wiki:            wiki,
		defaultCampaign: defaultCampaign,
		mcp: sdk.NewServer(&sdk.Implementation{
			Name:    "campaignwiki",
			Version: version,
		}, nil),
	}
	s.registerTools()
	return s
}

func (s *Server) Run(ctx context.Context, transport sdk.Transport) error {
	return s.mcp.Run(ctx, transport)
}

func (s *Server) campaign(id string) string {
	if id != "" {
		return id
	}
	return s.defaultCampaign
}
