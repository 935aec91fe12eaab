package viewmodel

import (
	"campaignwiki/internal/connection"
	"campaignwiki/internal/entity"
	"campaignwiki/internal/media"
)

// Entry is everything a wiki page needs to render one entity.
type Entry struct {
	ViewModel
	Icon            string                  `json:"icon"`
	Config          entity.Config           `json:"config"`
	StatusInfo      entity.StatusInfo       `json:"status_info"`
	BackgroundImage string                  `json:"background_image,omitempty"`
	IconImage       string                  `json:"icon_image,omitempty"`
	Connections     []connection.Connection `json:"connections"`
}

func (m *Mapper) Entry(rec entity.Record, contextType string) Entry {
	model := m.Map(rec, contextType)
	rec.Type = model.Type
	return Entry{
		ViewModel:       model,
		Icon:            m.catalog.IconFor(rec),
		Config:          m.catalog.ConfigFor(model.Type),
		StatusInfo:      m.ranks.Status(rec),
		BackgroundImage: m.images.URL(model.Attributes, media.ClassBackground),
		IconImage:       m.images.URL(model.Attributes, media.ClassIcon),
		Connections:     m.connections.Transform(model.Relationships, m.maxConnections),
	}
}

// Connections returns the themed connections of rec, bounded by
// maxConnections or the mapper's configured bound when it is <= 0.
func (m *Mapper) Connections(rec entity.Record, maxConnections int) []connection.Connection {
	if maxConnections <= 0 {
		maxConnections = m.maxConnections
	}
	return m.connections.Transform(rec.Relationships, maxConnections)
}
