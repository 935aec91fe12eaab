package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"campaignwiki/internal/store"
)

func (c *Client) UpsertCampaign(ctx context.Context, in store.CampaignInput) error {
	_, err := c.db.ExecContext(ctx, `
	INSERT INTO campaigns (id, name, description) VALUES (?, ?, ?)
	ON CONFLICT (id) DO UPDATE SET
		name = excluded.name,
		description = excluded.description
	`, in.ID, in.Name, in.Description)
	if err != nil {
		return fmt.Errorf("upserting campaign: %w", err)
	}
	return nil
}

func (c *Client) UpsertArc(ctx context.Context, in store.ArcInput) error {
	_, err := c.db.ExecContext(ctx, `
	INSERT INTO arcs (id, campaign_id, title, description, sort_order) VALUES (?, ?, ?, ?, ?)
	ON CONFLICT (campaign_id, id) DO UPDATE SET
		title = excluded.title,
		description = excluded.description,
		sort_order = excluded.sort_order
	`, in.ID, in.CampaignID, in.Title, in.Description, in.Order)
	if err != nil {
		return fmt.Errorf("upserting arc: %w", err)
	}
	return nil
}

func (c *Client) ListCampaigns(ctx context.Context) ([]store.Campaign, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT id, name, description FROM campaigns ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("listing campaigns: %w", err)
	}
	defer rows.Close()

	campaigns := []store.Campaign{}
	for rows.Next() {
		var camp store.Campaign
		if err := rows.Scan(&camp.ID, &camp.Name, &camp.Description); err != nil {
			return nil, fmt.Errorf("scanning campaign: %w", err)
		}
		camp.Arcs = []store.Arc{}
		campaigns = append(campaigns, camp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating campaign rows: %w", err)
	}

	arcs, err := c.listArcs(ctx, "")
	if err != nil {
		return nil, err
	}
	for i := range campaigns {
		for _, arc := range arcs {
			if arc.CampaignID == campaigns[i].ID {
				campaigns[i].Arcs = append(campaigns[i].Arcs, arc)
			}
		}
	}
	return campaigns, nil
}

func (c *Client) GetCampaign(ctx context.Context, id string) (*store.Campaign, error) {
	var camp store.Campaign
	err := c.db.QueryRowContext(ctx,
		`SELECT id, name, description FROM campaigns WHERE id = ?`, id,
	).Scan(&camp.ID, &camp.Name, &camp.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting campaign: %w", err)
	}

	arcs, err := c.listArcs(ctx, id)
	if err != nil {
		return nil, err
	}
	camp.Arcs = arcs
	return &camp, nil
}

func (c *Client) listArcs(ctx context.Context, campaignID string) ([]store.Arc, error) {
	rows, err := c.db.QueryContext(ctx, `
	SELECT id, campaign_id, title, description, sort_order
	FROM arcs
	WHERE (? = '' OR campaign_id = ?)
	ORDER BY campaign_id, sort_order, id
	`, campaignID, campaignID)
	if err != nil {
		return nil, fmt.Errorf("listing arcs: %w", err)
	}
	defer rows.Close()

	arcs := []store.Arc{}
	for rows.Next() {
		var arc store.Arc
		if err := rows.Scan(&arc.ID, &arc.CampaignID, &arc.Title, &arc.Description, &arc.Order); err != nil {
			return nil, fmt.Errorf("scanning arc: %w", err)
		}
		arcs = append(arcs, arc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating arc rows: %w", err)
	}
	return arcs, nil
}
