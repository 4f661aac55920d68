package gormrepo

import (
	"context"
	"encoding/json"
	"fmt"

	"thunderpunch/internal/adapter/repo/gorm/model"
	"thunderpunch/internal/app/ports"
	"thunderpunch/internal/domain/combat"
	"thunderpunch/internal/domain/effect"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OutcomeRepo struct {
	db *gorm.DB
}

func NewOutcomeRepo(db *gorm.DB) OutcomeRepo {
	return OutcomeRepo{db: db}
}

func (r OutcomeRepo) Append(ctx context.Context, rec ports.OutcomeRecord) error {
	effects, err := json.Marshal(rec.Effects)
	if err != nil {
		return fmt.Errorf("marshal outcome effects: %w", err)
	}
	row := model.Outcome{
		ID:         rec.ID,
		Trigger:    string(rec.Trigger),
		ActorID:    rec.ActorID,
		TargetID:   rec.TargetID,
		Handled:    rec.Handled,
		Failure:    rec.Failure,
		Effects:    effects,
		OccurredAt: rec.OccurredAt,
	}
	return getDBFromCtx(ctx, r.db).WithContext(ctx).Create(&row).Error
}

func (r OutcomeRepo) Prune(ctx context.Context, actorID string, keep int) (int, error) {
	if keep < 0 {
		return 0, nil
	}
	db := getDBFromCtx(ctx, r.db).WithContext(ctx)
	newest := db.Model(&model.Outcome{}).
		Select("id").
		Where(&model.Outcome{ActorID: actorID}).
		Order("occurred_at DESC, id DESC").
		Limit(keep)
	res := db.Where(&model.Outcome{ActorID: actorID}).
		Where("id NOT IN (?)", newest).
		Delete(&model.Outcome{})
	if res.Error != nil {
		return 0, fmt.Errorf("prune outcomes for %s: %w", actorID, res.Error)
	}
	return int(res.RowsAffected), nil
}

func (r OutcomeRepo) ListByActor(ctx context.Context, actorID string, limit int) ([]ports.OutcomeRecord, error) {
	rows := []model.Outcome{}
	query := getDBFromCtx(ctx, r.db).WithContext(ctx).
		Where(&model.Outcome{ActorID: actorID}).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{
				{Column: clause.Column{Name: "occurred_at"}, Desc: true},
				{Column: clause.Column{Name: "id"}, Desc: true},
			},
		})
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ports.ErrNotFound
	}

	out := make([]ports.OutcomeRecord, 0, len(rows))
	for _, row := range rows {
		var effects effect.Bundle
		if len(row.Effects) > 0 {
			if err := json.Unmarshal(row.Effects, &effects); err != nil {
				return nil, fmt.Errorf("decode outcome %s effects: %w", row.ID, err)
			}
		}
		out = append(out, ports.OutcomeRecord{
			ID:         row.ID,
			Trigger:    combat.Trigger(row.Trigger),
			ActorID:    row.ActorID,
			TargetID:   row.TargetID,
			Handled:    row.Handled,
			Failure:    row.Failure,
			Effects:    effects,
			OccurredAt: row.OccurredAt,
		})
	}
	return out, nil
}
