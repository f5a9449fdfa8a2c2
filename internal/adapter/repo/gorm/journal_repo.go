package gormrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/karl5252/beastbazaar/internal/adapter/repo/gorm/model"
	"github.com/karl5252/beastbazaar/internal/app/ports"
)

const uniqueViolation = "23505"

type JournalRepo struct {
	db *gorm.DB
}

func NewJournalRepo(db *gorm.DB) JournalRepo {
	return JournalRepo{db: db}
}

func (r JournalRepo) Append(ctx context.Context, entry ports.JournalEntry) error {
	payload, err := json.Marshal(entry.Payload)
	if err != nil {
		return fmt.Errorf("encode journal payload: %w", err)
	}
	if entry.Payload == nil {
		payload = []byte("{}")
	}
	row := model.JournalEntry{
		SessionID:   entry.SessionID,
		Seq:         entry.Seq,
		Action:      entry.Action,
		PlayerIndex: int32(entry.PlayerIndex),
		Turn:        int32(entry.Turn),
		Ok:          entry.OK,
		Reason:      entry.Reason,
		Payload:     payload,
		OccurredAt:  entry.OccurredAt,
	}
	if err := dbFor(ctx, r.db).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return ports.ErrConflict
		}
		return err
	}
	return nil
}

func (r JournalRepo) ListBySession(ctx context.Context, sessionID string, limit int) ([]ports.JournalEntry, error) {
	rows := []model.JournalEntry{}
	query := dbFor(ctx, r.db).
		Where(&model.JournalEntry{SessionID: sessionID}).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{{Column: clause.Column{Name: "seq"}, Desc: true}},
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

	out := make([]ports.JournalEntry, 0, len(rows))
	for _, row := range rows {
		var payload map[string]any
		if len(row.Payload) > 0 {
			if err := json.Unmarshal(row.Payload, &payload); err != nil {
				return nil, fmt.Errorf("decode journal payload (seq %d): %w", row.Seq, err)
			}
		}
		out = append(out, ports.JournalEntry{
			SessionID:   row.SessionID,
			Seq:         row.Seq,
			Action:      row.Action,
			PlayerIndex: int(row.PlayerIndex),
			Turn:        int(row.Turn),
			OK:          row.Ok,
			Reason:      row.Reason,
			Payload:     payload,
			OccurredAt:  row.OccurredAt,
		})
	}
	return out, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
