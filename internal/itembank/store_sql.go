package itembank

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mind-engage/mindengage-testlets/internal/db"
	"github.com/mind-engage/mindengage-testlets/internal/testlet"
)

// SQLBank reads items from the testlet_items table created by db.Open.
type SQLBank struct {
	db *sql.DB
}

func NewSQLBank(conn *sql.DB) *SQLBank {
	return &SQLBank{db: conn}
}

func (s *SQLBank) Items(ctx context.Context, bankID string) ([]testlet.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT item_id, item_type FROM testlet_items WHERE bank_id=$1 ORDER BY position, item_id`, bankID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []testlet.Item
	for rows.Next() {
		var id, typ string
		if err := rows.Scan(&id, &typ); err != nil {
			return nil, err
		}
		t, err := testlet.ParseItemType(typ)
		if err != nil {
			return nil, fmt.Errorf("item %q: %w", id, err)
		}
		items = append(items, testlet.Item{ID: id, Type: t})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrBankNotFound, bankID)
	}
	return items, nil
}

// PutItems replaces the contents of bankID in a single transaction.
// Positions follow the order of items.
func (s *SQLBank) PutItems(ctx context.Context, bankID string, items []testlet.Item) error {
	if err := checkBankID(bankID); err != nil {
		return err
	}
	return db.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM testlet_items WHERE bank_id=$1`, bankID); err != nil {
			return err
		}
		for i, it := range items {
			typ, err := it.Type.MarshalText()
			if err != nil {
				return fmt.Errorf("item %q: %w", it.ID, err)
			}
			_, err = tx.ExecContext(ctx,
				`INSERT INTO testlet_items (bank_id,item_id,item_type,position) VALUES ($1,$2,$3,$4)`,
				bankID, it.ID, string(typ), i)
			if err != nil {
				return fmt.Errorf("insert item %q: %w", it.ID, err)
			}
		}
		return nil
	})
}
