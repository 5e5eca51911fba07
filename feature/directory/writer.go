package directory

import (
	"context"
	"errors"
	"fmt"

	"hr-eval/feature/directory/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// StagedOp is the kind of write staged for one record.
type StagedOp int

const (
	// OpCreate inserts a record first seen this pass.
	OpCreate StagedOp = iota
	// OpUpdate overwrites an existing record by internal id.
	OpUpdate
)

// StagedRecord is one record the orchestrator decided to persist.
type StagedRecord struct {
	Op       StagedOp
	Employee models.Employee
}

// WriteResult reports what a batch write actually persisted.
type WriteResult struct {
	// Created and Updated count successfully written records.
	Created int
	Updated int
	// Duplicates counts records skipped in the individual-write fallback
	// because of a uniqueness conflict (a concurrent writer got there first).
	Duplicates int
	// Errors holds non-uniqueness per-record failures from the fallback path.
	Errors []string
}

// Writer persists the sync orchestrator's staged records. All local store
// mutation flows through it; the store's unique constraints on external id,
// employee number and email are the final correctness backstop.
type Writer struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewWriter creates a batch writer over the local store.
func NewWriter(db *gorm.DB, log *zap.Logger) *Writer {
	return &Writer{db: db, log: log}
}

// WriteBatch attempts one bulk write of the entire batch inside a
// transaction. When the bulk write fails with a uniqueness violation it
// degrades to one-at-a-time writes in the original order, counting
// individual duplicates as skipped. Any other bulk failure is fatal and
// propagates to the caller.
func (w *Writer) WriteBatch(ctx context.Context, batch []StagedRecord) (*WriteResult, error) {
	result := &WriteResult{}
	if len(batch) == 0 {
		return result, nil
	}

	err := w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		creates := make([]models.Employee, 0, len(batch))
		updates := make([]models.Employee, 0, len(batch))
		for _, staged := range batch {
			if staged.Op == OpCreate {
				creates = append(creates, staged.Employee)
			} else {
				updates = append(updates, staged.Employee)
			}
		}

		if len(creates) > 0 {
			if err := tx.Create(&creates).Error; err != nil {
				return err
			}
		}
		for i := range updates {
			if err := tx.Save(&updates[i]).Error; err != nil {
				return err
			}
		}

		result.Created = len(creates)
		result.Updated = len(updates)
		return nil
	})
	if err == nil {
		return result, nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		// Non-uniqueness bulk failure is not retried individually
		return nil, fmt.Errorf("bulk write failed: %w", err)
	}

	w.log.Warn("Bulk write hit a uniqueness conflict, falling back to individual writes",
		zap.Int("batch_size", len(batch)),
	)

	result = &WriteResult{}
	for _, staged := range batch {
		rec := staged.Employee
		var werr error
		if staged.Op == OpCreate {
			werr = w.db.WithContext(ctx).Create(&rec).Error
		} else {
			werr = w.db.WithContext(ctx).Save(&rec).Error
		}

		switch {
		case werr == nil:
			if staged.Op == OpCreate {
				result.Created++
			} else {
				result.Updated++
			}
		case errors.Is(werr, gorm.ErrDuplicatedKey):
			result.Duplicates++
			w.log.Info("Skipping duplicate record",
				zap.String("external_id", rec.ExternalID),
				zap.String("employee_no", rec.EmployeeNo),
			)
		default:
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", rec.Name, werr))
		}
	}

	return result, nil
}
