package schedules

import (
	"context"
	"fmt"
	"time"

	accounts "main/internal/domain/entity/accounts"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type scheduleModel struct {
	ID      int64      `gorm:"primaryKey;column:id"`
	Started time.Time  `gorm:"column:started;type:timestamp;not null"`
	Ended   *time.Time `gorm:"column:ended;type:timestamp"`
}

func (scheduleModel) TableName() string {
	return "schedules"
}

// Repository reads trading-hours configuration. Simple lookups only; the
// schedule table is maintained by the back office.
type Repository struct {
	db *gorm.DB
}

func NewRepository(dsn string) (*Repository, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open schedules db: %w", err)
	}
	return &Repository{db: db}, nil
}

// Active returns every schedule that has not ended.
func (r *Repository) Active(ctx context.Context) ([]accounts.Schedule, error) {
	var rows []scheduleModel
	if err := r.db.WithContext(ctx).Where("ended IS NULL").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query active schedules: %w", err)
	}
	out := make([]accounts.Schedule, 0, len(rows))
	for _, row := range rows {
		out = append(out, accounts.Schedule{
			ID:      row.ID,
			Started: row.Started,
			Ended:   row.Ended,
		})
	}
	return out, nil
}
