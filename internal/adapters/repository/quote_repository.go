// Package repository implements the quote persistence port with gorm.
// The store is a single quotes table; tags are kept as a JSON-encoded
// array column so the record stays a self-contained document, mirroring
// the collection the service fronts.
package repository

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jsamuelsen/social-quotes/internal/domain"
	"github.com/jsamuelsen/social-quotes/internal/platform/config"
)

// storeName identifies this adapter in health checks and error logs.
const storeName = "quote-store"

// StringArray stores a string slice as a JSON column value.
type StringArray []string

// Scan implements the sql.Scanner interface.
func (s *StringArray) Scan(value any) error {
	if value == nil {
		*s = StringArray{}
		return nil
	}

	var raw []byte

	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported tags column value: %T", value)
	}

	var arr []string
	if err := json.Unmarshal(raw, &arr); err != nil {
		return fmt.Errorf("decoding tags column: %w", err)
	}

	*s = StringArray(arr)

	return nil
}

// Value implements the driver.Valuer interface.
func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return json.Marshal([]string{})
	}

	return json.Marshal([]string(s))
}

// QuoteRecord is the persisted shape of a quote. The unique index on
// Text is the store-level hardening behind the service's best-effort
// dedup probe.
type QuoteRecord struct {
	ID        string      `gorm:"type:varchar(36);primaryKey"`
	Text      string      `gorm:"column:quote;type:text;not null;uniqueIndex:idx_quotes_quote"`
	User      string      `gorm:"type:varchar(255);not null"`
	Reference string      `gorm:"type:text;not null;default:''"`
	Tags      StringArray `gorm:"type:json"`
	CreatedAt time.Time   `gorm:"autoCreateTime"`
	UpdatedAt time.Time   `gorm:"autoUpdateTime"`
}

// TableName specifies the table name.
func (QuoteRecord) TableName() string {
	return "quotes"
}

// BeforeCreate assigns the opaque identifier. The ID never changes
// after this point.
func (r *QuoteRecord) BeforeCreate(_ *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}

	return nil
}

// toDomain converts a record to the domain entity.
func (r *QuoteRecord) toDomain() domain.Quote {
	return domain.Quote{
		ID:        r.ID,
		Text:      r.Text,
		User:      r.User,
		Reference: r.Reference,
		Tags:      []string(r.Tags),
	}
}

// Open connects to the configured database and migrates the quotes
// table. TranslateError is enabled so unique-index violations surface
// as gorm.ErrDuplicatedKey regardless of driver.
func Open(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	if cfg.Driver != "sqlite" {
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(sqlite.Open(cfg.DSN), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.AutoMigrate(&QuoteRecord{}); err != nil {
		return nil, fmt.Errorf("migrating quotes table: %w", err)
	}

	return db, nil
}

// QuoteRepository implements ports.QuoteRepository over gorm.
type QuoteRepository struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewQuoteRepository creates a repository bound to an open database.
func NewQuoteRepository(db *gorm.DB, logger *slog.Logger) *QuoteRepository {
	if logger == nil {
		logger = slog.Default()
	}

	return &QuoteRepository{
		db:     db,
		logger: logger,
	}
}

// List returns every stored quote in store order.
func (r *QuoteRepository) List(ctx context.Context) ([]domain.Quote, error) {
	var records []QuoteRecord

	err := r.db.WithContext(ctx).Order("created_at").Find(&records).Error
	if err != nil {
		return nil, r.storeError("list", err)
	}

	return recordsToDomain(records), nil
}

// FindByText returns all quotes whose text exactly equals text.
func (r *QuoteRepository) FindByText(ctx context.Context, text string) ([]domain.Quote, error) {
	var records []QuoteRecord

	err := r.db.WithContext(ctx).Where("quote = ?", text).Find(&records).Error
	if err != nil {
		return nil, r.storeError("find by text", err)
	}

	return recordsToDomain(records), nil
}

// FindByID retrieves a single quote by its identifier.
func (r *QuoteRepository) FindByID(ctx context.Context, id string) (*domain.Quote, error) {
	var record QuoteRecord

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("quote", id)
		}

		return nil, r.storeError("find by id", err)
	}

	quote := record.toDomain()

	return &quote, nil
}

// CountByText reports how many stored quotes carry exactly this text.
func (r *QuoteRepository) CountByText(ctx context.Context, text string) (int64, error) {
	var count int64

	err := r.db.WithContext(ctx).Model(&QuoteRecord{}).Where("quote = ?", text).Count(&count).Error
	if err != nil {
		return 0, r.storeError("count by text", err)
	}

	return count, nil
}

// Insert persists a new quote and assigns its ID in place. A
// unique-index violation on the text column surfaces as a conflict.
func (r *QuoteRepository) Insert(ctx context.Context, quote *domain.Quote) error {
	record := QuoteRecord{
		Text:      quote.Text,
		User:      quote.User,
		Reference: quote.Reference,
		Tags:      StringArray(quote.Tags),
	}

	err := r.db.WithContext(ctx).Create(&record).Error
	if err != nil {
		if isDuplicate(err) {
			return domain.NewConflictError("quote", "identical quote text already stored")
		}

		return r.storeError("insert", err)
	}

	quote.ID = record.ID

	return nil
}

// Update applies a merge-patch to the record with the given id.
// Only fields carried by the patch are written; a missing id matches
// zero rows and is a silent no-op.
func (r *QuoteRepository) Update(ctx context.Context, id string, patch domain.QuotePatch) error {
	values := map[string]any{}

	if patch.Text != nil {
		values["quote"] = *patch.Text
	}

	if patch.Reference != nil {
		values["reference"] = *patch.Reference
	}

	if patch.Tags != nil {
		values["tags"] = StringArray(*patch.Tags)
	}

	if len(values) == 0 {
		return nil
	}

	err := r.db.WithContext(ctx).Model(&QuoteRecord{}).Where("id = ?", id).Updates(values).Error
	if err != nil {
		if isDuplicate(err) {
			return domain.NewConflictError("quote", "identical quote text already stored")
		}

		return r.storeError("update", err)
	}

	return nil
}

// Delete removes the record with the given id. Deleting a missing id
// matches zero rows and is a silent no-op.
func (r *QuoteRepository) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&QuoteRecord{}).Error
	if err != nil {
		return r.storeError("delete", err)
	}

	return nil
}

// Name implements ports.HealthChecker.
func (r *QuoteRepository) Name() string {
	return storeName
}

// Check implements ports.HealthChecker by pinging the underlying store.
func (r *QuoteRepository) Check(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.PingContext(ctx)
}

// storeError logs the full failure server-side and returns the opaque
// unavailable error the mapper turns into a generic internal error.
// Store detail never travels to the client.
func (r *QuoteRepository) storeError(op string, err error) error {
	r.logger.Error("quote store failure",
		slog.String("op", op),
		slog.Any("error", err),
	)

	return domain.NewUnavailableError(storeName, op+" failed")
}

// isDuplicate recognizes unique-index violations across drivers.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func recordsToDomain(records []QuoteRecord) []domain.Quote {
	quotes := make([]domain.Quote, 0, len(records))
	for i := range records {
		quotes = append(quotes, records[i].toDomain())
	}

	return quotes
}
