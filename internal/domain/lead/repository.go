package lead

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository is the record store client for leads
type Repository struct {
	db *gorm.DB
}

// NewRepository creates lead repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type leadModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	FirstName string    `gorm:"column:first_name"`
	LastName  string    `gorm:"column:last_name"`
	Email     string    `gorm:"column:email"`
	Phone     *string   `gorm:"column:phone"`
	Company   *string   `gorm:"column:company"`
	Source    *string   `gorm:"column:source"`
	Status    string    `gorm:"column:status"`
	Notes     *string   `gorm:"column:notes"`
	CreatedAt time.Time `gorm:"column:created_at;index"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (leadModel) TableName() string { return "leads" }

// AutoMigrate creates the leads table
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&leadModel{})
}

func toDomainLead(m leadModel) *Lead {
	var phone, company, source, notes string
	if m.Phone != nil {
		phone = *m.Phone
	}
	if m.Company != nil {
		company = *m.Company
	}
	if m.Source != nil {
		source = *m.Source
	}
	if m.Notes != nil {
		notes = *m.Notes
	}

	return &Lead{
		ID:        m.ID,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Email:     m.Email,
		Phone:     phone,
		Company:   company,
		Source:    source,
		Status:    ParseStatus(m.Status),
		Notes:     notes,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toLeadModel(l *Lead) leadModel {
	var phone, company, source, notes *string
	if l.Phone != "" {
		v := l.Phone
		phone = &v
	}
	if l.Company != "" {
		v := l.Company
		company = &v
	}
	if l.Source != "" {
		v := l.Source
		source = &v
	}
	if l.Notes != "" {
		v := l.Notes
		notes = &v
	}

	return leadModel{
		ID:        l.ID,
		FirstName: l.FirstName,
		LastName:  l.LastName,
		Email:     strings.TrimSpace(l.Email),
		Phone:     phone,
		Company:   company,
		Source:    source,
		Status:    string(l.Status),
		Notes:     notes,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

// List returns one page of leads ordered by created_at descending plus the
// exact total of the filtered set. A non-empty search matches first name,
// last name, email or company case-insensitively as a substring.
// A negative limit disables windowing and returns the whole filtered set.
func (r *Repository) List(ctx context.Context, search string, limit, offset int) ([]*Lead, int64, error) {
	q := r.db.WithContext(ctx).Model(&leadModel{})

	if search != "" {
		pattern := "%" + strings.ToLower(strings.TrimSpace(search)) + "%"
		q = q.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(company) LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q = q.Order("created_at DESC")
	if limit >= 0 {
		q = q.Limit(limit).Offset(offset)
	}

	var models []leadModel
	if err := q.Find(&models).Error; err != nil {
		return nil, 0, err
	}

	leads := make([]*Lead, 0, len(models))
	for _, m := range models {
		leads = append(leads, toDomainLead(m))
	}
	return leads, total, nil
}

// GetByID retrieves lead by ID
func (r *Repository) GetByID(ctx context.Context, id string) (*Lead, error) {
	var m leadModel
	tx := r.db.WithContext(ctx).Where("id = ?", id).First(&m)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}
	return toDomainLead(m), nil
}

// Create inserts a new lead, assigning its ID and timestamps
func (r *Repository) Create(ctx context.Context, l *Lead) error {
	now := time.Now()
	l.ID = uuid.NewString()
	l.CreatedAt = now
	l.UpdatedAt = now
	if l.Status == "" {
		l.Status = StatusNew
	}

	m := toLeadModel(l)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*l = *toDomainLead(m)
	return nil
}

// Update rewrites every mutable field of an existing lead
func (r *Repository) Update(ctx context.Context, l *Lead) error {
	existing, err := r.GetByID(ctx, l.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrLeadNotFound
	}

	l.CreatedAt = existing.CreatedAt
	l.UpdatedAt = time.Now()

	m := toLeadModel(l)
	tx := r.db.WithContext(ctx).
		Model(&leadModel{}).
		Where("id = ?", l.ID).
		Select("first_name", "last_name", "email", "phone", "company", "source", "status", "notes", "updated_at").
		Updates(&m)
	if tx.Error != nil {
		return tx.Error
	}
	return nil
}

// Delete removes a lead permanently
func (r *Repository) Delete(ctx context.Context, id string) error {
	tx := r.db.WithContext(ctx).Where("id = ?", id).Delete(&leadModel{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrLeadNotFound
	}
	return nil
}

// BulkInsert stores a batch of imported leads in a single call
func (r *Repository) BulkInsert(ctx context.Context, leads []*Lead) error {
	if len(leads) == 0 {
		return nil
	}

	now := time.Now()
	models := make([]leadModel, 0, len(leads))
	for _, l := range leads {
		l.ID = uuid.NewString()
		l.CreatedAt = now
		l.UpdatedAt = now
		if l.Status == "" {
			l.Status = StatusNew
		}
		models = append(models, toLeadModel(l))
	}

	return r.db.WithContext(ctx).Create(&models).Error
}

// CountByStatus returns lead counts grouped by status
func (r *Repository) CountByStatus(ctx context.Context) (map[Status]int64, error) {
	type row struct {
		Status string
		Count  int64
	}

	var rows []row
	err := r.db.WithContext(ctx).
		Model(&leadModel{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[Status]int64, len(rows))
	for _, r := range rows {
		counts[ParseStatus(r.Status)] = r.Count
	}
	return counts, nil
}
