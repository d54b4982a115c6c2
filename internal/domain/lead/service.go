package lead

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"
)

// PageSize is the fixed window size for lead listings.
const PageSize = 10

// Service handles lead business logic
type Service struct {
	store    Store
	codec    Codec
	notifier Notifier
}

// NewService creates lead service. notifier may be nil.
func NewService(store Store, notifier Notifier) *Service {
	return &Service{
		store:    store,
		notifier: notifier,
	}
}

// FetchPage returns one window of the filtered lead set. page is 1-based;
// a page past the end of the set yields an empty window without error.
func (s *Service) FetchPage(ctx context.Context, search string, page int) (*Page, error) {
	if page < 1 {
		page = 1
	}

	offset := (page - 1) * PageSize
	leads, total, err := s.store.List(ctx, search, PageSize, offset)
	if err != nil {
		return nil, err
	}

	return &Page{
		Leads:      leads,
		TotalCount: total,
		Page:       page,
		TotalPages: TotalPages(total),
	}, nil
}

// TotalPages returns ceil(total / PageSize).
func TotalPages(total int64) int {
	return int(math.Ceil(float64(total) / float64(PageSize)))
}

// Create stores a manually entered lead
func (s *Service) Create(ctx context.Context, req *CreateLeadRequest) (*Lead, error) {
	l := &Lead{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     strings.TrimSpace(req.Email),
		Phone:     req.Phone,
		Company:   req.Company,
		Source:    req.Source,
		Status:    ParseStatus(req.Status),
		Notes:     req.Notes,
	}

	if err := s.store.Create(ctx, l); err != nil {
		return nil, err
	}

	s.publish("lead.created", l)
	return l, nil
}

// GetByID returns lead by ID
func (s *Service) GetByID(ctx context.Context, id string) (*Lead, error) {
	l, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, ErrLeadNotFound
	}
	return l, nil
}

// Update rewrites an existing lead from the request
func (s *Service) Update(ctx context.Context, id string, req *UpdateLeadRequest) (*Lead, error) {
	l := &Lead{
		ID:        id,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     strings.TrimSpace(req.Email),
		Phone:     req.Phone,
		Company:   req.Company,
		Source:    req.Source,
		Status:    ParseStatus(req.Status),
		Notes:     req.Notes,
	}

	if err := s.store.Update(ctx, l); err != nil {
		return nil, err
	}

	s.publish("lead.updated", l)
	return l, nil
}

// Delete removes a lead permanently
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.publish("lead.deleted", id)
	return nil
}

// Import decodes raw CSV text and stores the valid rows as one bulk insert.
// Malformed input is rejected before the store is contacted.
func (s *Service) Import(ctx context.Context, raw string) (*ImportResult, error) {
	leads, err := s.codec.Decode(raw)
	if err != nil {
		return nil, err
	}

	if err := s.store.BulkInsert(ctx, leads); err != nil {
		return nil, err
	}

	s.publish("lead.imported", len(leads))
	return &ImportResult{Imported: len(leads)}, nil
}

// Export renders the whole filtered lead set, newest first, as CSV.
// It returns the download filename alongside the text.
func (s *Service) Export(ctx context.Context, search string) (string, string, error) {
	leads, _, err := s.store.List(ctx, search, -1, 0)
	if err != nil {
		return "", "", err
	}

	filename := fmt.Sprintf("leads_export_%s.csv", time.Now().Format("2006-01-02"))
	return filename, s.codec.Encode(leads), nil
}

// Stats returns lead counts by status
func (s *Service) Stats(ctx context.Context) (map[Status]int64, error) {
	return s.store.CountByStatus(ctx)
}

func (s *Service) publish(event string, payload any) {
	if s.notifier != nil {
		s.notifier.Publish(event, payload)
	}
}
