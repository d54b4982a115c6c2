package lead

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLister struct {
	listFn func(ctx context.Context, search string, limit, offset int) ([]*Lead, int64, error)
}

func (f *fakeLister) List(ctx context.Context, search string, limit, offset int) ([]*Lead, int64, error) {
	return f.listFn(ctx, search, limit, offset)
}

func TestSearchTermChangeResetsPage(t *testing.T) {
	c := NewListController(&fakeLister{})
	c.SetPage(5)

	c.SetSearchTerm("ann")
	assert.Equal(t, 1, c.CurrentPage())

	// same term again keeps the page
	c.SetPage(3)
	c.SetSearchTerm("ann")
	assert.Equal(t, 3, c.CurrentPage())
}

func TestFetchPastLastPageYieldsEmptyWindow(t *testing.T) {
	store := &fakeLister{
		listFn: func(ctx context.Context, search string, limit, offset int) ([]*Lead, int64, error) {
			assert.Equal(t, PageSize, limit)
			assert.Equal(t, 30, offset)
			return []*Lead{}, 23, nil
		},
	}

	c := NewListController(store)
	c.SetPage(4)
	c.Fetch(context.Background())

	require.NoError(t, c.Err())
	assert.Empty(t, c.Leads())
	assert.Equal(t, int64(23), c.TotalCount())
	assert.Equal(t, 3, c.TotalPages())
}

func TestFetchFailureKeepsPriorWindow(t *testing.T) {
	page := []*Lead{{ID: "1", FirstName: "Ann", LastName: "Lee", Email: "ann@x.com"}}
	var fail bool
	store := &fakeLister{
		listFn: func(ctx context.Context, search string, limit, offset int) ([]*Lead, int64, error) {
			if fail {
				return nil, 0, errors.New("store unavailable")
			}
			return page, 1, nil
		},
	}

	c := NewListController(store)
	c.Fetch(context.Background())
	require.NoError(t, c.Err())
	require.Len(t, c.Leads(), 1)

	fail = true
	c.Fetch(context.Background())

	assert.Error(t, c.Err())
	assert.Equal(t, page, c.Leads(), "stale window should remain displayed")
	assert.Equal(t, int64(1), c.TotalCount())
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	release := make(chan struct{})
	slowStarted := make(chan struct{})
	slowPage := []*Lead{{ID: "slow", FirstName: "Old", LastName: "Result", Email: "old@x.com"}}
	fastPage := []*Lead{{ID: "fast", FirstName: "New", LastName: "Result", Email: "new@x.com"}}

	var calls int
	store := &fakeLister{
		listFn: func(ctx context.Context, search string, limit, offset int) ([]*Lead, int64, error) {
			calls++
			if calls == 1 {
				close(slowStarted)
				<-release
				return slowPage, 100, nil
			}
			return fastPage, 1, nil
		},
	}

	c := NewListController(store)

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.Fetch(context.Background())
	}()

	<-slowStarted
	c.SetSearchTerm("new")
	c.Fetch(context.Background())

	close(release)
	<-done

	assert.Equal(t, fastPage, c.Leads(), "the older in-flight response must not clobber the newer one")
	assert.Equal(t, int64(1), c.TotalCount())
}
