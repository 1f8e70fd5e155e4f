package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmeshcher/feedcalc/internal/model"
)

type stubBackend struct {
	rows      []model.HistoryRecord
	nextID    int64
	listCalls int

	insertErr error
	deleteErr error
	listErr   error
}

func (b *stubBackend) List(ctx context.Context) ([]model.HistoryRecord, error) {
	b.listCalls++
	if b.listErr != nil {
		return nil, b.listErr
	}
	res := make([]model.HistoryRecord, len(b.rows))
	copy(res, b.rows)
	return res, nil
}

func (b *stubBackend) Insert(ctx context.Context, rec model.HistoryRecord) (model.HistoryRecord, error) {
	if b.insertErr != nil {
		return model.HistoryRecord{}, b.insertErr
	}
	b.nextID++
	rec.ID = b.nextID
	rec.Timestamp = time.Now()
	b.rows = append([]model.HistoryRecord{rec}, b.rows...)
	return rec, nil
}

func (b *stubBackend) Delete(ctx context.Context, id int64) error {
	if b.deleteErr != nil {
		return b.deleteErr
	}
	for i, r := range b.rows {
		if r.ID == id {
			b.rows = append(b.rows[:i], b.rows[i+1:]...)
			break
		}
	}
	return nil
}

func ids(records []model.HistoryRecord) []int64 {
	res := make([]int64, 0, len(records))
	for _, r := range records {
		res = append(res, r.ID)
	}
	return res
}

func TestStoreSavePrependsAssignedRecord(t *testing.T) {
	backend := &stubBackend{
		rows:   []model.HistoryRecord{{ID: 1, ShopName: "old"}},
		nextID: 1,
	}
	s := NewStore[model.HistoryRecord](backend)

	_, err := s.Load(context.Background())
	require.NoError(t, err)

	saved, err := s.Save(context.Background(), model.HistoryRecord{ShopName: "new"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), saved.ID)

	assert.Equal(t, []int64{2, 1}, ids(s.Records()))
}

func TestStoreDeleteSuccessRemovesRecord(t *testing.T) {
	backend := &stubBackend{rows: []model.HistoryRecord{{ID: 3}, {ID: 2}, {ID: 1}}}
	s := NewStore[model.HistoryRecord](backend)

	_, err := s.Load(context.Background())
	require.NoError(t, err)

	require.NoError(t, s.Delete(context.Background(), 2))
	assert.Equal(t, []int64{3, 1}, ids(s.Records()))
	assert.False(t, s.Stale())
}

func TestStoreDeleteFailureLeavesListUnchanged(t *testing.T) {
	backend := &stubBackend{rows: []model.HistoryRecord{{ID: 3}, {ID: 2}, {ID: 1}}}
	s := NewStore[model.HistoryRecord](backend)

	_, err := s.Load(context.Background())
	require.NoError(t, err)

	backend.deleteErr = errors.New("remote rejected")
	err = s.Delete(context.Background(), 2)
	require.ErrorIs(t, err, backend.deleteErr)

	assert.Equal(t, []int64{3, 2, 1}, ids(s.Records()))
	assert.True(t, s.Stale())

	backend.deleteErr = nil
	backend.rows = []model.HistoryRecord{{ID: 3}, {ID: 1}}
	list, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 1}, ids(list), "stale list must be re-fetched")
	assert.Equal(t, 2, backend.listCalls)
}

func TestStoreSaveFailureMarksStale(t *testing.T) {
	backend := &stubBackend{rows: []model.HistoryRecord{{ID: 1}}}
	s := NewStore[model.HistoryRecord](backend)

	_, err := s.Load(context.Background())
	require.NoError(t, err)

	backend.insertErr = errors.New("insert failed")
	_, err = s.Save(context.Background(), model.HistoryRecord{ShopName: "x"})
	require.Error(t, err)

	assert.Equal(t, []int64{1}, ids(s.Records()))
	assert.True(t, s.Stale())
}

func TestStoreListLoadsOnce(t *testing.T) {
	backend := &stubBackend{rows: []model.HistoryRecord{{ID: 1}}}
	s := NewStore[model.HistoryRecord](backend)

	_, err := s.List(context.Background())
	require.NoError(t, err)
	_, err = s.List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, backend.listCalls)
}

func TestStoreListError(t *testing.T) {
	backend := &stubBackend{listErr: errors.New("offline")}
	s := NewStore[model.HistoryRecord](backend)

	_, err := s.List(context.Background())
	require.Error(t, err)
}

func TestStoreRoundTripKeepsSnapshot(t *testing.T) {
	backend := &stubBackend{}
	s := NewStore[model.HistoryRecord](backend)

	items := []model.LineItem{
		{Code: "701 C", Name: "Broiler Starter", BagCount: 10, TotalKg: 500, FinalPrice: decimal.RequireFromString("29593.875")},
	}
	_, err := s.Save(context.Background(), model.HistoryRecord{
		ShopName:    "Rahim Store",
		Items:       items,
		TotalBags:   10,
		TotalKg:     500,
		TotalAmount: decimal.RequireFromString("29593.875"),
	})
	require.NoError(t, err)

	loaded, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "Rahim Store", loaded[0].ShopName)
	assert.Equal(t, items, loaded[0].Items)
	assert.Equal(t, 10, loaded[0].TotalBags)
	assert.True(t, loaded[0].TotalAmount.Equal(decimal.RequireFromString("29593.875")))
}
