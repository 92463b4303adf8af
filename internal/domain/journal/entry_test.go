package journal

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uintPtr(v uint) *uint { return &v }

func TestNewEntry(t *testing.T) {
	e, err := NewEntry(OperationIn, 1, 30, uintPtr(2), uintPtr(3), " 张三 ", PlacementNote(3))
	require.NoError(t, err)
	assert.Equal(t, "张三", e.Operator)
	assert.Equal(t, "Placement of batch #3", e.Notes)
	assert.Equal(t, "journal.in", e.RoutingKey())
	assert.False(t, e.OperationDate.IsZero())

	_, err = NewEntry("MOVE", 1, 1, nil, nil, "op", "")
	assert.ErrorIs(t, err, ErrInvalidOperation)

	_, err = NewEntry(OperationOut, 1, 0, nil, nil, "op", "")
	assert.ErrorIs(t, err, ErrMissingField)

	_, err = NewEntry(OperationOut, 1, 1, nil, nil, "", "")
	assert.ErrorIs(t, err, ErrMissingField)
}

type memRepo struct {
	entries []*Entry
	err     error
}

func (m *memRepo) Append(_ context.Context, e *Entry) error {
	if m.err != nil {
		return m.err
	}
	e.ID = uint(len(m.entries) + 1)
	m.entries = append(m.entries, e)
	return nil
}

func (m *memRepo) List(context.Context, ListParams) ([]*Entry, int64, error) {
	return m.entries, int64(len(m.entries)), nil
}

func (m *memRepo) SumByProduct(context.Context, uint) (int, int, error) { return 0, 0, nil }

func TestRecorder_Record(t *testing.T) {
	repo := &memRepo{}
	r := NewRecorder(repo)

	e, err := r.Record(context.Background(), OperationOut, 1, 5, uintPtr(1), nil, "op", NoteFullIssue)
	require.NoError(t, err)
	assert.Equal(t, uint(1), e.ID)
	assert.Len(t, repo.entries, 1)

	repo.err = errors.New("disk full")
	_, err = r.Record(context.Background(), OperationOut, 1, 5, nil, nil, "op", "")
	assert.Error(t, err)
	assert.Len(t, repo.entries, 1)
}
