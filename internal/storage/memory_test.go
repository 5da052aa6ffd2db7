package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/staytab/internal/domain"
	"github.com/hammamikhairi/staytab/internal/logger"
)

func TestMemoryLedgerSaveLoad(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	ledger := NewMemoryLedger(log)
	ctx := context.Background()

	r := &domain.SettledReceipt{
		SettledAt: time.Now(),
		Receipt:   domain.Receipt{Subtotal: 2400, Total: 2640},
	}
	require.NoError(t, ledger.Save(ctx, r))
	require.NotEmpty(t, r.ID)
	_, err := uuid.Parse(r.ID)
	assert.NoError(t, err, "IDs are UUIDs")

	loaded, err := ledger.Load(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, 2640, loaded.Total)

	_, err = ledger.Load(ctx, "missing")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestMemoryLedgerKeepsExplicitID(t *testing.T) {
	ledger := NewMemoryLedger(logger.New(logger.LevelOff, nil))
	ctx := context.Background()

	r := &domain.SettledReceipt{ID: "table-1", Receipt: domain.Receipt{Total: 100}}
	require.NoError(t, ledger.Save(ctx, r))
	r2 := &domain.SettledReceipt{ID: "table-1", Receipt: domain.Receipt{Total: 200}}
	require.NoError(t, ledger.Save(ctx, r2))

	all, err := ledger.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 200, all[0].Total)
}

func TestMemoryLedgerListOrder(t *testing.T) {
	ledger := NewMemoryLedger(logger.New(logger.LevelOff, nil))
	ctx := context.Background()
	base := time.Date(2026, 5, 1, 20, 0, 0, 0, time.Local)

	late := &domain.SettledReceipt{SettledAt: base.Add(time.Hour)}
	early := &domain.SettledReceipt{SettledAt: base}
	require.NoError(t, ledger.Save(ctx, late))
	require.NoError(t, ledger.Save(ctx, early))

	all, err := ledger.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, early.ID, all[0].ID)
	assert.Equal(t, late.ID, all[1].ID)
}
