package event

import (
	"context"
	"testing"

	"dsc/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryList(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	require.Nil(t, s.Create(ctx,
		&core.Event{TraceID: "t1", Name: core.EventCollateralDeposited, From: "alice", To: "engine"},
		&core.Event{TraceID: "t2", Name: core.EventCollateralDeposited, From: "bob", To: "engine"},
		&core.Event{TraceID: "t3", Name: core.EventCollateralRedeemed, From: "alice", To: "carol"},
	))
	// duplicated trace ids are ignored
	require.Nil(t, s.Create(ctx, &core.Event{TraceID: "t1", Name: core.EventCollateralDeposited}))

	all, err := s.List(ctx, 0, 0)
	require.Nil(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, int64(1), all[0].ID)
	assert.Equal(t, int64(3), all[2].ID)

	page, err := s.List(ctx, 1, 1)
	require.Nil(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "t2", page[0].TraceID)

	carol, err := s.ListByUser(ctx, "carol", 0, 10)
	require.Nil(t, err)
	require.Len(t, carol, 1)
	assert.Equal(t, core.EventCollateralRedeemed, carol[0].Name)

	alice, err := s.ListByUser(ctx, "alice", 1, 10)
	require.Nil(t, err)
	require.Len(t, alice, 1)
	assert.Equal(t, "t3", alice[0].TraceID)
}
