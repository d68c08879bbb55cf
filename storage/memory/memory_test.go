// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/quickly-draw/models"
	"github.com/danielhkuo/quickly-draw/storage"
	"github.com/danielhkuo/quickly-draw/storage/memory"
	"github.com/danielhkuo/quickly-draw/storage/storetest"
)

func TestStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) storage.Store {
		return memory.New()
	})
}

func TestReturnedConfigurationIsACopy(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	require.NoError(t, store.CreateOwner(ctx, models.Owner{ID: "o"}))
	require.NoError(t, store.CreateConfiguration(ctx, models.DrawConfiguration{
		ID: "c", OwnerID: "o", ShareCode: "s", Mode: models.ModeList, Names: []string{"Ann"},
	}))

	got, err := store.GetConfiguration(ctx, "c")
	require.NoError(t, err)
	got.Names[0] = "Mallory"

	again, err := store.GetConfiguration(ctx, "c")
	require.NoError(t, err)
	require.Equal(t, []string{"Ann"}, again.Names)
}
