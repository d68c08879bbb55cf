// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package storetest holds the behavioural suite every storage.Store
// implementation must pass.
package storetest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/danielhkuo/quickly-draw/models"
	"github.com/danielhkuo/quickly-draw/storage"
)

// Suite runs against a fresh store per test.
type Suite struct {
	suite.Suite
	NewStore func(t *testing.T) storage.Store

	store storage.Store
	ctx   context.Context
	now   time.Time
}

// Run executes the suite with stores built by newStore.
func Run(t *testing.T, newStore func(t *testing.T) storage.Store) {
	suite.Run(t, &Suite{NewStore: newStore})
}

func (s *Suite) SetupTest() {
	s.store = s.NewStore(s.T())
	s.ctx = context.Background()
	s.now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(s.T(), s.store.CreateOwner(s.ctx, models.Owner{
		ID: "owner-1", DisplayName: "Dana", Email: "dana@example.com", CreatedAt: s.now,
	}))
}

func (s *Suite) TearDownTest() {
	require.NoError(s.T(), s.store.Close())
}

func (s *Suite) wheel(id, code string) models.DrawConfiguration {
	return models.DrawConfiguration{
		ID: id, OwnerID: "owner-1", Name: "Prizes " + id, Mode: models.ModeWheel,
		ShowOdds: true, ShareCode: code,
		Items: []models.Item{
			{ID: id + "-a", Name: "A", Weight: 10, Position: 0},
			{ID: id + "-b", Name: "B", Weight: 90, ImageURL: "https://img.example/b.png", Position: 1},
		},
		CreatedAt: s.now, UpdatedAt: s.now,
	}
}

func (s *Suite) itemRecord(id, configID, itemID string, at time.Time) models.DrawRecord {
	name := "A"
	return models.DrawRecord{
		ID: id, ConfigID: configID, ParticipantName: "Ana",
		ItemID: &itemID, ItemName: &name, CreatedAt: at,
	}
}

func (s *Suite) TestOwnerRoundTrip() {
	owner, err := s.store.GetOwner(s.ctx, "owner-1")
	require.NoError(s.T(), err)
	require.Equal(s.T(), "Dana", owner.DisplayName)
	require.Equal(s.T(), "dana@example.com", owner.Email)
	require.True(s.T(), s.now.Equal(owner.CreatedAt))

	_, err = s.store.GetOwner(s.ctx, "nobody")
	require.ErrorIs(s.T(), err, models.ErrNotFound)
}

func (s *Suite) TestConfigurationRoundTrip() {
	cfg := s.wheel("c1", "code1")
	require.NoError(s.T(), s.store.CreateConfiguration(s.ctx, cfg))

	got, err := s.store.GetConfiguration(s.ctx, "c1")
	require.NoError(s.T(), err)
	require.Equal(s.T(), cfg.Name, got.Name)
	require.Equal(s.T(), "owner-1", got.OwnerID)
	require.Equal(s.T(), models.ModeWheel, got.Mode)
	require.True(s.T(), got.ShowOdds)
	require.Equal(s.T(), cfg.Items, got.Items)

	byCode, err := s.store.GetConfigurationByShareCode(s.ctx, "code1")
	require.NoError(s.T(), err)
	require.Equal(s.T(), "c1", byCode.ID)

	_, err = s.store.GetConfiguration(s.ctx, "missing")
	require.ErrorIs(s.T(), err, models.ErrNotFound)
	_, err = s.store.GetConfigurationByShareCode(s.ctx, "missing")
	require.ErrorIs(s.T(), err, models.ErrNotFound)
}

func (s *Suite) TestNumberAndListPayloads() {
	number := models.DrawConfiguration{
		ID: "n1", OwnerID: "owner-1", Name: "Dice", Mode: models.ModeNumber, ShareCode: "num",
		Range: &models.NumberRange{Min: -5, Max: 5}, CreatedAt: s.now, UpdatedAt: s.now,
	}
	list := models.DrawConfiguration{
		ID: "l1", OwnerID: "owner-1", Name: "Team", Mode: models.ModeList, ShareCode: "lst",
		Names: []string{"Zoë", "Ann", "Bo"}, CreatedAt: s.now, UpdatedAt: s.now,
	}
	require.NoError(s.T(), s.store.CreateConfiguration(s.ctx, number))
	require.NoError(s.T(), s.store.CreateConfiguration(s.ctx, list))

	got, err := s.store.GetConfiguration(s.ctx, "n1")
	require.NoError(s.T(), err)
	require.Equal(s.T(), &models.NumberRange{Min: -5, Max: 5}, got.Range)
	require.Empty(s.T(), got.Items)

	got, err = s.store.GetConfiguration(s.ctx, "l1")
	require.NoError(s.T(), err)
	require.Equal(s.T(), []string{"Zoë", "Ann", "Bo"}, got.Names)
}

func (s *Suite) TestDuplicateShareCodeRejected() {
	require.NoError(s.T(), s.store.CreateConfiguration(s.ctx, s.wheel("c1", "same")))
	err := s.store.CreateConfiguration(s.ctx, s.wheel("c2", "same"))
	require.ErrorIs(s.T(), err, storage.ErrDuplicate)

	err = s.store.CreateConfiguration(s.ctx, s.wheel("c1", "other"))
	require.ErrorIs(s.T(), err, storage.ErrDuplicate)
}

func (s *Suite) TestDuplicateOwnerRejected() {
	err := s.store.CreateOwner(s.ctx, models.Owner{ID: "owner-1", DisplayName: "Again", CreatedAt: s.now})
	require.ErrorIs(s.T(), err, storage.ErrDuplicate)

	owner, err := s.store.GetOwner(s.ctx, "owner-1")
	require.NoError(s.T(), err)
	require.Equal(s.T(), "Dana", owner.DisplayName)
}

func (s *Suite) TestListConfigurationsNewestFirstWithCounts() {
	older := s.wheel("c1", "code1")
	newer := s.wheel("c2", "code2")
	newer.CreatedAt = s.now.Add(time.Hour)
	other := s.wheel("c3", "code3")
	require.NoError(s.T(), s.store.CreateOwner(s.ctx, models.Owner{ID: "owner-2", DisplayName: "Eli", CreatedAt: s.now}))
	other.OwnerID = "owner-2"

	for _, cfg := range []models.DrawConfiguration{older, newer, other} {
		require.NoError(s.T(), s.store.CreateConfiguration(s.ctx, cfg))
	}
	require.NoError(s.T(), s.store.InsertRecord(s.ctx, s.itemRecord("r1", "c1", "c1-a", s.now)))
	require.NoError(s.T(), s.store.InsertRecord(s.ctx, s.itemRecord("r2", "c1", "c1-b", s.now)))

	list, err := s.store.ListConfigurations(s.ctx, "owner-1")
	require.NoError(s.T(), err)
	require.Len(s.T(), list, 2)
	require.Equal(s.T(), "c2", list[0].ID)
	require.Equal(s.T(), 0, list[0].RecordCount)
	require.Equal(s.T(), "c1", list[1].ID)
	require.Equal(s.T(), 2, list[1].RecordCount)

	empty, err := s.store.ListConfigurations(s.ctx, "nobody")
	require.NoError(s.T(), err)
	require.NotNil(s.T(), empty)
	require.Empty(s.T(), empty)
}

func (s *Suite) TestUpdateReconcilesItems() {
	require.NoError(s.T(), s.store.CreateConfiguration(s.ctx, s.wheel("c1", "code1")))

	cfg, err := s.store.GetConfiguration(s.ctx, "c1")
	require.NoError(s.T(), err)
	cfg.Name = "Renamed"
	cfg.Uniform = true
	cfg.Mode = models.ModeBox
	cfg.ShareCode = "changed"
	cfg.UpdatedAt = s.now.Add(time.Minute)
	cfg.Items = []models.Item{
		{ID: "c1-b", Name: "B2", Weight: 5, Position: 0},
		{ID: "c1-new", Name: "C", Weight: 1, Position: 1},
	}
	require.NoError(s.T(), s.store.UpdateConfiguration(s.ctx, cfg))

	got, err := s.store.GetConfiguration(s.ctx, "c1")
	require.NoError(s.T(), err)
	require.Equal(s.T(), "Renamed", got.Name)
	require.True(s.T(), got.Uniform)
	require.Equal(s.T(), models.ModeWheel, got.Mode, "mode is immutable")
	require.Equal(s.T(), "code1", got.ShareCode, "share code is immutable")
	require.True(s.T(), s.now.Equal(got.CreatedAt))
	require.True(s.T(), s.now.Add(time.Minute).Equal(got.UpdatedAt))
	require.Equal(s.T(), cfg.Items, got.Items)
	require.Equal(s.T(), cfg.Version+1, got.Version)

	_, err = s.store.GetConfigurationByShareCode(s.ctx, "changed")
	require.ErrorIs(s.T(), err, models.ErrNotFound)

	missing := s.wheel("nope", "nope")
	require.ErrorIs(s.T(), s.store.UpdateConfiguration(s.ctx, missing), models.ErrNotFound)
}

func (s *Suite) TestStaleUpdateConflicts() {
	require.NoError(s.T(), s.store.CreateConfiguration(s.ctx, s.wheel("c1", "code1")))

	first, err := s.store.GetConfiguration(s.ctx, "c1")
	require.NoError(s.T(), err)
	second := first

	first.Name = "First"
	require.NoError(s.T(), s.store.UpdateConfiguration(s.ctx, first))

	second.Name = "Second"
	err = s.store.UpdateConfiguration(s.ctx, second)
	require.ErrorIs(s.T(), err, models.ErrConflict)

	got, err := s.store.GetConfiguration(s.ctx, "c1")
	require.NoError(s.T(), err)
	require.Equal(s.T(), "First", got.Name)

	// An item add also moves the version on
	_, err = s.store.AddItem(s.ctx, "c1", models.Item{ID: "c1-c", Name: "C", Weight: 1}, s.now)
	require.NoError(s.T(), err)
	got.Name = "Stale"
	require.ErrorIs(s.T(), s.store.UpdateConfiguration(s.ctx, got), models.ErrConflict)
}

func (s *Suite) TestAddItemAppends() {
	require.NoError(s.T(), s.store.CreateConfiguration(s.ctx, s.wheel("c1", "code1")))
	later := s.now.Add(time.Hour)

	item, err := s.store.AddItem(s.ctx, "c1", models.Item{ID: "c1-c", Name: "C", Weight: 3}, later)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 2, item.Position)

	got, err := s.store.GetConfiguration(s.ctx, "c1")
	require.NoError(s.T(), err)
	require.Len(s.T(), got.Items, 3)
	require.Equal(s.T(), item, got.Items[2])
	require.Equal(s.T(), 1, got.Version)
	require.True(s.T(), later.Equal(got.UpdatedAt))

	_, err = s.store.AddItem(s.ctx, "c1", models.Item{ID: "c1-c", Name: "C", Weight: 3}, later)
	require.ErrorIs(s.T(), err, storage.ErrDuplicate)
	_, err = s.store.AddItem(s.ctx, "missing", models.Item{ID: "x", Name: "X"}, later)
	require.ErrorIs(s.T(), err, models.ErrNotFound)
}

func (s *Suite) TestConcurrentAddItems() {
	require.NoError(s.T(), s.store.CreateConfiguration(s.ctx, s.wheel("c1", "code1")))

	const writers = 12
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			item := models.Item{ID: "added-" + string(rune('a'+w)), Name: "N", Weight: 1}
			_, err := s.store.AddItem(s.ctx, "c1", item, s.now)
			errs <- err
		}(w)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(s.T(), err)
	}

	got, err := s.store.GetConfiguration(s.ctx, "c1")
	require.NoError(s.T(), err)
	require.Len(s.T(), got.Items, 2+writers)
	for i, item := range got.Items {
		require.Equal(s.T(), i, item.Position)
	}
	for w := 0; w < writers; w++ {
		_, ok := got.FindItem("added-" + string(rune('a'+w)))
		require.True(s.T(), ok, "item %d was lost", w)
	}
	require.Equal(s.T(), writers, got.Version)
}

func (s *Suite) TestRemoveItem() {
	cfg := s.wheel("c1", "code1")
	cfg.Items = append(cfg.Items, models.Item{ID: "c1-c", Name: "C", Weight: 1, Position: 2})
	require.NoError(s.T(), s.store.CreateConfiguration(s.ctx, cfg))

	require.NoError(s.T(), s.store.RemoveItem(s.ctx, "c1", "c1-a", s.now))
	got, err := s.store.GetConfiguration(s.ctx, "c1")
	require.NoError(s.T(), err)
	require.Len(s.T(), got.Items, 2)
	require.Equal(s.T(), "c1-b", got.Items[0].ID)
	require.Equal(s.T(), 0, got.Items[0].Position)
	require.Equal(s.T(), "c1-c", got.Items[1].ID)
	require.Equal(s.T(), 1, got.Items[1].Position)
	require.Equal(s.T(), 1, got.Version)

	require.ErrorIs(s.T(), s.store.RemoveItem(s.ctx, "c1", "c1-a", s.now), models.ErrNotFound)
	require.ErrorIs(s.T(), s.store.RemoveItem(s.ctx, "missing", "c1-b", s.now), models.ErrNotFound)

	require.NoError(s.T(), s.store.RemoveItem(s.ctx, "c1", "c1-b", s.now))
	err = s.store.RemoveItem(s.ctx, "c1", "c1-c", s.now)
	var verr *models.ValidationError
	require.ErrorAs(s.T(), err, &verr)

	got, err = s.store.GetConfiguration(s.ctx, "c1")
	require.NoError(s.T(), err)
	require.Len(s.T(), got.Items, 1)
}

func (s *Suite) TestRecordsSurviveItemRemoval() {
	require.NoError(s.T(), s.store.CreateConfiguration(s.ctx, s.wheel("c1", "code1")))
	require.NoError(s.T(), s.store.InsertRecord(s.ctx, s.itemRecord("r1", "c1", "c1-a", s.now)))

	cfg, err := s.store.GetConfiguration(s.ctx, "c1")
	require.NoError(s.T(), err)
	cfg.Items = cfg.Items[1:]
	require.NoError(s.T(), s.store.UpdateConfiguration(s.ctx, cfg))

	records, err := s.store.ListRecords(s.ctx, "c1", 10)
	require.NoError(s.T(), err)
	require.Len(s.T(), records, 1)
	require.Equal(s.T(), "c1-a", *records[0].ItemID)
	require.Equal(s.T(), "A", *records[0].ItemName)

	err = s.store.InsertRecord(s.ctx, s.itemRecord("r2", "c1", "c1-a", s.now))
	require.ErrorIs(s.T(), err, models.ErrInvalidReference)
}

func (s *Suite) TestInsertRecordChecks() {
	require.NoError(s.T(), s.store.CreateConfiguration(s.ctx, s.wheel("c1", "code1")))
	require.NoError(s.T(), s.store.CreateConfiguration(s.ctx, s.wheel("c2", "code2")))
	require.NoError(s.T(), s.store.CreateConfiguration(s.ctx, models.DrawConfiguration{
		ID: "n1", OwnerID: "owner-1", Name: "Dice", Mode: models.ModeNumber, ShareCode: "num",
		Range: &models.NumberRange{Min: 1, Max: 6}, CreatedAt: s.now, UpdatedAt: s.now,
	}))
	require.NoError(s.T(), s.store.CreateConfiguration(s.ctx, models.DrawConfiguration{
		ID: "l1", OwnerID: "owner-1", Name: "Team", Mode: models.ModeList, ShareCode: "lst",
		Names: []string{"Ann", "Bo"}, CreatedAt: s.now, UpdatedAt: s.now,
	}))

	err := s.store.InsertRecord(s.ctx, s.itemRecord("r1", "missing", "c1-a", s.now))
	require.ErrorIs(s.T(), err, models.ErrNotFound)

	err = s.store.InsertRecord(s.ctx, s.itemRecord("r2", "c1", "c2-a", s.now))
	require.ErrorIs(s.T(), err, models.ErrInvalidReference, "item of another configuration")

	six, seven := 6, 7
	require.NoError(s.T(), s.store.InsertRecord(s.ctx, models.DrawRecord{
		ID: "r3", ConfigID: "n1", ParticipantName: "Bo", Number: &six, CreatedAt: s.now,
	}))
	err = s.store.InsertRecord(s.ctx, models.DrawRecord{
		ID: "r4", ConfigID: "n1", ParticipantName: "Bo", Number: &seven, CreatedAt: s.now,
	})
	require.ErrorIs(s.T(), err, models.ErrInvalidReference)

	require.NoError(s.T(), s.store.InsertRecord(s.ctx, models.DrawRecord{
		ID: "r5", ConfigID: "l1", ParticipantName: "Cy", Names: []string{"Bo", "Ann"}, CreatedAt: s.now,
	}))
	err = s.store.InsertRecord(s.ctx, models.DrawRecord{
		ID: "r6", ConfigID: "l1", ParticipantName: "Cy", Names: []string{"Dee"}, CreatedAt: s.now,
	})
	require.ErrorIs(s.T(), err, models.ErrInvalidReference)

	records, err := s.store.ListRecords(s.ctx, "l1", 10)
	require.NoError(s.T(), err)
	require.Len(s.T(), records, 1)
	require.Equal(s.T(), []string{"Bo", "Ann"}, records[0].Names)
	require.Nil(s.T(), records[0].ItemID)
	require.Nil(s.T(), records[0].Number)
}

func (s *Suite) TestRecordsNotDeduplicated() {
	require.NoError(s.T(), s.store.CreateConfiguration(s.ctx, s.wheel("c1", "code1")))
	require.NoError(s.T(), s.store.InsertRecord(s.ctx, s.itemRecord("r1", "c1", "c1-a", s.now)))
	require.NoError(s.T(), s.store.InsertRecord(s.ctx, s.itemRecord("r2", "c1", "c1-a", s.now)))

	records, err := s.store.ListRecords(s.ctx, "c1", 10)
	require.NoError(s.T(), err)
	require.Len(s.T(), records, 2)
}

func (s *Suite) TestListRecordsOrderAndLimit() {
	require.NoError(s.T(), s.store.CreateConfiguration(s.ctx, s.wheel("c1", "code1")))
	for i, id := range []string{"r1", "r2", "r3", "r4"} {
		at := s.now.Add(time.Duration(i) * time.Second)
		if id == "r4" {
			at = s.now.Add(2 * time.Second) // ties with r3, broken by id
		}
		require.NoError(s.T(), s.store.InsertRecord(s.ctx, s.itemRecord(id, "c1", "c1-a", at)))
	}

	records, err := s.store.ListRecords(s.ctx, "c1", 3)
	require.NoError(s.T(), err)
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	require.Equal(s.T(), []string{"r4", "r3", "r2"}, ids)
	require.True(s.T(), s.now.Add(2*time.Second).Equal(records[0].CreatedAt))

	none, err := s.store.ListRecords(s.ctx, "missing", 10)
	require.NoError(s.T(), err)
	require.NotNil(s.T(), none)
	require.Empty(s.T(), none)
}

func (s *Suite) TestDeleteCascades() {
	require.NoError(s.T(), s.store.CreateConfiguration(s.ctx, s.wheel("c1", "code1")))
	require.NoError(s.T(), s.store.InsertRecord(s.ctx, s.itemRecord("r1", "c1", "c1-a", s.now)))

	require.NoError(s.T(), s.store.DeleteConfiguration(s.ctx, "c1"))

	_, err := s.store.GetConfiguration(s.ctx, "c1")
	require.ErrorIs(s.T(), err, models.ErrNotFound)
	_, err = s.store.GetConfigurationByShareCode(s.ctx, "code1")
	require.ErrorIs(s.T(), err, models.ErrNotFound)

	records, err := s.store.ListRecords(s.ctx, "c1", 10)
	require.NoError(s.T(), err)
	require.Empty(s.T(), records)

	err = s.store.InsertRecord(s.ctx, s.itemRecord("r2", "c1", "c1-a", s.now))
	require.ErrorIs(s.T(), err, models.ErrNotFound)

	require.ErrorIs(s.T(), s.store.DeleteConfiguration(s.ctx, "c1"), models.ErrNotFound)
}

func (s *Suite) TestConcurrentInserts() {
	require.NoError(s.T(), s.store.CreateConfiguration(s.ctx, s.wheel("c1", "code1")))

	const writers = 8
	const perWriter = 10
	var wg sync.WaitGroup
	errs := make(chan error, writers*perWriter)
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				id := string(rune('a'+w)) + "-" + string(rune('a'+i))
				errs <- s.store.InsertRecord(s.ctx, s.itemRecord(id, "c1", "c1-b", s.now))
			}
		}(w)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(s.T(), err)
	}

	records, err := s.store.ListRecords(s.ctx, "c1", 1000)
	require.NoError(s.T(), err)
	require.Len(s.T(), records, writers*perWriter)
}

func (s *Suite) TestCanceledContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()
	_, err := s.store.GetConfiguration(ctx, "c1")
	require.Error(s.T(), err)
}
