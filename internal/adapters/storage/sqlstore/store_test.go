package sqlstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/referral-pipeline/internal/domain"
	"github.com/jsamuelsen11/referral-pipeline/internal/domain/pipeline"
	"github.com/jsamuelsen11/referral-pipeline/internal/domain/report"
)

var baseTime = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pipeline.db")
	s, err := Open(context.Background(), Options{Driver: "sqlite", DSN: path})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func newClient(id string, stage pipeline.Stage, deal int64, closeDate *time.Time, created time.Time) *pipeline.Entity {
	return &pipeline.Entity{
		ID:                id,
		Kind:              pipeline.KindClient,
		Name:              "Client " + id,
		Email:             id + "@example.com",
		Stage:             stage,
		DealSizeCents:     deal,
		ExpectedCloseDate: closeDate,
		CreatedAt:         created,
		UpdatedAt:         created,
	}
}

func TestDialect_Rebind(t *testing.T) {
	t.Parallel()

	q := `SELECT * FROM t WHERE a = ? AND b IN (?, ?)`
	assert.Equal(t, q, dialectSQLite.rebind(q))
	assert.Equal(t, `SELECT * FROM t WHERE a = $1 AND b IN ($2, $3)`, dialectPostgres.rebind(q))
}

func TestDialectFor(t *testing.T) {
	t.Parallel()

	d, err := dialectFor("SQLite")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", d.name)

	d, err = dialectFor("postgresql")
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.name)

	_, err = dialectFor("oracle")
	assert.Error(t, err)
}

func TestSqliteDSN(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ":memory:?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", sqliteDSN(":memory:"))
	assert.Contains(t, sqliteDSN("/tmp/x.db"), "journal_mode(WAL)")
	assert.Contains(t, sqliteDSN("/tmp/x.db?mode=rwc"), "mode=rwc&_pragma=")
}

func TestSqliteFileDir(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		dsn  string
		want string
	}{
		{name: "memory", dsn: ":memory:", want: ""},
		{name: "shared memory uri", dsn: "file::memory:?cache=shared", want: ""},
		{name: "bare file", dsn: "local.db", want: ""},
		{name: "relative path", dsn: "data/local.db", want: "data"},
		{name: "absolute path", dsn: "/var/lib/pipeline/p.db", want: "/var/lib/pipeline"},
		{name: "file uri with query", dsn: "file:data/p.db?mode=rwc", want: "data"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, sqliteFileDir(tt.dsn))
		})
	}
}

func TestOpen_CreatesMissingDirectory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "data", "nested", "local.db")
	ctx := context.Background()

	s, err := Open(ctx, Options{Driver: "sqlite", DSN: path})
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Create(ctx, newClient("c1", pipeline.StageReferred, 0, nil, baseTime)))
	assert.FileExists(t, path)
}

func TestOpen_Validation(t *testing.T) {
	t.Parallel()

	_, err := Open(context.Background(), Options{Driver: "sqlite"})
	assert.Error(t, err)

	_, err = Open(context.Background(), Options{Driver: "mongo", DSN: "x"})
	assert.Error(t, err)
}

func TestOpen_MigrationsAreIdempotent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "pipeline.db")
	ctx := context.Background()

	s1, err := Open(ctx, Options{Driver: "sqlite", DSN: path})
	require.NoError(t, err)
	require.NoError(t, s1.Create(ctx, newClient("c1", pipeline.StageReferred, 0, nil, baseTime)))
	require.NoError(t, s1.Close())

	s2, err := Open(ctx, Options{Driver: "sqlite", DSN: path})
	require.NoError(t, err)
	defer s2.Close()

	n, err := s2.Count(ctx, pipeline.KindClient)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestStore_EntityLifecycle(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)
	ctx := context.Background()

	c := newClient("c1", pipeline.StageReferred, 50000, nil, baseTime)
	c.ReferralSourceID = "rs1"
	require.NoError(t, s.Create(ctx, c))

	got, err := s.Get(ctx, pipeline.KindClient, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Client c1", got.Name)
	assert.Equal(t, pipeline.StageReferred, got.Stage)
	assert.Equal(t, "rs1", got.ReferralSourceID)
	assert.Nil(t, got.ExpectedCloseDate)
	assert.True(t, got.CreatedAt.Equal(baseTime))

	// Same id, other kind.
	_, err = s.Get(ctx, pipeline.KindReferralSource, "c1")
	assert.ErrorIs(t, err, domain.ErrEntityNotFound)

	later := baseTime.Add(time.Hour)
	require.NoError(t, s.SetStage(ctx, pipeline.KindClient, "c1", pipeline.StageContacted, nil, later))
	require.NoError(t, s.SetStage(ctx, pipeline.KindClient, "c1", pipeline.StageAttorneyScheduled, date(2024, 5, 20), later))

	got, err = s.Get(ctx, pipeline.KindClient, "c1")
	require.NoError(t, err)
	assert.Equal(t, pipeline.StageAttorneyScheduled, got.Stage)
	require.NotNil(t, got.ExpectedCloseDate)
	assert.Equal(t, "2024-05-20", got.ExpectedCloseDate.Format(pipeline.DateLayout))
	assert.True(t, got.UpdatedAt.Equal(later))

	got.Notes = "called twice"
	got.ExpectedCloseDate = nil
	require.NoError(t, s.Update(ctx, got))

	got, err = s.Get(ctx, pipeline.KindClient, "c1")
	require.NoError(t, err)
	assert.Equal(t, "called twice", got.Notes)
	assert.Nil(t, got.ExpectedCloseDate)
	assert.Equal(t, pipeline.StageAttorneyScheduled, got.Stage, "Update must not touch stage")

	contact := baseTime.Add(48 * time.Hour)
	require.NoError(t, s.Touch(ctx, pipeline.KindClient, "c1", contact, contact))
	got, err = s.Get(ctx, pipeline.KindClient, "c1")
	require.NoError(t, err)
	require.NotNil(t, got.LastContactAt)
	assert.True(t, got.LastContactAt.Equal(contact))

	require.NoError(t, s.Delete(ctx, pipeline.KindClient, "c1"))
	_, err = s.Get(ctx, pipeline.KindClient, "c1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_WritesToMissingEntity(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)
	ctx := context.Background()

	err := s.SetStage(ctx, pipeline.KindClient, "nope", pipeline.StageContacted, nil, baseTime)
	assert.ErrorIs(t, err, domain.ErrEntityNotFound)

	err = s.Touch(ctx, pipeline.KindClient, "nope", baseTime, baseTime)
	assert.ErrorIs(t, err, domain.ErrEntityNotFound)

	err = s.Update(ctx, newClient("nope", pipeline.StageReferred, 0, nil, baseTime))
	assert.ErrorIs(t, err, domain.ErrEntityNotFound)
}

func TestStore_ListNewestFirstWithStageFilter(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, newClient("old", pipeline.StageReferred, 0, nil, baseTime)))
	require.NoError(t, s.Create(ctx, newClient("mid", pipeline.StageContacted, 0, nil, baseTime.Add(time.Minute))))
	require.NoError(t, s.Create(ctx, newClient("new", pipeline.StageReferred, 0, nil, baseTime.Add(2*time.Minute))))

	all, err := s.List(ctx, pipeline.KindClient, pipeline.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"new", "mid", "old"}, []string{all[0].ID, all[1].ID, all[2].ID})

	referred, err := s.List(ctx, pipeline.KindClient, pipeline.ListFilter{Stage: pipeline.StageReferred})
	require.NoError(t, err)
	require.Len(t, referred, 2)
	assert.Equal(t, "new", referred[0].ID)

	none, err := s.List(ctx, pipeline.KindReferralSource, pipeline.ListFilter{})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestStore_Aggregates(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)
	ctx := context.Background()

	entities := []*pipeline.Entity{
		newClient("a", pipeline.StageReferred, 100000, date(2024, 3, 15), baseTime),
		newClient("b", pipeline.StageClosedPaid, 20000, date(2024, 3, 31), baseTime),
		newClient("c", pipeline.StageClosedLost, 5000, date(2024, 1, 2), baseTime),
		newClient("d", pipeline.StageContacted, 7000, nil, baseTime),
		newClient("e", pipeline.StageContacted, 9000, date(2023, 6, 1), baseTime),
	}
	for _, e := range entities {
		require.NoError(t, s.Create(ctx, e))
	}
	require.NoError(t, s.Create(ctx, &pipeline.Entity{
		ID: "rs", Kind: pipeline.KindReferralSource, Name: "R", Email: "r@x", Stage: pipeline.StageIntroScheduled,
		CreatedAt: baseTime, UpdatedAt: baseTime,
	}))

	n, err := s.Count(ctx, pipeline.KindClient)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	open, err := s.SumDealSize(ctx, []pipeline.Stage{pipeline.StageClosedPaid, pipeline.StageClosedLost})
	require.NoError(t, err)
	assert.Equal(t, int64(100000+7000+9000), open)

	all, err := s.SumDealSize(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(141000), all)

	from := report.MonthKey{Year: 2023, Month: time.October}
	to := report.MonthKey{Year: 2024, Month: time.March}
	byMonth, err := s.DealSizeByCloseMonth(ctx, from, to)
	require.NoError(t, err)
	assert.Equal(t, map[report.MonthKey]int64{
		{Year: 2024, Month: time.March}:   120000,
		{Year: 2024, Month: time.January}: 5000,
	}, byMonth)
}

func TestStore_LedgerOrderingAndCounts(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)
	ctx := context.Background()

	stage := func(st pipeline.Stage) *pipeline.Stage { return &st }
	at := func(day, hour int) time.Time { return time.Date(2024, 3, day, hour, 0, 0, 0, time.UTC) }

	entries := []pipeline.HistoryEntry{
		{ID: "h1", Kind: pipeline.KindReferralSource, EntityID: "r1", To: pipeline.StageIntroScheduled, ChangedAt: at(1, 9)},
		{ID: "h2", Kind: pipeline.KindReferralSource, EntityID: "r1", From: stage(pipeline.StageDocsSigned), To: pipeline.StageWonReferring, ChangedAt: at(3, 9)},
		{ID: "h3", Kind: pipeline.KindReferralSource, EntityID: "r2", From: stage(pipeline.StageDocsSigned), To: pipeline.StageWonReferring, ChangedAt: at(30, 9)},
		{ID: "h4", Kind: pipeline.KindReferralSource, EntityID: "r3", From: stage(pipeline.StageDocsSigned), To: pipeline.StageWonReferring, ChangedAt: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "h5", Kind: pipeline.KindClient, EntityID: "c1", To: pipeline.StageReferred, ChangedAt: at(8, 12)},
		{ID: "h6", Kind: pipeline.KindClient, EntityID: "c2", To: pipeline.StageReferred, ChangedAt: at(9, 12)},
		{ID: "h7", Kind: pipeline.KindClient, EntityID: "c1", From: stage(pipeline.StageReferred), To: pipeline.StageContacted, ChangedAt: at(9, 12)},
		// Same millisecond as h7: insertion order breaks the tie.
		{ID: "h8", Kind: pipeline.KindClient, EntityID: "c1", From: stage(pipeline.StageContacted), To: pipeline.StageReferred, Reason: "oops", ChangedAt: at(9, 12)},
	}
	for _, h := range entries {
		require.NoError(t, s.Append(ctx, h))
	}

	hist, err := s.ListFor(ctx, pipeline.KindClient, "c1")
	require.NoError(t, err)
	require.Len(t, hist, 3)
	assert.Equal(t, []string{"h8", "h7", "h5"}, []string{hist[0].ID, hist[1].ID, hist[2].ID})
	assert.True(t, hist[2].IsCreation())
	assert.Equal(t, "oops", hist[0].Reason)

	march := report.MonthKey{Year: 2024, Month: time.March}
	signed, err := s.CountTransitionsInto(ctx, pipeline.KindReferralSource, pipeline.StageWonReferring, march)
	require.NoError(t, err)
	assert.Equal(t, report.WeekCounts{1, 0, 0, 0, 1}, signed)

	created, err := s.CountCreations(ctx, pipeline.KindClient, march)
	require.NoError(t, err)
	assert.Equal(t, report.WeekCounts{0, 2, 0, 0, 0}, created)
}

func TestStore_InTxRollsBack(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)
	ctx := context.Background()
	errBoom := errors.New("ledger down")

	err := s.InTx(ctx, func(ctx context.Context) error {
		if err := s.Create(ctx, newClient("c1", pipeline.StageReferred, 0, nil, baseTime)); err != nil {
			return err
		}
		// Reads inside the transaction see the write.
		if _, err := s.Get(ctx, pipeline.KindClient, "c1"); err != nil {
			return err
		}
		return errBoom
	})
	require.ErrorIs(t, err, errBoom)

	_, err = s.Get(ctx, pipeline.KindClient, "c1")
	assert.ErrorIs(t, err, domain.ErrEntityNotFound)
	assert.True(t, s.Atomic())
}

func TestStore_InTxCommits(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)
	ctx := context.Background()

	err := s.InTx(ctx, func(ctx context.Context) error {
		if err := s.Create(ctx, newClient("c1", pipeline.StageReferred, 0, nil, baseTime)); err != nil {
			return err
		}
		// Nested call joins the outer transaction.
		return s.InTx(ctx, func(ctx context.Context) error {
			return s.Append(ctx, pipeline.HistoryEntry{
				ID: "h1", Kind: pipeline.KindClient, EntityID: "c1", To: pipeline.StageReferred, ChangedAt: baseTime,
			})
		})
	})
	require.NoError(t, err)

	hist, err := s.ListFor(ctx, pipeline.KindClient, "c1")
	require.NoError(t, err)
	assert.Len(t, hist, 1)
}

func TestStore_ReferralsAndContacts(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateReferral(ctx, pipeline.Referral{ID: "f1", ReferralSourceID: "rs1", ClientID: "c1", ReferredAt: baseTime, Status: pipeline.ReferralActive}))
	require.NoError(t, s.CreateReferral(ctx, pipeline.Referral{ID: "f2", ReferralSourceID: "rs2", ClientID: "c2", ReferredAt: baseTime.Add(time.Hour), Status: pipeline.ReferralActive}))

	all, err := s.ListReferrals(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "f2", all[0].ID)

	one, err := s.ListReferrals(ctx, "rs1")
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, "c1", one[0].ClientID)

	require.NoError(t, s.DeleteReferral(ctx, "f1"))
	one, err = s.ListReferrals(ctx, "rs1")
	require.NoError(t, err)
	assert.Empty(t, one)

	for i, sent := range []time.Time{baseTime, baseTime.Add(2 * time.Hour), baseTime.Add(time.Hour)} {
		require.NoError(t, s.AppendContact(ctx, pipeline.ContactEvent{
			ID:        string(rune('a' + i)),
			Kind:      pipeline.KindClient,
			EntityID:  "c1",
			Direction: pipeline.DirectionOutbound,
			Subject:   "hello",
			SentAt:    sent,
			CreatedAt: baseTime,
		}))
	}
	events, err := s.ListContacts(ctx, pipeline.KindClient, "c1")
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, []string{"b", "c", "a"}, []string{events[0].ID, events[1].ID, events[2].ID})
	assert.Equal(t, pipeline.DirectionOutbound, events[0].Direction)
}

func TestStore_HealthCheck(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)

	assert.Equal(t, "storage", s.Name())
	assert.NoError(t, s.HealthCheck(context.Background()))
}
