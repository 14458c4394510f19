package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/roster"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/stats"
	rostermock "github.com/riskibarqy/fantasy-cricket/internal/mocks/domain/roster"
	statsmock "github.com/riskibarqy/fantasy-cricket/internal/mocks/domain/stats"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testPlayers = []roster.Player{
	{Name: "John Smith", Role: roster.RoleBatsman},
	{Name: "Amy Lee", Role: roster.RoleWicketKeeper},
	{Name: "Sam Green", Role: roster.RoleBowler},
}

func TestStatsService_RosterIsCachedAndShared(t *testing.T) {
	t.Parallel()

	rosterRepo := rostermock.NewRepository(t)
	service := NewStatsService(statsmock.NewRepository(t), rosterRepo, time.Minute, 10)

	rosterRepo.
		On("List", mock.Anything).
		Return(testPlayers, nil).
		Once()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r, err := service.Roster(context.Background())
			if err != nil || r.Len() != 3 {
				t.Errorf("unexpected roster: len=%d err=%v", r.Len(), err)
			}
		}()
	}
	wg.Wait()

	p, err := service.GetPlayerByNumber(context.Background(), 2)
	require.NoError(t, err)
	require.Equal(t, "Amy Lee", p.Name)
	require.Equal(t, 2, p.Number)

	_, err = service.GetPlayerByNumber(context.Background(), 4)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStatsService_RosterLoadFailure(t *testing.T) {
	t.Parallel()

	rosterRepo := rostermock.NewRepository(t)
	service := NewStatsService(statsmock.NewRepository(t), rosterRepo, time.Minute, 10)

	rosterRepo.
		On("List", mock.Anything).
		Return(nil, errors.New("connection refused")).
		Once()

	_, err := service.ListPlayers(context.Background())
	require.ErrorIs(t, err, ErrDependencyUnavailable)
}

func TestStatsService_ListSheetFillsRosterOrder(t *testing.T) {
	t.Parallel()

	rosterRepo := rostermock.NewRepository(t)
	statsRepo := statsmock.NewRepository(t)
	service := NewStatsService(statsRepo, rosterRepo, time.Minute, 10)

	rosterRepo.On("List", mock.Anything).Return(testPlayers, nil).Once()
	statsRepo.
		On("List", mock.Anything, stats.WeekSheet(3)).
		Return([]stats.CumulativeStat{
			{PlayerName: "Sam Green", Games: 1, Wickets: 4},
			{PlayerName: "Old Player", Games: 2},
			{PlayerName: "John Smith", Games: 1, Runs: 40},
		}, nil).
		Once()

	sheet, items, err := service.ListSheet(context.Background(), "week-3")
	require.NoError(t, err)
	require.Equal(t, stats.WeekSheet(3), sheet)

	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.PlayerName)
	}
	require.Equal(t, []string{"John Smith", "Amy Lee", "Sam Green", "Old Player"}, names)
	require.Equal(t, 0, items[1].Games)
	require.Equal(t, 4, items[2].Wickets)
}

func TestStatsService_ListSheetRejectsBadSheet(t *testing.T) {
	t.Parallel()

	service := NewStatsService(statsmock.NewRepository(t), rostermock.NewRepository(t), time.Minute, 10)

	_, _, err := service.ListSheet(context.Background(), "week-12")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestStatsService_GetPlayerStat(t *testing.T) {
	t.Parallel()

	rosterRepo := rostermock.NewRepository(t)
	statsRepo := statsmock.NewRepository(t)
	service := NewStatsService(statsRepo, rosterRepo, time.Minute, 10)

	statsRepo.
		On("Get", mock.Anything, stats.SeasonTotal, "John Smith").
		Return(stats.CumulativeStat{PlayerName: "John Smith", Runs: 300}, nil).
		Once()
	statsRepo.
		On("Get", mock.Anything, stats.SeasonTotal, "Amy Lee").
		Return(stats.CumulativeStat{}, stats.ErrNotFound).
		Once()
	statsRepo.
		On("Get", mock.Anything, stats.SeasonTotal, "Nobody").
		Return(stats.CumulativeStat{}, stats.ErrNotFound).
		Once()
	rosterRepo.On("List", mock.Anything).Return(testPlayers, nil).Once()

	got, err := service.GetPlayerStat(context.Background(), "season-total", "John Smith")
	require.NoError(t, err)
	require.Equal(t, 300, got.Runs)

	fresh, err := service.GetPlayerStat(context.Background(), "season-total", "Amy Lee")
	require.NoError(t, err)
	require.Equal(t, stats.CumulativeStat{PlayerName: "Amy Lee"}, fresh)

	_, err = service.GetPlayerStat(context.Background(), "season-total", "Nobody")
	require.ErrorIs(t, err, ErrNotFound)
}
