package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/nihalhub/paylite-relay/internal/services"
)

func TestDedupSweeper_SweepsOnStartAndPeriodically(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cleaner := services.NewMockDedupCleaner(ctrl)
	sweeper := services.NewDedupSweeper(cleaner, 5*time.Millisecond)

	done := make(chan struct{})
	calls := 0
	cleaner.EXPECT().CleanExpired(gomock.Any()).DoAndReturn(func(context.Context) error {
		calls++
		if calls == 2 {
			close(done)
		}
		return nil
	}).MinTimes(2)

	ctx, cancel := context.WithCancel(context.Background())
	go sweeper.Run(ctx)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("periodic sweep did not fire")
	}
	cancel()
}

func TestDedupSweeper_KeepsRunningAfterError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cleaner := services.NewMockDedupCleaner(ctrl)
	sweeper := services.NewDedupSweeper(cleaner, 5*time.Millisecond)

	done := make(chan struct{})
	gomock.InOrder(
		cleaner.EXPECT().CleanExpired(gomock.Any()).Return(errors.New("redis down")),
		cleaner.EXPECT().CleanExpired(gomock.Any()).DoAndReturn(func(context.Context) error {
			close(done)
			return nil
		}),
	)
	cleaner.EXPECT().CleanExpired(gomock.Any()).Return(nil).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	go sweeper.Run(ctx)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sweep did not retry after a failure")
	}
	cancel()
}

func TestDedupSweeper_StopsOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cleaner := services.NewMockDedupCleaner(ctrl)
	sweeper := services.NewDedupSweeper(cleaner, time.Hour)

	cleaner.EXPECT().CleanExpired(gomock.Any()).Return(nil).Times(1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	finished := make(chan struct{})
	go func() {
		sweeper.Run(ctx)
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not stop on cancel")
	}
}
