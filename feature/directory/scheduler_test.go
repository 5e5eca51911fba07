package directory_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"hr-eval/core/hris"
	"hr-eval/core/hris/mocks"
	"hr-eval/feature/directory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestSchedulerTriggersPeriodicSync(t *testing.T) {
	db := newSyncDB(t)

	var fetches atomic.Int32
	client := new(mocks.Client)
	expectReferenceSets(client)
	client.On("FetchEmployees", mock.Anything).
		Run(func(mock.Arguments) { fetches.Add(1) }).
		Return([]hris.Employee{}, nil)

	syncer := newTestSyncer(db, client, true)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	scheduler := directory.NewScheduler(syncer, 20*time.Millisecond, zap.NewNop())
	scheduler.Start(ctx)

	assert.Eventually(t, func() bool { return fetches.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)
}
