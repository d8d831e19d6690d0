// Package jobs registers and implements the scheduled maintenance tasks.
package jobs

import (
	"context"
	"fmt"

	ctxPkg "github.com/hjemme/inventar/pkg/context"
	"github.com/hjemme/inventar/pkg/internal/repository"
	"github.com/hjemme/inventar/pkg/internal/storage"
	"github.com/hjemme/inventar/pkg/log"
	"github.com/hjemme/inventar/pkg/scheduler"
)

// RegisterCronJobs wires the maintenance jobs:
//   - nightly 03:30 blob reconciliation sweep
func RegisterCronJobs(sched *scheduler.Scheduler, mgr *storage.Manager) error {
	if sched == nil {
		return fmt.Errorf("scheduler is nil")
	}

	if mgr == nil {
		return fmt.Errorf("storage manager is nil")
	}

	baseCtx := ctxPkg.WithStorageManager(context.Background(), mgr)

	return sched.AddCron(baseCtx, JobBlobReconcile, CronBlobReconcile, func(ctx context.Context) {
		runBlobReconcile(ctx, mgr)
	})
}

// runBlobReconcile walks the file and picture metadata rows and reports rows
// whose blob is gone. Report only: the row and blob stores are decoupled on
// purpose and nothing is deleted here.
func runBlobReconcile(ctx context.Context, mgr *storage.Manager) {
	l := log.Logger().With().Str("job", JobBlobReconcile).Logger()

	s3c := mgr.GetS3Client()
	dbc := mgr.GetDBClient()

	if s3c == nil || dbc == nil {
		l.Error().Msg("storage clients not initialized")
		return
	}

	db := dbc.GetDB()
	checked, missing := 0, 0

	files, err := repository.NewFileInfoRepository(db).List(ctx)
	if err != nil {
		l.Error().Err(err).Msg("list file rows failed")
	} else {
		for _, f := range files {
			checked++
			key := fmt.Sprintf("%d-%s", f.ID, f.Hash)

			exists, err := s3c.StatBlob(ctx, f.ObjectStorageLocation, key)
			if err != nil {
				l.Error().Err(err).Int32("id", f.ID).Msg("stat file blob failed")
				continue
			}

			if !exists {
				missing++
				l.Warn().Int32("id", f.ID).Str("bucket", f.ObjectStorageLocation).Str("key", key).Msg("file row without blob")
			}
		}
	}

	pictures, err := repository.NewPictureInfoRepository(db).List(ctx)
	if err != nil {
		l.Error().Err(err).Msg("list picture rows failed")
	} else {
		for _, p := range pictures {
			checked++

			exists, err := s3c.StatBlob(ctx, p.ObjectStorageLocation, p.Hash)
			if err != nil {
				l.Error().Err(err).Int32("id", p.ID).Msg("stat picture blob failed")
				continue
			}

			if !exists {
				missing++
				l.Warn().Int32("id", p.ID).Str("bucket", p.ObjectStorageLocation).Str("key", p.Hash).Msg("picture row without blob")
			}
		}
	}

	l.Info().Int("checked", checked).Int("missing", missing).Msg("blob reconcile sweep done")
}
