package session

import (
	"context"

	"github.com/osse101/Farmstead_Go/internal/logger"
)

// persistJob writes an evicted session to storage. It implements worker.Job.
type persistJob struct {
	service *Service
	id      string
	sess    *session
}

func (j *persistJob) Process(ctx context.Context) error {
	ctx = logger.WithFarmID(ctx, j.id)
	if err := j.service.save(ctx, j.sess); err != nil {
		// stays pending; the next SaveAll retries it
		return err
	}
	// a player action may have revived it while we were writing
	if j.sess.evicted.Load() || j.sess.deleted.Load() {
		j.service.pending.CompareAndDelete(j.id, j.sess)
	}
	logger.FromContext(ctx).Debug(LogMsgSessionEvicted)
	return nil
}
