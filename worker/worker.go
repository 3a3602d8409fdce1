package worker

import (
	"context"
	"sync/atomic"

	"github.com/fox-one/pkg/logger"
	"github.com/robfig/cron/v3"
)

// IJob cron job
type IJob interface {
	Start() error
	Run()
	Stop() error
}

type OnWork func(ctx context.Context) error

// BaseJob cron driven job, a tick is skipped while the previous one is still running
type BaseJob struct {
	Cron    *cron.Cron
	Name    string
	Context context.Context
	OnWork  OnWork

	running int32
}

// Schedule create the cron and register the job with spec
func (job *BaseJob) Schedule(spec string) error {
	if job.Cron == nil {
		job.Cron = cron.New()
	}

	_, err := job.Cron.AddFunc(spec, job.Run)
	return err
}

func (job *BaseJob) Start() error {
	job.Cron.Start()
	return nil
}

func (job *BaseJob) Stop() error {
	<-job.Cron.Stop().Done()
	return nil
}

func (job *BaseJob) IsRunning() bool {
	return atomic.LoadInt32(&job.running) == 1
}

func (job *BaseJob) Run() {
	if !atomic.CompareAndSwapInt32(&job.running, 0, 1) {
		return
	}
	defer atomic.StoreInt32(&job.running, 0)

	ctx := job.Context
	if ctx == nil {
		ctx = context.Background()
	}

	log := logger.FromContext(ctx).WithField("worker", job.Name)
	if err := job.OnWork(logger.WithContext(ctx, log)); err != nil {
		log.WithError(err).Errorln("run")
	}
}
