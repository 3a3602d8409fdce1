package cmd

import (
	"time"

	"dsc/worker"
	"dsc/worker/monitor"
	"dsc/worker/pricefeed"

	"github.com/drone/signal"
	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "dsc job worker",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)
		ctx = logger.WithContext(ctx, log)

		s := provideStores()
		defer s.close()

		e, err := provideEngine(ctx, s)
		if err != nil {
			return err
		}

		feeds, err := pricefeed.New(feedIDs(), cfg.PriceFeed.Period(), provideTickerService(), s.prices)
		if err != nil {
			return err
		}

		period, _ := cmd.Flags().GetDuration("monitor")
		health, err := monitor.New(period, e, s.positions)
		if err != nil {
			return err
		}

		jobs := []worker.IJob{feeds, health}
		feeds.Context, health.Context = ctx, ctx

		for _, job := range jobs {
			if err := job.Start(); err != nil {
				return err
			}
		}

		<-signal.WithContext(ctx).Done()
		log.Infoln("stopping workers")

		for _, job := range jobs {
			_ = job.Stop()
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
	workerCmd.Flags().Duration("monitor", time.Minute, "health factor scan interval")
}
