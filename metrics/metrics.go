package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	reg *prometheus.Registry

	NotificationsSent prometheus.Counter
	FetchFailures     prometheus.Counter
	CommandsHandled   *prometheus.CounterVec // command label: hi|bus|run|skip|schedule

	RunActive      prometheus.Gauge
	SchedulesTotal prometheus.Gauge

	PipelineDuration prometheus.Histogram
}

func NewCollector(scheduleCount int) *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		NotificationsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "onebotaway_notifications_sent_total",
			Help: "Total scheduled notifications delivered to chat.",
		}),
		FetchFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "onebotaway_fetch_failures_total",
			Help: "Total transit API pipeline failures.",
		}),
		CommandsHandled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "onebotaway_commands_handled_total",
			Help: "Total chat commands handled.",
		}, []string{"command"}),
		RunActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "onebotaway_run_active",
			Help: "1 while the user is running to catch a tracked bus.",
		}),
		SchedulesTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "onebotaway_schedules",
			Help: "Number of configured notification schedules.",
		}),
		PipelineDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "onebotaway_pipeline_duration_seconds",
			Help:    "Duration of the stop->route->arrivals lookup pipeline.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
	}

	reg.MustRegister(
		c.NotificationsSent, c.FetchFailures, c.CommandsHandled,
		c.RunActive, c.SchedulesTotal, c.PipelineDuration,
	)

	c.SchedulesTotal.Set(float64(scheduleCount))
	return c
}

func (c *Collector) Handler() http.Handler { return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{}) }
