/*
Package observability turns history lifecycle hooks into structured logs and Prometheus metrics.

Both helpers return domain.LifecycleHooks and can be combined with Merge:

	metrics, err := observability.NewMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}
	hooks := observability.LoggingHooks(logger).Merge(metrics.Hooks())
	eng, err := rewind.New(factory, rewind.WithLifecycleHooks(hooks))
*/
package observability
