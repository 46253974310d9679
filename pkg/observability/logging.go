package observability

import (
	"log/slog"

	"github.com/aretw0/rewind/pkg/domain"
)

// LoggingHooks returns lifecycle hooks that log every history event.
// Evictions and pool wraps lose history and are logged at Warn.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	info := func(e *domain.HistoryEvent) {
		logger.Info("history_"+string(e.Type), attrs(e)...)
	}
	warn := func(e *domain.HistoryEvent) {
		logger.Warn("history_"+string(e.Type), attrs(e)...)
	}
	return domain.LifecycleHooks{
		OnRecord:   info,
		OnUndo:     info,
		OnRedo:     info,
		OnEvict:    warn,
		OnPoolWrap: warn,
	}
}

func attrs(e *domain.HistoryEvent) []any {
	return []any{
		"stack", e.Stack,
		"changed", e.Changed,
		"created", e.Created,
		"undo_depth", e.UndoDepth,
		"redo_depth", e.RedoDepth,
	}
}
