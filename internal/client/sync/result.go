package sync

import "time"

// State of the orchestrator
type State int

const (
	StateStopped State = iota
	StateIdle
	StateSyncing
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateIdle:
		return "idle"
	case StateSyncing:
		return "syncing"
	default:
		return "unknown"
	}
}

// Result contains the counters of one sync cycle
type Result struct {
	Pushed       int           // отправлено операций
	Acknowledged int           // подтверждено сервером
	Conflicts    int           // отклонено с remote state и передано resolver
	RemoteWins   int
	LocalWins    int
	Merged       int
	Unresolved   int           // остались в очереди без разрешения
	Pulled       int           // применено изменений с сервера
	Cursor       int64         // курсор после цикла
	Duration     time.Duration
}
