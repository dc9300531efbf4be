package store

import (
	"time"

	"github.com/duskhq/queuectl/job"
	"github.com/uptrace/bun"
)

// jobModel is the bun mapping of the jobs table. A job has no separate
// transport envelope — the command string, its scheduling metadata and its
// retry bookkeeping are all first-class columns of one row.
type jobModel struct {
	bun.BaseModel `bun:"table:jobs,alias:j"`

	ID      string     `bun:"id,pk"`
	Command string     `bun:"command,notnull"`
	State   job.Status `bun:"state,notnull,default:0"`

	Priority int    `bun:"priority,notnull,default:0"`
	Attempts uint32 `bun:"attempts,notnull,default:0"`

	MaxRetries  uint32 `bun:"max_retries,notnull,default:0"`
	BackoffBase uint32 `bun:"backoff_base,notnull,default:0"`

	TimeoutSeconds *int       `bun:"timeout_seconds"`
	RunAt          *time.Time `bun:"run_at"`

	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`

	LastError *string    `bun:"last_error"`
	WorkerID  *string    `bun:"worker_id"`
	LeasedAt  *time.Time `bun:"leased_at"`

	Env map[string]string `bun:"env,type:jsonb"`
}

func (m *jobModel) toJob() *job.Job {
	return &job.Job{
		ID:             m.ID,
		Command:        m.Command,
		State:          m.State,
		Priority:       m.Priority,
		Attempts:       m.Attempts,
		MaxRetries:     m.MaxRetries,
		BackoffBase:    m.BackoffBase,
		TimeoutSeconds: m.TimeoutSeconds,
		RunAt:          m.RunAt,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
		LastError:      m.LastError,
		WorkerID:       m.WorkerID,
		LeasedAt:       m.LeasedAt,
		Env:            m.Env,
	}
}

// configModel is the bun mapping of the config key/value table.
type configModel struct {
	bun.BaseModel `bun:"table:config,alias:c"`

	Key   string `bun:"key,pk"`
	Value string `bun:"value,notnull"`
}
