// Package ask wires the question pipeline together: synthesize SQL, execute
// it, and hand both front ends one Answer value to render.
package ask

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopql/shopql/internal/observability"
	"github.com/shopql/shopql/internal/query"
	"github.com/shopql/shopql/internal/synth"
)

type Executor interface {
	Execute(ctx context.Context, sqlText string) (query.ResultSet, error)
}

type Service struct {
	Synth    synth.Synthesizer
	Executor Executor
	Logger   *slog.Logger
}

// Answer is the per-request pipeline output. ExecErr is set when the store
// rejected the generated statement; that is an answer, not a failure of the
// pipeline, and is rendered inline by both front ends.
type Answer struct {
	Question string
	SQL      string
	Result   query.ResultSet
	ExecErr  *query.ExecutionError
}

// Ask runs one question through synthesis and execution. The returned error
// is the generation-failure path (or an empty question); executor rejections
// travel in Answer.ExecErr instead.
func (s *Service) Ask(ctx context.Context, surface, question string) (Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Answer{}, fmt.Errorf("question is required")
	}
	observability.ObserveQuestion(surface)

	synthStart := time.Now()
	generated, err := s.Synth.Synthesize(ctx, question)
	observability.ObserveSynthesis(time.Since(synthStart), err != nil)
	if err != nil {
		if s.Logger != nil {
			observability.WithTrace(ctx, s.Logger).Error("sql synthesis failed",
				slog.String("surface", surface),
				slog.Any("error", err),
			)
		}
		return Answer{Question: question}, err
	}

	answer := Answer{Question: question, SQL: generated.SQL}

	execStart := time.Now()
	rs, err := s.Executor.Execute(ctx, generated.SQL)
	observability.ObserveExecution(time.Since(execStart), err != nil)
	if err != nil {
		var execErr *query.ExecutionError
		if errors.As(err, &execErr) {
			if s.Logger != nil {
				observability.WithTrace(ctx, s.Logger).Warn("generated statement rejected",
					slog.String("surface", surface),
					slog.String("sql", generated.SQL),
					slog.String("engine_error", execErr.Message),
				)
			}
			answer.ExecErr = execErr
			return answer, nil
		}
		return answer, err
	}

	answer.Result = rs
	if s.Logger != nil {
		observability.WithTrace(ctx, s.Logger).Debug("question answered",
			slog.String("surface", surface),
			slog.String("provider", generated.Provider),
			slog.Int("rows", len(rs.Rows)),
		)
	}
	return answer, nil
}
