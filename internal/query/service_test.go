package query

import (
	"context"
	"errors"
	"testing"

	"github.com/povarna/generative-ai-agents/vgs-agent/internal/audit"
	auditmocks "github.com/povarna/generative-ai-agents/vgs-agent/internal/audit/mocks"
	"github.com/povarna/generative-ai-agents/vgs-agent/internal/database"
	"github.com/povarna/generative-ai-agents/vgs-agent/internal/generator"
	"github.com/povarna/generative-ai-agents/vgs-agent/internal/query/mocks"
	"github.com/povarna/generative-ai-agents/vgs-agent/internal/reqid"
	"github.com/povarna/generative-ai-agents/vgs-agent/internal/sqlgate"
	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"
)

func newTestLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

func newTestService(t *testing.T, gen SQLGenerator, exec Executor, rec audit.Recorder) *Service {
	t.Helper()
	gate, err := sqlgate.New(sqlgate.DefaultPolicy())
	if err != nil {
		t.Fatalf("sqlgate.New: %v", err)
	}
	svc := NewService(gate, gen, exec, rec, newTestLogger())
	svc.requestID = func() string { return "req00001" }
	return svc
}

func TestService_Ask_Pass(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockGen := mocks.NewMockSQLGenerator(ctrl)
	mockExec := mocks.NewMockExecutor(ctrl)
	mockRec := auditmocks.NewMockRecorder(ctrl)

	mockGen.EXPECT().
		Generate(gomock.Any(), "top games").
		Return(generator.Result{SQL: " SELECT name FROM vgs_view; ", Description: "Top games"}, nil)

	mockExec.EXPECT().
		Run(gomock.Any(), "SELECT name FROM vgs_view LIMIT 20").
		Return(&database.QueryResult{
			Columns: []string{"name"},
			Rows:    [][]any{{"Wii Sports"}, {"Super Mario Bros."}},
		}, nil)

	mockRec.EXPECT().Record(gomock.Any(), gomock.Any()).Do(func(_ context.Context, entry audit.Entry) {
		if !entry.Passed || entry.Tag != sqlgate.TagPass {
			t.Errorf("expected passed entry, got %+v", entry)
		}
		if entry.OriginalSQL != "SELECT name FROM vgs_view;" {
			t.Errorf("unexpected original sql %q", entry.OriginalSQL)
		}
		if entry.SanitizedSQL != "SELECT name FROM vgs_view LIMIT 20" {
			t.Errorf("unexpected sanitized sql %q", entry.SanitizedSQL)
		}
		if entry.Rows != 2 || entry.RequestID != "req00001" {
			t.Errorf("unexpected entry %+v", entry)
		}
	})

	svc := newTestService(t, mockGen, mockExec, mockRec)

	answer, err := svc.Ask(context.Background(), "  top games ")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}

	if answer.SQL != "SELECT name FROM vgs_view LIMIT 20" {
		t.Errorf("expected sanitized sql, got %s", answer.SQL)
	}
	if answer.RequestID != "req00001" || answer.Description != "Top games" {
		t.Errorf("unexpected answer %+v", answer)
	}
	if len(answer.Data) != 2 || answer.Columns[0] != "name" {
		t.Errorf("unexpected rows %+v", answer)
	}
}

func TestService_Ask_Rejected(t *testing.T) {
	tests := []struct {
		name     string
		sql      string
		wantTag  sqlgate.Tag
		wantErr  error
		wantDesc string
	}{
		{"non select", "DROP TABLE vgs_view", sqlgate.TagRejectNonSelect, sqlgate.ErrNonSelectStatement, "drop"},
		{"wrong table", "SELECT * FROM games", sqlgate.TagRejectWrongTable, sqlgate.ErrOutOfScopeTable, "games"},
		{"keyword", "SELECT * FROM vgs_view; DELETE FROM vgs_view", sqlgate.TagRejectKeyword, sqlgate.ErrForbiddenKeyword, "chained"},
		{"unparseable model output", "", sqlgate.TagRejectNonSelect, sqlgate.ErrNonSelectStatement, "I cannot help"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			mockGen := mocks.NewMockSQLGenerator(ctrl)
			mockExec := mocks.NewMockExecutor(ctrl)
			mockRec := auditmocks.NewMockRecorder(ctrl)

			mockGen.EXPECT().Generate(gomock.Any(), gomock.Any()).
				Return(generator.Result{SQL: tt.sql, Description: tt.wantDesc}, nil)
			mockExec.EXPECT().Run(gomock.Any(), gomock.Any()).Times(0)
			mockRec.EXPECT().Record(gomock.Any(), gomock.Any()).Do(func(_ context.Context, entry audit.Entry) {
				if entry.Passed || entry.Tag != tt.wantTag || entry.Reason == "" {
					t.Errorf("unexpected audit entry %+v", entry)
				}
			})

			svc := newTestService(t, mockGen, mockExec, mockRec)

			_, err := svc.Ask(context.Background(), "question")

			var rejected *RejectedError
			if !errors.As(err, &rejected) {
				t.Fatalf("expected *RejectedError, got %v", err)
			}
			if rejected.Verdict.Tag != tt.wantTag {
				t.Errorf("expected tag %s, got %s", tt.wantTag, rejected.Verdict.Tag)
			}
			if rejected.Description != tt.wantDesc || rejected.RequestID != "req00001" {
				t.Errorf("unexpected rejection %+v", rejected)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected errors.Is %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestService_Ask_EmptyQuestion(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := newTestService(t, mocks.NewMockSQLGenerator(ctrl), nil, auditmocks.NewMockRecorder(ctrl))

	if _, err := svc.Ask(context.Background(), "   "); !errors.Is(err, generator.ErrEmptyQuestion) {
		t.Errorf("expected ErrEmptyQuestion, got %v", err)
	}
}

func TestService_Ask_GenerationError(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockGen := mocks.NewMockSQLGenerator(ctrl)
	mockRec := auditmocks.NewMockRecorder(ctrl)

	genErr := errors.Join(generator.ErrGeneration, errors.New("throttled"))
	mockGen.EXPECT().Generate(gomock.Any(), gomock.Any()).Return(generator.Result{}, genErr)
	mockRec.EXPECT().Record(gomock.Any(), gomock.Any()).Do(func(_ context.Context, entry audit.Entry) {
		if entry.Error == "" {
			t.Error("expected error in audit entry")
		}
	})

	svc := newTestService(t, mockGen, nil, mockRec)

	if _, err := svc.Ask(context.Background(), "q"); !errors.Is(err, generator.ErrGeneration) {
		t.Errorf("expected ErrGeneration, got %v", err)
	}
}

func TestService_Ask_ExecutionError(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockGen := mocks.NewMockSQLGenerator(ctrl)
	mockExec := mocks.NewMockExecutor(ctrl)
	mockRec := auditmocks.NewMockRecorder(ctrl)

	mockGen.EXPECT().Generate(gomock.Any(), gomock.Any()).Return(generator.Result{SQL: "SELECT nope FROM vgs_view"}, nil)
	mockExec.EXPECT().Run(gomock.Any(), gomock.Any()).Return(nil, errors.New(`column "nope" does not exist`))
	mockRec.EXPECT().Record(gomock.Any(), gomock.Any()).Do(func(_ context.Context, entry audit.Entry) {
		if !entry.Passed || entry.Error == "" {
			t.Errorf("unexpected audit entry %+v", entry)
		}
	})

	svc := newTestService(t, mockGen, mockExec, mockRec)

	if _, err := svc.Ask(context.Background(), "q"); !errors.Is(err, ErrExecution) {
		t.Errorf("expected ErrExecution, got %v", err)
	}
}

func TestService_Ask_NoDatabase(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockGen := mocks.NewMockSQLGenerator(ctrl)
	mockRec := auditmocks.NewMockRecorder(ctrl)

	mockGen.EXPECT().Generate(gomock.Any(), gomock.Any()).Return(generator.Result{SQL: "SELECT 1"}, nil)
	mockRec.EXPECT().Record(gomock.Any(), gomock.Any())

	svc := newTestService(t, mockGen, nil, mockRec)

	if _, err := svc.Ask(context.Background(), "q"); !errors.Is(err, ErrDatabaseNotConfigured) {
		t.Errorf("expected ErrDatabaseNotConfigured, got %v", err)
	}
}

func TestService_Validate(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockRec := auditmocks.NewMockRecorder(ctrl)
	mockRec.EXPECT().Record(gomock.Any(), gomock.Any()).Times(2)

	svc := newTestService(t, mocks.NewMockSQLGenerator(ctrl), nil, mockRec)

	if v := svc.Validate(context.Background(), "SELECT 1"); !v.Passed || v.SQL != "SELECT 1 LIMIT 20" {
		t.Errorf("unexpected verdict %+v", v)
	}
	if v := svc.Validate(context.Background(), "TRUNCATE vgs_view"); v.Passed {
		t.Errorf("unexpected pass %+v", v)
	}
}

func TestService_TopSellers(t *testing.T) {
	t.Run("demo rows without database", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := newTestService(t, mocks.NewMockSQLGenerator(ctrl), nil, auditmocks.NewMockRecorder(ctrl))

		sellers, err := svc.TopSellers(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if len(sellers) != 2 || sellers[0].Name != "Demo Game" || *sellers[0].GlobalSales != 0 {
			t.Errorf("unexpected demo rows %+v", sellers)
		}
	})

	t.Run("queries allowed relation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockExec := mocks.NewMockExecutor(ctrl)

		sales := 82.74
		mockExec.EXPECT().TopSellers(gomock.Any(), "vgs_view", 10).
			Return([]database.TopSeller{{Name: "Wii Sports", GlobalSales: &sales}}, nil)

		svc := newTestService(t, mocks.NewMockSQLGenerator(ctrl), mockExec, auditmocks.NewMockRecorder(ctrl))

		sellers, err := svc.TopSellers(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if len(sellers) != 1 || sellers[0].Name != "Wii Sports" {
			t.Errorf("unexpected sellers %+v", sellers)
		}
	})
}

func TestService_Health(t *testing.T) {
	tests := []struct {
		name    string
		pingErr error
		noDB    bool
		wantDB  string
	}{
		{name: "not configured", noDB: true, wantDB: DBNotConfigured},
		{name: "connected", wantDB: DBConnected},
		{name: "ping failure", pingErr: errors.New("connection refused"), wantDB: "error: connection refused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			var exec Executor
			if !tt.noDB {
				mockExec := mocks.NewMockExecutor(ctrl)
				mockExec.EXPECT().Ping(gomock.Any()).Return(tt.pingErr)
				exec = mockExec
			}

			svc := newTestService(t, mocks.NewMockSQLGenerator(ctrl), exec, auditmocks.NewMockRecorder(ctrl))

			got := svc.Health(context.Background())
			if got.Status != "ok" || got.DB != tt.wantDB {
				t.Errorf("expected ok/%s, got %+v", tt.wantDB, got)
			}
		})
	}
}

func TestService_Validate_ReusesContextRequestID(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockRec := auditmocks.NewMockRecorder(ctrl)
	mockRec.EXPECT().Record(gomock.Any(), gomock.Any()).Do(func(_ context.Context, entry audit.Entry) {
		if entry.RequestID != "fromhttp" {
			t.Errorf("expected request id from context, got %s", entry.RequestID)
		}
	})

	svc := newTestService(t, mocks.NewMockSQLGenerator(ctrl), nil, mockRec)
	svc.Validate(reqid.WithContext(context.Background(), "fromhttp"), "SELECT 1")
}
