package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/hszk-dev/tubepulse/internal/config"
	"github.com/hszk-dev/tubepulse/internal/domain/model"
	"github.com/hszk-dev/tubepulse/internal/usecase"
)

type stubAnalysisService struct {
	analyzeFn func(ctx context.Context, input usecase.AnalyzeInput) (*model.Report, error)
}

func (s *stubAnalysisService) Analyze(ctx context.Context, input usecase.AnalyzeInput) (*model.Report, error) {
	return s.analyzeFn(ctx, input)
}

func stubFactory(svc usecase.AnalysisService) serviceFactory {
	return func(*config.Config) (usecase.AnalysisService, error) { return svc, nil }
}

func testReport(patterns int) *model.Report {
	row := model.VideoRecord{
		ChannelTitle: "Demo",
		VideoID:      "abc",
		Title:        "Tại sao mèo ngủ nhiều",
		AgeDays:      3,
		Views:        1234567,
		ViewsPerDay:  411522,
		Velocity:     900000,
		HookTag:      "Question",
	}
	report := &model.Report{
		Days:      30,
		MaxVideos: 20,
		ChannelSummary: []model.ChannelSummary{{
			ChannelTitle:   "Demo",
			VideosInWindow: 1,
			AvgDurationSec: 3725,
			AvgViewsPerDay: 411522,
			AvgVelocity:    900000,
			HookMix:        []model.HookMixEntry{{Tag: "Question", Count: 1}},
		}},
		GlobalTopByVelocity: []model.VideoRecord{row},
		Rows:                []model.VideoRecord{row},
	}
	for i := 0; i < patterns; i++ {
		report.GlobalPatterns = append(report.GlobalPatterns, model.PatternEntry{Phrase: fmt.Sprintf("phrase %02d", i), Count: patterns - i})
	}
	return report
}

func runCmd(t *testing.T, factory serviceFactory, args ...string) (string, error) {
	t.Helper()
	t.Setenv("YOUTUBE_API_KEY", "test-key")

	cmd := newRootCmd(factory)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAnalyzeCmd_Table(t *testing.T) {
	var got usecase.AnalyzeInput
	svc := &stubAnalysisService{analyzeFn: func(ctx context.Context, input usecase.AnalyzeInput) (*model.Report, error) {
		got = input
		return testReport(45), nil
	}}

	out, err := runCmd(t, stubFactory(svc), "analyze", "@a", "@b", "--days", "30", "--max-videos", "20")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	if len(got.Inputs) != 2 || got.Days != 30 || got.MaxVideos != 20 {
		t.Errorf("input = %+v", got)
	}
	for _, want := range []string{"CHANNEL SUMMARY", "Demo", "1:02:05", "411,522", "Question (1)", "TITLE PATTERNS", "phrase 39"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "phrase 40") {
		t.Error("global patterns should be truncated to 40")
	}
}

func TestAnalyzeCmd_JSON(t *testing.T) {
	svc := &stubAnalysisService{analyzeFn: func(ctx context.Context, input usecase.AnalyzeInput) (*model.Report, error) {
		return testReport(45), nil
	}}

	out, err := runCmd(t, stubFactory(svc), "analyze", "@a", "--format", "json")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	var report model.Report
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("output is not a report: %v", err)
	}
	if len(report.GlobalPatterns) != 45 {
		t.Errorf("json output should not truncate patterns, got %d", len(report.GlobalPatterns))
	}
}

func TestAnalyzeCmd_CSV(t *testing.T) {
	svc := &stubAnalysisService{analyzeFn: func(ctx context.Context, input usecase.AnalyzeInput) (*model.Report, error) {
		return testReport(0), nil
	}}

	out, err := runCmd(t, stubFactory(svc), "analyze", "@a", "-f", "csv")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if !strings.HasPrefix(out, `"channelTitle","title"`) {
		t.Errorf("csv output = %q", out)
	}
}

func TestAnalyzeCmd_Errors(t *testing.T) {
	failing := &stubAnalysisService{analyzeFn: func(ctx context.Context, input usecase.AnalyzeInput) (*model.Report, error) {
		return nil, &usecase.ResolutionError{Input: "@ghost", Err: errors.New("channel not found")}
	}}

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no channels", []string{"analyze"}, "arg"},
		{"bad format", []string{"analyze", "@a", "--format", "xml"}, "invalid format"},
		{"service error", []string{"analyze", "@ghost"}, "@ghost"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCmd(t, stubFactory(failing), tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestNewAnalysisService_RequiresAPIKey(t *testing.T) {
	_, err := newAnalysisService(&config.Config{})
	if !errors.Is(err, config.ErrMissingAPIKey) {
		t.Errorf("error = %v, want ErrMissingAPIKey", err)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("Tại sao mèo", 6); got != "Tại s…" {
		t.Errorf("truncate = %q, want %q", got, "Tại s…")
	}
}
