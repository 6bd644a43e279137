package cmd

import (
	"testing"
	"time"

	"github.com/inovacc/wifilog/internal/model"
)

func TestExpandPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:    "empty path",
			input:   "",
			wantErr: true,
		},
		{
			name:    "absolute path",
			input:   "/tmp/test",
			wantErr: false,
		},
		{
			name:    "home path",
			input:   "~/test",
			wantErr: false,
		},
		{
			name:    "relative path",
			input:   "test/path",
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := expandPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("expandPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if !tt.wantErr && result == "" {
				t.Errorf("expandPath(%q) returned empty string", tt.input)
			}
		})
	}
}

func TestToday(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Sampler.Timezone = "UTC"

	got, err := today(cfg)
	if err != nil {
		t.Fatalf("today() error = %v", err)
	}

	if _, err := time.Parse(model.DateLayout, got); err != nil {
		t.Errorf("today() = %q is not a date", got)
	}

	cfg.Sampler.Timezone = "Nowhere/Special"
	if _, err := today(cfg); err == nil {
		t.Error("today() with an unknown timezone should fail")
	}
}
