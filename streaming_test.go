package cardstream

import (
	"testing"
	"time"
)

func TestStage_IsTerminal(t *testing.T) {
	tests := []struct {
		stage    Stage
		terminal bool
	}{
		{StageIdle, false},
		{StageThinking, false},
		{StageStreaming, false},
		{StageComplete, true},
		{StageAborted, true},
		{StageError, true},
	}

	for _, tt := range tests {
		if got := tt.stage.IsTerminal(); got != tt.terminal {
			t.Errorf("IsTerminal(%q) = %v, want %v", tt.stage, got, tt.terminal)
		}
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
		field   string
	}{
		{"default is valid", DefaultConfig(), false, ""},
		{"zero rate", Config{TokensPerSecond: 0}, true, "tokens_per_second"},
		{"negative rate", Config{TokensPerSecond: -5}, true, "tokens_per_second"},
		{"negative delay", Config{TokensPerSecond: 10, ThinkingDelay: -time.Second}, true, "thinking_delay"},
		{"zero delay is fine", Config{TokensPerSecond: 10}, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			if !IsInvalidConfig(err) {
				t.Errorf("IsInvalidConfig(%v) = false", err)
			}
			cfgErr, ok := err.(*ConfigError)
			if !ok {
				t.Fatalf("error type = %T, want *ConfigError", err)
			}
			if cfgErr.Field != tt.field {
				t.Errorf("Field = %q, want %q", cfgErr.Field, tt.field)
			}
		})
	}
}

func TestConfig_TickPeriod(t *testing.T) {
	tests := []struct {
		rate float64
		want time.Duration
	}{
		{1, time.Second},
		{40, 25 * time.Millisecond},
		{1000, time.Millisecond},
	}
	for _, tt := range tests {
		if got := (Config{TokensPerSecond: tt.rate}).tickPeriod(); got != tt.want {
			t.Errorf("tickPeriod(%v tps) = %v, want %v", tt.rate, got, tt.want)
		}
	}

	// Absurd rates still arm a valid ticker.
	if got := (Config{TokensPerSecond: 1e18}).tickPeriod(); got <= 0 {
		t.Errorf("tickPeriod(1e18 tps) = %v, want > 0", got)
	}
}
