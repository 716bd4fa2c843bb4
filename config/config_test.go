package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: 5001},
		Auth:   AuthConfig{JWTSecret: "test-secret-key-for-unit-testing"},
		Attendance: AttendanceConfig{
			Timezone:         "Asia/Kolkata",
			SubmissionPolicy: PolicySubmitOnce,
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"overwrite policy", func(c *Config) { c.Attendance.SubmissionPolicy = PolicyOverwrite }, ""},
		{"missing secret", func(c *Config) { c.Auth.JWTSecret = "" }, "jwt_secret"},
		{"short secret", func(c *Config) { c.Auth.JWTSecret = "short" }, "16 characters"},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"unknown policy", func(c *Config) { c.Attendance.SubmissionPolicy = "whatever" }, "submission_policy"},
		{"unknown zone", func(c *Config) { c.Attendance.Timezone = "Mars/Olympus" }, "timezone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ATTENDX_AUTH_JWT_SECRET", "env-secret-key-long-enough")
	t.Setenv("ATTENDX_ATTENDANCE_SUBMISSION_POLICY", PolicyOverwrite)
	t.Setenv("ATTENDX_SERVER_PORT", "9090")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Attendance.SubmissionPolicy != PolicyOverwrite {
		t.Errorf("expected overwrite policy, got %s", cfg.Attendance.SubmissionPolicy)
	}
	if cfg.Attendance.Timezone != "Asia/Kolkata" {
		t.Errorf("expected default timezone, got %s", cfg.Attendance.Timezone)
	}
}
