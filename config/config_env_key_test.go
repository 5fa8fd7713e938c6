package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"auth": map[string]any{
			"maxFailedAttempts": 5,
			"lockoutDuration":   "15m",
		},
		"secretKey": map[string]any{
			"session":      "",
			"confirmation": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "AUTH_MAXFAILEDATTEMPTS", want: "auth.maxFailedAttempts"},
		{envKey: "AUTH_LOCKOUTDURATION", want: "auth.lockoutDuration"},
		{envKey: "SECRETKEY_SESSION", want: "secretKey.session"},
		{envKey: "SECRETKEY_CONFIRMATION", want: "secretKey.confirmation"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}
