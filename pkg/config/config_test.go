package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"rds-restore/pkg/config"
)

// isolate points HOME at an empty directory and clears the variables LoadConfig reads
func isolate(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{
		"AWS_REGION", "AWS_PROFILE", "AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY", "AWS_ENDPOINT_URL",
		"RDS_RESTORE_AWS_REGION", "RDS_RESTORE_AWS_PROFILE", "RDS_RESTORE_AWS_ACCESS_KEY",
		"RDS_RESTORE_AWS_SECRET_KEY", "RDS_RESTORE_AWS_ENDPOINT", "RDS_RESTORE_WEB_PORT",
		"RDS_RESTORE_LOG_LEVEL", "RDS_RESTORE_LOG_FILE",
	} {
		t.Setenv(key, "")
	}
	return home
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name      string
		accessKey string
		secretKey string
		region    string
		hasError  bool
	}{
		{
			name:      "valid configuration",
			accessKey: "test-access-key",
			secretKey: "test-secret-key",
			region:    "us-west-2",
			hasError:  false,
		},
		{
			name:      "default credential chain",
			accessKey: "",
			secretKey: "",
			region:    "eu-west-1",
			hasError:  false,
		},
		{
			name:      "missing secret key",
			accessKey: "test-access-key",
			secretKey: "",
			region:    "us-west-2",
			hasError:  true,
		},
		{
			name:      "missing access key",
			accessKey: "",
			secretKey: "test-secret-key",
			region:    "us-west-2",
			hasError:  true,
		},
		{
			name:      "default region",
			accessKey: "test-access-key",
			secretKey: "test-secret-key",
			region:    "",
			hasError:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			t.Setenv("AWS_ACCESS_KEY_ID", tt.accessKey)
			t.Setenv("AWS_SECRET_ACCESS_KEY", tt.secretKey)
			t.Setenv("AWS_REGION", tt.region)

			cfg, err := config.LoadConfig("")

			if tt.hasError {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			if cfg.AWS.AccessKey != tt.accessKey {
				t.Errorf("AccessKey mismatch: got %s, want %s", cfg.AWS.AccessKey, tt.accessKey)
			}
			if cfg.AWS.SecretKey != tt.secretKey {
				t.Errorf("SecretKey mismatch: got %s, want %s", cfg.AWS.SecretKey, tt.secretKey)
			}

			expectedRegion := tt.region
			if expectedRegion == "" {
				expectedRegion = "us-east-1"
			}
			if cfg.AWS.Region != expectedRegion {
				t.Errorf("Region mismatch: got %s, want %s", cfg.AWS.Region, expectedRegion)
			}
			if cfg.Web.Port != 8080 {
				t.Errorf("Port mismatch: got %d, want 8080", cfg.Web.Port)
			}
		})
	}
}

func TestLoadConfig_File(t *testing.T) {
	home := isolate(t)

	content := []byte(`aws:
  region: ap-southeast-2
  profile: restore
web:
  port: 9090
log:
  level: debug
  file: /tmp/rds-restore.log
`)
	if err := os.WriteFile(filepath.Join(home, config.DefaultFileName), content, 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.AWS.Region != "ap-southeast-2" {
		t.Errorf("Region mismatch: got %s", cfg.AWS.Region)
	}
	if cfg.AWS.Profile != "restore" {
		t.Errorf("Profile mismatch: got %s", cfg.AWS.Profile)
	}
	if cfg.Web.Port != 9090 {
		t.Errorf("Port mismatch: got %d", cfg.Web.Port)
	}
	if cfg.Log.Level != "debug" || cfg.Log.File != "/tmp/rds-restore.log" {
		t.Errorf("Log config mismatch: got %+v", cfg.Log)
	}

	// the environment overrides the file
	t.Setenv("RDS_RESTORE_AWS_REGION", "eu-central-1")
	cfg, err = config.LoadConfig("")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.AWS.Region != "eu-central-1" {
		t.Errorf("Region mismatch: got %s, want eu-central-1", cfg.AWS.Region)
	}
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	home := isolate(t)

	if _, err := config.LoadConfig(filepath.Join(home, "nonexistent.yaml")); err == nil {
		t.Error("Expected error, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.Config
		hasError bool
	}{
		{
			name:     "valid",
			cfg:      config.Config{AWS: config.AWSConfig{Region: "us-east-1"}, Web: config.WebConfig{Port: 8080}},
			hasError: false,
		},
		{
			name:     "port zero",
			cfg:      config.Config{AWS: config.AWSConfig{Region: "us-east-1"}, Web: config.WebConfig{Port: 0}},
			hasError: true,
		},
		{
			name:     "port too large",
			cfg:      config.Config{AWS: config.AWSConfig{Region: "us-east-1"}, Web: config.WebConfig{Port: 70000}},
			hasError: true,
		},
		{
			name:     "no region",
			cfg:      config.Config{Web: config.WebConfig{Port: 8080}},
			hasError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.hasError && err == nil {
				t.Error("Expected error, got nil")
			}
			if !tt.hasError && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}
