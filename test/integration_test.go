//go:build integration
// +build integration

package test

import (
	"os"
	"testing"

	"rds-restore/internal/selection"
	"rds-restore/pkg/aws"
	"rds-restore/pkg/cloud"
	"rds-restore/pkg/config"
)

// TestAWSGatewayIntegration runs the read-only gateway calls against real AWS.
// It requires credentials in the environment.
func TestAWSGatewayIntegration(t *testing.T) {
	if os.Getenv("AWS_ACCESS_KEY_ID") == "" && os.Getenv("AWS_PROFILE") == "" {
		t.Skip("Skipping integration test: AWS credentials not found")
	}

	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	provider, err := aws.NewProvider(cloud.ProviderConfig{
		Region:    cfg.AWS.Region,
		Profile:   cfg.AWS.Profile,
		AccessKey: cfg.AWS.AccessKey,
		SecretKey: cfg.AWS.SecretKey,
		Endpoint:  cfg.AWS.Endpoint,
	})
	if err != nil {
		t.Fatalf("Failed to create AWS provider: %v", err)
	}

	if err := provider.ValidateCredentials(); err != nil {
		t.Fatalf("Invalid AWS credentials: %v", err)
	}

	st := selection.New(provider, cfg.AWS.Region)
	if err := st.LoadRegions(); err != nil {
		t.Fatalf("Failed to list regions: %v", err)
	}
	if len(st.Regions()) == 0 {
		t.Fatal("Expected at least one region")
	}

	if err := st.Refresh(); err != nil {
		t.Fatalf("Failed to list DB instances: %v", err)
	}
	t.Logf("Found %d DB instances in %s", len(st.Instances()), st.Region())

	if len(st.Instances()) == 0 {
		return
	}
	if err := st.SelectInstance(0); err != nil {
		t.Fatalf("Failed to list snapshots: %v", err)
	}
	t.Logf("Found %d snapshots of %s", len(st.Snapshots()), st.SelectedInstance().Identifier)

	snaps := st.Snapshots()
	for i := 1; i < len(snaps); i++ {
		if snaps[i].CreatedAt.After(snaps[i-1].CreatedAt) {
			t.Errorf("Snapshots not sorted newest first at row %d", i)
		}
	}

	// No restore is issued here; it would create a billable instance.
}
