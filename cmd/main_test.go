package main

import (
	"strings"
	"testing"

	"rds-restore/pkg/cloud/cloudtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckRegion(t *testing.T) {
	gw := cloudtest.NewFakeGateway()

	tests := []struct {
		name    string
		region  string
		wantErr bool
	}{
		{"known region", "us-west-2", false},
		{"unknown region", "mars-north-1", true},
		{"empty region", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkRegion(gw, tt.region)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "invalid --region")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCheckRegion_GatewayFailure(t *testing.T) {
	gw := cloudtest.NewFakeGateway()
	gw.FailRegions = true

	err := checkRegion(gw, "us-east-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list regions")
}

func TestCheckRestoreName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid name", "restored-db", false},
		{"shortest valid", "abc", false},
		{"longest valid", strings.Repeat("a", 63), false},
		{"empty", "", true},
		{"too short", "ab", true},
		{"too long", strings.Repeat("a", 64), true},
		{"uppercase", "Restored-DB", true},
		{"underscore", "restored_db", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkRestoreName(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "invalid --name")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
