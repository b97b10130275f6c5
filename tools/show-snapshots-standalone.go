package main

import (
	"fmt"
	"os"
	"time"

	"rds-restore/internal/selection"
	"rds-restore/internal/utils"
	"rds-restore/pkg/aws"
	"rds-restore/pkg/cloud"
	"rds-restore/pkg/models"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: show-snapshots <db-instance-id> [region]")
		os.Exit(1)
	}

	region := os.Getenv("AWS_REGION")
	if len(os.Args) > 2 {
		region = os.Args[2]
	}
	if region == "" {
		region = selection.DefaultRegion
	}

	provider, err := aws.NewProvider(cloud.ProviderConfig{
		Region:  region,
		Profile: os.Getenv("AWS_PROFILE"),
	})
	if err != nil {
		fmt.Printf("Error creating AWS provider: %v\n", err)
		os.Exit(1)
	}

	st := selection.New(provider, region)
	if err := st.Refresh(); err != nil {
		fmt.Printf("Error loading DB instances: %v\n", err)
		os.Exit(1)
	}

	idx := st.InstanceIndex(os.Args[1])
	if idx < 0 {
		fmt.Printf("DB instance %s not found in %s\n", os.Args[1], region)
		os.Exit(1)
	}
	if err := st.SelectInstance(idx); err != nil {
		fmt.Printf("Error loading snapshots: %v\n", err)
		os.Exit(1)
	}

	printInstanceDetails(st.SelectedInstance())
	fmt.Println()

	snaps := st.Snapshots()
	if len(snaps) == 0 {
		fmt.Println("No snapshots found.")
		return
	}

	fmt.Printf("=== Snapshots (%d total, newest first) ===\n\n", len(snaps))
	now := time.Now()
	for _, snap := range snaps {
		fmt.Printf("[%-7s] %-50s %s  %-8s %s\n",
			snap.Hint,
			snap.Identifier,
			utils.FormatTimestamp(snap.CreatedAt),
			utils.FormatAge(snap.CreatedAt, now),
			snap.Status)
	}
}

func printInstanceDetails(inst *models.Instance) {
	fmt.Printf("DB Instance: %s\n", inst.Identifier)
	fmt.Printf("Status: %s (available: %t)\n", inst.Status, inst.IsAvailable())
	fmt.Printf("Engine: %s\n", inst.Engine)
	fmt.Printf("Multi-AZ: %t\n", inst.MultiAZ)
	fmt.Printf("Storage: %s (max %s)\n", utils.FormatStorage(inst.AllocatedStorage), utils.FormatStorage(inst.MaxAllocatedStorage))
	if inst.Endpoint.Address != "" {
		fmt.Printf("Endpoint: %s:%d\n", inst.Endpoint.Address, inst.Endpoint.Port)
	}
	fmt.Printf("Subnet group: %s\n", inst.SubnetGroup.Name)
	fmt.Printf("Active security groups: %v\n", inst.ActiveSecurityGroupIDs())
	if pg, ok := inst.PrimaryParameterGroup(); ok {
		fmt.Printf("Parameter group: %s\n", pg)
	}
}
