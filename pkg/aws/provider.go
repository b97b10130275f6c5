package aws

import (
	"errors"
	"fmt"
	"sort"

	"rds-restore/pkg/cloud"
	"rds-restore/pkg/models"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ec2"
	"github.com/aws/aws-sdk-go/service/ec2/ec2iface"
	"github.com/aws/aws-sdk-go/service/rds"
	"github.com/aws/aws-sdk-go/service/rds/rdsiface"
)

// Provider implements the cloud.Gateway interface for AWS RDS
type Provider struct {
	ec2Client ec2iface.EC2API
	rdsClient func(region string) rdsiface.RDSAPI
	region    string
}

var _ cloud.Gateway = (*Provider)(nil)

// NewProvider creates a new AWS provider. Credentials come from the static keys when
// both are set, otherwise from the SDK's default chain (environment, shared config, profile).
func NewProvider(cfg cloud.ProviderConfig) (*Provider, error) {
	if cfg.Region == "" {
		return nil, errors.New("region is required")
	}
	if (cfg.AccessKey == "") != (cfg.SecretKey == "") {
		return nil, errors.New("access key and secret key must be set together")
	}

	awsConfig := aws.Config{Region: aws.String(cfg.Region)}
	if cfg.AccessKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
	}

	sess, err := session.NewSessionWithOptions(session.Options{
		Config:            awsConfig,
		Profile:           cfg.Profile,
		SharedConfigState: session.SharedConfigEnable,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &Provider{
		ec2Client: ec2.New(sess),
		rdsClient: func(region string) rdsiface.RDSAPI {
			return rds.New(sess, aws.NewConfig().WithRegion(region))
		},
		region: cfg.Region,
	}, nil
}

// ValidateCredentials checks if AWS credentials are valid
func (p *Provider) ValidateCredentials() error {
	_, err := p.ec2Client.DescribeRegions(&ec2.DescribeRegionsInput{})
	if err != nil {
		return cloud.NewGatewayError("validate AWS credentials", p.region, err)
	}
	return nil
}

// ListRegions returns the enabled region names in ascending order
func (p *Provider) ListRegions() ([]string, error) {
	result, err := p.ec2Client.DescribeRegions(&ec2.DescribeRegionsInput{})
	if err != nil {
		return nil, cloud.NewGatewayError("describe regions", "", err)
	}

	regions := make([]string, 0, len(result.Regions))
	for _, region := range result.Regions {
		if name := aws.StringValue(region.RegionName); name != "" {
			regions = append(regions, name)
		}
	}
	sort.Strings(regions)

	return regions, nil
}

// ListInstances lists every DB instance of a region, following pagination
func (p *Provider) ListInstances(region string) ([]models.Instance, error) {
	var instances []models.Instance

	err := p.rdsClient(region).DescribeDBInstancesPages(&rds.DescribeDBInstancesInput{},
		func(page *rds.DescribeDBInstancesOutput, lastPage bool) bool {
			for _, db := range page.DBInstances {
				instances = append(instances, instanceFromRDS(db))
			}
			return true
		})
	if err != nil {
		return nil, cloud.NewGatewayError("describe DB instances", region, err)
	}

	return instances, nil
}

// ListSnapshots lists the snapshots of one DB instance, following pagination
func (p *Provider) ListSnapshots(instanceID, region string) ([]models.Snapshot, error) {
	var snapshots []models.Snapshot

	input := &rds.DescribeDBSnapshotsInput{
		DBInstanceIdentifier: aws.String(instanceID),
	}
	err := p.rdsClient(region).DescribeDBSnapshotsPages(input,
		func(page *rds.DescribeDBSnapshotsOutput, lastPage bool) bool {
			for _, snap := range page.DBSnapshots {
				snapshots = append(snapshots, snapshotFromRDS(snap))
			}
			return true
		})
	if err != nil {
		return nil, cloud.NewGatewayError(fmt.Sprintf("describe DB snapshots of %s", instanceID), region, err)
	}

	return snapshots, nil
}

// RestoreFromSnapshot submits the restore and returns as soon as RDS accepted it
func (p *Provider) RestoreFromSnapshot(req models.RestoreRequest) (*models.RestoreAck, error) {
	input := &rds.RestoreDBInstanceFromDBSnapshotInput{
		DBInstanceIdentifier: aws.String(req.InstanceIdentifier),
		DBSnapshotIdentifier: aws.String(req.SnapshotIdentifier),
		MultiAZ:              aws.Bool(req.MultiAZ),
		VpcSecurityGroupIds:  aws.StringSlice(req.SecurityGroupIDs),
	}
	if req.CertificateIdentifier != "" {
		input.CACertificateIdentifier = aws.String(req.CertificateIdentifier)
	}
	if req.SubnetGroupName != "" {
		input.DBSubnetGroupName = aws.String(req.SubnetGroupName)
	}
	if req.ParameterGroupName != "" {
		input.DBParameterGroupName = aws.String(req.ParameterGroupName)
	}

	result, err := p.rdsClient(req.Region).RestoreDBInstanceFromDBSnapshot(input)
	if err != nil {
		return nil, cloud.NewGatewayError("restore DB instance from snapshot", req.Region, err)
	}

	ack := &models.RestoreAck{InstanceIdentifier: req.InstanceIdentifier}
	if result.DBInstance != nil {
		ack.Status = aws.StringValue(result.DBInstance.DBInstanceStatus)
	}
	return ack, nil
}

func instanceFromRDS(db *rds.DBInstance) models.Instance {
	inst := models.Instance{
		Identifier:            aws.StringValue(db.DBInstanceIdentifier),
		Status:                aws.StringValue(db.DBInstanceStatus),
		Engine:                aws.StringValue(db.Engine),
		MultiAZ:               aws.BoolValue(db.MultiAZ),
		AllocatedStorage:      aws.Int64Value(db.AllocatedStorage),
		MaxAllocatedStorage:   aws.Int64Value(db.MaxAllocatedStorage),
		CertificateIdentifier: aws.StringValue(db.CACertificateIdentifier),
	}

	if db.Endpoint != nil {
		inst.Endpoint = models.Endpoint{
			Address:      aws.StringValue(db.Endpoint.Address),
			Port:         aws.Int64Value(db.Endpoint.Port),
			HostedZoneID: aws.StringValue(db.Endpoint.HostedZoneId),
		}
	}
	if db.DBSubnetGroup != nil {
		inst.SubnetGroup = models.SubnetGroup{
			Name:   aws.StringValue(db.DBSubnetGroup.DBSubnetGroupName),
			VpcID:  aws.StringValue(db.DBSubnetGroup.VpcId),
			Status: aws.StringValue(db.DBSubnetGroup.SubnetGroupStatus),
		}
	}
	for _, sg := range db.VpcSecurityGroups {
		inst.SecurityGroups = append(inst.SecurityGroups, models.SecurityGroup{
			ID:     aws.StringValue(sg.VpcSecurityGroupId),
			Status: aws.StringValue(sg.Status),
		})
	}
	for _, pg := range db.DBParameterGroups {
		inst.ParameterGroups = append(inst.ParameterGroups, models.ParameterGroup{
			Name:        aws.StringValue(pg.DBParameterGroupName),
			ApplyStatus: aws.StringValue(pg.ParameterApplyStatus),
		})
	}

	return inst
}

func snapshotFromRDS(snap *rds.DBSnapshot) models.Snapshot {
	return models.Snapshot{
		Identifier:         aws.StringValue(snap.DBSnapshotIdentifier),
		InstanceIdentifier: aws.StringValue(snap.DBInstanceIdentifier),
		CreatedAt:          aws.TimeValue(snap.SnapshotCreateTime),
		AllocatedStorage:   aws.Int64Value(snap.AllocatedStorage),
		Status:             aws.StringValue(snap.Status),
		AvailabilityZone:   aws.StringValue(snap.AvailabilityZone),
		Type:               aws.StringValue(snap.SnapshotType),
	}
}
