package port

import (
	"context"
	"officebot/internal/core/domain"
)

type VMProvider interface {
	ListVMs(ctx context.Context) ([]domain.VM, error)
	Reboot(ctx context.Context, vmID int) error
	CreateVM(ctx context.Context, datacenterID, planID, paymentTerm int) (int, error)
	SetLabel(ctx context.Context, vmID int, label string) error
	CreateDiskFromDistribution(ctx context.Context, vmID, distributionID int, label string, size int,
		rootPassword string) (int, error)
	CreateDisk(ctx context.Context, vmID int, diskType, label string, size int) (int, error)
	CreateConfig(ctx context.Context, vmID, kernelID int, label string, diskIDs []int) (int, error)
	Boot(ctx context.Context, vmID int) error
	ListIPs(ctx context.Context, vmID int) ([]string, error)
}

type DNSProvider interface {
	ListDomains(ctx context.Context) ([]domain.Domain, error)
	ListRecords(ctx context.Context, domainID int) ([]domain.DNSRecord, error)
	CreateRecord(ctx context.Context, domainID int, recordType, name, target string) (int, error)
	DeleteRecord(ctx context.Context, domainID, recordID int) error
}
