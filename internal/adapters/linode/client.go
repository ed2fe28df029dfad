package linode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"officebot/internal/adapters/web"
	"officebot/internal/core/domain"
	"slices"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

const DefaultAPIURL = "https://api.linode.com/"

// Client is a wrapper for the Linode action API. Every call is a form POST carrying api_key and
// api_action; the answer is an envelope whose ERRORARRAY holds provider errors.
type Client struct {
	client *http.Client
	apiURL string
	apiKey string
}

func NewClient(client *http.Client, apiURL, apiKey string) *Client {
	return &Client{
		client: client,
		apiURL: apiURL,
		apiKey: apiKey,
	}
}

// APIError is an error reported by the provider in an otherwise successful response.
type APIError struct {
	Action  string
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("linode %s: error %d: %s", e.Action, e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	return domain.ErrProviderRejected
}

type envelope struct {
	Errors []struct {
		Code    int    `json:"ERRORCODE"`
		Message string `json:"ERRORMESSAGE"`
	} `json:"ERRORARRAY"`
	Action string          `json:"ACTION"`
	Data   json.RawMessage `json:"DATA"`
}

type instance struct {
	ID     int    `json:"LINODEID"`
	Label  string `json:"LABEL"`
	Status int    `json:"STATUS"`
}

func (c *Client) ListVMs(ctx context.Context) ([]domain.VM, error) {
	var instances []instance
	if err := c.call(ctx, "linode.list", nil, &instances); err != nil {
		return nil, err
	}

	vms := make([]domain.VM, 0, len(instances))
	for _, i := range instances {
		vms = append(vms, domain.VM{ID: i.ID, Label: i.Label, Status: i.Status})
	}

	return vms, nil
}

func (c *Client) Reboot(ctx context.Context, vmID int) error {
	return c.call(ctx, "linode.reboot", url.Values{"LinodeID": {strconv.Itoa(vmID)}}, nil)
}

func (c *Client) CreateVM(ctx context.Context, datacenterID, planID, paymentTerm int) (int, error) {
	var created struct {
		ID int `json:"LinodeID"`
	}

	err := c.call(ctx, "linode.create", url.Values{
		"DatacenterID": {strconv.Itoa(datacenterID)},
		"PlanID":       {strconv.Itoa(planID)},
		"PaymentTerm":  {strconv.Itoa(paymentTerm)},
	}, &created)

	return created.ID, err
}

func (c *Client) SetLabel(ctx context.Context, vmID int, label string) error {
	return c.call(ctx, "linode.update", url.Values{
		"LinodeID": {strconv.Itoa(vmID)},
		"Label":    {label},
	}, nil)
}

type diskJob struct {
	JobID  int `json:"JobID"`
	DiskID int `json:"DiskID"`
}

func (c *Client) CreateDiskFromDistribution(ctx context.Context, vmID, distributionID int, label string, size int,
	rootPassword string) (int, error) {
	var job diskJob

	err := c.call(ctx, "linode.disk.createfromdistribution", url.Values{
		"LinodeID":       {strconv.Itoa(vmID)},
		"DistributionID": {strconv.Itoa(distributionID)},
		"Label":          {label},
		"Size":           {strconv.Itoa(size)},
		"rootPass":       {rootPassword},
	}, &job)

	return job.DiskID, err
}

func (c *Client) CreateDisk(ctx context.Context, vmID int, diskType, label string, size int) (int, error) {
	var job diskJob

	err := c.call(ctx, "linode.disk.create", url.Values{
		"LinodeID": {strconv.Itoa(vmID)},
		"Type":     {diskType},
		"Label":    {label},
		"Size":     {strconv.Itoa(size)},
	}, &job)

	return job.DiskID, err
}

func (c *Client) CreateConfig(ctx context.Context, vmID, kernelID int, label string, diskIDs []int) (int, error) {
	disks := make([]string, 0, len(diskIDs))
	for _, id := range diskIDs {
		disks = append(disks, strconv.Itoa(id))
	}

	var created struct {
		ID int `json:"ConfigID"`
	}

	err := c.call(ctx, "linode.config.create", url.Values{
		"LinodeID": {strconv.Itoa(vmID)},
		"KernelID": {strconv.Itoa(kernelID)},
		"Label":    {label},
		"DiskList": {strings.Join(disks, ",")},
	}, &created)

	return created.ID, err
}

func (c *Client) Boot(ctx context.Context, vmID int) error {
	return c.call(ctx, "linode.boot", url.Values{"LinodeID": {strconv.Itoa(vmID)}}, nil)
}

type ipAddress struct {
	Address  string `json:"IPADDRESS"`
	IsPublic int    `json:"ISPUBLIC"`
}

// ListIPs returns the addresses of an instance, public ones first.
func (c *Client) ListIPs(ctx context.Context, vmID int) ([]string, error) {
	var addresses []ipAddress
	if err := c.call(ctx, "linode.ip.list", url.Values{"LinodeID": {strconv.Itoa(vmID)}}, &addresses); err != nil {
		return nil, err
	}

	slices.SortStableFunc(addresses, func(a, b ipAddress) int {
		return b.IsPublic - a.IsPublic
	})

	ips := make([]string, 0, len(addresses))
	for _, a := range addresses {
		ips = append(ips, a.Address)
	}

	return ips, nil
}

func (c *Client) ListDomains(ctx context.Context) ([]domain.Domain, error) {
	var domains []struct {
		ID   int    `json:"DOMAINID"`
		Name string `json:"DOMAIN"`
	}

	if err := c.call(ctx, "domain.list", nil, &domains); err != nil {
		return nil, err
	}

	result := make([]domain.Domain, 0, len(domains))
	for _, d := range domains {
		result = append(result, domain.Domain{ID: d.ID, Name: d.Name})
	}

	return result, nil
}

func (c *Client) ListRecords(ctx context.Context, domainID int) ([]domain.DNSRecord, error) {
	var records []struct {
		ID     int    `json:"RESOURCEID"`
		Type   string `json:"TYPE"`
		Name   string `json:"NAME"`
		Target string `json:"TARGET"`
	}

	if err := c.call(ctx, "domain.resource.list", url.Values{"DomainID": {strconv.Itoa(domainID)}},
		&records); err != nil {
		return nil, err
	}

	result := make([]domain.DNSRecord, 0, len(records))
	for _, r := range records {
		result = append(result, domain.DNSRecord{ID: r.ID, Type: r.Type, Name: r.Name, Target: r.Target})
	}

	return result, nil
}

func (c *Client) CreateRecord(ctx context.Context, domainID int, recordType, name, target string) (int, error) {
	var created struct {
		ID int `json:"ResourceID"`
	}

	err := c.call(ctx, "domain.resource.create", url.Values{
		"DomainID": {strconv.Itoa(domainID)},
		"Type":     {recordType},
		"Name":     {name},
		"Target":   {target},
	}, &created)

	return created.ID, err
}

func (c *Client) DeleteRecord(ctx context.Context, domainID, recordID int) error {
	return c.call(ctx, "domain.resource.delete", url.Values{
		"DomainID":   {strconv.Itoa(domainID)},
		"ResourceID": {strconv.Itoa(recordID)},
	}, nil)
}

func (c *Client) call(ctx context.Context, action string, params url.Values, out any) error {
	form := url.Values{}
	for key, values := range params {
		form[key] = values
	}
	form.Set("api_key", c.apiKey)
	form.Set("api_action", action)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("error creating linode %s request: %w", action, err)
	}
	req.Header.Add("Content-Type", "application/x-www-form-urlencoded")

	body, err := web.Do(c.client, req)
	if err != nil {
		return fmt.Errorf("linode %s failed: %w", action, err)
	}

	var result envelope
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("error unmarshalling linode %s response: %w", action, err)
	}

	if len(result.Errors) > 0 {
		apiErr := &APIError{Action: action, Code: result.Errors[0].Code, Message: result.Errors[0].Message}
		log.Warn().Err(apiErr).Msg("linode rejected request")
		return apiErr
	}

	log.Debug().Str("action", action).Msg("linode request succeeded")

	if out == nil || len(result.Data) == 0 {
		return nil
	}

	if err := json.Unmarshal(result.Data, out); err != nil {
		return fmt.Errorf("error unmarshalling linode %s data: %w", action, err)
	}

	return nil
}
