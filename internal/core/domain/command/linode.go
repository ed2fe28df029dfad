package command

import (
	"context"
	"fmt"
	"officebot/internal/core/domain"
	"officebot/internal/core/port"
	"strings"
	"time"
)

type LinodeStatus struct {
	provider port.VMProvider
	cache    port.VMCache
	renderer port.Renderer
	sender   port.Sender
	command  string
}

func NewLinodeStatus(provider port.VMProvider, cache port.VMCache, renderer port.Renderer, sender port.Sender,
	command string) *LinodeStatus {
	return &LinodeStatus{provider: provider, cache: cache, renderer: renderer, sender: sender, command: command}
}

func (s *LinodeStatus) GetCommand() string {
	return s.command
}

func (s *LinodeStatus) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	l := newLogger(ctx, s.GetCommand(), message)
	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err := send(ctx, s.sender, domain.Say(message, "I'm getting the linode status. Hang in there tiger..."))
	if err != nil {
		return err
	}

	vms, err := s.provider.ListVMs(ctx)
	if err != nil {
		l.Error().Err(err).Msg("error listing linodes")
		return send(ctx, s.sender, domain.ErrorReply(message, "I could not list the linodes"))
	}

	records := make(map[string]domain.VMRecord, len(vms))
	for _, vm := range vms {
		records[vm.Label] = domain.VMRecord{ID: vm.ID, Status: domain.StatusFromCode(vm.Status)}
	}

	if err := s.cache.Replace(ctx, records); err != nil {
		l.Error().Err(err).Msg("error caching linode list")
		return send(ctx, s.sender, domain.ErrorReply(message, "I could not save the linode list"))
	}
	l.Debug().Int("count", len(records)).Msg("cached linode list")

	html, text, err := s.renderer.VMList(records)
	if err != nil {
		return fmt.Errorf("render linode list: %w", err)
	}

	return send(ctx, s.sender, domain.Reply{To: message, Content: html, Text: text, HTML: true, Notify: true})
}

type LinodeReboot struct {
	provider port.VMProvider
	cache    port.VMCache
	sender   port.Sender
	command  string
}

func NewLinodeReboot(provider port.VMProvider, cache port.VMCache, sender port.Sender, command string) *LinodeReboot {
	return &LinodeReboot{provider: provider, cache: cache, sender: sender, command: command}
}

func (r *LinodeReboot) GetCommand() string {
	return r.command
}

func (r *LinodeReboot) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	label := message.Arg("label")
	l := newLogger(ctx, r.GetCommand(), message).With().Str("label", label).Logger()
	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err := send(ctx, r.sender, domain.Say(message, "I'm rebooting a linode. Hang in there bro..."))
	if err != nil {
		return err
	}

	// the last status listing is trusted, a linode created since then is reported as missing
	vm, ok, err := r.cache.Lookup(ctx, label)
	if err != nil {
		l.Error().Err(err).Msg("error reading linode list")
		return send(ctx, r.sender, domain.ErrorReply(message, "I could not read the linode list"))
	}

	if !ok {
		return send(ctx, r.sender, domain.ErrorReply(message, fmt.Sprintf("Linode %s does not exist", label)))
	}

	if err := r.provider.Reboot(ctx, vm.ID); err != nil {
		l.Error().Err(err).Int("linodeId", vm.ID).Msg("error rebooting linode")
		return send(ctx, r.sender,
			domain.ErrorReply(message, fmt.Sprintf("There was an error rebooting %s", label)))
	}

	reply := domain.ReplyTo(message, fmt.Sprintf("%s is now rebooting. Wait a couple minutes.", label))
	reply.Notify = true

	return send(ctx, r.sender, reply)
}

// LinodeCreate provisions a new instance. There is no rollback: the first failing step is
// returned and everything created before it is left in place.
type LinodeCreate struct {
	provider     port.VMProvider
	renderer     port.Renderer
	sender       port.Sender
	provisioning domain.Provisioning
	password     func() string
	command      string
}

func NewLinodeCreate(provider port.VMProvider, renderer port.Renderer, sender port.Sender,
	command string) *LinodeCreate {
	return &LinodeCreate{
		provider:     provider,
		renderer:     renderer,
		sender:       sender,
		provisioning: domain.DefaultProvisioning,
		password:     domain.GeneratePassword,
		command:      command,
	}
}

func (c *LinodeCreate) GetCommand() string {
	return c.command
}

func (c *LinodeCreate) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	label := message.Arg("label")
	l := newLogger(ctx, c.GetCommand(), message).With().Str("label", label).Logger()
	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err := send(ctx, c.sender, domain.Say(message, "I'm creating a linode. Hang in there master..."))
	if err != nil {
		return err
	}

	p := c.provisioning

	id, err := c.provider.CreateVM(ctx, p.DatacenterID, p.PlanID, p.PaymentTerm)
	if err != nil {
		return fmt.Errorf("create linode: %w", err)
	}
	l = l.With().Int("linodeId", id).Logger()
	l.Info().Msg("linode created")

	if err := c.provider.SetLabel(ctx, id, label); err != nil {
		return fmt.Errorf("set label: %w", err)
	}

	password := c.password()

	diskID, err := c.provider.CreateDiskFromDistribution(ctx, id, p.DistributionID, p.DiskLabel, p.DiskSize, password)
	if err != nil {
		return fmt.Errorf("create disk: %w", err)
	}

	swapID, err := c.provider.CreateDisk(ctx, id, "swap", p.SwapLabel, p.SwapSize)
	if err != nil {
		return fmt.Errorf("create swap disk: %w", err)
	}

	if _, err := c.provider.CreateConfig(ctx, id, p.KernelID, p.ProfileLabel, []int{diskID, swapID}); err != nil {
		return fmt.Errorf("create boot config: %w", err)
	}

	if err := c.provider.Boot(ctx, id); err != nil {
		return fmt.Errorf("boot: %w", err)
	}

	ips, err := c.provider.ListIPs(ctx, id)
	if err != nil {
		return fmt.Errorf("list ips: %w", err)
	}
	if len(ips) == 0 {
		return fmt.Errorf("list ips: %w", domain.ErrEmptyResponse)
	}
	l.Info().Str("ip", ips[0]).Msg("linode booted")

	html, text, err := c.renderer.VMCreated(label, ips[0], password)
	if err != nil {
		return fmt.Errorf("render summary: %w", err)
	}

	return send(ctx, c.sender,
		domain.ReplyTo(message, fmt.Sprintf("%s was created.", label)),
		domain.Reply{To: message, Content: html, Text: text, HTML: true, Notify: true})
}

// resolveDomain splits full_domain at the first dot and finds the provider id of the parent
// domain. Failures are answered here and reported as ok == false.
func resolveDomain(ctx context.Context, provider port.DNSProvider, sender port.Sender, message *domain.Message,
	command string) (string, domain.Domain, bool, error) {
	l := newLogger(ctx, command, message)
	subdomain, name, _ := strings.Cut(message.Arg("full_domain"), ".")

	domains, err := provider.ListDomains(ctx)
	if err != nil {
		l.Error().Err(err).Msg("error listing domains")
		return "", domain.Domain{}, false, send(ctx, sender,
			domain.ErrorReply(message, "I could not list the domains"))
	}

	for _, d := range domains {
		if d.Name == name {
			return subdomain, d, true, nil
		}
	}

	return "", domain.Domain{}, false, send(ctx, sender,
		domain.ErrorReply(message, fmt.Sprintf("Domain %s does not exist", name)))
}

// findARecord lists the records of d and returns the A record named subdomain, if any.
func findARecord(ctx context.Context, provider port.DNSProvider, d domain.Domain,
	subdomain string) (domain.DNSRecord, bool, error) {
	records, err := provider.ListRecords(ctx, d.ID)
	if err != nil {
		return domain.DNSRecord{}, false, err
	}

	for _, record := range records {
		if record.Name == subdomain && record.IsA() {
			return record, true, nil
		}
	}

	return domain.DNSRecord{}, false, nil
}

type DNSAdd struct {
	provider port.DNSProvider
	sender   port.Sender
	command  string
}

func NewDNSAdd(provider port.DNSProvider, sender port.Sender, command string) *DNSAdd {
	return &DNSAdd{provider: provider, sender: sender, command: command}
}

func (a *DNSAdd) GetCommand() string {
	return a.command
}

func (a *DNSAdd) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	fullDomain, ip := message.Arg("full_domain"), message.Arg("ip")
	l := newLogger(ctx, a.GetCommand(), message).With().Str("domain", fullDomain).Str("ip", ip).Logger()
	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err := send(ctx, a.sender, domain.Say(message, "I'm adding a DNS record. Hang in there sweetheart..."))
	if err != nil {
		return err
	}

	subdomain, d, ok, err := resolveDomain(ctx, a.provider, a.sender, message, a.GetCommand())
	if !ok {
		return err
	}

	_, exists, err := findARecord(ctx, a.provider, d, subdomain)
	if err != nil {
		l.Error().Err(err).Msg("error listing records")
		return send(ctx, a.sender, domain.ErrorReply(message, fmt.Sprintf("I could not list the records of %s", d.Name)))
	}

	if exists {
		return send(ctx, a.sender,
			domain.ErrorReply(message, fmt.Sprintf("Subdomain %s already exists", subdomain)))
	}

	if _, err := a.provider.CreateRecord(ctx, d.ID, "A", subdomain, ip); err != nil {
		l.Error().Err(err).Msg("error creating record")
		return send(ctx, a.sender,
			domain.ErrorReply(message, fmt.Sprintf("There was an error setting %s", fullDomain)))
	}

	reply := domain.ReplyTo(message, fmt.Sprintf("%s will now respond from %s", fullDomain, ip))
	reply.Notify = true

	return send(ctx, a.sender, reply)
}

type DNSRemove struct {
	provider port.DNSProvider
	sender   port.Sender
	command  string
}

func NewDNSRemove(provider port.DNSProvider, sender port.Sender, command string) *DNSRemove {
	return &DNSRemove{provider: provider, sender: sender, command: command}
}

func (r *DNSRemove) GetCommand() string {
	return r.command
}

func (r *DNSRemove) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	fullDomain := message.Arg("full_domain")
	l := newLogger(ctx, r.GetCommand(), message).With().Str("domain", fullDomain).Logger()
	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err := send(ctx, r.sender, domain.Say(message, "I'm removing a DNS record. Hang in there sunshine..."))
	if err != nil {
		return err
	}

	subdomain, d, ok, err := resolveDomain(ctx, r.provider, r.sender, message, r.GetCommand())
	if !ok {
		return err
	}

	record, exists, err := findARecord(ctx, r.provider, d, subdomain)
	if err != nil {
		l.Error().Err(err).Msg("error listing records")
		return send(ctx, r.sender, domain.ErrorReply(message, fmt.Sprintf("I could not list the records of %s", d.Name)))
	}

	if !exists {
		return send(ctx, r.sender,
			domain.ErrorReply(message, fmt.Sprintf("Subdomain %s does not exist", subdomain)))
	}

	if err := r.provider.DeleteRecord(ctx, d.ID, record.ID); err != nil {
		l.Error().Err(err).Int("recordId", record.ID).Msg("error deleting record")
		return send(ctx, r.sender,
			domain.ErrorReply(message, fmt.Sprintf("There was an error removing %s", fullDomain)))
	}

	reply := domain.ReplyTo(message, fmt.Sprintf("%s was removed", fullDomain))
	reply.Notify = true

	return send(ctx, r.sender, reply)
}
