package domain

import "strings"

type Sender struct {
	ID   string
	Nick string
}

type Message struct {
	ID     string
	ChatID string
	Sender Sender
	// Text is stripped of the bot mention or command prefix when Directed is set.
	Text     string
	Directed bool
	Args     map[string]string
}

// Arg returns a captured group of the matched command pattern, or "" if it was not captured.
func (m *Message) Arg(name string) string {
	if m.Args == nil {
		return ""
	}

	return m.Args[name]
}

type Color string

const (
	NoColor Color = ""
	Red     Color = "red"
)

type Reply struct {
	// To is the message being answered. A nil target goes to the announce channel.
	To      *Message
	Quote   bool
	Content string
	// Text is the plain rendering of an HTML Content, for transports without HTML tables.
	Text   string
	HTML   bool
	Notify bool
	Color  Color
}

// ReplyTo answers the sender of the message directly.
func ReplyTo(message *Message, content string) Reply {
	return Reply{To: message, Quote: true, Content: content}
}

// Say posts to the chat the message came from without addressing anybody.
func Say(message *Message, content string) Reply {
	return Reply{To: message, Content: content}
}

// ErrorReply answers the sender with an error-coloured notification.
func ErrorReply(message *Message, content string) Reply {
	return Reply{To: message, Quote: true, Content: content, Color: Red, Notify: true}
}

type VMStatus string

const (
	BeingCreated VMStatus = "Being Created"
	BrandNew     VMStatus = "Brand New"
	Running      VMStatus = "Running"
	PoweredOff   VMStatus = "Powered Off"
	UnknownState VMStatus = "Unknown"
)

var vmStatusCodes = map[int]VMStatus{
	-1: BeingCreated,
	0:  BrandNew,
	1:  Running,
	2:  PoweredOff,
}

// StatusFromCode maps the provider's numeric instance status.
func StatusFromCode(code int) VMStatus {
	status, ok := vmStatusCodes[code]
	if !ok {
		return UnknownState
	}

	return status
}

type VM struct {
	ID     int
	Label  string
	Status int
}

type VMRecord struct {
	ID     int      `json:"id"`
	Status VMStatus `json:"status"`
}

type Post struct {
	Title string
	URL   string
}

type Reaction struct {
	Title    string
	ImageURL string
}

type Domain struct {
	ID   int
	Name string
}

type DNSRecord struct {
	ID     int
	Type   string
	Name   string
	Target string
}

// IsA reports whether the record is an A record, regardless of how the provider cases the type.
func (r DNSRecord) IsA() bool {
	return strings.EqualFold(r.Type, "A")
}

// Provisioning holds the fixed parameters every new instance is created with.
type Provisioning struct {
	PlanID         int
	PaymentTerm    int
	DistributionID int
	KernelID       int
	DatacenterID   int
	DiskSize       int
	SwapSize       int
	DiskLabel      string
	SwapLabel      string
	ProfileLabel   string
}

var DefaultProvisioning = Provisioning{
	PlanID:         1,    // Linode 1024
	PaymentTerm:    1,    // monthly
	DistributionID: 124,  // Ubuntu 14.04 LTS
	KernelID:       138,  // latest 64 bit
	DatacenterID:   6,    // Newark, NJ
	DiskSize:       8192, // MB
	SwapSize:       512,  // MB
	DiskLabel:      "Ubuntu 14.04 LTS Disk",
	SwapLabel:      "Swap Disk",
	ProfileLabel:   "Ubuntu 14.04 LTS Profile",
}
