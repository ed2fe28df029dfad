package port

import "officebot/internal/core/domain"

type Renderer interface {
	// VMList renders the status table as HTML and as plain text.
	VMList(vms map[string]domain.VMRecord) (string, string, error)
	// VMCreated renders the one-time summary of a new instance, including its root password.
	VMCreated(label, ip, password string) (string, string, error)
}
