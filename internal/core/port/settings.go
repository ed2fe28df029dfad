package port

import "officebot/internal/core/domain"

type Settings interface {
	// Missing returns the settings among required that have no value.
	Missing(required ...domain.Setting) []domain.Setting
}
