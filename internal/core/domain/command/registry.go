package command

import (
	"errors"
	"fmt"
	"officebot/internal/core/domain"
	"officebot/internal/core/port"
	"regexp"

	"github.com/rs/zerolog/log"
)

// Route binds a command pattern to the command that handles it.
type Route struct {
	Pattern          string
	Description      string
	Mode             domain.Mode
	RequiredSettings []domain.Setting
	AdminOnly        bool
	Command          port.Command

	re *regexp.Regexp
}

// Registry is the ordered route table. It is filled once at startup and only read afterwards.
type Registry struct {
	routes []Route
}

// Register compiles the route pattern and appends it to the table. RespondTo patterns are
// anchored so they must match the whole addressed text; all patterns ignore case.
func (r *Registry) Register(route Route) error {
	if route.Command == nil {
		return errors.New("route without command")
	}

	expr := route.Pattern
	if route.Mode == domain.RespondTo {
		expr = `^(?:` + expr + `)$`
	}

	re, err := regexp.Compile(`(?i)` + expr)
	if err != nil {
		return fmt.Errorf("invalid pattern for %s: %w", route.Command.GetCommand(), err)
	}
	route.re = re

	log.Info().Str("handler", route.Command.GetCommand()).Str("mode", route.Mode.String()).
		Str("pattern", route.Pattern).Msg("adding command handler to registry")
	r.routes = append(r.routes, route)

	return nil
}

// MustRegister is Register for the static table built in main.
func (r *Registry) MustRegister(route Route) {
	if err := r.Register(route); err != nil {
		panic(err)
	}
}

// Match returns the first route matching the message, in registration order, with its named
// capture groups.
func (r *Registry) Match(message *domain.Message) (Route, map[string]string, bool) {
	for _, route := range r.routes {
		if route.Mode == domain.RespondTo && !message.Directed {
			continue
		}

		groups := route.re.FindStringSubmatch(message.Text)
		if groups == nil {
			continue
		}

		args := make(map[string]string)
		for i, name := range route.re.SubexpNames() {
			if name != "" && groups[i] != "" {
				args[name] = groups[i]
			}
		}

		return route, args, true
	}

	return Route{}, nil, false
}

// ListCommands returns the registered routes in registration order.
func (r *Registry) ListCommands() []Route {
	routes := make([]Route, len(r.routes))
	copy(routes, r.routes)

	return routes
}
