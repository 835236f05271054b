// Package nav provides route generation and client-side navigation
// history for the importer views.
package nav

// Route is a client-side path to one of the importer views.
type Route string

// Form is the submission form route.
const Form Route = "/importer"

// TaskList is the prior-tasks list route.
const TaskList Route = "/importer/tasks"

// TaskDetail maps a task id to its detail-page path.
func TaskDetail(taskID string) Route {
	return Route("/importer/tasks/" + taskID)
}

// History is a push-only navigation stack. The current route is the
// top of the stack; Back pops it.
type History struct {
	stack []Route
}

// NewHistory returns a history positioned at the given initial route.
func NewHistory(initial Route) *History {
	return &History{stack: []Route{initial}}
}

// Push navigates to a route.
func (h *History) Push(r Route) {
	h.stack = append(h.stack, r)
}

// Current returns the route on top of the stack.
func (h *History) Current() Route {
	return h.stack[len(h.stack)-1]
}

// Back pops the current route and returns the new current one. At the
// bottom of the stack it stays put and reports false.
func (h *History) Back() (Route, bool) {
	if len(h.stack) <= 1 {
		return h.Current(), false
	}
	h.stack = h.stack[:len(h.stack)-1]
	return h.Current(), true
}
