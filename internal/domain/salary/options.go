package salary

import "github.com/okian/rostra/internal/domain/reference"

// Default contract policy.
const (
	DefaultContractYears = 3
)

// Option applies a configuration option to the Assigner.
type Option func(*Assigner)

// WithContractYears sets the contract length given to unsigned players.
func WithContractYears(years int) Option {
	return func(a *Assigner) {
		if years > 0 {
			a.years = years
		}
	}
}

// WithMinimumSalary replaces the minimum salary schedule.
func WithMinimumSalary(s reference.MinimumSalary) Option {
	return func(a *Assigner) {
		a.minimum = s
	}
}
