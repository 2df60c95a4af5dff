// Package budget implements the monthly budget planner: named categories
// allocated out of a total, with the remainder reported as unallocated.
package budget

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	UnallocatedID    = "unallocated"
	UnallocatedName  = "Unallocated"
	UnallocatedColor = "#232323"
	TotalID          = "total"
	TotalName        = "Total"

	// random category colors stay in a mid-tone band
	colorMin = 64
	colorMax = 192
)

var (
	ErrDuplicateCategory = errors.New("category already exists")
	ErrExceedsBudget     = errors.New("amount exceeds unallocated budget")
	ErrInvalidCategory   = errors.New("invalid category")
)

// Category is one line of the budget
type Category struct {
	ID     string          `json:"id" yaml:"id"`
	Name   string          `json:"name" yaml:"name"`
	Amount decimal.Decimal `json:"amount" yaml:"amount"`
	Color  string          `json:"color,omitempty" yaml:"color,omitempty"`
}

// Summary is a point-in-time view of a planner
type Summary struct {
	Total       decimal.Decimal `json:"total" yaml:"total"`
	Allocated   decimal.Decimal `json:"allocated" yaml:"allocated"`
	Unallocated Category        `json:"unallocated" yaml:"unallocated"`
	Categories  []Category      `json:"categories" yaml:"categories"`
}

// Planner holds a monthly budget. It is safe for concurrent use.
type Planner struct {
	mu         sync.RWMutex
	total      decimal.Decimal
	categories []Category
	rng        *rand.Rand
}

// NewPlanner creates a planner with the given monthly total
func NewPlanner(initial decimal.Decimal) *Planner {
	return &Planner{
		total: initial,
		rng:   rand.New(rand.NewSource(rand.Int63())),
	}
}

// Total returns the monthly budget
func (p *Planner) Total() decimal.Decimal {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.total
}

// SetTotal replaces the monthly budget. Existing categories are kept even
// when they now exceed it; Unallocated then goes negative.
func (p *Planner) SetTotal(total decimal.Decimal) error {
	if total.LessThan(decimal.Zero) {
		return fmt.Errorf("%w: budget cannot be negative", ErrInvalidCategory)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.total = total
	return nil
}

// ResetTotal sets the budget back to zero
func (p *Planner) ResetTotal() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.total = decimal.Zero
}

// AddCategory allocates amount to a new named category
func (p *Planner) AddCategory(name string, amount decimal.Decimal, color string) (Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Category{}, fmt.Errorf("%w: name is required", ErrInvalidCategory)
	}
	if amount.LessThan(decimal.Zero) {
		return Category{}, fmt.Errorf("%w: amount cannot be negative", ErrInvalidCategory)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.indexOf(name) >= 0 {
		return Category{}, fmt.Errorf("%w: '%s'", ErrDuplicateCategory, name)
	}
	if amount.Add(p.allocated()).GreaterThan(p.total) {
		return Category{}, fmt.Errorf("%w: %s requested, %s available", ErrExceedsBudget, amount, p.total.Sub(p.allocated()))
	}

	if color == "" {
		color = p.randomColor()
	}
	c := Category{
		ID:     uuid.NewString(),
		Name:   name,
		Amount: amount,
		Color:  color,
	}
	p.categories = append(p.categories, c)
	return c, nil
}

// RemoveCategory deletes the named category and reports whether it existed
func (p *Planner) RemoveCategory(name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	i := p.indexOf(strings.TrimSpace(name))
	if i < 0 {
		return false
	}
	p.categories = append(p.categories[:i], p.categories[i+1:]...)
	return true
}

// CategoryExists reports whether a category with name exists
func (p *Planner) CategoryExists(name string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.indexOf(strings.TrimSpace(name)) >= 0
}

// ResetCategories removes every category
func (p *Planner) ResetCategories() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.categories = nil
}

// Categories returns a copy of the categories in insertion order
func (p *Planner) Categories() []Category {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]Category(nil), p.categories...)
}

// Allocated returns the sum of all category amounts
func (p *Planner) Allocated() decimal.Decimal {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.allocated()
}

// Unallocated returns the synthetic remainder category
func (p *Planner) Unallocated() Category {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.unallocated()
}

// Snapshot returns a consistent view of the whole planner
func (p *Planner) Snapshot() Summary {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return Summary{
		Total:       p.total,
		Allocated:   p.allocated(),
		Unallocated: p.unallocated(),
		Categories:  append([]Category{}, p.categories...),
	}
}

func (p *Planner) allocated() decimal.Decimal {
	sum := decimal.Zero
	for _, c := range p.categories {
		sum = sum.Add(c.Amount)
	}
	return sum
}

func (p *Planner) unallocated() Category {
	return Category{
		ID:     UnallocatedID,
		Name:   UnallocatedName,
		Amount: p.total.Sub(p.allocated()),
		Color:  UnallocatedColor,
	}
}

func (p *Planner) indexOf(name string) int {
	for i, c := range p.categories {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// randomColor must be called with the lock held; rand.Rand is not safe
// for concurrent use
func (p *Planner) randomColor() string {
	channel := func() int { return p.rng.Intn(colorMax-colorMin+1) + colorMin }
	return fmt.Sprintf("#%02x%02x%02x", channel(), channel(), channel())
}
