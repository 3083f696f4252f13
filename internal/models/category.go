package models

// CategoryType tells whether a category groups expenses or incomes
type CategoryType string

const (
	CategoryTypeExpense CategoryType = "EXPENSE"
	CategoryTypeIncome  CategoryType = "INCOME"
)

// Category labels transactions; categories may be nested one level under a
// parent.
type Category struct {
	ID       string       `json:"id,omitempty"`
	Name     string       `json:"name" validate:"required,max=100"`
	Color    string       `json:"color" validate:"required,hexcolor"`
	Type     CategoryType `json:"type" validate:"required,oneof=EXPENSE INCOME"`
	Icon     string       `json:"icon,omitempty" validate:"max=50"`
	ParentID *string      `json:"parentId,omitempty"`
}

// GetID returns the category identifier.
func (c Category) GetID() string { return c.ID }

// WithID returns a copy of c carrying id.
func (c Category) WithID(id string) Category {
	c.ID = id
	return c
}
