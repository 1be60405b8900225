package commands

import (
	"gorm.io/gorm"
)

// Command is one write executed against a transaction handle.
type Command interface {
	Execute(tx *gorm.DB) error
}

// CreateCommand inserts a record.
type CreateCommand struct {
	record interface{}
}

func NewCreateCommand(record interface{}) *CreateCommand {
	return &CreateCommand{record: record}
}

func (c *CreateCommand) Execute(tx *gorm.DB) error {
	return tx.Create(c.record).Error
}

// UpdateColumnsCommand updates selected columns of model matched by its
// primary key.
type UpdateColumnsCommand struct {
	model   interface{}
	columns map[string]interface{}
}

func NewUpdateColumnsCommand(model interface{}, columns map[string]interface{}) *UpdateColumnsCommand {
	return &UpdateColumnsCommand{model: model, columns: columns}
}

func (c *UpdateColumnsCommand) Execute(tx *gorm.DB) error {
	return tx.Model(c.model).Updates(c.columns).Error
}

// FuncCommand adapts a closure.
type FuncCommand func(tx *gorm.DB) error

func (f FuncCommand) Execute(tx *gorm.DB) error {
	return f(tx)
}

// RunBatch executes cmds in order inside one transaction. The first failure
// rolls everything back.
func RunBatch(db *gorm.DB, cmds ...Command) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, cmd := range cmds {
			if err := cmd.Execute(tx); err != nil {
				return err
			}
		}
		return nil
	})
}
