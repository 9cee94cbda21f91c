package account

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("account not found")

type Kind string

const (
	KindCash       Kind = "cash"
	KindReceivable Kind = "receivable"
	KindIncome     Kind = "income"
	KindPayable    Kind = "payable"
)

// Account is one row of the chart of accounts; entries reference accounts
// by public id only.
type Account struct {
	ID        uint64         `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	AccountID string         `gorm:"column:account_id;type:char(32);not null;uniqueIndex:ux_accounts_account_id_active" json:"account_id"`
	Name      string         `gorm:"column:name;size:128;not null" json:"name"`
	Kind      Kind           `gorm:"column:kind;size:16" json:"kind"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Account) TableName() string { return "accounts" }
