// Package sqlstore is the relational Store backend. It satisfies the same
// ledgercore.Store contract as memstore, on top of gorm.io/gorm.
package sqlstore

import (
	"encoding/json"

	"gorm.io/gorm"

	ledgercore "github.com/mtelahun/account-engine-sub001"
)

// record is the single physical table every resource is stored in. Each
// resource keeps its own logical identity via Key (the domain id rendered
// as a string) scoped by Kind (the resource name); Fields is a flattened
// string-keyed search projection matching memstore's table.fieldsOf, kept
// as JSON so the same ledgercore.ParseSearchQuery/MatchClauses grammar
// serves both backends; Payload is the JSON-encoded domain value itself.
type record struct {
	Kind     string `gorm:"primaryKey;column:kind;size:64"`
	Key      string `gorm:"primaryKey;column:key;size:128"`
	Archived bool   `gorm:"column:archived"`
	Fields   string `gorm:"column:fields;type:text"`
	Payload  []byte `gorm:"column:payload;type:bytea"`
}

func (record) TableName() string { return "ledger_records" }

// Migrate creates the backing table. Call once at startup against either
// a postgres or sqlite *gorm.DB.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&record{})
}

func encodeFields(fields map[string]string) (string, error) {
	b, err := json.Marshal(fields)
	if err != nil {
		return "", ledgercore.WrapInternal(err, "encode search fields")
	}
	return string(b), nil
}

func decodeFields(s string) (map[string]string, error) {
	fields := map[string]string{}
	if s == "" {
		return fields, nil
	}
	if err := json.Unmarshal([]byte(s), &fields); err != nil {
		return nil, ledgercore.WrapInternal(err, "decode search fields")
	}
	return fields, nil
}

func gormNotFound(err error) bool {
	return err == gorm.ErrRecordNotFound
}
