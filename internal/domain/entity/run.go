package entity

import "time"

// ServiceFailure describes a service whose collection failed entirely or partially.
type ServiceFailure struct {
	Type    ResourceType `json:"resource_type"`
	Reason  string       `json:"reason"`
	Partial bool         `json:"partial"`
}

// CollectionRun is the complete result of one invocation.
type CollectionRun struct {
	AccountID string                         `json:"account_id"`
	Profile   string                         `json:"profile,omitempty"`
	Regions   []string                       `json:"regions"`
	Timestamp time.Time                      `json:"timestamp"`
	Tables    map[ResourceType]*ResourceTable `json:"tables"`
	Failures  []ServiceFailure               `json:"failures,omitempty"`
}

// NewCollectionRun creates an empty run with one table per known resource type.
func NewCollectionRun(accountID string, ts time.Time) *CollectionRun {
	run := &CollectionRun{
		AccountID: accountID,
		Timestamp: ts,
		Tables:    make(map[ResourceType]*ResourceTable, len(AllResourceTypes)),
	}
	for _, t := range AllResourceTypes {
		run.Tables[t] = NewResourceTable(t)
	}
	return run
}

// Table returns the table for t, never nil.
func (r *CollectionRun) Table(t ResourceType) *ResourceTable {
	if table, ok := r.Tables[t]; ok && table != nil {
		return table
	}
	return NewResourceTable(t)
}

// NonEmptyTables returns tables with at least one record, in canonical order.
func (r *CollectionRun) NonEmptyTables() []*ResourceTable {
	var tables []*ResourceTable
	for _, t := range AllResourceTypes {
		if table := r.Table(t); table.Len() > 0 {
			tables = append(tables, table)
		}
	}
	return tables
}

// TotalRecords returns the number of records across all tables.
func (r *CollectionRun) TotalRecords() int {
	total := 0
	for _, table := range r.Tables {
		total += table.Len()
	}
	return total
}

// Failure returns the failure recorded for t, if any.
func (r *CollectionRun) Failure(t ResourceType) (ServiceFailure, bool) {
	for _, f := range r.Failures {
		if f.Type == t {
			return f, true
		}
	}
	return ServiceFailure{}, false
}
