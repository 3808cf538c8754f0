package state

import (
	"slices"

	"github.com/mfcruz/gestor/internal/model"
)

// SetTransactions replaces the whole ledger.
func (s State) SetTransactions(txs []model.Transaction) State {
	next := s
	next.Finances.Transactions = slices.Clone(txs)

	return next
}

// AddTransaction appends a transaction. The caller guarantees id
// uniqueness.
func (s State) AddTransaction(tx model.Transaction) State {
	next := s
	next.Finances.Transactions = append(slices.Clone(s.Finances.Transactions), tx)

	return next
}

// UpdateTransaction replaces the transaction with a matching id. No-op when
// absent.
func (s State) UpdateTransaction(tx model.Transaction) State {
	idx := slices.IndexFunc(s.Finances.Transactions, func(existing model.Transaction) bool {
		return existing.ID == tx.ID
	})
	if idx == -1 {
		return s
	}

	txs := slices.Clone(s.Finances.Transactions)
	txs[idx] = tx

	next := s
	next.Finances.Transactions = txs

	return next
}

// DeleteTransaction removes the transaction with the given id.
func (s State) DeleteTransaction(id string) State {
	next := s
	next.Finances.Transactions = slices.DeleteFunc(slices.Clone(s.Finances.Transactions), func(tx model.Transaction) bool {
		return tx.ID == id
	})

	return next
}

// SetSummary replaces the derived summary wholesale.
func (s State) SetSummary(sum model.Summary) State {
	sum.CashFlow = slices.Clone(sum.CashFlow)

	next := s
	next.Finances.Summary = &sum

	return next
}

// SetCategories replaces the category list.
func (s State) SetCategories(categories []string) State {
	next := s
	next.Finances.Categories = slices.Clone(categories)

	return next
}

// AddCategory appends a category name. Idempotent: a name already on the
// list is not added twice.
func (s State) AddCategory(name string) State {
	if slices.Contains(s.Finances.Categories, name) {
		return s
	}

	next := s
	next.Finances.Categories = append(slices.Clone(s.Finances.Categories), name)

	return next
}

// FindTransaction looks up a transaction by id.
func (s State) FindTransaction(id string) (model.Transaction, bool) {
	for _, tx := range s.Finances.Transactions {
		if tx.ID == id {
			return tx, true
		}
	}

	return model.Transaction{}, false
}
