package badger

import "github.com/dgraph-io/badger/v4"

// SetRaw stores bytes under the tree key without encoding them.
func (s *Store) SetRaw(data []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(s.key, data)
	})
}
