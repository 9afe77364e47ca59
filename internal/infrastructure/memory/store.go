// Package memory implementa los puertos de persistencia del ledger sobre mapas
// en memoria, con un TxRunner de instantánea y reversión. Respaldo hermético
// para tests y para ejecutar el servicio sin PostgreSQL.
package memory

import (
	"sort"
	"sync"

	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
)

// Store estado compartido de todos los repositorios en memoria.
// mu protege cada operación individual; txMu serializa transacciones completas.
type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex

	locations  map[string]*entity.Location
	items      map[string]*entity.Item
	suppliers  map[string]*entity.Supplier
	recipients map[string]*entity.Recipient
	stock      map[string]*entity.StockRecord // clave compuesta (ubicación, artículo, lote)
	transfers  map[string]*entity.Transfer
	logs       []*entity.OperationLog
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		locations:  make(map[string]*entity.Location),
		items:      make(map[string]*entity.Item),
		suppliers:  make(map[string]*entity.Supplier),
		recipients: make(map[string]*entity.Recipient),
		stock:      make(map[string]*entity.StockRecord),
		transfers:  make(map[string]*entity.Transfer),
	}
}

// stockKey clave compuesta serializada. nil y cadena vacía son distintos:
// nil usa un marcador propio.
func stockKey(locationID, itemID string, lotKey *string) string {
	lot := "\x00nil"
	if lotKey != nil {
		lot = *lotKey
	}
	return locationID + "\x00" + itemID + "\x00" + lot
}

// snapshot copia profunda del estado mutable por transacciones.
type snapshot struct {
	stock     map[string]*entity.StockRecord
	transfers map[string]*entity.Transfer
	logs      []*entity.OperationLog
}

func (s *Store) takeSnapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := snapshot{
		stock:     make(map[string]*entity.StockRecord, len(s.stock)),
		transfers: make(map[string]*entity.Transfer, len(s.transfers)),
		logs:      append([]*entity.OperationLog(nil), s.logs...),
	}
	for k, v := range s.stock {
		cp := *v
		snap.stock[k] = &cp
	}
	for k, v := range s.transfers {
		cp := *v
		snap.transfers[k] = &cp
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stock = snap.stock
	s.transfers = snap.transfers
	s.logs = snap.logs
}

func sortedTransfers(list []*entity.Transfer) []*entity.Transfer {
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list
}
