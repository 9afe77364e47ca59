package memory

import (
	"sort"
	"time"

	"github.com/tu-usuario/stock-ledger/internal/domain"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
)

// Los repositorios devuelven copias: el caller persiste cambios con
// Upsert/Update, igual que contra la implementación de PostgreSQL.

// --- stock ---

type stockRepository struct{ s *Store }

// NewStockRepository repositorio de stock sobre el almacén en memoria.
func NewStockRepository(s *Store) repository.StockRepository {
	return &stockRepository{s: s}
}

func (r *stockRepository) Get(locationID, itemID string, lotKey *string) (*entity.StockRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.stock[stockKey(locationID, itemID, lotKey)]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

// GetForUpdate no bloquea filas: las transacciones en memoria se serializan
// completas en el TxRunner.
func (r *stockRepository) GetForUpdate(locationID, itemID string, lotKey *string) (*entity.StockRecord, error) {
	return r.Get(locationID, itemID, lotKey)
}

func (r *stockRepository) Upsert(rec *entity.StockRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *rec
	r.s.stock[stockKey(rec.LocationID, rec.ItemID, rec.LotKey)] = &cp
	return nil
}

func (r *stockRepository) ListByLocation(locationID string) ([]*entity.StockRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.StockRecord
	for _, rec := range r.s.stock {
		if rec.LocationID == locationID {
			cp := *rec
			out = append(out, &cp)
		}
	}
	sortStock(out)
	return out, nil
}

func (r *stockRepository) List(includeVirtual, includeDisposed bool) ([]*entity.StockRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.StockRecord
	for _, rec := range r.s.stock {
		if !includeDisposed && rec.IsDisposed {
			continue
		}
		if !includeVirtual {
			if loc, ok := r.s.locations[rec.LocationID]; ok && loc.IsVirtual {
				continue
			}
		}
		cp := *rec
		out = append(out, &cp)
	}
	sortStock(out)
	return out, nil
}

func (r *stockRepository) CountByItem(itemID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, rec := range r.s.stock {
		if rec.ItemID == itemID {
			n++
		}
	}
	return n, nil
}

func sortStock(list []*entity.StockRecord) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].LocationID != list[j].LocationID {
			return list[i].LocationID < list[j].LocationID
		}
		return list[i].ID < list[j].ID
	})
}

// --- órdenes de traslado ---

type transferRepository struct{ s *Store }

// NewTransferRepository repositorio de órdenes sobre el almacén en memoria.
func NewTransferRepository(s *Store) repository.TransferRepository {
	return &transferRepository{s: s}
}

func (r *transferRepository) Create(t *entity.Transfer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.transfers[t.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *t
	r.s.transfers[t.ID] = &cp
	return nil
}

func (r *transferRepository) GetByID(id string) (*entity.Transfer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.transfers[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *transferRepository) GetForUpdate(id string) (*entity.Transfer, error) {
	return r.GetByID(id)
}

func (r *transferRepository) Update(t *entity.Transfer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.transfers[t.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *t
	r.s.transfers[t.ID] = &cp
	return nil
}

func (r *transferRepository) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.transfers[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.transfers, id)
	return nil
}

func (r *transferRepository) ListByStatus(status string) ([]*entity.Transfer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Transfer
	for _, t := range r.s.transfers {
		if t.Status == status {
			cp := *t
			out = append(out, &cp)
		}
	}
	return sortedTransfers(out), nil
}

func (r *transferRepository) List() ([]*entity.Transfer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Transfer, 0, len(r.s.transfers))
	for _, t := range r.s.transfers {
		cp := *t
		out = append(out, &cp)
	}
	return sortedTransfers(out), nil
}

func (r *transferRepository) CountByItem(itemID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, t := range r.s.transfers {
		if t.ItemID == itemID {
			n++
		}
	}
	return n, nil
}

// --- ubicaciones ---

type locationRepository struct{ s *Store }

// NewLocationRepository repositorio de ubicaciones sobre el almacén en memoria.
func NewLocationRepository(s *Store) repository.LocationRepository {
	return &locationRepository{s: s}
}

func (r *locationRepository) Create(location *entity.Location) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, l := range r.s.locations {
		if l.Code == location.Code {
			return domain.ErrDuplicate
		}
	}
	cp := *location
	r.s.locations[location.ID] = &cp
	return nil
}

func (r *locationRepository) GetByID(id string) (*entity.Location, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.locations[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r *locationRepository) GetByCode(code string) (*entity.Location, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, l := range r.s.locations {
		if l.Code == code {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *locationRepository) Update(location *entity.Location) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.locations[location.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *location
	r.s.locations[location.ID] = &cp
	return nil
}

func (r *locationRepository) List(includeVirtual bool) ([]*entity.Location, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Location
	for _, l := range r.s.locations {
		if !includeVirtual && l.IsVirtual {
			continue
		}
		cp := *l
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *locationRepository) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.locations[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.locations, id)
	return nil
}

// --- artículos ---

type itemRepository struct{ s *Store }

// NewItemRepository repositorio de artículos sobre el almacén en memoria.
func NewItemRepository(s *Store) repository.ItemRepository {
	return &itemRepository{s: s}
}

func (r *itemRepository) Create(item *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *item
	r.s.items[item.ID] = &cp
	return nil
}

func (r *itemRepository) GetByID(id string) (*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *itemRepository) Update(item *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.items[item.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *item
	r.s.items[item.ID] = &cp
	return nil
}

func (r *itemRepository) List() ([]*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Item, 0, len(r.s.items))
	for _, it := range r.s.items {
		cp := *it
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *itemRepository) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.items, id)
	return nil
}

// --- consumidores externos ---

type recipientRepository struct{ s *Store }

// NewRecipientRepository repositorio de consumidores sobre el almacén en memoria.
func NewRecipientRepository(s *Store) repository.RecipientRepository {
	return &recipientRepository{s: s}
}

func (r *recipientRepository) Create(recipient *entity.Recipient) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *recipient
	r.s.recipients[recipient.ID] = &cp
	return nil
}

func (r *recipientRepository) GetByID(id string) (*entity.Recipient, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.recipients[id]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (r *recipientRepository) Update(recipient *entity.Recipient) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.recipients[recipient.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *recipient
	r.s.recipients[recipient.ID] = &cp
	return nil
}

func (r *recipientRepository) List() ([]*entity.Recipient, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Recipient, 0, len(r.s.recipients))
	for _, rec := range r.s.recipients {
		cp := *rec
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *recipientRepository) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.recipients[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.recipients, id)
	return nil
}

// --- proveedores ---

type supplierRepository struct{ s *Store }

// NewSupplierRepository repositorio de proveedores sobre el almacén en memoria.
func NewSupplierRepository(s *Store) repository.SupplierRepository {
	return &supplierRepository{s: s}
}

func (r *supplierRepository) Create(supplier *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *supplier
	r.s.suppliers[supplier.ID] = &cp
	return nil
}

func (r *supplierRepository) GetByID(id string) (*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sup, ok := r.s.suppliers[id]
	if !ok {
		return nil, nil
	}
	cp := *sup
	return &cp, nil
}

func (r *supplierRepository) Update(supplier *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.suppliers[supplier.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *supplier
	r.s.suppliers[supplier.ID] = &cp
	return nil
}

func (r *supplierRepository) List() ([]*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Supplier, 0, len(r.s.suppliers))
	for _, sup := range r.s.suppliers {
		cp := *sup
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *supplierRepository) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.suppliers[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.suppliers, id)
	return nil
}

// --- rastro de auditoría ---

type operationLogRepository struct{ s *Store }

// NewOperationLogRepository repositorio de auditoría sobre el almacén en memoria.
func NewOperationLogRepository(s *Store) repository.OperationLogRepository {
	return &operationLogRepository{s: s}
}

func (r *operationLogRepository) Create(log *entity.OperationLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *log
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now()
	}
	r.s.logs = append(r.s.logs, &cp)
	return nil
}

func (r *operationLogRepository) List(limit, offset int) ([]*entity.OperationLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	// más recientes primero
	reversed := make([]*entity.OperationLog, 0, len(r.s.logs))
	for i := len(r.s.logs) - 1; i >= 0; i-- {
		cp := *r.s.logs[i]
		reversed = append(reversed, &cp)
	}
	if offset >= len(reversed) {
		return nil, nil
	}
	reversed = reversed[offset:]
	if limit > 0 && limit < len(reversed) {
		reversed = reversed[:limit]
	}
	return reversed, nil
}
