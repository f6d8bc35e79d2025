package fsstore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/tiendaverde/storefront/internal/domain/purchase"
)

var _ purchase.Repository = (*Ledger)(nil)

// Ledger is the purchase ledger on a single JSON file.
//
// All appends are serialized behind a mutex and each one re-reads the file,
// so every write sees the latest committed state. The id is allocated from
// the highest persisted id, not the record count, so it stays monotonic
// even after records are pruned. The rewrite goes through a temp file and
// an atomic rename so a crash never leaves a truncated ledger behind.
type Ledger struct {
	path string
	mu   sync.Mutex
}

// NewLedger creates a Ledger over the given file path. The file must exist;
// initialize an empty ledger with the literal "[]".
func NewLedger(path string) *Ledger {
	return &Ledger{path: path}
}

type purchaseJSON struct {
	ID        int64          `json:"id"`
	Productos []lineItemJSON `json:"productos"`
	CreatedAt time.Time      `json:"createdAt,omitzero"`
}

type lineItemJSON struct {
	ID       int64   `json:"id"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Create appends one purchase, assigns its id, and rewrites the file.
func (l *Ledger) Create(_ context.Context, p *purchase.Purchase) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	records, err := l.load()
	if err != nil {
		return err
	}

	var maxID int64
	for _, r := range records {
		if r.ID > maxID {
			maxID = r.ID
		}
	}

	p.ID = maxID + 1
	p.CreatedAt = time.Now().UTC()
	records = append(records, toJSON(p))

	if err := l.store(records); err != nil {
		return err
	}
	return nil
}

// List returns every recorded purchase in file order.
func (l *Ledger) List(_ context.Context) ([]purchase.Purchase, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	records, err := l.load()
	if err != nil {
		return nil, err
	}

	purchases := make([]purchase.Purchase, len(records))
	for i, r := range records {
		purchases[i] = fromJSON(r)
	}
	return purchases, nil
}

func (l *Ledger) load() ([]purchaseJSON, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, errors.Wrap(err, "read ledger")
	}

	var records []purchaseJSON
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.Wrap(err, "decode ledger")
	}
	return records, nil
}

func (l *Ledger) store(records []purchaseJSON) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode ledger")
	}

	dir := filepath.Dir(l.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(l.path)+".tmp-*")
	if err != nil {
		return errors.Wrap(err, "create temp ledger")
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "write ledger")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "close temp ledger")
	}

	if err := os.Rename(tmp.Name(), l.path); err != nil {
		return errors.Wrap(err, "commit ledger")
	}
	return nil
}

func toJSON(p *purchase.Purchase) purchaseJSON {
	items := make([]lineItemJSON, len(p.Productos))
	for i, it := range p.Productos {
		items[i] = lineItemJSON{
			ID:       it.ID,
			Quantity: it.Quantity,
			Price:    it.Price.InexactFloat64(),
		}
	}
	return purchaseJSON{ID: p.ID, Productos: items, CreatedAt: p.CreatedAt}
}

func fromJSON(r purchaseJSON) purchase.Purchase {
	items := make([]purchase.LineItem, len(r.Productos))
	for i, it := range r.Productos {
		items[i] = purchase.LineItem{
			ID:       it.ID,
			Quantity: it.Quantity,
			Price:    decimal.NewFromFloat(it.Price),
		}
	}
	return purchase.Purchase{ID: r.ID, Productos: items, CreatedAt: r.CreatedAt}
}
