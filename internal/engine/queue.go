package engine

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/quiclick/qc/internal/models"
	"github.com/quiclick/qc/internal/remote"
	"github.com/quiclick/qc/internal/store"
)

// OpType tags a queued operation.
type OpType string

const (
	OpCreateBookmark OpType = "create_bookmark"
	OpUpdateBookmark OpType = "update_bookmark"
	OpDeleteBookmark OpType = "delete_bookmark"
	OpCreateFolder   OpType = "create_folder"
	OpUpdateFolder   OpType = "update_folder"
	OpDeleteFolder   OpType = "delete_folder"
	OpReorder        OpType = "reorder"
	OpUpdateSettings OpType = "update_settings"
	OpFullPush       OpType = "full_push"
)

// Payload is the operation-specific data of a QueueOp. Exactly one concrete
// variant exists per OpType, so handlers dispatch exhaustively on type.
// rewriteID replaces every reference to a reconciled provisional id.
type Payload interface {
	opType() OpType
	rewriteID(old, new int64) bool
}

// CreateBookmark creates a bookmark that exists locally under LocalID.
type CreateBookmark struct {
	LocalID  int64  `json:"localId"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Favicon  string `json:"favicon,omitempty"`
	FolderID int64  `json:"folderId,omitempty"`
	Position *int   `json:"position,omitempty"`
}

func (*CreateBookmark) opType() OpType { return OpCreateBookmark }

func (p *CreateBookmark) rewriteID(old, new int64) bool {
	changed := false
	if p.LocalID == old {
		p.LocalID = new
		changed = true
	}
	if p.FolderID == old {
		p.FolderID = new
		changed = true
	}
	return changed
}

// BookmarkUpdates carries only the bookmark fields being changed.
type BookmarkUpdates struct {
	Title    *string `json:"title,omitempty"`
	URL      *string `json:"url,omitempty"`
	Favicon  *string `json:"favicon,omitempty"`
	FolderID *int64  `json:"folderId,omitempty"`
	Position *int    `json:"position,omitempty"`
}

// UpdateBookmark patches a bookmark.
type UpdateBookmark struct {
	ID      int64           `json:"id"`
	Updates BookmarkUpdates `json:"updates"`
}

func (*UpdateBookmark) opType() OpType { return OpUpdateBookmark }

func (p *UpdateBookmark) rewriteID(old, new int64) bool {
	changed := false
	if p.ID == old {
		p.ID = new
		changed = true
	}
	if p.Updates.FolderID != nil && *p.Updates.FolderID == old {
		p.Updates.FolderID = &new
		changed = true
	}
	return changed
}

// DeleteBookmark deletes a bookmark.
type DeleteBookmark struct {
	ID int64 `json:"id"`
}

func (*DeleteBookmark) opType() OpType { return OpDeleteBookmark }

func (p *DeleteBookmark) rewriteID(old, new int64) bool {
	if p.ID == old {
		p.ID = new
		return true
	}
	return false
}

// CreateFolder creates a folder that exists locally under LocalID.
type CreateFolder struct {
	LocalID  int64  `json:"localId"`
	Name     string `json:"name"`
	Position *int   `json:"position,omitempty"`
}

func (*CreateFolder) opType() OpType { return OpCreateFolder }

func (p *CreateFolder) rewriteID(old, new int64) bool {
	if p.LocalID == old {
		p.LocalID = new
		return true
	}
	return false
}

// FolderUpdates carries only the folder fields being changed.
type FolderUpdates struct {
	Name     *string `json:"name,omitempty"`
	Position *int    `json:"position,omitempty"`
}

// UpdateFolder renames or repositions a folder.
type UpdateFolder struct {
	ID      int64         `json:"id"`
	Updates FolderUpdates `json:"updates"`
}

func (*UpdateFolder) opType() OpType { return OpUpdateFolder }

func (p *UpdateFolder) rewriteID(old, new int64) bool {
	if p.ID == old {
		p.ID = new
		return true
	}
	return false
}

// DeleteFolder deletes a folder.
type DeleteFolder struct {
	ID int64 `json:"id"`
}

func (*DeleteFolder) opType() OpType { return OpDeleteFolder }

func (p *DeleteFolder) rewriteID(old, new int64) bool {
	if p.ID == old {
		p.ID = new
		return true
	}
	return false
}

// Reorder bulk-assigns positions to root-level items.
type Reorder struct {
	Items []remote.ReorderItem `json:"items"`
}

func (*Reorder) opType() OpType { return OpReorder }

func (p *Reorder) rewriteID(old, new int64) bool {
	changed := false
	for i := range p.Items {
		if p.Items[i].ID == old {
			p.Items[i].ID = new
			changed = true
		}
	}
	return changed
}

// UpdateSettings replaces the settings record.
type UpdateSettings struct {
	Settings models.Settings `json:"settings"`
}

func (*UpdateSettings) opType() OpType { return OpUpdateSettings }

func (p *UpdateSettings) rewriteID(old, new int64) bool { return false }

// FullPush serializes the whole local store into the server's import shape.
type FullPush struct{}

func (*FullPush) opType() OpType { return OpFullPush }

func (p *FullPush) rewriteID(old, new int64) bool { return false }

// QueueOp is one pending write operation. The id is engine-generated and
// used only for dedup and debugging.
type QueueOp struct {
	ID        string    `json:"id"`
	Type      OpType    `json:"type"`
	Payload   Payload   `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

type queueOpJSON struct {
	ID        string          `json:"id"`
	Type      OpType          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"createdAt"`
}

// MarshalJSON encodes the payload under its type tag.
func (op QueueOp) MarshalJSON() ([]byte, error) {
	raw, err := json.Marshal(op.Payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", op.Type, err)
	}
	return json.Marshal(queueOpJSON{ID: op.ID, Type: op.Type, Payload: raw, CreatedAt: op.CreatedAt})
}

// UnmarshalJSON decodes the payload variant selected by the type tag.
func (op *QueueOp) UnmarshalJSON(data []byte) error {
	var wire queueOpJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	payload, err := newPayload(wire.Type)
	if err != nil {
		return err
	}
	if len(wire.Payload) > 0 {
		if err := json.Unmarshal(wire.Payload, payload); err != nil {
			return fmt.Errorf("decode %s payload: %w", wire.Type, err)
		}
	}
	op.ID = wire.ID
	op.Type = wire.Type
	op.Payload = payload
	op.CreatedAt = wire.CreatedAt
	return nil
}

func newPayload(t OpType) (Payload, error) {
	switch t {
	case OpCreateBookmark:
		return &CreateBookmark{}, nil
	case OpUpdateBookmark:
		return &UpdateBookmark{}, nil
	case OpDeleteBookmark:
		return &DeleteBookmark{}, nil
	case OpCreateFolder:
		return &CreateFolder{}, nil
	case OpUpdateFolder:
		return &UpdateFolder{}, nil
	case OpDeleteFolder:
		return &DeleteFolder{}, nil
	case OpReorder:
		return &Reorder{}, nil
	case OpUpdateSettings:
		return &UpdateSettings{}, nil
	case OpFullPush:
		return &FullPush{}, nil
	default:
		return nil, fmt.Errorf("unknown queue op type: %s", t)
	}
}

// newOpID generates a queue op id from the creation instant plus a random
// suffix.
func newOpID(now time.Time) string {
	b := make([]byte, 3)
	rand.Read(b)
	return fmt.Sprintf("%d-%s", now.UnixMilli(), hex.EncodeToString(b))
}

func loadQueue(s store.Store) ([]QueueOp, error) {
	var q []QueueOp
	if _, err := s.Get(store.KeyQueue, &q); err != nil {
		return nil, err
	}
	return q, nil
}

func saveQueue(s store.Store, q []QueueOp) error {
	if q == nil {
		q = []QueueOp{}
	}
	return s.Set(store.KeyQueue, q)
}

// Append adds a pending operation to the durable queue. update_settings and
// reorder coalesce: a new enqueue replaces any existing pending entry of the
// same type in place, keeping only the latest payload. All other types
// append in FIFO order.
func Append(s store.Store, p Payload) (QueueOp, error) {
	q, err := loadQueue(s)
	if err != nil {
		return QueueOp{}, fmt.Errorf("load queue: %w", err)
	}

	now := time.Now()
	op := QueueOp{
		ID:        newOpID(now),
		Type:      p.opType(),
		Payload:   p,
		CreatedAt: now,
	}

	if op.Type == OpUpdateSettings || op.Type == OpReorder {
		for i := range q {
			if q[i].Type == op.Type {
				q[i] = op
				if err := saveQueue(s, q); err != nil {
					return QueueOp{}, fmt.Errorf("save queue: %w", err)
				}
				return op, nil
			}
		}
	}

	q = append(q, op)
	if err := saveQueue(s, q); err != nil {
		return QueueOp{}, fmt.Errorf("save queue: %w", err)
	}
	return op, nil
}

// Queue returns the pending operations in FIFO order.
func Queue(s store.Store) ([]QueueOp, error) {
	return loadQueue(s)
}

// QueueLen returns the number of pending operations.
func QueueLen(s store.Store) (int, error) {
	q, err := loadQueue(s)
	if err != nil {
		return 0, err
	}
	return len(q), nil
}
